// Package bleadvert broadcasts Bluetooth Low Energy advertisements through
// the BlueZ daemon on Linux.
//
// It talks to BlueZ over the system message bus: an advertisement is a D-Bus
// object implementing org.bluez.LEAdvertisement1 that this package exports
// and registers with the adapter's org.bluez.LEAdvertisingManager1 interface.
// BlueZ owns the radio; this package only describes what to broadcast.
//
// Some documentation for the BlueZ D-Bus interface:
// https://git.kernel.org/pub/scm/bluetooth/bluez.git/tree/doc
package bleadvert // import "github.com/bleadvert/bleadvert"

// AdapterState represents the state of the adapter.
type AdapterState int

const (
	// AdapterStateUnknown is the default value for the adapter state.
	AdapterStateUnknown AdapterState = iota

	// AdapterStatePoweredOn indicates the adapter is powered on.
	AdapterStatePoweredOn

	// AdapterStatePoweredOff indicates the adapter is powered off.
	AdapterStatePoweredOff
)

func (s AdapterState) String() string {
	switch s {
	case AdapterStatePoweredOn:
		return "powered-on"
	case AdapterStatePoweredOff:
		return "powered-off"
	default:
		return "unknown"
	}
}
