package bleadvert

import (
	"context"
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/muka/go-bluetooth/api"
	"github.com/muka/go-bluetooth/bluez"
	"github.com/muka/go-bluetooth/bluez/profile/adapter"
)

var errAdapterNotEnabled = errors.New("bleadvert: adapter not enabled")

// Adapter represents a BlueZ Bluetooth adapter such as hci0.
type Adapter struct {
	id      string
	bus     *dbus.Conn
	adapter *adapter.Adapter1

	defaultAdvertisement *Advertisement

	ctx         context.Context             // context for the event watcher, canceled on Disable
	cancel      context.CancelFunc          // cancel function to halt the event watcher
	propchanged chan *bluez.PropertyChanged // channel that adapter property changes show up on

	stateChangeHandler func(newState AdapterState)
}

// NewAdapter returns an adapter for the given controller ID, such as "hci0".
// Pass an empty ID to let Enable pick the first adapter that supports LE
// advertising.
func NewAdapter(id string) *Adapter {
	return &Adapter{
		id:                 id,
		stateChangeHandler: func(newState AdapterState) {},
	}
}

// DefaultAdapter is the default adapter on the system: the first adapter that
// exposes the BlueZ advertising manager.
//
// Make sure to call Enable() before using it to initialize the adapter.
var DefaultAdapter = NewAdapter("")

// Enable connects to the system bus and resolves the adapter. It must be
// called before any other call on the adapter.
func (a *Adapter) Enable() (err error) {
	if a.adapter != nil {
		return nil
	}
	a.bus, err = dbus.SystemBus()
	if err != nil {
		return fmt.Errorf("bleadvert: connect system bus: %w", err)
	}
	if a.id == "" {
		a.id = discoverAdapterID(a.bus)
	}
	a.adapter, err = api.GetAdapter(a.id)
	if err != nil {
		return fmt.Errorf("bleadvert: adapter %s: %w", a.id, err)
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())
	return a.watchForStateChange()
}

// Disable stops the state watcher and releases the adapter. The advertisement
// is not unregistered; call Stop on it first.
func (a *Adapter) Disable() error {
	if a.adapter == nil {
		return nil
	}
	if a.propchanged != nil {
		a.adapter.UnwatchProperties(a.propchanged)
		a.propchanged = nil
	}
	if a.cancel != nil {
		a.cancel()
	}
	a.adapter = nil
	return nil
}

// ID returns the controller ID of this adapter, such as "hci0". It is only
// valid after Enable.
func (a *Adapter) ID() string {
	return a.id
}

// Address returns the MAC address of the adapter.
func (a *Adapter) Address() (MACAddress, error) {
	if a.adapter == nil {
		return MACAddress{}, errAdapterNotEnabled
	}
	mac, err := ParseMAC(a.adapter.Properties.Address)
	if err != nil {
		return MACAddress{}, err
	}
	return MACAddress{MAC: mac}, nil
}

// State returns the current state of the adapter.
func (a *Adapter) State() AdapterState {
	if a.adapter == nil {
		return AdapterStateUnknown
	}
	powered, err := a.adapter.GetPowered()
	if err != nil {
		return AdapterStateUnknown
	}
	if powered {
		return AdapterStatePoweredOn
	}
	return AdapterStatePoweredOff
}

// PowerOn powers the adapter if it is currently off. Several distributions
// leave adapters unpowered at boot until something asks for them.
func (a *Adapter) PowerOn() error {
	if a.adapter == nil {
		return errAdapterNotEnabled
	}
	powered, err := a.adapter.GetPowered()
	if err != nil {
		return fmt.Errorf("bleadvert: read Powered: %w", err)
	}
	if powered {
		return nil
	}
	if err := a.adapter.SetPowered(true); err != nil {
		return fmt.Errorf("bleadvert: power on %s: %w", a.id, err)
	}
	return nil
}

// SetStateChangeHandler sets a handler function to be called whenever the
// adapter's state changes, such as powering off.
func (a *Adapter) SetStateChangeHandler(c func(newState AdapterState)) {
	a.stateChangeHandler = c
}

// path returns the D-Bus object path of the adapter.
func (a *Adapter) path() dbus.ObjectPath {
	return dbus.ObjectPath(bluezAdapterPathPrefix + a.id)
}

// busObject returns the raw bus object of the adapter, for calls not covered
// by the adapter profile.
func (a *Adapter) busObject() dbus.BusObject {
	return a.bus.Object(bluezService, a.path())
}

// watchForStateChange watches for a signal from the BlueZ adapter interface
// that indicates a Powered/Unpowered event.
func (a *Adapter) watchForStateChange() error {
	var err error
	a.propchanged, err = a.adapter.WatchProperties()
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case changed := <-a.propchanged:
				// A nil means UnwatchProperties was called, so we can stop
				// watching.
				if changed == nil {
					a.cancel()
					return
				}
				switch changed.Name {
				case "Powered":
					if changed.Value.(bool) {
						a.stateChangeHandler(AdapterStatePoweredOn)
					} else {
						a.stateChangeHandler(AdapterStatePoweredOff)
					}
				}

				continue
			case <-a.ctx.Done():
				return
			}
		}
	}()

	return nil
}
