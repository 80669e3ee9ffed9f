package bleadvert

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/godbus/dbus/v5/prop"
)

var (
	// ErrAdvertisementNotStarted is returned by Stop when the advertisement
	// is not registered with BlueZ.
	ErrAdvertisementNotStarted = errors.New("bleadvert: advertisement is not started")

	// ErrAdvertisementAlreadyStarted is returned by Start when the
	// advertisement is already registered with BlueZ.
	ErrAdvertisementAlreadyStarted = errors.New("bleadvert: advertisement is already started")

	// ErrAdapterNotPowered is returned by Start when the adapter radio is
	// switched off.
	ErrAdapterNotPowered = errors.New("bleadvert: adapter is not powered")

	errAdvertisementNotConfigured     = errors.New("bleadvert: advertisement is not configured")
	errAdvertisementAlreadyConfigured = errors.New("bleadvert: advertisement is already configured")
)

var advertisementID uint64

// Advertisement encapsulates a single advertisement instance: one
// org.bluez.LEAdvertisement1 object exported on the system bus.
type Advertisement struct {
	adapter      *Adapter
	properties   *prop.Properties
	path         dbus.ObjectPath
	discoverable bool

	mu             sync.Mutex
	started        bool
	releaseHandler func()
}

// DefaultAdvertisement returns the default advertisement instance but does
// not configure it.
func (a *Adapter) DefaultAdvertisement() *Advertisement {
	if a.defaultAdvertisement == nil {
		a.defaultAdvertisement = &Advertisement{
			adapter: a,
		}
	}
	return a.defaultAdvertisement
}

// SetReleaseHandler sets a handler function to be called when BlueZ drops
// the advertisement on its own, for example when the timeout expires or the
// daemon restarts. It must be set before Start.
func (a *Advertisement) SetReleaseHandler(f func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.releaseHandler = f
}

// Path returns the object path the advertisement is exported at. It is empty
// until Configure has been called.
func (a *Advertisement) Path() dbus.ObjectPath {
	return a.path
}

// Active reports whether the advertisement is currently registered.
func (a *Advertisement) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.started
}

// Configure exports this advertisement on the system bus. It may only be
// called once, after the adapter has been enabled.
func (a *Advertisement) Configure(options AdvertisementOptions) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.path != "" {
		return errAdvertisementAlreadyConfigured
	}
	if a.adapter.adapter == nil {
		return errAdapterNotEnabled
	}

	id := atomic.AddUint64(&advertisementID, 1)
	path := dbus.ObjectPath(fmt.Sprintf("/org/bleadvert/advertisement%d", id))

	props, err := prop.Export(a.adapter.bus, path, advertisementProperties(options))
	if err != nil {
		return fmt.Errorf("bleadvert: export advertisement properties: %w", err)
	}

	// BlueZ calls Release on the object when it drops the registration.
	if err := a.adapter.bus.Export((*advertisementRelease)(a), path, advertisementInterface); err != nil {
		return fmt.Errorf("bleadvert: export advertisement: %w", err)
	}

	node := &introspect.Node{
		Name: string(path),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			prop.IntrospectData,
			{
				Name:       advertisementInterface,
				Methods:    []introspect.Method{{Name: "Release"}},
				Properties: props.Introspection(advertisementInterface),
			},
		},
	}
	if err := a.adapter.bus.Export(introspect.NewIntrospectable(node), path, "org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("bleadvert: export introspection: %w", err)
	}

	if options.LocalName != "" {
		if err := a.adapter.adapter.SetAlias(options.LocalName); err != nil {
			return fmt.Errorf("bleadvert: set adapter alias: %w", err)
		}
	}

	a.properties = props
	a.path = path
	a.discoverable = options.Discoverable
	return nil
}

// advertisementProperties builds the org.bluez.LEAdvertisement1 property
// spec for the given options.
func advertisementProperties(options AdvertisementOptions) map[string]map[string]*prop.Prop {
	advType := options.Type
	if advType == "" {
		advType = AdvertisementTypeBroadcast
	}

	serviceUUIDs := make([]string, 0, len(options.ServiceUUIDs))
	for _, uuid := range options.ServiceUUIDs {
		serviceUUIDs = append(serviceUUIDs, uuid.String())
	}
	manufacturerData := make(map[uint16]any, len(options.ManufacturerData))
	for _, element := range options.ManufacturerData {
		manufacturerData[element.CompanyID] = element.Data
	}
	serviceData := make(map[string]any, len(options.ServiceData))
	for _, element := range options.ServiceData {
		serviceData[element.UUID.String()] = element.Data
	}

	return map[string]map[string]*prop.Prop{
		advertisementInterface: {
			"Type":             {Value: string(advType)},
			"ServiceUUIDs":     {Value: serviceUUIDs},
			"ManufacturerData": {Value: manufacturerData},
			"ServiceData":      {Value: serviceData, Writable: true},
			"LocalName":        {Value: options.LocalName},
			"Timeout":          {Value: options.Timeout},
			"Duration":         {Value: options.Duration},
		},
	}
}

// Start advertisement. May only be called after it has been configured.
func (a *Advertisement) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.path == "" {
		return errAdvertisementNotConfigured
	}
	if a.started {
		return ErrAdvertisementAlreadyStarted
	}

	powered, err := a.adapter.adapter.GetPowered()
	if err != nil {
		return fmt.Errorf("bleadvert: read Powered: %w", err)
	}
	if !powered {
		return ErrAdapterNotPowered
	}

	adapterObj := a.adapter.busObject()

	// A previous process may have died without unregistering, leaving a
	// stale registration at our path. Best-effort only: BlueZ keys
	// registrations by bus client, so this usually returns DoesNotExist.
	adapterObj.Call(advertisingManagerInterface+".UnregisterAdvertisement", 0, a.path)

	call := adapterObj.Call(advertisingManagerInterface+".RegisterAdvertisement", 0, a.path, map[string]interface{}{})
	if call.Err != nil {
		return registerError(call.Err)
	}

	if a.discoverable {
		if err := a.adapter.adapter.SetDiscoverable(true); err != nil {
			return fmt.Errorf("bleadvert: set discoverable: %w", err)
		}
	}
	a.started = true
	return nil
}

// Stop advertisement. May only be called after it has been started.
func (a *Advertisement) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.path == "" {
		return errAdvertisementNotConfigured
	}
	if !a.started {
		return ErrAdvertisementNotStarted
	}

	call := a.adapter.busObject().Call(advertisingManagerInterface+".UnregisterAdvertisement", 0, a.path)
	if call.Err != nil {
		if dbusErr, ok := call.Err.(dbus.Error); ok && dbusErr.Name == "org.bluez.Error.DoesNotExist" {
			a.started = false
			return ErrAdvertisementNotStarted
		}
		return fmt.Errorf("bleadvert: could not stop advertisement: %w", call.Err)
	}
	a.started = false
	return nil
}

// registerError maps BlueZ registration failures onto package errors.
func registerError(err error) error {
	if dbusErr, ok := err.(dbus.Error); ok {
		switch dbusErr.Name {
		case "org.bluez.Error.AlreadyExists":
			return ErrAdvertisementAlreadyStarted
		case "org.bluez.Error.NotPermitted":
			return fmt.Errorf("bleadvert: advertisement instance limit reached: %w", err)
		case "org.bluez.Error.InvalidLength":
			return fmt.Errorf("bleadvert: advertisement payload too long: %w", err)
		}
	}
	return fmt.Errorf("bleadvert: could not start advertisement: %w", err)
}

// advertisementRelease carries the org.bluez.LEAdvertisement1 Release method
// so that only it is exported on the advertisement interface.
type advertisementRelease Advertisement

// Release is called by BlueZ when it unregisters the advertisement itself.
func (r *advertisementRelease) Release() *dbus.Error {
	a := (*Advertisement)(r)
	a.mu.Lock()
	wasStarted := a.started
	a.started = false
	handler := a.releaseHandler
	a.mu.Unlock()
	if wasStarted && handler != nil {
		handler()
	}
	return nil
}
