package bleadvert

import (
	"github.com/godbus/dbus/v5"
)

// AdapterInfo describes one adapter known to the BlueZ daemon.
type AdapterInfo struct {
	ID      string
	Path    dbus.ObjectPath
	Address string
	Alias   string
	Powered bool

	// Advertising reports whether the adapter exposes the LE advertising
	// manager. Kernels older than 4.19 or adapters without LE support do not.
	Advertising        bool
	ActiveInstances    uint8
	SupportedInstances uint8

	// MaxAdvLen is the controller's advertisement payload limit, from the
	// SupportedCapabilities property. Zero when BlueZ does not report it.
	MaxAdvLen uint8
}

// ListAdapters enumerates the Bluetooth adapters currently known to BlueZ,
// in object path order.
func ListAdapters() ([]AdapterInfo, error) {
	bus, err := dbus.SystemBus()
	if err != nil {
		return nil, err
	}
	objects, err := managedObjects(bus)
	if err != nil {
		return nil, err
	}
	var infos []AdapterInfo
	for _, path := range sortedPaths(objects) {
		ifaces := objects[path]
		if _, ok := ifaces[adapterInterface]; !ok {
			continue
		}
		infos = append(infos, parseAdapterInfo(path, ifaces))
	}
	return infos, nil
}

// parseAdapterInfo extracts the adapter fields from the interface dictionary
// returned by GetManagedObjects. Missing or ill-typed properties are left at
// their zero value.
func parseAdapterInfo(path dbus.ObjectPath, ifaces map[string]map[string]dbus.Variant) AdapterInfo {
	info := AdapterInfo{
		ID:   adapterIDFromPath(path),
		Path: path,
	}
	props := ifaces[adapterInterface]
	if v, ok := props["Address"].Value().(string); ok {
		info.Address = v
	}
	if v, ok := props["Alias"].Value().(string); ok {
		info.Alias = v
	}
	if v, ok := props["Powered"].Value().(bool); ok {
		info.Powered = v
	}
	if mgr, ok := ifaces[advertisingManagerInterface]; ok {
		info.Advertising = true
		if v, ok := mgr["ActiveInstances"].Value().(uint8); ok {
			info.ActiveInstances = v
		}
		if v, ok := mgr["SupportedInstances"].Value().(uint8); ok {
			info.SupportedInstances = v
		}
		if caps, ok := mgr["SupportedCapabilities"].Value().(map[string]dbus.Variant); ok {
			if v, ok := caps["MaxAdvLen"].Value().(uint8); ok {
				info.MaxAdvLen = v
			}
		}
	}
	return info
}
