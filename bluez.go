package bleadvert

import (
	"fmt"
	"sort"
	"strings"

	"github.com/godbus/dbus/v5"
)

// D-Bus names used when talking to the BlueZ daemon.
const (
	bluezService           = "org.bluez"
	bluezAdapterPathPrefix = "/org/bluez/"

	adapterInterface            = "org.bluez.Adapter1"
	advertisementInterface      = "org.bluez.LEAdvertisement1"
	advertisingManagerInterface = "org.bluez.LEAdvertisingManager1"

	objectManagerInterface = "org.freedesktop.DBus.ObjectManager"

	defaultAdapterID = "hci0"
)

// managedObjects returns every object the BlueZ daemon exposes, keyed by
// object path and then by interface name.
func managedObjects(bus *dbus.Conn) (map[dbus.ObjectPath]map[string]map[string]dbus.Variant, error) {
	var objects map[dbus.ObjectPath]map[string]map[string]dbus.Variant
	err := bus.Object(bluezService, "/").Call(objectManagerInterface+".GetManagedObjects", 0).Store(&objects)
	if err != nil {
		return nil, fmt.Errorf("bleadvert: get managed objects: %w", err)
	}
	return objects, nil
}

// discoverAdapterID picks the first adapter that exposes the LE advertising
// manager, falling back to hci0 when none does or the daemon cannot be asked.
func discoverAdapterID(bus *dbus.Conn) string {
	objects, err := managedObjects(bus)
	if err != nil {
		return defaultAdapterID
	}
	for _, path := range sortedPaths(objects) {
		if _, ok := objects[path][advertisingManagerInterface]; ok {
			return adapterIDFromPath(path)
		}
	}
	return defaultAdapterID
}

func sortedPaths(objects map[dbus.ObjectPath]map[string]map[string]dbus.Variant) []dbus.ObjectPath {
	paths := make([]dbus.ObjectPath, 0, len(objects))
	for path := range objects {
		paths = append(paths, path)
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })
	return paths
}

// adapterIDFromPath turns a path like /org/bluez/hci1 into hci1.
func adapterIDFromPath(path dbus.ObjectPath) string {
	return strings.TrimPrefix(string(path), bluezAdapterPathPrefix)
}
