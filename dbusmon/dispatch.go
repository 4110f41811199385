package dbusmon

import (
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
)

// Standard D-Bus interfaces the monitor listens on.
const (
	propertiesIface    = "org.freedesktop.DBus.Properties"
	objectManagerIface = "org.freedesktop.DBus.ObjectManager"

	propertiesChangedMember = "PropertiesChanged"
	interfacesAddedMember   = "InterfacesAdded"
	interfacesRemovedMember = "InterfacesRemoved"
)

// dispatchEntry routes signals matching a (path, interface, member) triple
// to a handler. An empty path matches any object path.
type dispatchEntry struct {
	path   string
	iface  string
	member string
	handle func(sig *dbus.Signal)
}

// dispatchTable is a fixed set of routing entries, looked up in order.
type dispatchTable []dispatchEntry

// lookup returns the handler for the first matching entry.
func (t dispatchTable) lookup(path, iface, member string) (func(*dbus.Signal), bool) {
	for _, e := range t {
		if e.iface != iface || e.member != member {
			continue
		}

		if e.path != "" && e.path != path {
			continue
		}

		return e.handle, true
	}

	return nil, false
}

// splitSignalName splits a signal's fully qualified name into interface and
// member, e.g. "org.freedesktop.DBus.Properties.PropertiesChanged".
func splitSignalName(name string) (iface, member string, err error) {
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return "", "", fmt.Errorf("signal name %q has no interface", name)
	}

	return name[:i], name[i+1:], nil
}
