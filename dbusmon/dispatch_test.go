package dbusmon

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchTableLookup(t *testing.T) {
	var hit string

	table := dispatchTable{
		{
			path:   "/org/freedesktop/UPower/devices/battery_BAT0",
			iface:  propertiesIface,
			member: propertiesChangedMember,
			handle: func(*dbus.Signal) { hit = "battery" },
		},
		{
			path:   "",
			iface:  objectManagerIface,
			member: interfacesAddedMember,
			handle: func(*dbus.Signal) { hit = "added" },
		},
	}

	tests := []struct {
		name    string
		path    string
		iface   string
		member  string
		want    string
		matched bool
	}{
		{
			name:    "exact path match",
			path:    "/org/freedesktop/UPower/devices/battery_BAT0",
			iface:   propertiesIface,
			member:  propertiesChangedMember,
			want:    "battery",
			matched: true,
		},
		{
			name:   "exact path mismatch",
			path:   "/org/freedesktop/UPower/devices/battery_BAT1",
			iface:  propertiesIface,
			member: propertiesChangedMember,
		},
		{
			name:    "wildcard path",
			path:    "/org/bluez/hci0/dev_AA_BB",
			iface:   objectManagerIface,
			member:  interfacesAddedMember,
			want:    "added",
			matched: true,
		},
		{
			name:   "unknown member",
			path:   "/",
			iface:  objectManagerIface,
			member: "InterfacesChanged",
		},
		{
			name:   "unknown interface",
			path:   "/",
			iface:  "org.freedesktop.DBus",
			member: interfacesAddedMember,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit = ""

			handle, ok := table.lookup(tt.path, tt.iface, tt.member)
			assert.Equal(t, tt.matched, ok)

			if ok {
				handle(nil)
				assert.Equal(t, tt.want, hit)
			}
		})
	}
}

func TestSplitSignalName(t *testing.T) {
	iface, member, err := splitSignalName("org.freedesktop.DBus.Properties.PropertiesChanged")
	require.NoError(t, err)
	assert.Equal(t, "org.freedesktop.DBus.Properties", iface)
	assert.Equal(t, "PropertiesChanged", member)

	_, _, err = splitSignalName("NoInterface")
	assert.Error(t, err)

	_, _, err = splitSignalName("trailing.")
	assert.Error(t, err)
}
