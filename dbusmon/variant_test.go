package dbusmon

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentageValue(t *testing.T) {
	pct, err := percentageValue(dbus.MakeVariant(uint8(80)))
	require.NoError(t, err)
	assert.Equal(t, uint8(80), pct)

	_, err = percentageValue(dbus.MakeVariant(uint8(101)))
	assert.ErrorIs(t, err, ErrUnexpectedShape)

	_, err = percentageValue(dbus.MakeVariant("80"))
	assert.ErrorIs(t, err, ErrUnexpectedShape)
}

func TestScalarValueShapes(t *testing.T) {
	_, err := stringValue(dbus.MakeVariant(uint32(1)))
	assert.ErrorIs(t, err, ErrUnexpectedShape)

	_, err = float64Value(dbus.MakeVariant("1.0"))
	assert.ErrorIs(t, err, ErrUnexpectedShape)

	_, err = uint32Value(dbus.MakeVariant(int32(1)))
	assert.ErrorIs(t, err, ErrUnexpectedShape)

	f, err := float64Value(dbus.MakeVariant(47.5))
	require.NoError(t, err)
	assert.Equal(t, 47.5, f)
}

func TestInterfacesAddedBody(t *testing.T) {
	ifaces := map[string]map[string]dbus.Variant{
		batteryIface: {"Percentage": dbus.MakeVariant(uint8(80))},
	}

	path, got, err := interfacesAddedBody([]any{dbus.ObjectPath("/d1"), ifaces})
	require.NoError(t, err)
	assert.Equal(t, "/d1", path)
	assert.Equal(t, ifaces, got)

	_, _, err = interfacesAddedBody([]any{dbus.ObjectPath("/d1")})
	assert.ErrorIs(t, err, ErrUnexpectedShape)

	_, _, err = interfacesAddedBody([]any{"/d1", ifaces})
	assert.ErrorIs(t, err, ErrUnexpectedShape)

	_, _, err = interfacesAddedBody([]any{dbus.ObjectPath("/d1"), "wrong"})
	assert.ErrorIs(t, err, ErrUnexpectedShape)
}

func TestInterfacesRemovedBody(t *testing.T) {
	path, names, err := interfacesRemovedBody([]any{dbus.ObjectPath("/d1"), []string{batteryIface}})
	require.NoError(t, err)
	assert.Equal(t, "/d1", path)
	assert.Equal(t, []string{batteryIface}, names)

	_, _, err = interfacesRemovedBody([]any{dbus.ObjectPath("/d1"), []int{1}})
	assert.ErrorIs(t, err, ErrUnexpectedShape)
}

func TestPropertiesChangedBody(t *testing.T) {
	changed := map[string]dbus.Variant{"Percentage": dbus.MakeVariant(47.0)}

	iface, got, err := propertiesChangedBody([]any{upowerDeviceIface, changed, []string{}})
	require.NoError(t, err)
	assert.Equal(t, upowerDeviceIface, iface)
	assert.Equal(t, changed, got)

	_, _, err = propertiesChangedBody([]any{upowerDeviceIface, changed})
	assert.ErrorIs(t, err, ErrUnexpectedShape)

	_, _, err = propertiesChangedBody([]any{42, changed, []string{}})
	assert.ErrorIs(t, err, ErrUnexpectedShape)

	_, _, err = propertiesChangedBody([]any{upowerDeviceIface, changed, "bad"})
	assert.ErrorIs(t, err, ErrUnexpectedShape)
}
