package dbusmon

import (
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
)

// ErrUnexpectedShape reports that a bus value did not have the type the
// signal or property contract promises. Values on the wire are dynamically
// typed, so every conversion is checked.
var ErrUnexpectedShape = errors.New("unexpected value shape")

// stringValue converts a variant holding a D-Bus string.
func stringValue(v dbus.Variant) (string, error) {
	s, ok := v.Value().(string)
	if !ok {
		return "", fmt.Errorf("%w: expected string, got %T", ErrUnexpectedShape, v.Value())
	}

	return s, nil
}

// byteValue converts a variant holding a D-Bus byte ("y"), the type BlueZ
// uses for battery percentages.
func byteValue(v dbus.Variant) (uint8, error) {
	b, ok := v.Value().(byte)
	if !ok {
		return 0, fmt.Errorf("%w: expected byte, got %T", ErrUnexpectedShape, v.Value())
	}

	return b, nil
}

// percentageValue converts a variant holding a BlueZ battery percentage and
// rejects values outside 0..100.
func percentageValue(v dbus.Variant) (uint8, error) {
	b, err := byteValue(v)
	if err != nil {
		return 0, err
	}

	if b > 100 {
		return 0, fmt.Errorf("%w: percentage %d out of range", ErrUnexpectedShape, b)
	}

	return b, nil
}

// float64Value converts a variant holding a D-Bus double ("d"), the type
// UPower uses for the system battery percentage.
func float64Value(v dbus.Variant) (float64, error) {
	f, ok := v.Value().(float64)
	if !ok {
		return 0, fmt.Errorf("%w: expected float64, got %T", ErrUnexpectedShape, v.Value())
	}

	return f, nil
}

// uint32Value converts a variant holding a D-Bus uint32 ("u"), the type
// UPower uses for the charging state.
func uint32Value(v dbus.Variant) (uint32, error) {
	u, ok := v.Value().(uint32)
	if !ok {
		return 0, fmt.Errorf("%w: expected uint32, got %T", ErrUnexpectedShape, v.Value())
	}

	return u, nil
}

// interfacesAddedBody parses the body of
// org.freedesktop.DBus.ObjectManager.InterfacesAdded.
//
// Format of the body is as follows
//
//	[<object-path>, <interfaces-and-properties>]
//
// Where:
//   - <object-path>: path of the object gaining interfaces (o)
//   - <interfaces-and-properties>: interface name to property map (a{sa{sv}})
func interfacesAddedBody(body []any) (string, map[string]map[string]dbus.Variant, error) {
	if len(body) != 2 {
		return "", nil, fmt.Errorf("%w: expected 2 body fields, got %d", ErrUnexpectedShape, len(body))
	}

	path, ok := body[0].(dbus.ObjectPath)
	if !ok {
		return "", nil, fmt.Errorf("%w: expected object path, got %T", ErrUnexpectedShape, body[0])
	}

	ifaces, ok := body[1].(map[string]map[string]dbus.Variant)
	if !ok {
		return "", nil, fmt.Errorf("%w: expected interface map, got %T", ErrUnexpectedShape, body[1])
	}

	return string(path), ifaces, nil
}

// interfacesRemovedBody parses the body of
// org.freedesktop.DBus.ObjectManager.InterfacesRemoved.
//
// Format of the body is as follows
//
//	[<object-path>, <interface-names>]
//
// Where:
//   - <object-path>: path of the object losing interfaces (o)
//   - <interface-names>: names of the removed interfaces (as)
func interfacesRemovedBody(body []any) (string, []string, error) {
	if len(body) != 2 {
		return "", nil, fmt.Errorf("%w: expected 2 body fields, got %d", ErrUnexpectedShape, len(body))
	}

	path, ok := body[0].(dbus.ObjectPath)
	if !ok {
		return "", nil, fmt.Errorf("%w: expected object path, got %T", ErrUnexpectedShape, body[0])
	}

	names, ok := body[1].([]string)
	if !ok {
		return "", nil, fmt.Errorf("%w: expected interface name array, got %T", ErrUnexpectedShape, body[1])
	}

	return string(path), names, nil
}

// propertiesChangedBody parses the body of
// org.freedesktop.DBus.Properties.PropertiesChanged.
//
// Format of the body is as follows
//
//	[<interface-name>, <changed-properties>, <invalidated-properties>]
//
// Where:
//   - <interface-name>: interface whose properties changed (s)
//   - <changed-properties>: property name to new value (a{sv})
//   - <invalidated-properties>: properties changed without a value (as)
//
// The invalidated list is validated for shape but otherwise unused; neither
// UPower nor BlueZ invalidates the properties watched here.
func propertiesChangedBody(body []any) (string, map[string]dbus.Variant, error) {
	if len(body) != 3 {
		return "", nil, fmt.Errorf("%w: expected 3 body fields, got %d", ErrUnexpectedShape, len(body))
	}

	iface, ok := body[0].(string)
	if !ok {
		return "", nil, fmt.Errorf("%w: expected interface name string, got %T", ErrUnexpectedShape, body[0])
	}

	changed, ok := body[1].(map[string]dbus.Variant)
	if !ok {
		return "", nil, fmt.Errorf("%w: expected changed property map, got %T", ErrUnexpectedShape, body[1])
	}

	if _, ok := body[2].([]string); !ok {
		return "", nil, fmt.Errorf("%w: expected invalidated property array, got %T", ErrUnexpectedShape, body[2])
	}

	return iface, changed, nil
}
