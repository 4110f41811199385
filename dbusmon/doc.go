// Package dbusmon monitors the system D-Bus for power and Bluetooth state
// and derives short display strings for a status bar.
//
// It watches two services:
//   - [UPower] for the system battery ([PropertiesChanged] on the battery
//     object),
//   - [BlueZ] for Bluetooth peripherals ([InterfacesAdded] and
//     [InterfacesRemoved] on the object manager, plus property changes on
//     device objects).
//
// Facts about a single peripheral (its name, whether it exposes a battery,
// whether it offers media control) arrive as separate, unordered signals.
// [Monitor] reconciles them into a registry of [Device] records and pushes a
// freshly derived summary string to its output channels after every relevant
// mutation. Consumers only ever see whole-string snapshots.
//
// The monitor never reconnects: when the underlying signal stream ends,
// [Monitor.Run] returns an error and monitoring stops for the remainder of
// the process.
//
// [UPower]: https://upower.freedesktop.org/docs/
// [BlueZ]: https://github.com/bluez/bluez/tree/master/doc
// [PropertiesChanged]: https://dbus.freedesktop.org/doc/dbus-specification.html#standard-interfaces-properties
// [InterfacesAdded]: https://dbus.freedesktop.org/doc/dbus-specification.html#standard-interfaces-objectmanager
// [InterfacesRemoved]: https://dbus.freedesktop.org/doc/dbus-specification.html#standard-interfaces-objectmanager
package dbusmon
