package dbusmon

import (
	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog"
)

// BlueZ interfaces of interest on device objects.
const (
	bluezService   = "org.bluez"
	bluezRootPath  = "/"
	deviceIface    = "org.bluez.Device1"
	batteryIface   = "org.bluez.Battery1"
	mediaIface     = "org.bluez.MediaControl1"
	percentageProp = "Percentage"
)

// Device aggregates the facts known about a single Bluetooth peripheral.
// Facts arrive independently, so any subset may be populated at a time: a
// device can have a name but no battery, or a battery but no name.
type Device struct {
	// Whether the object exposes org.bluez.Battery1.
	HasBattery bool

	// Whether the object exposes org.bluez.MediaControl1.
	HasMedia bool

	// Battery charge in percent, nil when not reported.
	Percentage *uint8

	// Device alias, empty when not known. BlueZ aliases are never empty,
	// so the empty string is unambiguous.
	Name string
}

// interesting reports whether the record carries any fact worth keeping.
// Records for which this is false must not exist in the registry.
func (d *Device) interesting() bool {
	return d.HasBattery || d.HasMedia || d.Name != ""
}

// Registry is the in-memory table of known Bluetooth peripherals, keyed by
// D-Bus object path. It is owned by the monitor goroutine exclusively and is
// therefore unsynchronized.
type Registry struct {
	devices map[string]*Device
	log     zerolog.Logger
}

// NewRegistry returns an empty [Registry].
func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		devices: make(map[string]*Device),
		log:     log,
	}
}

// Len returns the number of known devices.
func (r *Registry) Len() int {
	return len(r.devices)
}

// Device returns a copy of the record at path.
func (r *Registry) Device(path string) (Device, bool) {
	d, ok := r.devices[path]
	if !ok {
		return Device{}, false
	}

	return *d, true
}

// record returns the record at path, creating it when absent.
func (r *Registry) record(path string) *Device {
	d, ok := r.devices[path]
	if !ok {
		d = &Device{}
		r.devices[path] = d
	}

	return d
}

// gc removes the record at path if it no longer carries any fact.
func (r *Registry) gc(path string) {
	d, ok := r.devices[path]
	if ok && !d.interesting() {
		delete(r.devices, path)
		r.log.Info().Str("path", path).Msg("removed device: no battery, media, or name left")
	}
}

// ApplyAdded merges an InterfacesAdded interface map into the record at
// path, creating the record if needed. It reports whether the object carried
// any interface of interest, i.e. whether the Bluetooth summary may have
// changed.
//
// Merging is field-independent: an interface absent from the map leaves its
// fields untouched, and an interface present without a sub-property (a
// Battery1 with no Percentage) leaves that optional alone. A fresh name
// replaces an earlier one, since an added Device1 reflects current truth.
func (r *Registry) ApplyAdded(path string, ifaces map[string]map[string]dbus.Variant) bool {
	relevant := false

	if props, ok := ifaces[deviceIface]; ok {
		relevant = true

		if name, ok := deviceName(props); ok {
			d := r.record(path)
			d.Name = name
			r.log.Info().Str("path", path).Str("name", name).Msg("device name learned")
		} else {
			// A Device1 without a usable name contributes no fact;
			// no record is created for it alone.
			r.log.Debug().Str("path", path).Msg("Device1 added without Alias or Name")
		}
	}

	if props, ok := ifaces[batteryIface]; ok {
		relevant = true
		d := r.record(path)
		d.HasBattery = true

		if v, ok := props[percentageProp]; ok {
			pct, err := percentageValue(v)
			if err != nil {
				r.log.Error().Err(err).Str("path", path).Msg("bad battery percentage in InterfacesAdded")
			} else {
				d.Percentage = &pct
				r.log.Info().Str("path", path).Uint8("percentage", pct).Msg("device battery learned")
			}
		} else {
			r.log.Debug().Str("path", path).Msg("Battery1 added without Percentage property")
		}
	}

	if _, ok := ifaces[mediaIface]; ok {
		relevant = true
		d := r.record(path)
		d.HasMedia = true
		r.log.Debug().Str("path", path).Msg("device media control learned")
	}

	r.gc(path)

	return relevant
}

// ApplyBatteryChanged updates the record at path from a Battery1
// PropertiesChanged set. A change for an unknown path implies the registry
// missed the interface addition; the record is created defensively and the
// anomaly logged. The report value is true whenever the signal was a
// Battery1 change, so the caller re-derives the summary.
func (r *Registry) ApplyBatteryChanged(path string, changed map[string]dbus.Variant) bool {
	if _, ok := r.devices[path]; !ok {
		r.log.Warn().Str("path", path).Msg("Battery1 change for device not in registry, creating")
	}

	d := r.record(path)
	d.HasBattery = true

	v, ok := changed[percentageProp]
	if !ok {
		// Absent property means no mutation of that field.
		r.log.Debug().Str("path", path).Msg("Battery1 change without Percentage property")
		return true
	}

	pct, err := percentageValue(v)
	if err != nil {
		r.log.Error().Err(err).Str("path", path).Msg("bad battery percentage in PropertiesChanged")
		return true
	}

	d.Percentage = &pct
	r.log.Info().Str("path", path).Uint8("percentage", pct).Msg("device battery updated")

	return true
}

// ApplyMediaChanged marks the record at path as a media device, creating it
// defensively when absent.
func (r *Registry) ApplyMediaChanged(path string) bool {
	if _, ok := r.devices[path]; !ok {
		r.log.Warn().Str("path", path).Msg("MediaControl1 change for device not in registry, creating")
	}

	d := r.record(path)
	d.HasMedia = true

	return true
}

// ApplyRemoved clears the fields corresponding to each removed interface on
// the record at path, then garbage-collects the record if no fact remains.
// Removal for a path not in the registry is a no-op. It reports whether any
// interface of interest was named.
func (r *Registry) ApplyRemoved(path string, ifaces []string) bool {
	relevant := false

	d, known := r.devices[path]

	for _, iface := range ifaces {
		switch iface {
		case batteryIface:
			relevant = true
			if known {
				d.HasBattery = false
				d.Percentage = nil
			}
		case mediaIface:
			relevant = true
			if known {
				d.HasMedia = false
			}
		case deviceIface:
			relevant = true
			if known {
				d.Name = ""
			}
		}
	}

	if !known {
		if relevant {
			r.log.Debug().Str("path", path).Msg("interfaces removed from device not in registry")
		}
		return relevant
	}

	r.gc(path)

	return relevant
}

// deviceName extracts the display name from Device1 properties, preferring
// Alias over Name as BlueZ recommends.
func deviceName(props map[string]dbus.Variant) (string, bool) {
	for _, key := range []string{"Alias", "Name"} {
		v, ok := props[key]
		if !ok {
			continue
		}

		name, err := stringValue(v)
		if err != nil || name == "" {
			continue
		}

		return name, true
	}

	return "", false
}
