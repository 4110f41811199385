package dbusmon

import (
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog"
)

// UPower names for the system battery.
const (
	upowerService      = "org.freedesktop.UPower"
	upowerDeviceIface  = "org.freedesktop.UPower.Device"
	DefaultBatteryPath = "/org/freedesktop/UPower/devices/battery_BAT0"

	stateProp = "State"
)

// ChargeState is the charging state of the system battery as encoded by
// UPower's Device.State property.
type ChargeState uint32

const (
	ChargeStateUnknown ChargeState = iota
	ChargeStateCharging
	ChargeStateDischarging
	ChargeStateEmpty
	ChargeStateFullyCharged
	ChargeStatePendingCharge
	ChargeStatePendingDischarge
)

func (s ChargeState) String() string {
	switch s {
	case ChargeStateCharging:
		return "charging"
	case ChargeStateDischarging:
		return "discharging"
	case ChargeStateEmpty:
		return "empty"
	case ChargeStateFullyCharged:
		return "fully charged"
	case ChargeStatePendingCharge:
		return "pending charge"
	case ChargeStatePendingDischarge:
		return "pending discharge"
	default:
		return "unknown"
	}
}

// Battery is the state of the system battery. Percentage is nil when no
// battery is present, which is a valid steady state on desktop machines.
type Battery struct {
	Percentage *float64
	State      ChargeState

	log zerolog.Logger
}

// NewBattery returns a [Battery] with no readings.
func NewBattery(log zerolog.Logger) *Battery {
	return &Battery{log: log}
}

// Apply updates the battery from a UPower.Device PropertiesChanged set and
// reports whether the percentage changed. Properties absent from the set are
// left untouched.
func (b *Battery) Apply(changed map[string]dbus.Variant) bool {
	if v, ok := changed[stateProp]; ok {
		state, err := uint32Value(v)
		if err != nil {
			b.log.Error().Err(err).Msg("bad battery state value")
		} else {
			b.State = ChargeState(state)
			b.log.Info().Stringer("state", b.State).Msg("battery state changed")
		}
	}

	v, ok := changed[percentageProp]
	if !ok {
		return false
	}

	pct, err := float64Value(v)
	if err != nil {
		b.log.Error().Err(err).Msg("bad battery percentage value")
		return false
	}

	b.Percentage = &pct
	b.log.Info().Float64("percentage", pct).Msg("battery percentage changed")

	return true
}

// Text derives the battery display string: a glyph-prefixed rounded percent,
// or the empty string when no battery is present.
func (b *Battery) Text() string {
	if b.Percentage == nil {
		return ""
	}

	return fmt.Sprintf("🔋 %.0f%%", *b.Percentage)
}
