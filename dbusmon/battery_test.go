package dbusmon

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestBatteryTextAbsent(t *testing.T) {
	b := NewBattery(zerolog.Nop())

	assert.Empty(t, b.Text())
}

func TestBatteryApplyPercentage(t *testing.T) {
	b := NewBattery(zerolog.Nop())

	changed := b.Apply(map[string]dbus.Variant{"Percentage": dbus.MakeVariant(47.0)})

	assert.True(t, changed)
	assert.Equal(t, "🔋 47%", b.Text())
}

func TestBatteryApplyWithoutPercentage(t *testing.T) {
	b := NewBattery(zerolog.Nop())
	b.Apply(map[string]dbus.Variant{"Percentage": dbus.MakeVariant(47.0)})

	// A change set without Percentage must not mutate the field.
	changed := b.Apply(map[string]dbus.Variant{"State": dbus.MakeVariant(uint32(2))})

	assert.False(t, changed)
	assert.Equal(t, "🔋 47%", b.Text())
	assert.Equal(t, ChargeStateDischarging, b.State)
}

func TestBatteryTextRounds(t *testing.T) {
	b := NewBattery(zerolog.Nop())
	b.Apply(map[string]dbus.Variant{"Percentage": dbus.MakeVariant(86.7)})

	assert.Equal(t, "🔋 87%", b.Text())
}

func TestBatteryApplyBadShape(t *testing.T) {
	b := NewBattery(zerolog.Nop())

	changed := b.Apply(map[string]dbus.Variant{"Percentage": dbus.MakeVariant("nope")})

	assert.False(t, changed)
	assert.Empty(t, b.Text())
}

func TestChargeStateString(t *testing.T) {
	tests := []struct {
		state ChargeState
		want  string
	}{
		{ChargeStateUnknown, "unknown"},
		{ChargeStateCharging, "charging"},
		{ChargeStateDischarging, "discharging"},
		{ChargeStateEmpty, "empty"},
		{ChargeStateFullyCharged, "fully charged"},
		{ChargeStatePendingCharge, "pending charge"},
		{ChargeStatePendingDischarge, "pending discharge"},
		{ChargeState(42), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
}
