package dbusmon

import (
	"strings"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
)

func TestSummaryIdempotent(t *testing.T) {
	r := newTestRegistry()
	r.ApplyAdded("/d1", map[string]map[string]dbus.Variant{
		deviceIface:  deviceProps("Pixel Buds"),
		batteryIface: batteryProps(80),
	})

	first := r.Summary()
	second := r.Summary()

	assert.Equal(t, first, second)
}

func TestSummaryFallbackLetter(t *testing.T) {
	r := newTestRegistry()
	r.ApplyAdded("/d1", map[string]map[string]dbus.Variant{batteryIface: batteryProps(55)})

	assert.Equal(t, "D55", r.Summary())
}

func TestSummarySkipsDevicesWithoutPercentage(t *testing.T) {
	r := newTestRegistry()
	r.ApplyAdded("/named", map[string]map[string]dbus.Variant{deviceIface: deviceProps("Mouse")})
	r.ApplyAdded("/media", map[string]map[string]dbus.Variant{mediaIface: {}})

	assert.Equal(t, "No BT", r.Summary())
}

func TestSummaryMultipleDevices(t *testing.T) {
	r := newTestRegistry()
	r.ApplyAdded("/d1", map[string]map[string]dbus.Variant{
		deviceIface:  deviceProps("Pixel Buds"),
		batteryIface: batteryProps(80),
	})
	r.ApplyAdded("/d2", map[string]map[string]dbus.Variant{
		deviceIface:  deviceProps("Keyboard"),
		batteryIface: batteryProps(35),
	})

	// Iteration order is unspecified, so compare the token set.
	tokens := strings.Split(r.Summary(), " ")
	assert.ElementsMatch(t, []string{"P80", "K35"}, tokens)
}

func TestSummaryMultibyteFirstRune(t *testing.T) {
	r := newTestRegistry()
	r.ApplyAdded("/d1", map[string]map[string]dbus.Variant{
		deviceIface:  deviceProps("Ørsted"),
		batteryIface: batteryProps(12),
	})

	assert.Equal(t, "Ø12", r.Summary())
}
