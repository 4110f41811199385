package dbusmon

import (
	"fmt"
	"strings"
)

// NoDevicesText is the Bluetooth summary when no device reports a battery
// percentage.
const NoDevicesText = "No BT"

// nameFallback stands in for the first letter of an unnamed device.
const nameFallback = 'D'

// Summary derives the Bluetooth display string: one token per device with a
// known battery percentage, each the first rune of the device name (or a
// fallback letter) followed by the percentage, joined by single spaces.
// Token order follows map iteration and is deliberately unspecified; paired
// peripherals number at most a few.
func (r *Registry) Summary() string {
	var tokens []string

	for _, d := range r.devices {
		if d.Percentage == nil {
			continue
		}

		first := nameFallback
		if d.Name != "" {
			for _, c := range d.Name {
				first = c
				break
			}
		}

		tokens = append(tokens, fmt.Sprintf("%c%d", first, *d.Percentage))
	}

	if len(tokens) == 0 {
		return NoDevicesText
	}

	return strings.Join(tokens, " ")
}
