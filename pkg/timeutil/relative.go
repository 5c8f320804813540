// Package timeutil has small time formatting helpers shared by the printers
// and interactive surfaces.
package timeutil

import (
	"fmt"
	"time"
)

// Relative renders how far t lies from now in compact human form, for
// example "just now", "2h ago", or "in 3d". Display only.
func Relative(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := now.Sub(t)
	future := d < 0
	if future {
		d = -d
	}

	var span string
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		span = fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		span = fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		span = fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		span = fmt.Sprintf("%dw", int(d.Hours()/(24*7)))
	}

	if future {
		return "in " + span
	}
	return span + " ago"
}
