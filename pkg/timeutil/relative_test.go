package timeutil

import (
	"testing"
	"time"
)

func TestRelative(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero", time.Time{}, ""},
		{"just now", now.Add(-20 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-49 * time.Hour), "2d ago"},
		{"weeks", now.Add(-10 * 24 * time.Hour), "1w ago"},
		{"future", now.Add(2 * 24 * time.Hour), "in 2d"},
	}

	for _, tc := range cases {
		if got := Relative(tc.t, now); got != tc.want {
			t.Errorf("%s: Relative = %q, want %q", tc.name, got, tc.want)
		}
	}
}
