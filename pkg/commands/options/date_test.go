package options

import (
	"testing"
	"time"
)

func TestGetOnDefaultsToToday(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.Local)
	o := &DateOptions{}

	got, err := o.GetOn(now)
	if err != nil {
		t.Fatalf("GetOn: %v", err)
	}
	if got != "2024-03-10" {
		t.Fatalf("empty --on should resolve to today, got %q", got)
	}
}

func TestGetOnNormalizes(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.Local)

	tests := []struct {
		on      string
		want    string
		wantErr bool
	}{
		{on: "2024-03-15", want: "2024-03-15"},
		{on: "2024-03-15T08:30:00", want: "2024-03-15"},
		{on: "march 15", wantErr: true},
		{on: "2024-3-5", wantErr: true},
	}

	for _, tc := range tests {
		o := &DateOptions{OnString: tc.on}
		got, err := o.GetOn(now)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected an error, got %q", tc.on, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", tc.on, err)
		}
		if got != tc.want {
			t.Fatalf("%q: got %q, want %q", tc.on, got, tc.want)
		}
	}
}
