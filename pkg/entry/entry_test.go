package entry

import (
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2024-03-15", want: "2024-03-15"},
		{in: "2024-03-15T08:30:00", want: "2024-03-15"},
		{in: "2024-03-15T00:00:00.000Z", want: "2024-03-15"},
		{in: " 2024-12-01 ", want: "2024-12-01"},
		{in: "", wantErr: true},
		{in: "tomorrow", wantErr: true},
		{in: "2024/03/15", wantErr: true},
		{in: "2024-13-01", wantErr: true},
		{in: "15-03-2024", wantErr: true},
	}

	for _, tc := range cases {
		got, err := Normalize(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Normalize(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Normalize(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestISO(t *testing.T) {
	if got := ISO(2024, time.March, 5); got != "2024-03-05" {
		t.Fatalf("ISO = %q", got)
	}
	if got := ISO(987, time.December, 31); got != "0987-12-31" {
		t.Fatalf("ISO = %q", got)
	}
}

func TestParseISORoundTrip(t *testing.T) {
	when, err := ParseISO("2025-02-28")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if DateOf(when) != "2025-02-28" {
		t.Fatalf("DateOf = %q", DateOf(when))
	}
}

func TestTimestampSameDay(t *testing.T) {
	ts := Timestamp{Time: time.Date(2024, time.March, 10, 8, 0, 0, 0, time.Local)}
	if !ts.SameDay(time.Date(2024, time.March, 10, 23, 59, 0, 0, time.Local)) {
		t.Fatal("same calendar day should match regardless of clock time")
	}
	if ts.SameDay(time.Date(2024, time.March, 11, 0, 1, 0, 0, time.Local)) {
		t.Fatal("adjacent day should not match")
	}
	if ts.SameDay(time.Date(2025, time.March, 10, 8, 0, 0, 0, time.Local)) {
		t.Fatal("same day and month in another year should not match")
	}
}

func TestTimestampEmptyTolerated(t *testing.T) {
	ts := &Timestamp{}
	if err := ts.UnmarshalJSON([]byte(`""`)); err != nil {
		t.Fatalf("unmarshal empty: %v", err)
	}
	if !ts.IsZero() {
		t.Fatal("expected zero time for empty timestamp")
	}
}
