package entry

import (
	"fmt"
	"strings"
	"time"
)

// LayoutISO is the canonical calendar-date form used as the entry key.
const LayoutISO = "2006-01-02"

// Normalize reduces a date or date-time input to canonical YYYY-MM-DD form.
// A time component is truncated at the 'T' separator. Anything that does not
// then parse as a calendar date is rejected.
func Normalize(value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", fmt.Errorf("entry: empty date")
	}
	if i := strings.IndexByte(v, 'T'); i >= 0 {
		v = v[:i]
	}
	t, err := time.Parse(LayoutISO, v)
	if err != nil {
		return "", fmt.Errorf("entry: unrecognized date %q", value)
	}
	return t.Format(LayoutISO), nil
}

// ISO formats a calendar date as YYYY-MM-DD.
func ISO(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// ParseISO parses a canonical date into a local-midnight time value.
func ParseISO(iso string) (time.Time, error) {
	t, err := time.Parse(LayoutISO, iso)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
}

// DateOf truncates a time value to its local calendar date.
func DateOf(t time.Time) string {
	return t.Local().Format(LayoutISO)
}
