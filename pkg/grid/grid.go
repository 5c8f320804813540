// Package grid computes the fixed 42-cell month grid used by every calendar
// surface. It has no side effects and no storage dependency: entry presence
// comes in as a predicate, the current date as a value.
package grid

import (
	"time"

	"tableflip.dev/planner/pkg/entry"
)

// Cells is the fixed size of a month grid: 6 rows of 7 columns, padded with
// days from the adjacent months.
const Cells = 42

// Columns is the number of weekday columns; week starts on Sunday.
const Columns = 7

// Cell describes one slot in a month grid.
type Cell struct {
	Year  int
	Month time.Month
	Day   int
	ISO   string

	InMonth    bool
	HasEntry   bool
	IsToday    bool
	IsSelected bool
}

// Build returns the grid for the given month. has reports whether a date has
// a planner entry and may be nil. selected is the currently selected
// canonical date, empty for none. today supplies the real current date.
func Build(year int, month time.Month, has func(iso string) bool, selected string, today time.Time) []Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	startDay := int(first.Weekday()) // Sunday == 0
	daysInMonth := first.AddDate(0, 1, -1).Day()

	prev := first.AddDate(0, 0, -1) // last day of the previous month
	daysInPrev := prev.Day()

	todayISO := entry.DateOf(today)

	cells := make([]Cell, 0, Cells)
	push := func(y int, m time.Month, d int, inMonth bool) {
		iso := entry.ISO(y, m, d)
		cells = append(cells, Cell{
			Year:       y,
			Month:      m,
			Day:        d,
			ISO:        iso,
			InMonth:    inMonth,
			HasEntry:   has != nil && has(iso),
			IsToday:    iso == todayISO,
			IsSelected: selected != "" && iso == selected,
		})
	}

	// Leading: the last startDay days of the previous month, ascending.
	for i := 0; i < startDay; i++ {
		push(prev.Year(), prev.Month(), daysInPrev-startDay+1+i, false)
	}

	for d := 1; d <= daysInMonth; d++ {
		push(year, month, d, true)
	}

	// Trailing: pad with the next month until the grid is full.
	next := first.AddDate(0, 1, 0)
	for d := 1; len(cells) < Cells; d++ {
		push(next.Year(), next.Month(), d, false)
	}

	return cells
}

// Label renders the human-readable "Month Year" form of a view month.
func Label(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.Local).Format("January 2006")
}

// Step moves a (year, month) pair by delta months, rolling the year as
// needed. delta may be negative.
func Step(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.Local).AddDate(0, delta, 0)
	return t.Year(), t.Month()
}

// Index flattens a (year, month) pair for range comparisons.
func Index(year int, month time.Month) int {
	return year*12 + int(month) - 1
}
