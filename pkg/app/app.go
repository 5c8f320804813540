package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/grid"
	"tableflip.dev/planner/pkg/store"
)

// Service provides high-level planner operations over persistence so the
// CLI, the interactive surfaces, and the MCP server share logic.
type Service struct {
	Persistence store.Persistence

	// Now supplies the current time; tests inject a fixed clock. When nil,
	// time.Now is used.
	Now func() time.Time
}

var (
	// ErrDateRequired is surfaced when a save is attempted with no date.
	ErrDateRequired = errors.New("app: date required")

	// ErrDateOutOfRange is surfaced when a date falls outside the planning
	// horizon of today through three calendar years ahead.
	ErrDateOutOfRange = errors.New("app: date out of range")

	// ErrNoEntry is returned for point reads of dates with no entry.
	ErrNoEntry = errors.New("app: no entry for date")
)

// HorizonYears bounds how far ahead a plan may be saved.
const HorizonYears = 3

// ViewMonths bounds month browsing to 36 months past the current month.
const ViewMonths = 36

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Entries returns the full collection in ascending date order.
func (s *Service) Entries(ctx context.Context) ([]*entry.Entry, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	return s.Persistence.LoadAll(ctx), nil
}

// Index returns the collection keyed by date, the shape the grid surfaces
// hydrate from.
func (s *Service) Index(ctx context.Context) (map[string]*entry.Entry, error) {
	all, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]*entry.Entry, len(all))
	for _, e := range all {
		idx[e.Date] = e
	}
	return idx, nil
}

// Month lists the entries for one view month in ascending date order.
func (s *Service) Month(ctx context.Context, year int, month time.Month) ([]*entry.Entry, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	return s.Persistence.ListMonth(ctx, year, month), nil
}

// Get performs a point lookup by canonical or date-time form.
func (s *Service) Get(ctx context.Context, date string) (*entry.Entry, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	iso, err := entry.Normalize(date)
	if err != nil {
		return nil, err
	}
	e, ok := s.Persistence.Get(iso)
	if !ok {
		return nil, ErrNoEntry
	}
	return e, nil
}

// Save validates, normalizes, and upserts one entry. The note is trimmed
// and savedAt stamped from the service clock. The in-store record is only
// replaced when the write succeeds.
func (s *Service) Save(ctx context.Context, date, note string) (*entry.Entry, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	if strings.TrimSpace(date) == "" {
		return nil, ErrDateRequired
	}
	iso, err := entry.Normalize(date)
	if err != nil {
		return nil, err
	}

	e := entry.New(iso, strings.TrimSpace(note))
	e.SavedAt = entry.Timestamp{Time: s.now()}
	if err := s.Persistence.Upsert(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes the entry for the date if present; absent dates are a
// no-op.
func (s *Service) Delete(ctx context.Context, date string) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	iso, err := entry.Normalize(date)
	if err != nil {
		return err
	}
	return s.Persistence.Delete(iso)
}

// ValidateHorizon rejects dates before today or more than HorizonYears
// calendar years ahead. The setup surfaces apply it before saving.
func (s *Service) ValidateHorizon(date string) error {
	iso, err := entry.Normalize(date)
	if err != nil {
		return err
	}
	when, err := entry.ParseISO(iso)
	if err != nil {
		return err
	}
	now := s.now()
	today, _ := entry.ParseISO(entry.DateOf(now))
	if when.Before(today) {
		return ErrDateOutOfRange
	}
	if when.After(today.AddDate(HorizonYears, 0, 0)) {
		return ErrDateOutOfRange
	}
	return nil
}

// ViewBounds returns the inclusive month-index range the view surfaces may
// browse: the current month through ViewMonths months ahead.
func (s *Service) ViewBounds() (min, max int) {
	now := s.now()
	min = grid.Index(now.Year(), now.Month())
	return min, min + ViewMonths
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	return s.Persistence.Watch(ctx)
}
