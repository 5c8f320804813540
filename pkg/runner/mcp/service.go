// Package mcp provides the Model Context Protocol server integration for
// the planner.
package mcp

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/grid"
	"tableflip.dev/planner/pkg/store"
)

// Service coordinates persistence-backed operations shared by the MCP
// server.
type Service struct {
	app *app.Service
}

// ErrEntryNotFound is returned when a date has no stored entry.
var ErrEntryNotFound = errors.New("no entry for date")

// EntryDTO is a transport-friendly projection of a planner entry.
type EntryDTO struct {
	Date    string `json:"date"`
	Note    string `json:"note,omitempty"`
	SavedAt string `json:"savedAt,omitempty"`
	Month   string `json:"month"`
}

// MonthSummary describes one view month and basic aggregate metadata.
type MonthSummary struct {
	Month      string `json:"month"`
	Label      string `json:"label"`
	EntryCount int    `json:"entryCount"`
	LastSaved  string `json:"lastSaved,omitempty"`
}

// NewService builds a service wrapper using the provided persistence layer.
func NewService(p store.Persistence, now func() time.Time) *Service {
	return &Service{app: &app.Service{Persistence: p, Now: now}}
}

func toDTO(e *entry.Entry) EntryDTO {
	dto := EntryDTO{
		Date: e.Date,
		Note: e.Note,
	}
	if !e.SavedAt.Time.IsZero() {
		dto.SavedAt = e.SavedAt.Time.Format(time.RFC3339)
	}
	if when, err := entry.ParseISO(e.Date); err == nil {
		dto.Month = grid.Label(when.Year(), when.Month())
	}
	return dto
}

// UpsertEntry validates and stores the plan for one date, replacing any
// prior note.
func (s *Service) UpsertEntry(ctx context.Context, date, note string) (EntryDTO, error) {
	if err := s.app.ValidateHorizon(date); err != nil {
		return EntryDTO{}, err
	}
	e, err := s.app.Save(ctx, date, note)
	if err != nil {
		return EntryDTO{}, err
	}
	return toDTO(e), nil
}

// EntryByDate fetches the plan for one date.
func (s *Service) EntryByDate(ctx context.Context, date string) (EntryDTO, error) {
	e, err := s.app.Get(ctx, date)
	if errors.Is(err, app.ErrNoEntry) {
		return EntryDTO{}, ErrEntryNotFound
	}
	if err != nil {
		return EntryDTO{}, err
	}
	return toDTO(e), nil
}

// ListEntries gathers entries, optionally filtered by a "YYYY-MM" month.
func (s *Service) ListEntries(ctx context.Context, month string) ([]EntryDTO, error) {
	month = strings.TrimSpace(month)

	var (
		entries []*entry.Entry
		err     error
	)
	if month == "" {
		entries, err = s.app.Entries(ctx)
	} else {
		var when time.Time
		when, err = time.ParseInLocation("2006-01", month, time.Local)
		if err != nil {
			return nil, err
		}
		entries, err = s.app.Month(ctx, when.Year(), when.Month())
	}
	if err != nil {
		return nil, err
	}

	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toDTO(e))
	}
	return out, nil
}

// DeleteEntry removes the plan for one date and reports whether anything
// was stored there.
func (s *Service) DeleteEntry(ctx context.Context, date string) (bool, error) {
	iso, err := entry.Normalize(date)
	if err != nil {
		return false, err
	}
	existed := s.app.Persistence.Has(iso)
	if err := s.app.Delete(ctx, iso); err != nil {
		return false, err
	}
	return existed, nil
}

// ListMonths summarizes every month that holds at least one entry.
func (s *Service) ListMonths(ctx context.Context) ([]MonthSummary, error) {
	entries, err := s.app.Entries(ctx)
	if err != nil {
		return nil, err
	}

	byMonth := map[string]*MonthSummary{}
	var order []string
	for _, e := range entries {
		when, err := entry.ParseISO(e.Date)
		if err != nil {
			continue
		}
		key := when.Format("2006-01")
		sum, ok := byMonth[key]
		if !ok {
			sum = &MonthSummary{
				Month: key,
				Label: grid.Label(when.Year(), when.Month()),
			}
			byMonth[key] = sum
			order = append(order, key)
		}
		sum.EntryCount++
		if !e.SavedAt.Time.IsZero() {
			saved := e.SavedAt.Time.Format(time.RFC3339)
			if saved > sum.LastSaved {
				sum.LastSaved = saved
			}
		}
	}

	sort.Strings(order)
	out := make([]MonthSummary, 0, len(order))
	for _, key := range order {
		out = append(out, *byMonth[key])
	}
	return out, nil
}

// SearchEntries matches notes by case-insensitive substring. limit bounds
// the result count; zero or negative means 20.
func (s *Service) SearchEntries(ctx context.Context, query string, limit int) ([]EntryDTO, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, errors.New("query is required")
	}
	if limit <= 0 {
		limit = 20
	}

	entries, err := s.app.Entries(ctx)
	if err != nil {
		return nil, err
	}

	var out []EntryDTO
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Note), query) || strings.Contains(e.Date, query) {
			out = append(out, toDTO(e))
			if len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}
