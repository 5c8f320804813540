package app

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/store"
)

type memoryPersistence struct {
	mu      sync.Mutex
	entries map[string]*entry.Entry
	failing bool
}

func newMemoryPersistence(entries ...*entry.Entry) *memoryPersistence {
	mp := &memoryPersistence{entries: make(map[string]*entry.Entry)}
	for _, e := range entries {
		if e == nil {
			continue
		}
		cp := *e
		mp.entries[cp.Date] = &cp
	}
	return mp
}

func (m *memoryPersistence) LoadAll(_ context.Context) []*entry.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entry.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func (m *memoryPersistence) ListMonth(ctx context.Context, year int, month time.Month) []*entry.Entry {
	prefix := entry.ISO(year, month, 1)[:8]
	out := make([]*entry.Entry, 0)
	for _, e := range m.LoadAll(ctx) {
		if strings.HasPrefix(e.Date, prefix) {
			out = append(out, e)
		}
	}
	return out
}

func (m *memoryPersistence) Get(date string) (*entry.Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[date]
	if !ok {
		return nil, false
	}
	cp := *e
	return &cp, true
}

func (m *memoryPersistence) Has(date string) bool {
	_, ok := m.Get(date)
	return ok
}

func (m *memoryPersistence) Upsert(e *entry.Entry) error {
	if e == nil {
		return errors.New("nil entry")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return errors.New("write failed")
	}
	cp := *e
	m.entries[cp.Date] = &cp
	return nil
}

func (m *memoryPersistence) Delete(date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return errors.New("write failed")
	}
	delete(m.entries, date)
	return nil
}

func (m *memoryPersistence) Watch(context.Context) (<-chan store.Event, error) {
	return nil, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testNow = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.Local)

func TestSaveTrimsAndStamps(t *testing.T) {
	mp := newMemoryPersistence()
	svc := &Service{Persistence: mp, Now: fixedClock(testNow)}
	ctx := context.Background()

	e, err := svc.Save(ctx, "2024-03-15", "  dentist  ")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if e.Note != "dentist" {
		t.Fatalf("expected trimmed note, got %q", e.Note)
	}
	if !e.SavedAt.Equal(testNow) {
		t.Fatalf("savedAt %v, want clock time", e.SavedAt)
	}

	got, ok := mp.Get("2024-03-15")
	if !ok || got.Note != "dentist" {
		t.Fatalf("store state %+v, %v", got, ok)
	}
}

func TestSaveNormalizesDateTimeInput(t *testing.T) {
	mp := newMemoryPersistence()
	svc := &Service{Persistence: mp, Now: fixedClock(testNow)}

	e, err := svc.Save(context.Background(), "2024-03-15T09:30:00", "note")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if e.Date != "2024-03-15" {
		t.Fatalf("expected truncated date, got %q", e.Date)
	}
}

func TestSaveRequiresDate(t *testing.T) {
	svc := &Service{Persistence: newMemoryPersistence(), Now: fixedClock(testNow)}

	if _, err := svc.Save(context.Background(), "", "note"); !errors.Is(err, ErrDateRequired) {
		t.Fatalf("expected ErrDateRequired, got %v", err)
	}
	if _, err := svc.Save(context.Background(), "   ", "note"); !errors.Is(err, ErrDateRequired) {
		t.Fatalf("expected ErrDateRequired for blank date, got %v", err)
	}
}

func TestSaveRejectsUnrecognizedDate(t *testing.T) {
	svc := &Service{Persistence: newMemoryPersistence(), Now: fixedClock(testNow)}

	if _, err := svc.Save(context.Background(), "next tuesday", "note"); err == nil {
		t.Fatal("expected error for unrecognized date")
	}
}

func TestSaveOverwritesSameDate(t *testing.T) {
	mp := newMemoryPersistence()
	svc := &Service{Persistence: mp, Now: fixedClock(testNow)}
	ctx := context.Background()

	if _, err := svc.Save(ctx, "2024-03-15", "a"); err != nil {
		t.Fatalf("save a: %v", err)
	}
	if _, err := svc.Save(ctx, "2024-03-15", "b"); err != nil {
		t.Fatalf("save b: %v", err)
	}

	all := mp.LoadAll(ctx)
	if len(all) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(all))
	}
	if all[0].Note != "b" {
		t.Fatalf("expected note b, got %q", all[0].Note)
	}
}

func TestSaveWriteFailureLeavesNoPartialState(t *testing.T) {
	mp := newMemoryPersistence()
	mp.failing = true
	svc := &Service{Persistence: mp, Now: fixedClock(testNow)}

	if _, err := svc.Save(context.Background(), "2024-03-15", "note"); err == nil {
		t.Fatal("expected write error")
	}
	mp.failing = false
	if mp.Has("2024-03-15") {
		t.Fatal("failed write must not leave an entry behind")
	}
}

func TestDeleteAbsentIsNoOp(t *testing.T) {
	svc := &Service{Persistence: newMemoryPersistence(), Now: fixedClock(testNow)}

	if err := svc.Delete(context.Background(), "2024-03-15"); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
}

func TestGetMissing(t *testing.T) {
	svc := &Service{Persistence: newMemoryPersistence(), Now: fixedClock(testNow)}

	if _, err := svc.Get(context.Background(), "2024-03-15"); !errors.Is(err, ErrNoEntry) {
		t.Fatalf("expected ErrNoEntry, got %v", err)
	}
}

func TestIndexKeyedByDate(t *testing.T) {
	mp := newMemoryPersistence(
		entry.New("2024-03-15", "dentist"),
		entry.New("2024-04-01", "rent"),
	)
	svc := &Service{Persistence: mp, Now: fixedClock(testNow)}

	idx, err := svc.Index(context.Background())
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if len(idx) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(idx))
	}
	if idx["2024-03-15"].Note != "dentist" {
		t.Fatalf("unexpected index content %+v", idx["2024-03-15"])
	}
}

func TestValidateHorizon(t *testing.T) {
	svc := &Service{Persistence: newMemoryPersistence(), Now: fixedClock(testNow)}

	cases := []struct {
		date string
		ok   bool
	}{
		{"2024-03-10", true},  // today
		{"2024-03-09", false}, // yesterday
		{"2027-03-10", true},  // exactly three years ahead
		{"2027-03-11", false}, // past the horizon
		{"2025-12-31", true},
	}

	for _, tc := range cases {
		err := svc.ValidateHorizon(tc.date)
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tc.date, err)
		}
		if !tc.ok && !errors.Is(err, ErrDateOutOfRange) {
			t.Errorf("%s: expected ErrDateOutOfRange, got %v", tc.date, err)
		}
	}
}

func TestViewBoundsSpan36Months(t *testing.T) {
	svc := &Service{Persistence: newMemoryPersistence(), Now: fixedClock(testNow)}

	min, max := svc.ViewBounds()
	if max-min != ViewMonths {
		t.Fatalf("bounds span %d, want %d", max-min, ViewMonths)
	}
}
