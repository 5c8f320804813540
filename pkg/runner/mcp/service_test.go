package mcp

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/store"
)

type memStore struct {
	mu      sync.Mutex
	entries map[string]*entry.Entry
}

func newMemStore() *memStore {
	return &memStore{entries: map[string]*entry.Entry{}}
}

func (m *memStore) LoadAll(ctx context.Context) []*entry.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entry.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func (m *memStore) ListMonth(ctx context.Context, year int, month time.Month) []*entry.Entry {
	prefix := entry.ISO(year, month, 1)[:8]
	var out []*entry.Entry
	for _, e := range m.LoadAll(ctx) {
		if strings.HasPrefix(e.Date, prefix) {
			out = append(out, e)
		}
	}
	return out
}

func (m *memStore) Get(date string) (*entry.Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[date]
	return e, ok
}

func (m *memStore) Has(date string) bool {
	_, ok := m.Get(date)
	return ok
}

func (m *memStore) Upsert(e *entry.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.Date] = e
	return nil
}

func (m *memStore) Delete(date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, date)
	return nil
}

func (m *memStore) Watch(ctx context.Context) (<-chan store.Event, error) {
	ch := make(chan store.Event)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

var testNow = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.Local)

func testSvc(p store.Persistence) *Service {
	return NewService(p, func() time.Time { return testNow })
}

func TestUpsertEntryStoresCanonicalDate(t *testing.T) {
	p := newMemStore()
	svc := testSvc(p)

	dto, err := svc.UpsertEntry(context.Background(), "2024-03-15T08:30:00", "dentist at nine")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if dto.Date != "2024-03-15" {
		t.Fatalf("expected canonical date, got %q", dto.Date)
	}
	if dto.Month != "March 2024" {
		t.Fatalf("expected month label, got %q", dto.Month)
	}
	if !p.Has("2024-03-15") {
		t.Fatalf("entry should be stored under the canonical date")
	}
}

func TestUpsertEntryEnforcesHorizon(t *testing.T) {
	svc := testSvc(newMemStore())

	if _, err := svc.UpsertEntry(context.Background(), "2024-03-09", "yesterday"); !errors.Is(err, app.ErrDateOutOfRange) {
		t.Fatalf("expected out of range for past date, got %v", err)
	}
	if _, err := svc.UpsertEntry(context.Background(), "2027-03-11", "too far"); !errors.Is(err, app.ErrDateOutOfRange) {
		t.Fatalf("expected out of range past the horizon, got %v", err)
	}
	if _, err := svc.UpsertEntry(context.Background(), "2027-03-10", "edge"); err != nil {
		t.Fatalf("the horizon bound itself should be allowed, got %v", err)
	}
}

func TestEntryByDateMissing(t *testing.T) {
	svc := testSvc(newMemStore())
	if _, err := svc.EntryByDate(context.Background(), "2024-03-15"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestListEntriesMonthFilter(t *testing.T) {
	svc := testSvc(newMemStore())
	for _, d := range []string{"2024-03-15", "2024-03-20", "2024-04-01"} {
		if _, err := svc.UpsertEntry(context.Background(), d, "note for "+d); err != nil {
			t.Fatalf("upsert %s: %v", d, err)
		}
	}

	all, err := svc.ListEntries(context.Background(), "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}

	march, err := svc.ListEntries(context.Background(), "2024-03")
	if err != nil {
		t.Fatalf("list month: %v", err)
	}
	if len(march) != 2 {
		t.Fatalf("expected 2 March entries, got %d", len(march))
	}
	if march[0].Date != "2024-03-15" || march[1].Date != "2024-03-20" {
		t.Fatalf("expected ascending March dates, got %v", march)
	}

	if _, err := svc.ListEntries(context.Background(), "march"); err == nil {
		t.Fatalf("expected an error for a malformed month")
	}
}

func TestDeleteEntryReportsExistence(t *testing.T) {
	svc := testSvc(newMemStore())
	if _, err := svc.UpsertEntry(context.Background(), "2024-03-15", "dentist"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	deleted, err := svc.DeleteEntry(context.Background(), "2024-03-15")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Fatalf("expected deleted=true for a stored date")
	}

	deleted, err = svc.DeleteEntry(context.Background(), "2024-03-15")
	if err != nil {
		t.Fatalf("repeat delete should be a no-op, got %v", err)
	}
	if deleted {
		t.Fatalf("expected deleted=false for an empty date")
	}
}

func TestListMonthsSummaries(t *testing.T) {
	svc := testSvc(newMemStore())
	for _, d := range []string{"2024-03-15", "2024-03-20", "2024-05-01"} {
		if _, err := svc.UpsertEntry(context.Background(), d, "note"); err != nil {
			t.Fatalf("upsert %s: %v", d, err)
		}
	}

	months, err := svc.ListMonths(context.Background())
	if err != nil {
		t.Fatalf("list months: %v", err)
	}
	if len(months) != 2 {
		t.Fatalf("expected 2 months, got %d", len(months))
	}
	if months[0].Month != "2024-03" || months[0].EntryCount != 2 {
		t.Fatalf("unexpected first summary %+v", months[0])
	}
	if months[1].Month != "2024-05" || months[1].EntryCount != 1 {
		t.Fatalf("unexpected second summary %+v", months[1])
	}
	if months[0].Label != "March 2024" {
		t.Fatalf("expected label, got %q", months[0].Label)
	}
}

func TestSearchEntries(t *testing.T) {
	svc := testSvc(newMemStore())
	if _, err := svc.UpsertEntry(context.Background(), "2024-03-15", "Dentist appointment"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := svc.UpsertEntry(context.Background(), "2024-03-20", "standup"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	hits, err := svc.SearchEntries(context.Background(), "dentist", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 1 || hits[0].Date != "2024-03-15" {
		t.Fatalf("unexpected hits %v", hits)
	}

	if _, err := svc.SearchEntries(context.Background(), "   ", 10); err == nil {
		t.Fatalf("expected an error for an empty query")
	}
}
