package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/planner/pkg/entry"
)

// Persistence defines the persistence contract for planner entries. The
// collection holds at most one entry per calendar date; Upsert for an
// existing date replaces the stored record.
type Persistence interface {
	LoadAll(ctx context.Context) []*entry.Entry
	ListMonth(ctx context.Context, year int, month time.Month) []*entry.Entry
	Get(date string) (*entry.Entry, bool)
	Has(date string) bool
	Upsert(e *entry.Entry) error
	Delete(date string) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

// read loads and decodes one record. The key (the file location) is
// authoritative for the date; a payload that disagrees is corrected rather
// than allowed to alias another day.
func (p *persistence) read(key string) (*entry.Entry, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	e := &entry.Entry{}
	if err := json.Unmarshal(val, e); err != nil {
		return nil, err
	}
	e.Date = key
	return e, nil
}

func (p *persistence) LoadAll(ctx context.Context) []*entry.Entry {
	all := make([]*entry.Entry, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if !validKey(key) {
			continue
		}
		e, err := p.read(key)
		if err != nil {
			// A corrupt record must not fail the whole load; callers see
			// the rest of the collection.
			fmt.Fprintf(os.Stderr, "store: %s: %s\n", key, err)
			continue
		}
		all = append(all, e)
	}
	sortEntries(all)
	return all
}

func (p *persistence) ListMonth(ctx context.Context, year int, month time.Month) []*entry.Entry {
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	all := make([]*entry.Entry, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if !strings.HasPrefix(key, prefix) || !validKey(key) {
			continue
		}
		e, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "store: %s: %s\n", key, err)
			continue
		}
		all = append(all, e)
	}
	sortEntries(all)
	return all
}

func (p *persistence) Get(date string) (*entry.Entry, bool) {
	if !p.d.Has(date) {
		return nil, false
	}
	e, err := p.read(date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "store: %s: %s\n", date, err)
		return nil, false
	}
	return e, true
}

func (p *persistence) Has(date string) bool {
	return p.d.Has(date)
}

func (p *persistence) Upsert(e *entry.Entry) error {
	if e == nil {
		return errors.New("store: nil entry")
	}
	if !validKey(e.Date) {
		return fmt.Errorf("store: invalid date key %q", e.Date)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.d.Write(e.Date, data)
}

func (p *persistence) Delete(date string) error {
	if !p.d.Has(date) {
		return nil
	}
	return p.d.Erase(date)
}

func sortEntries(entries []*entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
}

func validKey(key string) bool {
	_, err := time.Parse(entry.LayoutISO, key)
	return err == nil
}

// keyToPathTransform shards `yyyy-mm-dd` keys into yyyy/mm directories.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
