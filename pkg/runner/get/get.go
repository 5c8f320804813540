package get

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/grid"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/store"
)

// Get prints planner entries: a single date, one month with its calendar,
// or the whole collection grouped by month.
type Get struct {
	Date  string // point lookup, canonical or date-time form
	Month string // YYYY-MM month listing

	Persistence store.Persistence
	Now         func() time.Time
}

const layoutMonth = "2006-01"

func (n *Get) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not get, no persistence")
	}
	svc := &app.Service{Persistence: n.Persistence, Now: n.Now}

	pp := printers.PrettyPrint{}
	if n.Now != nil {
		pp.Now = n.Now()
	}
	fmt.Println("")

	if n.Date != "" {
		e, err := svc.Get(ctx, n.Date)
		if err != nil {
			return err
		}
		pp.Title(e.Date)
		pp.Note(e)
		return nil
	}

	if n.Month != "" {
		when, err := time.Parse(layoutMonth, n.Month)
		if err != nil {
			return fmt.Errorf("unrecognized month %q (expected YYYY-MM)", n.Month)
		}
		year, month := when.Year(), when.Month()

		pp.PrintMonth(year, month, n.Persistence.Has)
		pp.NewLine()

		all, err := svc.Month(ctx, year, month)
		if err != nil {
			return err
		}
		pp.TitleWithCount(grid.Label(year, month), len(all))
		pp.Entries(all...)
		return nil
	}

	all, err := svc.Entries(ctx)
	if err != nil {
		return err
	}
	for _, group := range groupByMonth(all) {
		pp.TitleWithCount(group.label, len(group.entries))
		pp.Entries(group.entries...)
	}
	if len(all) == 0 {
		pp.Title("Planner")
		pp.Entries()
	}
	return nil
}

type monthGroup struct {
	label   string
	entries []*entry.Entry
}

// groupByMonth partitions ascending entries into month buckets, preserving
// order.
func groupByMonth(all []*entry.Entry) []monthGroup {
	groups := make([]monthGroup, 0)
	last := ""
	for _, e := range all {
		when, err := entry.ParseISO(e.Date)
		if err != nil {
			continue
		}
		label := grid.Label(when.Year(), when.Month())
		if label != last {
			groups = append(groups, monthGroup{label: label})
			last = label
		}
		groups[len(groups)-1].entries = append(groups[len(groups)-1].entries, e)
	}
	return groups
}
