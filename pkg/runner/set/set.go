package set

import (
	"context"
	"time"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/grid"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/store"
)

// Set saves one planner note for one date, then prints the updated month so
// the caller sees the entry in context.
type Set struct {
	Date string
	Note string

	Persistence store.Persistence
	Now         func() time.Time
}

func (s *Set) Do(ctx context.Context) error {
	svc := &app.Service{Persistence: s.Persistence, Now: s.Now}

	if err := svc.ValidateHorizon(s.Date); err != nil {
		return err
	}
	e, err := svc.Save(ctx, s.Date, s.Note)
	if err != nil {
		return err
	}

	when, err := entry.ParseISO(e.Date)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	if s.Now != nil {
		pp.Now = s.Now()
	}
	pp.NewLine()
	pp.PrintMonth(when.Year(), when.Month(), s.Persistence.Has)
	pp.NewLine()

	month, err := svc.Month(ctx, when.Year(), when.Month())
	if err != nil {
		return err
	}
	pp.TitleWithCount(grid.Label(when.Year(), when.Month()), len(month))
	pp.Entries(month...)
	return nil
}
