package del

import (
	"context"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/store"
)

// Delete removes the entry for one date.
type Delete struct {
	Date string

	Persistence store.Persistence
	Now         func() time.Time
}

func (d *Delete) Do(ctx context.Context) error {
	svc := &app.Service{Persistence: d.Persistence, Now: d.Now}

	iso, err := entry.Normalize(d.Date)
	if err != nil {
		return err
	}

	if !d.Persistence.Has(iso) {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Printf("no entry for %s\n", iso)
		return nil
	}

	if err := svc.Delete(ctx, iso); err != nil {
		return err
	}
	_, _ = color.New(color.FgWhite).Printf("deleted entry for %s\n", iso)
	return nil
}
