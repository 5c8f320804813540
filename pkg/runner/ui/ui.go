package ui

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/marcusolsson/tui-go"

	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/grid"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/timeutil"
)

// UI is the terminal browse surface: an index of months on the left, the
// selected month's entries on the right.
type UI struct {
	Persistence store.Persistence
	Now         func() time.Time

	cache map[string][]*entry.Entry

	dirty string
	index []string

	months     *tui.Table
	indexTitle string
	indexView  *tui.Box

	collection      *tui.Table
	collectionView  *tui.Box
	collectionTitle string
}

func (d *UI) Do(ctx context.Context) error {
	iTable := tui.NewTable(1, 0)

	index := tui.NewVBox(
		iTable,
		tui.NewSpacer(),
	)
	index.SetBorder(true)
	index.SetSizePolicy(tui.Preferred, tui.Expanding)

	cTable := tui.NewTable(2, 0)
	cTable.SetFocused(true)
	cTable.SetSizePolicy(tui.Expanding, tui.Maximum)

	status := tui.NewStatusBar("")
	status.SetPermanentText(`Use left️ or right arrows to navigate, ESC or 'q' to QUIT`)

	collection := tui.NewVBox(cTable)
	collection.SetBorder(true)
	collection.SetSizePolicy(tui.Expanding, tui.Maximum)

	selector := tui.NewHBox(index, collection)

	root := tui.NewVBox(
		selector,
		tui.NewSpacer(),
		status,
	)

	ui, err := tui.New(root)
	if err != nil {
		return err
	}

	d.months = iTable
	d.indexTitle = "months"
	d.indexView = index
	d.collection = cTable
	d.collectionView = collection
	d.buildCache(ctx)

	d.populateIndex()

	iTable.OnSelectionChanged(func(table *tui.Table) {
		d.populateCollection()
	})

	ui.SetKeybinding("Left", func() {
		d.focusIndex()
	})

	ui.SetKeybinding("Right", func() {
		d.focusCollection()
	})

	ui.SetKeybinding("Esc", func() { ui.Quit() })
	ui.SetKeybinding("q", func() { ui.Quit() })

	d.populateCollection()
	d.focusCollection()

	if err := ui.Run(); err != nil {
		return err
	}
	return nil
}

// buildCache groups the full collection by view month label.
func (d *UI) buildCache(ctx context.Context) {
	d.cache = map[string][]*entry.Entry{}
	order := map[string]int{}

	for _, e := range d.Persistence.LoadAll(ctx) {
		when, err := entry.ParseISO(e.Date)
		if err != nil {
			continue
		}
		label := grid.Label(when.Year(), when.Month())
		d.cache[label] = append(d.cache[label], e)
		order[label] = grid.Index(when.Year(), when.Month())
	}

	d.index = make([]string, 0, len(d.cache))
	for label := range d.cache {
		d.index = append(d.index, label)
	}
	sort.Slice(d.index, func(i, j int) bool {
		return order[d.index[i]] < order[d.index[j]]
	})
}

func (d *UI) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *UI) focusIndex() {
	d.months.SetFocused(true)
	d.indexView.SetTitle(strings.ToUpper(d.indexTitle))

	d.collection.SetFocused(false)
	d.collectionView.SetTitle("")
}

func (d *UI) focusCollection() {
	d.months.SetFocused(false)
	d.indexView.SetTitle(d.indexTitle)

	d.collection.SetFocused(true)
	d.collectionView.SetTitle(d.collectionTitle)
}

func (d *UI) populateIndex() {
	d.months.RemoveRows()
	d.months.Select(0)

	for _, label := range d.index {
		d.months.AppendRow(tui.NewLabel(label))
	}
}

func (d *UI) populateCollection() {
	selected := ""
	if d.months.Selected() >= 0 && d.months.Selected() < len(d.index) {
		selected = d.index[d.months.Selected()]
	}

	if d.dirty != selected {
		d.collection.RemoveRows()
		d.collectionTitle = selected
		now := d.now()
		for _, e := range d.cache[selected] {
			d.collection.AppendRow(
				tui.NewLabel(e.String()),
				tui.NewLabel(timeutil.Relative(e.SavedAt.Time, now)),
			)
		}
		d.dirty = selected
	}
}
