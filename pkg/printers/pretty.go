package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/planner/pkg/entry"
)

type PrettyPrint struct {
	// Now anchors relative savedAt rendering; zero means wall clock.
	Now time.Time
}

func (pp *PrettyPrint) now() time.Time {
	if pp.Now.IsZero() {
		return time.Now()
	}
	return pp.Now
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" entry")
	default:
		_, _ = c.Println(" entries")
	}
}

// Entries prints a date/note/saved table, or a faint "none" placeholder for
// an empty collection.
func (pp *PrettyPrint) Entries(entries ...*entry.Entry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}
	entry.PrettyPrintEntries(pp.now(), entries...)
	fmt.Println("")
}

// Note prints one note body wrapped to a readable width, with its savedAt
// stamp underneath.
func (pp *PrettyPrint) Note(e *entry.Entry) {
	if e == nil {
		return
	}
	body := strings.TrimSpace(e.Note)
	if body == "" {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Println(" (no note)")
	} else {
		fmt.Println(wordwrap.String(body, 72))
	}
	if !e.SavedAt.IsZero() {
		f := color.New(color.Faint)
		stamp := e.SavedAt.Local().Format("Jan 2, 2006 15:04")
		if e.SavedAt.SameDay(pp.now()) {
			stamp = "today " + e.SavedAt.Local().Format("15:04")
		}
		_, _ = f.Printf("saved %s\n", stamp)
	}
}
