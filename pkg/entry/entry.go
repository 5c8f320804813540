package entry

import (
	"fmt"
	"time"

	"tableflip.dev/planner/pkg/timeutil"
)

// New builds a planner entry for the given canonical date. SavedAt is
// stamped by the caller at write time.
func New(date, note string) *Entry {
	return &Entry{
		Date: date,
		Note: note,
	}
}

// Entry is one planner note keyed by its calendar date. There is at most one
// entry per date in the store; writing again for the same date replaces it.
type Entry struct {
	Date    string    `json:"date"`
	Note    string    `json:"note"`
	SavedAt Timestamp `json:"savedAt"`
}

func (e *Entry) Title() string {
	return e.Date
}

func (e *Entry) Row(now time.Time) (string, string, string) {
	return e.Date, e.Note, timeutil.Relative(e.SavedAt.Time, now)
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s  %s", e.Date, e.Note)
}
