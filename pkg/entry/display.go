package entry

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

// PrettyPrintEntries renders entries as a three-column table: date, note,
// and how long ago each was saved.
func PrettyPrintEntries(now time.Time, entries ...*Entry) {
	if len(entries) == 0 {
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60

	for _, e := range entries {
		tbl.AddRow(e.Row(now))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}
