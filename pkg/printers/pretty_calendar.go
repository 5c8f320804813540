package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/grid"
)

const width = len("Su Mo Tu We Th Fr Sa")

// PrintMonth renders the 42-cell grid for one month: padding days faint,
// days with entries bold, today underlined.
func (pp *PrettyPrint) PrintMonth(year int, month time.Month, has func(iso string) bool) {
	tf := color.New(color.FgWhite, color.Italic)

	m := grid.Label(year, month)
	mid := (width - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	pad := width - mid - len(m)
	if pad < 0 {
		pad = 0
	}
	tf.Printf("%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", pad))

	h := color.New(color.Faint)
	_, _ = h.Println("Su Mo Tu We Th Fr Sa")

	outside := color.New(color.Faint, color.FgWhite)
	plain := color.New(color.FgWhite)
	marked := color.New(color.Bold, color.FgHiWhite)

	cells := grid.Build(year, month, has, "", pp.now())
	for i, c := range cells {
		printer := plain
		if !c.InMonth {
			printer = outside
		}
		if c.HasEntry {
			printer = marked
		}
		if c.IsToday {
			printer = color.New(color.Underline, color.Bold, color.FgHiWhite)
		}
		_, _ = printer.Printf("%2d", c.Day)

		if (i+1)%grid.Columns == 0 {
			fmt.Print("\n")
		} else {
			fmt.Print(" ")
		}
	}
	fmt.Print("\n")
}
