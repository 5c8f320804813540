// Package calendar renders a month grid with lipgloss styling.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/planner/pkg/grid"
)

// Options controls calendar styling.
type Options struct {
	HeaderStyle   lipgloss.Style
	LabelStyle    lipgloss.Style
	EmptyStyle    lipgloss.Style
	PaddingStyle  lipgloss.Style
	EntryStyle    lipgloss.Style
	TodayStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	ShowHeader    bool
	ShowLabel     bool
}

// Render produces a multi-line calendar for a full six-week grid.
func Render(year int, month time.Month, cells []grid.Cell, opts Options) string {
	if len(cells) != grid.Cells {
		return ""
	}

	var lines []string
	if opts.ShowLabel {
		label := grid.Label(year, month)
		width := grid.Columns*3 - 1
		pad := (width - len(label)) / 2
		if pad < 0 {
			pad = 0
		}
		lines = append(lines, strings.Repeat(" ", pad)+opts.LabelStyle.Render(label))
	}
	if opts.ShowHeader {
		lines = append(lines, opts.HeaderStyle.Render("Su Mo Tu We Th Fr Sa"))
	}

	for row := 0; row < grid.Cells/grid.Columns; row++ {
		var rendered []string
		for col := 0; col < grid.Columns; col++ {
			rendered = append(rendered, renderCell(cells[row*grid.Columns+col], opts))
		}
		lines = append(lines, strings.Join(rendered, " "))
	}

	return strings.Join(lines, "\n")
}

func renderCell(c grid.Cell, opts Options) string {
	text := fmt.Sprintf("%2d", c.Day)

	style := opts.EmptyStyle
	if !c.InMonth {
		style = opts.PaddingStyle
	} else if c.HasEntry {
		style = opts.EntryStyle
	}
	if c.IsToday {
		style = style.Inherit(opts.TodayStyle)
	}
	if c.IsSelected {
		style = style.Inherit(opts.SelectedStyle)
	}
	return style.Render(text)
}
