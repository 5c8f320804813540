package teaui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/grid"
	"tableflip.dev/planner/pkg/runner/tea/internal/calendar"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/timeutil"
)

type viewMode int

const (
	viewModeBrowse viewMode = iota
	viewModeEdit
)

// ViewModel is the month-browsing surface: a six-week grid on the left, the
// selected entry on the right.
type ViewModel struct {
	svc *app.Service
	ctx context.Context

	mode viewMode

	year   int
	month  time.Month
	cursor int // grid cell index, 0..41

	minMonth int // inclusive month-index bounds for browsing
	maxMonth int

	index map[string]*entry.Entry
	cells []grid.Cell

	selected string // canonical date of the selected cell, empty for none

	input  textinput.Model
	status string

	events <-chan store.Event

	termWidth  int
	termHeight int
}

// messages
type viewErrMsg struct{ err error }
type indexLoadedMsg struct{ index map[string]*entry.Entry }
type entriesChangedMsg struct{}

// NewView creates the view flow anchored on the current month.
func NewView(svc *app.Service, events <-chan store.Event) ViewModel {
	now := time.Now()
	if svc != nil && svc.Now != nil {
		now = svc.Now()
	}

	ti := textinput.New()
	ti.Placeholder = "Plan for the day"
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.Styles.Cursor.Color = lipgloss.Color("218")
	ti.Styles.Cursor.Shape = tea.CursorUnderline

	m := ViewModel{
		svc:    svc,
		ctx:    context.Background(),
		mode:   viewModeBrowse,
		year:   now.Year(),
		month:  now.Month(),
		input:  ti,
		status: "←/→/↑/↓ move, n/p month, enter select, e edit, d delete, t today, q quit",
		events: events,
	}
	if svc != nil {
		m.minMonth, m.maxMonth = svc.ViewBounds()
	} else {
		m.minMonth = grid.Index(now.Year(), now.Month())
		m.maxMonth = m.minMonth + app.ViewMonths
	}
	m.cursor = m.cursorForToday(now)
	m.rebuildCells()
	return m
}

// Init loads the collection and begins listening for store changes.
func (m ViewModel) Init() tea.Cmd {
	return tea.Batch(m.loadIndex(), m.waitForChange())
}

func (m *ViewModel) loadIndex() tea.Cmd {
	return func() tea.Msg {
		idx, err := m.svc.Index(m.ctx)
		if err != nil {
			return viewErrMsg{err}
		}
		return indexLoadedMsg{idx}
	}
}

// waitForChange blocks on the store watch channel; a closed channel ends the
// subscription quietly.
func (m *ViewModel) waitForChange() tea.Cmd {
	ch := m.events
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return entriesChangedMsg{}
	}
}

func (m *ViewModel) now() time.Time {
	if m.svc != nil && m.svc.Now != nil {
		return m.svc.Now()
	}
	return time.Now()
}

func (m *ViewModel) rebuildCells() {
	has := func(iso string) bool {
		_, ok := m.index[iso]
		return ok
	}
	m.cells = grid.Build(m.year, m.month, has, m.selected, m.now())
}

func (m *ViewModel) cursorForToday(now time.Time) int {
	iso := entry.DateOf(now)
	for i, c := range grid.Build(m.year, m.month, nil, "", now) {
		if c.ISO == iso {
			return i
		}
	}
	return 0
}

// moveCursor shifts the cursor by delta cells, clamped to the grid.
func (m *ViewModel) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 {
		next = 0
	}
	if next >= grid.Cells {
		next = grid.Cells - 1
	}
	m.cursor = next
}

// stepMonth moves the view month by delta, clamped to the browsing bounds.
func (m *ViewModel) stepMonth(delta int) {
	y, mo := grid.Step(m.year, m.month, delta)
	idx := grid.Index(y, mo)
	if idx < m.minMonth || idx > m.maxMonth {
		m.status = "month out of range"
		return
	}
	m.year, m.month = y, mo
	m.rebuildCells()
	m.status = grid.Label(m.year, m.month)
}

// selectCursor marks the cell under the cursor. Padding cells select their
// adjacent-month date.
func (m *ViewModel) selectCursor() {
	c := m.cells[m.cursor]
	m.selected = c.ISO
	m.rebuildCells()
	if e, ok := m.index[c.ISO]; ok {
		m.status = e.Title()
	} else {
		m.status = c.ISO + "  no entry"
	}
}

// gotoToday re-anchors the view on the current month.
func (m *ViewModel) gotoToday() {
	now := m.now()
	m.year, m.month = now.Year(), now.Month()
	m.selected = ""
	m.cursor = m.cursorForToday(now)
	m.rebuildCells()
	m.status = grid.Label(m.year, m.month)
}

// targetDate is the date acted on by edit and delete: the selection when one
// exists, otherwise the cell under the cursor.
func (m *ViewModel) targetDate() string {
	if m.selected != "" {
		return m.selected
	}
	return m.cells[m.cursor].ISO
}

func (m *ViewModel) deleteTarget(cmds *[]tea.Cmd) {
	iso := m.targetDate()
	if _, ok := m.index[iso]; !ok {
		m.status = "no entry for " + iso
		return
	}
	if err := m.svc.Delete(m.ctx, iso); err != nil {
		*cmds = append(*cmds, func() tea.Msg { return viewErrMsg{err} })
		return
	}
	if m.selected == iso {
		m.selected = ""
	}
	m.status = "deleted " + iso
	*cmds = append(*cmds, m.loadIndex())
}

func (m *ViewModel) beginEdit(cmds *[]tea.Cmd) {
	iso := m.targetDate()
	m.selected = iso
	m.mode = viewModeEdit
	if e, ok := m.index[iso]; ok {
		m.input.SetValue(e.Note)
	} else {
		m.input.SetValue("")
	}
	m.input.CursorEnd()
	if cmd := m.input.Focus(); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
	*cmds = append(*cmds, textinput.Blink)
	m.status = "editing " + iso
	m.rebuildCells()
}

func (m *ViewModel) commitEdit(cmds *[]tea.Cmd) {
	note := strings.TrimSpace(m.input.Value())
	iso := m.selected
	m.mode = viewModeBrowse
	m.input.Reset()
	m.input.Blur()
	if iso == "" {
		return
	}
	if note == "" {
		m.status = "empty note, nothing saved"
		return
	}
	if _, err := m.svc.Save(m.ctx, iso, note); err != nil {
		*cmds = append(*cmds, func() tea.Msg { return viewErrMsg{err} })
		return
	}
	m.status = "saved " + iso
	*cmds = append(*cmds, m.loadIndex())
}

// Update handles messages and keybindings.
func (m ViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
	case viewErrMsg:
		m.status = "ERR: " + msg.err.Error()
	case indexLoadedMsg:
		m.index = msg.index
		m.rebuildCells()
	case entriesChangedMsg:
		cmds = append(cmds, m.loadIndex(), m.waitForChange())
	case tea.KeyPressMsg:
		switch m.mode {
		case viewModeEdit:
			switch msg.String() {
			case "enter":
				m.commitEdit(&cmds)
			case "esc":
				m.mode = viewModeBrowse
				m.input.Reset()
				m.input.Blur()
				m.status = "edit cancelled"
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
			}
		case viewModeBrowse:
			switch msg.String() {
			case "left", "h":
				m.moveCursor(-1)
			case "right", "l":
				m.moveCursor(1)
			case "up", "k":
				m.moveCursor(-grid.Columns)
			case "down", "j":
				m.moveCursor(grid.Columns)
			case "n", "pgdown":
				m.stepMonth(1)
			case "p", "pgup":
				m.stepMonth(-1)
			case "enter", " ":
				m.selectCursor()
			case "esc":
				if m.selected != "" {
					m.selected = ""
					m.rebuildCells()
					m.status = grid.Label(m.year, m.month)
				}
			case "e", "i":
				m.beginEdit(&cmds)
			case "d", "x":
				m.deleteTarget(&cmds)
			case "t":
				m.gotoToday()
			case "r":
				cmds = append(cmds, m.loadIndex())
			case "q", "ctrl+c":
				cmds = append(cmds, tea.Quit)
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the grid beside the selected entry pane.
func (m ViewModel) View() string {
	opts := defaultCalendarOptions()

	// Show the cursor with the selected style so it reads as the active cell.
	cells := make([]grid.Cell, len(m.cells))
	copy(cells, m.cells)
	if m.cursor >= 0 && m.cursor < len(cells) {
		cells[m.cursor].IsSelected = true
	}

	left := calendar.Render(m.year, m.month, cells, opts)
	right := m.entryPane()

	gap := lipgloss.NewStyle().Padding(0, 2).Render(" ")
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, gap, right)

	if m.mode == viewModeEdit {
		body += "\n\nNote: " + m.input.View()
	}

	status := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.status)
	return body + "\n\n" + status
}

func (m *ViewModel) entryPane() string {
	width := 40
	if m.termWidth > 0 {
		if w := m.termWidth - grid.Columns*3 - 8; w > 16 && w < width {
			width = w
		}
	}

	if m.selected == "" {
		return lipgloss.NewStyle().Faint(true).Render("select a day to see its plan")
	}

	title := lipgloss.NewStyle().Bold(true).Render(m.selected)
	e, ok := m.index[m.selected]
	if !ok {
		return title + "\n\n" + lipgloss.NewStyle().Faint(true).Render("no entry")
	}

	note := wordwrap.String(e.Note, width)
	saved := lipgloss.NewStyle().Faint(true).
		Render(fmt.Sprintf("saved %s", timeutil.Relative(e.SavedAt.Time, m.now())))
	return title + "\n\n" + note + "\n\n" + saved
}

func defaultCalendarOptions() calendar.Options {
	return calendar.Options{
		LabelStyle:    lipgloss.NewStyle().Bold(true),
		HeaderStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		EmptyStyle:    lipgloss.NewStyle(),
		PaddingStyle:  lipgloss.NewStyle().Faint(true),
		EntryStyle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		TodayStyle:    lipgloss.NewStyle().Underline(true),
		SelectedStyle: lipgloss.NewStyle().Reverse(true),
		ShowHeader:    true,
		ShowLabel:     true,
	}
}

// RunView starts the month-browsing surface and blocks until it exits.
func RunView(svc *app.Service) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Live refresh is best effort; browsing works without it.
	events, err := svc.Watch(ctx)
	if err != nil {
		events = nil
	}

	p := tea.NewProgram(NewView(svc, events), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
