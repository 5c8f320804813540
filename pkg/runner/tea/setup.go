package teaui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/planner/pkg/app"
)

const (
	setupFieldDate = iota
	setupFieldNote
)

// SetupModel captures a date and note for a new plan. Validation failures
// surface as an alert and keep the flow open.
type SetupModel struct {
	svc *app.Service
	ctx context.Context

	date textinput.Model
	note textinput.Model

	focus int
	alert string

	saved bool
	done  bool

	termWidth int
}

// NewSetup creates the setup flow. date pre-fills the date field and may be
// empty.
func NewSetup(svc *app.Service, date string) SetupModel {
	di := textinput.New()
	di.Placeholder = "YYYY-MM-DD"
	di.CharLimit = 32
	di.Prompt = ""
	di.SetValue(date)
	di.CursorEnd()
	di.Focus()
	di.Styles.Cursor.Color = lipgloss.Color("218")
	di.Styles.Cursor.Shape = tea.CursorUnderline

	ni := textinput.New()
	ni.Placeholder = "Plan for the day"
	ni.CharLimit = 256
	ni.Prompt = ""
	ni.Styles.Cursor.Color = lipgloss.Color("218")
	ni.Styles.Cursor.Shape = tea.CursorUnderline

	m := SetupModel{
		svc:   svc,
		ctx:   context.Background(),
		date:  di,
		note:  ni,
		focus: setupFieldDate,
	}
	if date != "" {
		m.setFocus(setupFieldNote)
	}
	return m
}

// Saved reports whether the flow completed with a stored entry.
func (m SetupModel) Saved() bool { return m.saved }

func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *SetupModel) setFocus(field int) tea.Cmd {
	m.focus = field
	var cmd tea.Cmd
	if field == setupFieldDate {
		m.note.Blur()
		cmd = m.date.Focus()
	} else {
		m.date.Blur()
		cmd = m.note.Focus()
	}
	return cmd
}

// submit validates and saves the plan. On failure the alert is set and the
// flow stays open with its field values intact.
func (m *SetupModel) submit() tea.Cmd {
	date := strings.TrimSpace(m.date.Value())
	note := strings.TrimSpace(m.note.Value())

	if date == "" {
		m.alert = "date required"
		m.setFocus(setupFieldDate)
		return nil
	}
	if err := m.svc.ValidateHorizon(date); err != nil {
		m.alert = alertFor(err)
		m.setFocus(setupFieldDate)
		return nil
	}
	if _, err := m.svc.Save(m.ctx, date, note); err != nil {
		m.alert = alertFor(err)
		return nil
	}

	m.saved = true
	m.done = true
	return tea.Quit
}

func alertFor(err error) string {
	switch {
	case errors.Is(err, app.ErrDateRequired):
		return "date required"
	case errors.Is(err, app.ErrDateOutOfRange):
		return fmt.Sprintf("choose a date between today and %d years out", app.HorizonYears)
	default:
		return err.Error()
	}
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
	case tea.KeyPressMsg:
		// Any key clears a standing alert before it is handled.
		if m.alert != "" {
			m.alert = ""
		}
		switch msg.String() {
		case "esc", "ctrl+c":
			m.done = true
			cmds = append(cmds, tea.Quit)
		case "tab", "shift+tab":
			next := setupFieldNote
			if m.focus == setupFieldNote {
				next = setupFieldDate
			}
			if cmd := m.setFocus(next); cmd != nil {
				cmds = append(cmds, cmd)
			}
			cmds = append(cmds, textinput.Blink)
		case "enter":
			if m.focus == setupFieldDate {
				if cmd := m.setFocus(setupFieldNote); cmd != nil {
					cmds = append(cmds, cmd)
				}
				cmds = append(cmds, textinput.Blink)
			} else if cmd := m.submit(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		default:
			var cmd tea.Cmd
			if m.focus == setupFieldDate {
				m.date, cmd = m.date.Update(msg)
			} else {
				m.note, cmd = m.note.Update(msg)
			}
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m SetupModel) View() string {
	title := lipgloss.NewStyle().Bold(true).Render("New plan")
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render

	body := title + "\n\n" +
		label("Date") + "\n" + m.date.View() + "\n\n" +
		label("Note") + "\n" + m.note.View()

	if m.alert != "" {
		alertStyle := lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1).
			Foreground(lipgloss.Color("203"))
		body += "\n\n" + alertStyle.Render(m.alert)
	}

	help := lipgloss.NewStyle().Faint(true).
		Render("enter save, tab switch field, esc cancel")
	return body + "\n\n" + help
}

// RunSetup starts the capture flow and reports whether an entry was saved.
func RunSetup(svc *app.Service, date string) (bool, error) {
	p := tea.NewProgram(NewSetup(svc, date), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(SetupModel); ok {
		return m.Saved(), nil
	}
	return false, nil
}
