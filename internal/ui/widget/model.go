// Package widget renders the compact always-on countdown view, the
// terminal counterpart of a small floating timer window.
package widget

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/miniremind/internal/engine"
	"github.com/nhle/miniremind/internal/model"
	"github.com/nhle/miniremind/internal/theme"
)

// maxRows caps how many reminders the widget shows at once. The nearest
// reminders win; the rest are summarized in a footer line.
const maxRows = 6

// Model is the Bubble Tea model for the countdown widget view.
type Model struct {
	reminders []model.Reminder
	theme     theme.WidgetTheme
	// Now is the clock used when rendering countdowns. Overridable in tests.
	Now    func() time.Time
	width  int
	height int
}

// New creates a widget model using the named skin.
func New(themeName string, width, height int) Model {
	return Model{
		theme:  theme.WidgetThemeByName(themeName),
		Now:    time.Now,
		width:  width,
		height: height,
	}
}

// SetReminders replaces the reminders the widget displays.
func (m *Model) SetReminders(reminders []model.Reminder) {
	m.reminders = reminders
}

// SetSize updates the widget dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// CycleTheme advances to the next widget skin and returns its name so the
// caller can persist the choice.
func (m *Model) CycleTheme() string {
	for i, wt := range theme.WidgetThemes {
		if wt.Name == m.theme.Name {
			m.theme = theme.WidgetThemes[(i+1)%len(theme.WidgetThemes)]
			return m.theme.Name
		}
	}
	m.theme = theme.WidgetThemes[0]
	return m.theme.Name
}

// ThemeName returns the active skin name.
func (m Model) ThemeName() string {
	return m.theme.Name
}

// Update handles messages for the widget view. Key handling lives in the
// app model; the widget only tracks window size.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.SetSize(ws.Width, ws.Height)
	}
	return m, nil
}

// View renders the widget frame with one countdown row per reminder.
func (m Model) View() string {
	now := m.Now()

	rows := make([]string, 0, maxRows+2)
	shown := 0
	hidden := 0
	for i := range m.reminders {
		r := &m.reminders[i]
		if r.IsCompleted {
			continue
		}
		if shown >= maxRows {
			hidden++
			continue
		}
		rows = append(rows, m.renderRow(now, r))
		shown++
	}

	if shown == 0 {
		rows = append(rows, m.theme.Label.Render("nothing scheduled"))
	}
	if hidden > 0 {
		rows = append(rows, m.theme.Label.Render(fmt.Sprintf("+%d more", hidden)))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	frame := m.theme.Frame.Render(body)
	footer := m.theme.Label.Render("w list · t theme · q quit")

	content := lipgloss.JoinVertical(lipgloss.Center, frame, footer)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m Model) renderRow(now time.Time, r *model.Reminder) string {
	display, urgency := engine.Project(now, r)

	title := r.Title
	if len(title) > 18 {
		title = title[:17] + "…"
	}

	countdown := theme.UrgencyStyle(urgency.String()).Render(display)
	label := m.theme.Accent.Render(fmt.Sprintf("%-18s", title))

	return fmt.Sprintf("%s %s %s", theme.CategoryIcon(r.Category), label, countdown)
}
