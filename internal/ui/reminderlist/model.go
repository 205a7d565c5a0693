package reminderlist

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/miniremind/internal/keys"
	"github.com/nhle/miniremind/internal/model"
	"github.com/nhle/miniremind/internal/store"
	"github.com/nhle/miniremind/internal/theme"
)

// RemindersLoadedMsg is sent when reminders have been loaded from the store.
type RemindersLoadedMsg struct {
	Reminders []model.Reminder
}

// EditRequestedMsg is sent when the user selects a reminder to edit.
type EditRequestedMsg struct {
	Reminder model.Reminder
}

// ToggleRequestedMsg is sent when the user toggles a reminder's completion.
type ToggleRequestedMsg struct {
	ID        string
	Completed bool
}

// DeleteRequestedMsg is sent when the user deletes a reminder.
type DeleteRequestedMsg struct {
	ID string
}

// statusFilters is the filter cycle order.
var statusFilters = []string{
	store.StatusUpcoming,
	store.StatusAll,
	store.StatusCompleted,
}

// Model is the main reminder list view component.
type Model struct {
	list        list.Model
	store       store.Store
	keys        *keys.KeyMap
	filter      store.ReminderFilter
	filterIndex int
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new reminder list model.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Reminders"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search reminders..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:  l,
		store: s,
		keys:  k,
		filter: store.ReminderFilter{
			Status: store.StatusUpcoming,
		},
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the initial set of reminders.
func (m Model) Init() tea.Cmd {
	return m.LoadReminders()
}

// Update handles messages for the reminder list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RemindersLoadedMsg:
		items := make([]list.Item, len(msg.Reminders))
		for i, r := range msg.Reminders {
			items[i] = ReminderItem{Reminder: r}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		query := m.searchInput.Value()
		if query != "" {
			m.filter.Query = &query
		} else {
			m.filter.Query = nil
		}
		return m, m.LoadReminders()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.filter.Query = nil
		return m, m.LoadReminders()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		item, ok := m.list.SelectedItem().(ReminderItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return EditRequestedMsg{Reminder: item.Reminder}
		}

	case key.Matches(msg, m.keys.Toggle):
		item, ok := m.list.SelectedItem().(ReminderItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return ToggleRequestedMsg{
				ID:        item.Reminder.ID,
				Completed: !item.Reminder.IsCompleted,
			}
		}

	case key.Matches(msg, m.keys.Delete):
		item, ok := m.list.SelectedItem().(ReminderItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return DeleteRequestedMsg{ID: item.Reminder.ID}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.CycleFilter):
		m.filterIndex = (m.filterIndex + 1) % len(statusFilters)
		m.filter.Status = statusFilters[m.filterIndex]
		return m, m.LoadReminders()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the reminder list view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// Searching reports whether the search input has focus, so global key
// handlers can stand down while the user types.
func (m Model) Searching() bool {
	return m.searchMode
}

// FilterName returns the active status filter name for the header.
func (m Model) FilterName() string {
	return m.filter.Status
}

// renderEmptyState shows guidance text when no reminders are available.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.filter.Query != nil || m.filter.Status != store.StatusUpcoming {
		return style.Render("No matching reminders.\nTry adjusting the filter.")
	}

	return style.Render("Nothing here yet.\n\nPress 'n' to add a reminder.")
}

// LoadReminders returns a tea.Cmd that queries the store with the
// current filter.
func (m Model) LoadReminders() tea.Cmd {
	filter := m.filter
	s := m.store
	return func() tea.Msg {
		reminders, err := s.GetReminders(context.Background(), filter)
		if err != nil {
			return RemindersLoadedMsg{}
		}
		return RemindersLoadedMsg{Reminders: reminders}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
