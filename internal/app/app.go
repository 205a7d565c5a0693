package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/miniremind/internal/engine"
	"github.com/nhle/miniremind/internal/keys"
	"github.com/nhle/miniremind/internal/model"
	"github.com/nhle/miniremind/internal/scheduler"
	"github.com/nhle/miniremind/internal/store"
	"github.com/nhle/miniremind/internal/ui"
	"github.com/nhle/miniremind/internal/ui/banner"
	"github.com/nhle/miniremind/internal/ui/helpview"
	"github.com/nhle/miniremind/internal/ui/reminderform"
	"github.com/nhle/miniremind/internal/ui/reminderlist"
	"github.com/nhle/miniremind/internal/ui/widget"
)

// uiTickMsg drives the once-per-second repaint that keeps countdowns live
// even when no reminder state changed.
type uiTickMsg struct{}

// reminderChangedMsg reports the outcome of a store mutation started from
// the UI.
type reminderChangedMsg struct {
	err error
}

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewWidget
	ViewHelp
	ViewFormCreate
	ViewFormEdit
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and the scheduler subscription.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	store        store.Store
	cfg          *model.AppConfig
	cfgPath      string
	keys         *keys.KeyMap
	listView     reminderlist.Model
	formView     reminderform.Model
	widgetView   widget.Model
	helpView     helpview.Model
	sched        *scheduler.Scheduler
	reminders    []model.Reminder
	ready        bool
	statusErr    string
}

// New creates a new root application model.
func New(s store.Store, cfg *model.AppConfig, cfgPath string, sched *scheduler.Scheduler) Model {
	k := keys.DefaultKeyMap()

	return Model{
		currentView: ViewList,
		store:       s,
		cfg:         cfg,
		cfgPath:     cfgPath,
		keys:        k,
		listView:    reminderlist.New(s, k, 80, 24),
		formView:    reminderform.New(80, 24),
		widgetView:  widget.New(cfg.Display.WidgetTheme, 80, 24),
		helpView:    helpview.New(k, 80, 24),
		sched:       sched,
	}
}

// Init loads the reminder list, starts the scheduler loop, and begins the
// repaint cadence.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.listView.Init(),
		m.sched.Start(),
		scheduleUITick(),
	)
}

func scheduleUITick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return uiTickMsg{}
	})
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.listView.SetSize(contentWidth, contentHeight)
		m.formView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.widgetView.SetSize(msg.Width, msg.Height)
		// Forward to the active view so huh forms can lay themselves out.
		return m.updateActiveView(msg)

	case uiTickMsg:
		// The redraw itself is the effect; countdowns re-render from the
		// current clock.
		return m, scheduleUITick()

	case scheduler.TickResultMsg:
		if msg.Err != nil {
			m.statusErr = msg.Err.Error()
		} else {
			m.statusErr = ""
		}
		// Reload so firing-field changes show up, then re-subscribe.
		return m, tea.Batch(
			m.listView.LoadReminders(),
			m.sched.WaitForNextResult(),
		)

	case reminderlist.RemindersLoadedMsg:
		m.reminders = msg.Reminders
		m.widgetView.SetReminders(msg.Reminders)
		var cmd tea.Cmd
		m.listView, cmd = m.listView.Update(msg)
		return m, cmd

	case reminderlist.EditRequestedMsg:
		m.previousView = m.currentView
		m.currentView = ViewFormEdit
		return m, m.formView.StartEdit(msg.Reminder)

	case reminderlist.ToggleRequestedMsg:
		return m, m.setCompleted(msg.ID, msg.Completed)

	case reminderlist.DeleteRequestedMsg:
		return m, m.deleteReminder(msg.ID)

	case reminderform.CreatedMsg:
		m.currentView = ViewList
		return m, m.createReminder(msg.Reminder)

	case reminderform.UpdatedMsg:
		m.currentView = ViewList
		return m, m.updateReminder(msg.Reminder)

	case reminderform.CancelMsg:
		m.currentView = ViewList
		return m, nil

	case reminderChangedMsg:
		if msg.err != nil {
			m.statusErr = msg.err.Error()
			return m, m.listView.LoadReminders()
		}
		m.statusErr = ""
		// Evaluate right away so a just-due reminder rings without
		// waiting for the next cadence tick.
		return m, tea.Batch(
			m.listView.LoadReminders(),
			m.sched.TickNow(),
		)

	case tea.KeyMsg:
		if handled, mdl, cmd := m.handleGlobalKeys(msg); handled {
			return mdl, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKeys processes keys that work regardless of the active
// view, including the active-alert actions.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	// The ringing alert claims enter/esc everywhere except inside the
	// form, where the user is mid-edit.
	if m.sched.Active() != nil && !m.inForm() {
		switch msg.String() {
		case "enter":
			return true, m, m.completeAlert()
		case "esc":
			m.sched.Dismiss()
			return true, m, m.listView.LoadReminders()
		}
	}

	switch msg.String() {
	case "ctrl+c":
		m.sched.Stop()
		return true, m, tea.Quit

	case "q":
		if m.currentView == ViewList || m.currentView == ViewWidget {
			m.sched.Stop()
			return true, m, tea.Quit
		}

	case "?":
		if m.inForm() {
			break
		}
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, m, nil

	case "esc":
		if m.currentView == ViewHelp || m.currentView == ViewWidget {
			m.currentView = ViewList
			return true, m, nil
		}

	case "n":
		if m.currentView == ViewList && !m.listView.Searching() {
			m.previousView = m.currentView
			m.currentView = ViewFormCreate
			return true, m, m.formView.StartCreate()
		}

	case "w":
		if m.currentView == ViewWidget {
			m.currentView = ViewList
			return true, m, nil
		}
		if m.currentView == ViewList && !m.listView.Searching() {
			m.previousView = m.currentView
			m.currentView = ViewWidget
			return true, m, nil
		}

	case "t":
		if m.currentView == ViewWidget {
			name := m.widgetView.CycleTheme()
			return true, m, m.persistWidgetTheme(name)
		}
	}

	return false, m, nil
}

func (m Model) inForm() bool {
	return m.currentView == ViewFormCreate || m.currentView == ViewFormEdit
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.listView, cmd = m.listView.Update(msg)
	case ViewWidget:
		m.widgetView, cmd = m.widgetView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewFormCreate, ViewFormEdit:
		m.formView, cmd = m.formView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	// A ringing alert overlays everything except an in-progress form.
	if active := m.sched.Active(); active != nil && !m.inForm() {
		return banner.Render(active, m.layout.Width, m.layout.Height)
	}

	if m.currentView == ViewWidget {
		return m.widgetView.View()
	}

	header := m.layout.RenderHeader("miniremind", m.nearestStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.listView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewFormCreate, ViewFormEdit:
		return m.formView.View()
	default:
		return ""
	}
}

// nearestStatus returns a countdown for the reminder due soonest, shown
// in the header.
func (m Model) nearestStatus() string {
	now := time.Now()

	var nearest *model.Reminder
	var nearestDue time.Time
	for i := range m.reminders {
		r := &m.reminders[i]
		if r.IsCompleted {
			continue
		}
		due, ok := r.NextDue()
		if !ok {
			continue
		}
		if nearest == nil || due.Before(nearestDue) {
			nearest = r
			nearestDue = due
		}
	}
	if nearest == nil {
		return "nothing due"
	}

	display, _ := engine.Project(now, nearest)
	return fmt.Sprintf("next: %s %s", nearest.Title, display)
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.statusErr != "" && m.currentView == ViewList {
		return m.statusErr
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewFormCreate, ViewFormEdit:
		return "enter next | shift+tab back | esc cancel"
	default:
		return fmt.Sprintf(
			"q quit | ? help | n new | / search | f filter: %s | w widget",
			m.listView.FilterName(),
		)
	}
}

// completeAlert acknowledges the ringing alert and reloads the list.
func (m Model) completeAlert() tea.Cmd {
	sched := m.sched
	reload := m.listView.LoadReminders()
	return tea.Sequence(
		func() tea.Msg {
			_, err := sched.Complete(context.Background())
			return reminderChangedMsg{err: err}
		},
		reload,
	)
}

// createReminder persists a new reminder from the form.
func (m Model) createReminder(r model.Reminder) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		_, err := s.CreateReminder(context.Background(), r)
		return reminderChangedMsg{err: err}
	}
}

// updateReminder persists edits to an existing reminder.
func (m Model) updateReminder(r model.Reminder) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return reminderChangedMsg{err: s.UpdateReminder(context.Background(), r)}
	}
}

// deleteReminder removes a reminder.
func (m Model) deleteReminder(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return reminderChangedMsg{err: s.DeleteReminder(context.Background(), id)}
	}
}

// setCompleted flips a reminder's completion flag from the list view.
func (m Model) setCompleted(id string, completed bool) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return reminderChangedMsg{err: s.SetCompleted(context.Background(), id, completed)}
	}
}

// persistWidgetTheme saves the newly selected widget skin to the config
// file so it survives restarts.
func (m Model) persistWidgetTheme(name string) tea.Cmd {
	cfg := m.cfg
	path := m.cfgPath
	return func() tea.Msg {
		cfg.Display.WidgetTheme = name
		if err := model.SaveConfig(path, cfg); err != nil {
			return reminderChangedMsg{err: err}
		}
		return nil
	}
}
