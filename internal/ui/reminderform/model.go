package reminderform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/miniremind/internal/classify"
	"github.com/nhle/miniremind/internal/model"
	"github.com/nhle/miniremind/internal/theme"
)

// dueLayout is the input format for a once reminder's due time.
const dueLayout = "2006-01-02 15:04"

// CreatedMsg is dispatched when a new reminder is created via the form.
type CreatedMsg struct {
	Reminder model.Reminder
}

// UpdatedMsg is dispatched when an existing reminder is updated via the form.
type UpdatedMsg struct {
	Reminder model.Reminder
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	category    string
	mode        string
	priority    int
	dueAt       string
	windowStart string
	windowEnd   string
	period      string
	repeatScope string
	soundRef    string
}

// Model is the Bubble Tea model for the reminder create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editing  model.Reminder
	width    int
	height   int
}

// New creates a new reminder form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for creating a new reminder. The due
// time defaults to ten minutes from now, mirroring the quickest use case.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editing = model.Reminder{}
	*m.fb = formBindings{
		category:    model.CategoryGeneral,
		mode:        model.ModeOnce,
		priority:    model.PriorityMedium,
		dueAt:       time.Now().Add(10 * time.Minute).Format(dueLayout),
		windowStart: "09:00",
		windowEnd:   "18:00",
		period:      "30",
		repeatScope: model.RepeatDaily,
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing reminder.
func (m *Model) StartEdit(r model.Reminder) tea.Cmd {
	m.editMode = true
	m.editing = r
	*m.fb = formBindings{
		title:       r.Title,
		description: r.Description,
		category:    r.Category,
		mode:        r.Mode,
		priority:    r.Priority,
		windowStart: r.WindowStart,
		windowEnd:   r.WindowEnd,
		repeatScope: r.RepeatScope,
		soundRef:    r.SoundRef,
	}
	if r.DueAt != nil {
		m.fb.dueAt = r.DueAt.Local().Format(dueLayout)
	}
	if r.PeriodMinutes > 0 {
		m.fb.period = strconv.Itoa(r.PeriodMinutes)
	} else {
		m.fb.period = "30"
	}
	if m.fb.windowStart == "" {
		m.fb.windowStart = "09:00"
	}
	if m.fb.windowEnd == "" {
		m.fb.windowEnd = "18:00"
	}
	if m.fb.repeatScope == "" {
		m.fb.repeatScope = model.RepeatDaily
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the reminder form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the reminder form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Reminder"
	if m.editMode {
		titleText = "Edit Reminder"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	categoryOpts := make([]huh.Option[string], len(model.Categories))
	for i, c := range model.Categories {
		categoryOpts[i] = huh.NewOption(theme.CategoryIcon(c)+" "+c, c)
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What should I nudge you about?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewSelect[string]().
			Title("Category").
			Options(categoryOpts...).
			Value(&m.fb.category),
		huh.NewSelect[string]().
			Title("Mode").
			Options(
				huh.NewOption("Once — at a fixed time", model.ModeOnce),
				huh.NewOption("Interval — repeat in a daily window", model.ModeInterval),
			).
			Value(&m.fb.mode),
		huh.NewInput().
			Title("Due At").
			Description("For once mode, YYYY-MM-DD HH:MM").
			Value(&m.fb.dueAt).
			Validate(m.validateDue),
		huh.NewInput().
			Title("Window Start").
			Description("For interval mode, HH:MM").
			Value(&m.fb.windowStart).
			Validate(m.validateClock),
		huh.NewInput().
			Title("Window End").
			Value(&m.fb.windowEnd).
			Validate(m.validateClock),
		huh.NewInput().
			Title("Every (minutes)").
			Value(&m.fb.period).
			Validate(m.validatePeriod),
		huh.NewSelect[string]().
			Title("Repeat").
			Options(
				huh.NewOption("Every day", model.RepeatDaily),
				huh.NewOption("Workdays only", model.RepeatWorkdays),
			).
			Value(&m.fb.repeatScope),
		huh.NewSelect[int]().
			Title("Priority").
			Options(
				huh.NewOption("High", model.PriorityHigh),
				huh.NewOption("Medium", model.PriorityMedium),
				huh.NewOption("Low", model.PriorityLow),
			).
			Value(&m.fb.priority),
		huh.NewText().
			Title("Notes").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewInput().
			Title("Sound").
			Description("Optional sound file; empty uses the default").
			Value(&m.fb.soundRef),
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

// handleSubmit assembles the reminder from the bindings and dispatches
// the created/updated message.
func (m Model) handleSubmit() tea.Cmd {
	r := m.editing
	r.Title = strings.TrimSpace(m.fb.title)
	r.Description = m.fb.description
	r.Mode = m.fb.mode
	r.Priority = m.fb.priority
	r.SoundRef = strings.TrimSpace(m.fb.soundRef)

	// A title like "drink water" implies its category when the user
	// left the default one selected.
	r.Category = m.fb.category
	if r.Category == model.CategoryGeneral {
		r.Category = classify.Classify(r.Title)
	}

	switch r.Mode {
	case model.ModeOnce:
		if t, err := time.ParseInLocation(dueLayout, strings.TrimSpace(m.fb.dueAt), time.Local); err == nil {
			utc := t.UTC()
			r.DueAt = &utc
		}
		r.WindowStart = ""
		r.WindowEnd = ""
		r.PeriodMinutes = 0
		r.RepeatScope = ""
	case model.ModeInterval:
		r.DueAt = nil
		r.WindowStart = strings.TrimSpace(m.fb.windowStart)
		r.WindowEnd = strings.TrimSpace(m.fb.windowEnd)
		if p, err := strconv.Atoi(strings.TrimSpace(m.fb.period)); err == nil {
			r.PeriodMinutes = p
		}
		r.RepeatScope = m.fb.repeatScope
	}

	if m.editMode {
		return func() tea.Msg { return UpdatedMsg{Reminder: r} }
	}
	return func() tea.Msg { return CreatedMsg{Reminder: r} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

// validateDue checks the due time input when mode is once.
func (m Model) validateDue(s string) error {
	if m.fb.mode != model.ModeOnce {
		return nil
	}
	if _, err := time.ParseInLocation(dueLayout, strings.TrimSpace(s), time.Local); err != nil {
		return fmt.Errorf("use YYYY-MM-DD HH:MM")
	}
	return nil
}

// validateClock checks an HH:MM window bound when mode is interval.
func (m Model) validateClock(s string) error {
	if m.fb.mode != model.ModeInterval {
		return nil
	}
	if _, err := time.Parse("15:04", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use HH:MM (24h)")
	}
	return nil
}

// validatePeriod checks the interval period when mode is interval.
func (m Model) validatePeriod(s string) error {
	if m.fb.mode != model.ModeInterval {
		return nil
	}
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || p <= 0 {
		return fmt.Errorf("must be a positive number of minutes")
	}
	return nil
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
