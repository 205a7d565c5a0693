package reminderlist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/miniremind/internal/engine"
	"github.com/nhle/miniremind/internal/model"
	"github.com/nhle/miniremind/internal/theme"
)

// ReminderItem wraps a model.Reminder so it can be used in a bubbles/list.
type ReminderItem struct {
	Reminder model.Reminder
}

// FilterValue returns the string used for fuzzy filtering.
func (i ReminderItem) FilterValue() string { return i.Reminder.Title }

// Title returns the reminder title for the list.
func (i ReminderItem) Title() string { return i.Reminder.Title }

// Description returns a short summary line for the list.
func (i ReminderItem) Description() string {
	return scheduleLabel(i.Reminder)
}

// ItemDelegate implements list.ItemDelegate for rendering reminder cards.
type ItemDelegate struct {
	// Now supplies the current instant for countdown rendering. Kept
	// injectable so rendering stays deterministic in tests.
	Now func() time.Time
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single reminder card line: completion prefix, category
// icon, title, schedule badge, and live countdown.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ri, ok := item.(ReminderItem)
	if !ok {
		return
	}
	r := ri.Reminder
	isSelected := index == m.Index()

	var prefix string
	if r.IsCompleted {
		prefix = "✓"
	} else {
		prefix = "○"
	}

	icon := theme.CategoryIcon(r.Category)
	catBadge := theme.CategoryStyle(r.Category).Render(r.Category)
	schedule := theme.ScheduleStyle.Render(scheduleLabel(r))

	now := time.Now()
	if d.Now != nil {
		now = d.Now()
	}
	countdown := ""
	if !r.IsCompleted {
		display, urgency := engine.Project(now, &r)
		countdown = "  " + theme.UrgencyStyle(urgency.String()).Render(display)
	}

	line := fmt.Sprintf("%s %s %s %s %s%s", prefix, icon, r.Title, catBadge, schedule, countdown)

	if r.IsCompleted {
		line = theme.DimmedStyle.Render(line)
	}

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// scheduleLabel summarizes a reminder's trigger condition for display.
func scheduleLabel(r model.Reminder) string {
	switch r.Mode {
	case model.ModeOnce:
		if r.DueAt == nil {
			return "no due time"
		}
		return r.DueAt.Local().Format("Jan 02 15:04")
	case model.ModeInterval:
		scope := "daily"
		if r.RepeatScope == model.RepeatWorkdays {
			scope = "workdays"
		}
		return fmt.Sprintf("%s-%s · every %dm · %s",
			r.WindowStart, r.WindowEnd, r.PeriodMinutes, scope)
	default:
		return ""
	}
}
