package model

import (
	"errors"
	"fmt"
	"time"
)

// Reminder mode constants. The mode decides which schedule fields are
// meaningful: a once reminder carries DueAt, an interval reminder carries
// WindowStart/WindowEnd/PeriodMinutes/RepeatScope.
const (
	ModeOnce     = "once"
	ModeInterval = "interval"
)

// Reminder category constants. Categories affect grouping, icons, and the
// alert messages only, never trigger semantics.
const (
	CategoryGeneral = "general"
	CategoryWater   = "water"
	CategoryStretch = "stretch"
	CategoryEye     = "eye"
	CategoryBreak   = "break"
)

// Repeat scope constants for interval reminders.
const (
	RepeatDaily    = "daily"
	RepeatWorkdays = "workdays"
)

// Reminder priority levels.
const (
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
)

// Categories lists all valid reminder categories in display order.
var Categories = []string{
	CategoryGeneral,
	CategoryWater,
	CategoryStretch,
	CategoryEye,
	CategoryBreak,
}

// Reminder is the sole persistent entity: a user-defined task that fires
// either once at a fixed instant or repeatedly inside a daily time window.
type Reminder struct {
	ID          string `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	Category    string `json:"category" db:"category"`
	Mode        string `json:"mode" db:"mode"`
	Priority    int    `json:"priority" db:"priority"`

	// Once schedule.
	DueAt *time.Time `json:"due_at,omitempty" db:"due_at"`

	// Interval schedule. WindowStart and WindowEnd are zero-padded 24h
	// "HH:MM" strings so lexicographic comparison matches clock order.
	WindowStart   string `json:"window_start,omitempty" db:"window_start"`
	WindowEnd     string `json:"window_end,omitempty" db:"window_end"`
	PeriodMinutes int    `json:"period_minutes,omitempty" db:"period_minutes"`
	RepeatScope   string `json:"repeat_scope,omitempty" db:"repeat_scope"`

	// SoundRef optionally overrides the configured alert sound for this
	// reminder. May be a file path or URL; empty means use the default.
	SoundRef string `json:"sound_ref,omitempty" db:"sound_ref"`

	LastFiredAt *time.Time `json:"last_fired_at,omitempty" db:"last_fired_at"`
	FiredCount  int        `json:"fired_count" db:"fired_count"`
	IsCompleted bool       `json:"is_completed" db:"is_completed"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// IsOnce reports whether the reminder fires at a single fixed instant.
func (r Reminder) IsOnce() bool { return r.Mode == ModeOnce }

// IsInterval reports whether the reminder fires on a repeating schedule.
func (r Reminder) IsInterval() bool { return r.Mode == ModeInterval }

// Reference returns the baseline instant for interval firing: the last
// firing if there was one, otherwise the creation instant. The evaluator
// and the countdown projector must use the same rule so the displayed
// countdown and the actual firing condition never disagree.
func (r Reminder) Reference() time.Time {
	if r.LastFiredAt != nil {
		return *r.LastFiredAt
	}
	return r.CreatedAt
}

// NextDue returns the reminder's next due instant. The second return value
// is false when the record is malformed for its mode.
func (r Reminder) NextDue() (time.Time, bool) {
	switch r.Mode {
	case ModeOnce:
		if r.DueAt == nil {
			return time.Time{}, false
		}
		return *r.DueAt, true
	case ModeInterval:
		if r.PeriodMinutes <= 0 {
			return time.Time{}, false
		}
		return r.Reference().Add(time.Duration(r.PeriodMinutes) * time.Minute), true
	default:
		return time.Time{}, false
	}
}

// Period returns the interval reminder's firing period as a duration.
func (r Reminder) Period() time.Duration {
	return time.Duration(r.PeriodMinutes) * time.Minute
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Validate checks the reminder's structural invariants. Records that fail
// validation are treated as permanently non-firing by the trigger engine
// rather than surfaced as errors.
func (r Reminder) Validate() error {
	if r.Title == "" {
		return errors.New("title is required")
	}
	if !ValidCategory(r.Category) {
		return fmt.Errorf("unknown category %q", r.Category)
	}
	if r.FiredCount < 0 {
		return fmt.Errorf("negative fired count %d", r.FiredCount)
	}
	if r.LastFiredAt != nil && r.LastFiredAt.Before(r.CreatedAt) {
		return errors.New("last fired before creation")
	}

	switch r.Mode {
	case ModeOnce:
		if r.DueAt == nil {
			return errors.New("once reminder has no due time")
		}
	case ModeInterval:
		if !validClockTime(r.WindowStart) || !validClockTime(r.WindowEnd) {
			return fmt.Errorf("invalid window %q-%q", r.WindowStart, r.WindowEnd)
		}
		if r.WindowStart > r.WindowEnd {
			return fmt.Errorf("window start %s after end %s", r.WindowStart, r.WindowEnd)
		}
		if r.PeriodMinutes <= 0 {
			return fmt.Errorf("period must be positive, got %d", r.PeriodMinutes)
		}
		if r.RepeatScope != RepeatDaily && r.RepeatScope != RepeatWorkdays {
			return fmt.Errorf("unknown repeat scope %q", r.RepeatScope)
		}
	default:
		return fmt.Errorf("unknown mode %q", r.Mode)
	}

	return nil
}

// validClockTime reports whether s is a zero-padded 24h "HH:MM" value.
func validClockTime(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// ClockTime formats t as a zero-padded 24h "HH:MM" string, the form used
// for interval window comparisons.
func ClockTime(t time.Time) string {
	return t.Format("15:04")
}

// PriorityLabel returns the display label for a priority level.
func PriorityLabel(p int) string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return "?"
	}
}
