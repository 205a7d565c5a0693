package store

import (
	"context"

	"github.com/nhle/miniremind/internal/model"
)

// Status filter values for reminder queries.
const (
	StatusAll       = "all"
	StatusUpcoming  = "upcoming"
	StatusCompleted = "completed"
)

// ReminderFilter controls filtering, sorting, and pagination for reminder
// queries.
type ReminderFilter struct {
	Status   string  // "upcoming", "completed", or "" / "all"
	Category *string // one of the known categories, or nil (all)
	Query    *string // substring search over title + description
	SortBy   string  // "created_at", "title", "priority", "updated_at"
	SortAsc  bool    // default ordering is newest first
	Limit    int
	Offset   int
}

// Store is the persistence collaborator for the reminder set. The trigger
// engine reads the full set each tick and commits firing-field updates
// back before the next tick runs.
type Store interface {
	CreateReminder(ctx context.Context, r model.Reminder) (*model.Reminder, error)
	UpdateReminder(ctx context.Context, r model.Reminder) error
	DeleteReminder(ctx context.Context, id string) error
	GetReminderByID(ctx context.Context, id string) (*model.Reminder, error)
	GetReminders(ctx context.Context, filter ReminderFilter) ([]model.Reminder, error)
	CountReminders(ctx context.Context, filter ReminderFilter) (int, error)

	// SetCompleted flips the completion flag directly, for list-view
	// toggles that bypass the alert flow.
	SetCompleted(ctx context.Context, id string, completed bool) error

	// CommitEvaluated persists firing-field updates (last_fired_at,
	// fired_count, is_completed) for the given records in one
	// transaction, at the end of a tick.
	CommitEvaluated(ctx context.Context, reminders []model.Reminder) error

	Close() error
}
