package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhle/miniremind/internal/model"
)

// CreateReminder inserts a new reminder. Generates a UUID if ID is empty
// and stamps creation time. The stored record is returned.
func (s *SQLiteStore) CreateReminder(
	ctx context.Context,
	r model.Reminder,
) (*model.Reminder, error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
	if r.Category == "" {
		r.Category = model.CategoryGeneral
	}
	if r.Priority < model.PriorityLow || r.Priority > model.PriorityHigh {
		r.Priority = model.PriorityMedium
	}

	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid reminder: %w", err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reminders (
			id, title, description, category, mode, priority,
			due_at, window_start, window_end, period_minutes, repeat_scope,
			sound_ref, last_fired_at, fired_count, is_completed,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Title, r.Description, r.Category, r.Mode, r.Priority,
		r.DueAt, r.WindowStart, r.WindowEnd, r.PeriodMinutes, r.RepeatScope,
		r.SoundRef, r.LastFiredAt, r.FiredCount, boolToInt(r.IsCompleted),
		r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating reminder: %w", err)
	}
	return &r, nil
}

// UpdateReminder updates an existing reminder by ID.
func (s *SQLiteStore) UpdateReminder(ctx context.Context, r model.Reminder) error {
	r.UpdatedAt = time.Now().UTC()

	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid reminder: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE reminders SET
			title = ?, description = ?, category = ?, mode = ?, priority = ?,
			due_at = ?, window_start = ?, window_end = ?, period_minutes = ?,
			repeat_scope = ?, sound_ref = ?, last_fired_at = ?, fired_count = ?,
			is_completed = ?, updated_at = ?
		WHERE id = ?`,
		r.Title, r.Description, r.Category, r.Mode, r.Priority,
		r.DueAt, r.WindowStart, r.WindowEnd, r.PeriodMinutes,
		r.RepeatScope, r.SoundRef, r.LastFiredAt, r.FiredCount,
		boolToInt(r.IsCompleted), r.UpdatedAt,
		r.ID,
	)
	if err != nil {
		return fmt.Errorf("updating reminder %s: %w", r.ID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("reminder %s not found", r.ID)
	}
	return nil
}

// DeleteReminder removes a reminder by ID.
func (s *SQLiteStore) DeleteReminder(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM reminders WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting reminder %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("reminder %s not found", id)
	}
	return nil
}

// GetReminderByID retrieves a single reminder by its ID.
func (s *SQLiteStore) GetReminderByID(
	ctx context.Context,
	id string,
) (*model.Reminder, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT * FROM reminders WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("getting reminder %s: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, fmt.Errorf("reminder %s not found", id)
	}
	r, err := scanReminder(rows)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetReminders retrieves reminders matching the provided filter.
func (s *SQLiteStore) GetReminders(
	ctx context.Context,
	filter ReminderFilter,
) ([]model.Reminder, error) {
	query, args := buildReminderQuery("SELECT *", filter)

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying reminders: %w", err)
	}
	defer rows.Close()

	var reminders []model.Reminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

// CountReminders returns the number of reminders matching the filter.
func (s *SQLiteStore) CountReminders(
	ctx context.Context,
	filter ReminderFilter,
) (int, error) {
	filter.Limit = 0
	filter.Offset = 0
	query, args := buildReminderQuery("SELECT COUNT(*)", filter)

	var count int
	if err := s.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("counting reminders: %w", err)
	}
	return count, nil
}

// SetCompleted flips the completion flag on a reminder.
func (s *SQLiteStore) SetCompleted(ctx context.Context, id string, completed bool) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE reminders SET is_completed = ?, updated_at = ? WHERE id = ?`,
		boolToInt(completed), time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("setting completion for reminder %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("reminder %s not found", id)
	}
	return nil
}

// CommitEvaluated persists the firing fields for a batch of reminders in
// one transaction. Called at the end of a tick so the next tick reads a
// consistent set.
func (s *SQLiteStore) CommitEvaluated(
	ctx context.Context,
	reminders []model.Reminder,
) error {
	if len(reminders) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		UPDATE reminders SET
			last_fired_at = ?, fired_count = ?, is_completed = ?, updated_at = ?
		WHERE id = ?`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing commit statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range reminders {
		_, err = stmt.ExecContext(ctx,
			r.LastFiredAt, r.FiredCount, boolToInt(r.IsCompleted),
			r.UpdatedAt.UTC(), r.ID,
		)
		if err != nil {
			return fmt.Errorf("committing reminder %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// buildReminderQuery assembles the WHERE/ORDER BY/LIMIT clauses for a
// reminder query with the given SELECT prefix.
func buildReminderQuery(selectClause string, filter ReminderFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	switch filter.Status {
	case StatusUpcoming:
		conditions = append(conditions, "is_completed = 0")
	case StatusCompleted:
		conditions = append(conditions, "is_completed = 1")
	}

	if filter.Category != nil {
		conditions = append(conditions, "category = ?")
		args = append(args, *filter.Category)
	}
	if filter.Query != nil && *filter.Query != "" {
		conditions = append(conditions, "(title LIKE ? OR description LIKE ?)")
		q := "%" + *filter.Query + "%"
		args = append(args, q, q)
	}

	query := selectClause + " FROM reminders"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	if !strings.HasPrefix(selectClause, "SELECT COUNT") {
		sortBy := "created_at"
		allowedSorts := map[string]bool{
			"title":      true,
			"priority":   true,
			"created_at": true,
			"updated_at": true,
		}
		if allowedSorts[filter.SortBy] {
			sortBy = filter.SortBy
		}

		direction := "DESC"
		if filter.SortAsc {
			direction = "ASC"
		}
		query += fmt.Sprintf(" ORDER BY %s %s", sortBy, direction)

		if filter.Limit > 0 {
			query += fmt.Sprintf(" LIMIT %d", filter.Limit)
		}
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", filter.Offset)
		}
	}

	return query, args
}

// scanReminder scans a reminder row from a sqlx.Rows result set.
func scanReminder(rows *sqlx.Rows) (model.Reminder, error) {
	var (
		r            model.Reminder
		dueAt        *time.Time
		lastFiredAt  *time.Time
		completedInt int
	)

	err := rows.Scan(
		&r.ID, &r.Title, &r.Description, &r.Category, &r.Mode, &r.Priority,
		&dueAt, &r.WindowStart, &r.WindowEnd, &r.PeriodMinutes, &r.RepeatScope,
		&r.SoundRef, &lastFiredAt, &r.FiredCount, &completedInt,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("scanning reminder row: %w", err)
	}

	r.DueAt = dueAt
	r.LastFiredAt = lastFiredAt
	r.IsCompleted = completedInt != 0

	return r, nil
}
