package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/miniremind/internal/model"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newOnce(title string) model.Reminder {
	due := time.Date(2024, 1, 8, 15, 0, 0, 0, time.UTC)
	return model.Reminder{
		Title:    title,
		Category: model.CategoryGeneral,
		Mode:     model.ModeOnce,
		DueAt:    &due,
	}
}

func newInterval(title string) model.Reminder {
	return model.Reminder{
		Title:         title,
		Category:      model.CategoryWater,
		Mode:          model.ModeInterval,
		WindowStart:   "09:00",
		WindowEnd:     "18:00",
		PeriodMinutes: 30,
		RepeatScope:   model.RepeatDaily,
	}
}

func TestCreateAndGetReminder(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	created, err := s.CreateReminder(ctx, newInterval("Drink water"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := s.GetReminderByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drink water", got.Title)
	assert.Equal(t, model.ModeInterval, got.Mode)
	assert.Equal(t, 30, got.PeriodMinutes)
	assert.Equal(t, 0, got.FiredCount)
	assert.Nil(t, got.LastFiredAt)
	assert.False(t, got.IsCompleted)
}

func TestCreateRejectsInvalidReminder(t *testing.T) {
	s := setupTestStore(t)

	r := newInterval("Broken")
	r.PeriodMinutes = 0
	_, err := s.CreateReminder(context.Background(), r)
	assert.Error(t, err)
}

func TestUpdateReminder(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	created, err := s.CreateReminder(ctx, newInterval("Drink water"))
	require.NoError(t, err)

	created.Title = "Hydrate"
	created.PeriodMinutes = 45
	require.NoError(t, s.UpdateReminder(ctx, *created))

	got, err := s.GetReminderByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hydrate", got.Title)
	assert.Equal(t, 45, got.PeriodMinutes)
}

func TestUpdateMissingReminder(t *testing.T) {
	s := setupTestStore(t)

	r := newOnce("Ghost")
	r.ID = "nope"
	r.CreatedAt = time.Now().UTC()
	err := s.UpdateReminder(context.Background(), r)
	assert.Error(t, err)
}

func TestDeleteReminder(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	created, err := s.CreateReminder(ctx, newOnce("Call dentist"))
	require.NoError(t, err)

	require.NoError(t, s.DeleteReminder(ctx, created.ID))

	_, err = s.GetReminderByID(ctx, created.ID)
	assert.Error(t, err)

	assert.Error(t, s.DeleteReminder(ctx, created.ID))
}

func TestGetRemindersFilters(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.CreateReminder(ctx, newOnce("Call dentist"))
	require.NoError(t, err)
	water, err := s.CreateReminder(ctx, newInterval("Drink water"))
	require.NoError(t, err)
	require.NoError(t, s.SetCompleted(ctx, water.ID, true))

	all, err := s.GetReminders(ctx, ReminderFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	upcoming, err := s.GetReminders(ctx, ReminderFilter{Status: StatusUpcoming})
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Call dentist", upcoming[0].Title)

	completed, err := s.GetReminders(ctx, ReminderFilter{Status: StatusCompleted})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "Drink water", completed[0].Title)

	cat := model.CategoryWater
	byCat, err := s.GetReminders(ctx, ReminderFilter{Category: &cat})
	require.NoError(t, err)
	assert.Len(t, byCat, 1)

	q := "dentist"
	byQuery, err := s.GetReminders(ctx, ReminderFilter{Query: &q})
	require.NoError(t, err)
	assert.Len(t, byQuery, 1)

	count, err := s.CountReminders(ctx, ReminderFilter{Status: StatusUpcoming})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCommitEvaluatedPersistsFiringFields(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	created, err := s.CreateReminder(ctx, newInterval("Drink water"))
	require.NoError(t, err)

	firedAt := time.Date(2024, 1, 8, 9, 30, 0, 0, time.UTC)
	created.LastFiredAt = &firedAt
	created.FiredCount = 1
	created.UpdatedAt = firedAt

	require.NoError(t, s.CommitEvaluated(ctx, []model.Reminder{*created}))

	got, err := s.GetReminderByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastFiredAt)
	assert.True(t, got.LastFiredAt.Equal(firedAt))
	assert.Equal(t, 1, got.FiredCount)
}

func TestCommitEvaluatedEmptyIsNoop(t *testing.T) {
	s := setupTestStore(t)
	assert.NoError(t, s.CommitEvaluated(context.Background(), nil))
}
