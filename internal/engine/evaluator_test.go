package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/miniremind/internal/model"
)

// Monday and Sunday anchors for weekday-sensitive tests.
var (
	monday = time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	sunday = time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC)
)

func onceReminder(due time.Time) model.Reminder {
	return model.Reminder{
		ID:        "once-1",
		Title:     "Call dentist",
		Category:  model.CategoryGeneral,
		Mode:      model.ModeOnce,
		Priority:  model.PriorityMedium,
		DueAt:     &due,
		CreatedAt: due.Add(-time.Hour),
	}
}

func intervalReminder(created time.Time, start, end string, period int) model.Reminder {
	return model.Reminder{
		ID:            "interval-1",
		Title:         "Drink water",
		Category:      model.CategoryWater,
		Mode:          model.ModeInterval,
		Priority:      model.PriorityMedium,
		WindowStart:   start,
		WindowEnd:     end,
		PeriodMinutes: period,
		RepeatScope:   model.RepeatDaily,
		CreatedAt:     created,
	}
}

func TestOnceFiresWithinGrace(t *testing.T) {
	e := NewEvaluator(DefaultGraceWindow)
	due := monday
	r := onceReminder(due)

	res := e.Evaluate(due.Add(10*time.Second), []model.Reminder{r})
	require.Len(t, res.Fired, 1)
	assert.True(t, res.Changed)
	assert.Equal(t, 1, res.Fired[0].FiredCount)
	require.NotNil(t, res.Fired[0].LastFiredAt)
	assert.Equal(t, due.Add(10*time.Second), *res.Fired[0].LastFiredAt)

	// A later pass over the updated set must not fire it again.
	res2 := e.Evaluate(due.Add(70*time.Second), res.Updated)
	assert.Empty(t, res2.Fired)
	assert.False(t, res2.Changed)
}

func TestOnceMissedGraceNeverFires(t *testing.T) {
	e := NewEvaluator(DefaultGraceWindow)
	due := monday
	r := onceReminder(due)

	// Exactly at the grace boundary the window is already closed.
	res := e.Evaluate(due.Add(60*time.Second), []model.Reminder{r})
	assert.Empty(t, res.Fired)

	res = e.Evaluate(due.Add(time.Hour), []model.Reminder{r})
	assert.Empty(t, res.Fired)
}

func TestOnceNotDueBeforeDueAt(t *testing.T) {
	e := NewEvaluator(DefaultGraceWindow)
	due := monday
	r := onceReminder(due)

	res := e.Evaluate(due.Add(-time.Second), []model.Reminder{r})
	assert.Empty(t, res.Fired)
}

func TestOnceIdempotentUnderRepeatedEvaluation(t *testing.T) {
	e := NewEvaluator(DefaultGraceWindow)
	due := monday
	set := []model.Reminder{onceReminder(due)}

	totalFirings := 0
	for offset := time.Duration(0); offset < 3*time.Minute; offset += time.Second {
		res := e.Evaluate(due.Add(offset), set)
		totalFirings += len(res.Fired)
		set = res.Updated
	}

	assert.Equal(t, 1, totalFirings)
	assert.Equal(t, 1, set[0].FiredCount)
}

func TestIntervalFiresAfterPeriodInsideWindow(t *testing.T) {
	e := NewEvaluator(DefaultGraceWindow)
	created := monday // 09:00:00
	r := intervalReminder(created, "09:00", "18:00", 30)

	// 09:30:05 — a full period since creation has elapsed.
	res := e.Evaluate(created.Add(30*time.Minute+5*time.Second), []model.Reminder{r})
	require.Len(t, res.Fired, 1)
	assert.Equal(t, 1, res.Fired[0].FiredCount)

	// 09:45:00 — only 14m55s since the last firing.
	res2 := e.Evaluate(created.Add(45*time.Minute), res.Updated)
	assert.Empty(t, res2.Fired)

	// 10:00:05 — next period elapsed, fires again.
	res3 := e.Evaluate(created.Add(60*time.Minute+5*time.Second), res2.Updated)
	require.Len(t, res3.Fired, 1)
	assert.Equal(t, 2, res3.Fired[0].FiredCount)
}

func TestIntervalJitterTolerance(t *testing.T) {
	e := NewEvaluator(DefaultGraceWindow)
	created := monday
	r := intervalReminder(created, "09:00", "18:00", 30)

	// 1s short of the period is still within the 2s jitter tolerance.
	res := e.Evaluate(created.Add(30*time.Minute-time.Second), []model.Reminder{r})
	assert.Len(t, res.Fired, 1)

	// 3s short is not.
	res = e.Evaluate(created.Add(30*time.Minute-3*time.Second), []model.Reminder{r})
	assert.Empty(t, res.Fired)
}

func TestIntervalOutsideWindow(t *testing.T) {
	e := NewEvaluator(DefaultGraceWindow)
	created := monday.Add(-24 * time.Hour)
	r := intervalReminder(created, "09:00", "18:00", 30)

	cases := []struct {
		name string
		at   time.Time
		want int
	}{
		{"before window", monday.Add(-10 * time.Minute), 0}, // 08:50
		{"window start", monday, 1},                         // 09:00
		{"inside window", monday.Add(4 * time.Hour), 1},     // 13:00
		{"after window", monday.Add(10 * time.Hour), 0},     // 19:00
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := e.Evaluate(tc.at, []model.Reminder{r})
			assert.Len(t, res.Fired, tc.want)
		})
	}
}

func TestWorkdaysOnlySuppressedOnWeekend(t *testing.T) {
	e := NewEvaluator(DefaultGraceWindow)
	r := intervalReminder(sunday.Add(-48*time.Hour), "09:00", "18:00", 30)
	r.RepeatScope = model.RepeatWorkdays

	// Sunday, inside the window, far past the period: still suppressed.
	res := e.Evaluate(sunday.Add(time.Hour), []model.Reminder{r})
	assert.Empty(t, res.Fired)

	// Same reminder on Monday fires.
	res = e.Evaluate(monday.Add(time.Hour), []model.Reminder{r})
	assert.Len(t, res.Fired, 1)
}

func TestCompletedRemindersNeverFire(t *testing.T) {
	e := NewEvaluator(DefaultGraceWindow)

	once := onceReminder(monday)
	once.IsCompleted = true

	interval := intervalReminder(monday.Add(-2*time.Hour), "00:00", "23:59", 30)
	interval.IsCompleted = true

	res := e.Evaluate(monday.Add(5*time.Second), []model.Reminder{once, interval})
	assert.Empty(t, res.Fired)
	assert.False(t, res.Changed)
}

func TestMalformedReminderSkippedWithoutAbortingPass(t *testing.T) {
	e := NewEvaluator(DefaultGraceWindow)
	due := monday

	broken := intervalReminder(due.Add(-2*time.Hour), "", "", 0)
	broken.ID = "broken"
	ok := onceReminder(due)

	res := e.Evaluate(due.Add(5*time.Second), []model.Reminder{broken, ok})
	require.Len(t, res.Fired, 1)
	assert.Equal(t, ok.ID, res.Fired[0].ID)
	assert.Len(t, res.Updated, 2)
}

func TestSimultaneousFiringsKeepInputOrder(t *testing.T) {
	e := NewEvaluator(DefaultGraceWindow)
	due := monday

	first := onceReminder(due)
	first.ID = "first"
	second := onceReminder(due)
	second.ID = "second"

	res := e.Evaluate(due.Add(time.Second), []model.Reminder{first, second})
	require.Len(t, res.Fired, 2)
	assert.Equal(t, "first", res.Fired[0].ID)
	assert.Equal(t, "second", res.Fired[1].ID)
}

func TestEvaluateDoesNotMutateInput(t *testing.T) {
	e := NewEvaluator(DefaultGraceWindow)
	due := monday
	input := []model.Reminder{onceReminder(due)}

	res := e.Evaluate(due.Add(time.Second), input)
	require.Len(t, res.Fired, 1)

	assert.Nil(t, input[0].LastFiredAt)
	assert.Equal(t, 0, input[0].FiredCount)
}

func TestConfigurableGraceWindow(t *testing.T) {
	e := NewEvaluator(5 * time.Minute)
	due := monday
	r := onceReminder(due)

	// 70s late would miss the default grace but not a 5m one.
	res := e.Evaluate(due.Add(70*time.Second), []model.Reminder{r})
	assert.Len(t, res.Fired, 1)
}
