package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/miniremind/internal/model"
)

func TestProjectIdleWithoutReminder(t *testing.T) {
	display, urgency := Project(monday, nil)
	assert.Equal(t, IdlePlaceholder, display)
	assert.Equal(t, UrgencyChill, urgency)
}

func TestProjectOnceCountdown(t *testing.T) {
	cases := []struct {
		name        string
		until       time.Duration
		wantDisplay string
		wantUrgency Urgency
	}{
		{"ten minutes out", 10 * time.Minute, "10:00", UrgencyChill},
		{"five minutes out", 5 * time.Minute, "05:00", UrgencyChill},
		{"inside alert band", 4 * time.Minute, "04:00", UrgencyAlert},
		{"inside urgent band", 30 * time.Second, "00:30", UrgencyUrgent},
		{"due now", 0, FiredMarker, UrgencyFired},
		{"past due", -time.Minute, FiredMarker, UrgencyFired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			due := monday.Add(tc.until)
			r := onceReminder(due)
			display, urgency := Project(monday, &r)
			assert.Equal(t, tc.wantDisplay, display)
			assert.Equal(t, tc.wantUrgency, urgency)
		})
	}
}

func TestProjectIntervalUsesReferenceRule(t *testing.T) {
	created := monday
	r := intervalReminder(created, "09:00", "18:00", 30)

	// Never fired: countdown runs from creation.
	display, urgency := Project(created.Add(20*time.Minute), &r)
	assert.Equal(t, "10:00", display)
	assert.Equal(t, UrgencyChill, urgency)

	// After a firing the countdown restarts from LastFiredAt.
	firedAt := created.Add(30 * time.Minute)
	r.LastFiredAt = &firedAt
	display, urgency = Project(firedAt.Add(29*time.Minute+30*time.Second), &r)
	assert.Equal(t, "00:30", display)
	assert.Equal(t, UrgencyUrgent, urgency)
}

func TestProjectMalformedReminderIsIdle(t *testing.T) {
	r := model.Reminder{Mode: model.ModeOnce} // no DueAt
	display, urgency := Project(monday, &r)
	assert.Equal(t, IdlePlaceholder, display)
	assert.Equal(t, UrgencyChill, urgency)
}

// The projector and the evaluator must agree: when the projector reports
// an interval reminder as fired, an evaluation at the same instant inside
// the window fires it.
func TestProjectFiredMatchesEvaluator(t *testing.T) {
	e := NewEvaluator(DefaultGraceWindow)
	created := monday
	r := intervalReminder(created, "09:00", "18:00", 30)

	at := created.Add(31 * time.Minute)
	_, urgency := Project(at, &r)
	require.Equal(t, UrgencyFired, urgency)

	res := e.Evaluate(at, []model.Reminder{r})
	assert.Len(t, res.Fired, 1)
}

func TestUrgencyString(t *testing.T) {
	assert.Equal(t, "chill", UrgencyChill.String())
	assert.Equal(t, "alert", UrgencyAlert.String())
	assert.Equal(t, "urgent", UrgencyUrgent.String())
	assert.Equal(t, "fired", UrgencyFired.String())
}
