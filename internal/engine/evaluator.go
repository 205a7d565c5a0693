package engine

import (
	"log"
	"time"

	"github.com/nhle/miniremind/internal/model"
)

// DefaultGraceWindow is how long after its due instant a once reminder may
// still fire. A process that misses the window (asleep, suspended) simply
// never fires that reminder; stale pop-ups are worse than silence.
const DefaultGraceWindow = 60 * time.Second

// jitterTolerance is subtracted from the interval period so a tick landing
// a moment early (e.g. 29m59.2s after the last firing of a 30m reminder)
// still counts as due.
const jitterTolerance = 2 * time.Second

// Result is the outcome of a single evaluation pass.
type Result struct {
	// Fired holds the reminders that became due this tick, in input order.
	Fired []model.Reminder

	// Updated is the full reminder set with firing fields advanced. It is
	// always a fresh slice; the input is never mutated.
	Updated []model.Reminder

	// Changed reports whether any record differs from its input.
	Changed bool
}

// Evaluator decides, for one wall-clock sample, which reminders must fire.
// It is a pure function over its inputs: no I/O, no retained state beyond
// the configured tolerances, safe to call at any cadence.
type Evaluator struct {
	grace time.Duration
}

// NewEvaluator creates an Evaluator with the given grace window for once
// reminders. A non-positive grace falls back to DefaultGraceWindow.
func NewEvaluator(grace time.Duration) *Evaluator {
	if grace <= 0 {
		grace = DefaultGraceWindow
	}
	return &Evaluator{grace: grace}
}

// Evaluate inspects every reminder against a single `now` sample and
// returns the ones that fire plus the updated set. All reminders in one
// pass see the same `now`; a malformed record is skipped rather than
// aborting the rest of the pass.
func (e *Evaluator) Evaluate(now time.Time, reminders []model.Reminder) Result {
	res := Result{
		Updated: make([]model.Reminder, len(reminders)),
	}

	for i, r := range reminders {
		res.Updated[i] = r

		if !e.shouldFire(now, r) {
			continue
		}

		fired := r
		firedAt := now
		fired.LastFiredAt = &firedAt
		fired.FiredCount++
		fired.UpdatedAt = now

		res.Updated[i] = fired
		res.Fired = append(res.Fired, fired)
		res.Changed = true
	}

	return res
}

// shouldFire applies the per-reminder trigger decision.
func (e *Evaluator) shouldFire(now time.Time, r model.Reminder) bool {
	// Completed reminders never fire. For once reminders this is the
	// terminal state; for interval reminders completion acts as a pause
	// until the user reopens them.
	if r.IsCompleted {
		return false
	}

	if err := r.Validate(); err != nil {
		log.Printf("skipping malformed reminder %s: %v", r.ID, err)
		return false
	}

	switch r.Mode {
	case model.ModeOnce:
		return e.onceDue(now, r)
	case model.ModeInterval:
		return e.intervalDue(now, r)
	default:
		return false
	}
}

// onceDue reports whether a once reminder is inside its grace window and
// has never fired. Once LastFiredAt is set the reminder is done for good.
func (e *Evaluator) onceDue(now time.Time, r model.Reminder) bool {
	if r.LastFiredAt != nil {
		return false
	}
	elapsed := now.Sub(*r.DueAt)
	return elapsed >= 0 && elapsed < e.grace
}

// intervalDue reports whether an interval reminder is inside its daily
// window with at least one period elapsed since its reference instant.
func (e *Evaluator) intervalDue(now time.Time, r model.Reminder) bool {
	// Workdays-only reminders are suppressed for the whole day on
	// weekends, independent of the time window.
	if r.RepeatScope == model.RepeatWorkdays && isWeekend(now) {
		return false
	}

	current := model.ClockTime(now)
	if current < r.WindowStart || current > r.WindowEnd {
		return false
	}

	return now.Sub(r.Reference()) >= r.Period()-jitterTolerance
}

// isWeekend reports whether t falls on a Saturday or Sunday.
func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
