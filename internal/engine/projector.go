package engine

import (
	"fmt"
	"time"

	"github.com/nhle/miniremind/internal/model"
)

// Urgency is the coarse attention level derived from a reminder's next
// due instant. Display surfaces map it to colour and emphasis.
type Urgency int

const (
	// UrgencyChill means the next firing is five minutes or more away.
	UrgencyChill Urgency = iota
	// UrgencyAlert means the next firing is within five minutes.
	UrgencyAlert
	// UrgencyUrgent means the next firing is within one minute.
	UrgencyUrgent
	// UrgencyFired means the due instant has passed.
	UrgencyFired
)

// Urgency thresholds.
const (
	urgentThreshold = time.Minute
	alertThreshold  = 5 * time.Minute
)

// Countdown display markers.
const (
	FiredMarker     = "!!!"
	IdlePlaceholder = "--:--"
)

// String returns the lowercase name of the urgency level.
func (u Urgency) String() string {
	switch u {
	case UrgencyChill:
		return "chill"
	case UrgencyAlert:
		return "alert"
	case UrgencyUrgent:
		return "urgent"
	case UrgencyFired:
		return "fired"
	default:
		return "unknown"
	}
}

// Project derives the human-facing countdown string and urgency level for
// a reminder at the given instant. It is a pure function of (now, r): it
// never mutates the record and is safe to call at any cadence, decoupled
// from the tick loop. A nil or malformed reminder yields the idle
// placeholder.
//
// The next-due computation uses the same reference rule as the evaluator,
// so the countdown and the actual firing condition never disagree.
func Project(now time.Time, r *model.Reminder) (string, Urgency) {
	if r == nil {
		return IdlePlaceholder, UrgencyChill
	}

	nextDue, ok := r.NextDue()
	if !ok {
		return IdlePlaceholder, UrgencyChill
	}

	diff := nextDue.Sub(now)
	if diff <= 0 {
		return FiredMarker, UrgencyFired
	}

	display := fmt.Sprintf("%02d:%02d", int(diff.Minutes()), int(diff.Seconds())%60)

	switch {
	case diff < urgentThreshold:
		return display, UrgencyUrgent
	case diff < alertThreshold:
		return display, UrgencyAlert
	default:
		return display, UrgencyChill
	}
}
