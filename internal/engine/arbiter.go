package engine

import (
	"sync"

	"github.com/nhle/miniremind/internal/model"
)

// Notifier dispatches an OS-level notification. Delivery is best-effort;
// implementations must never block the caller on failure.
type Notifier interface {
	Notify(title, body string)
}

// Player plays an alert sound identified by soundRef (a file path or URL).
// Playback is best-effort and fire-and-forget.
type Player interface {
	Play(soundRef string)
}

// Arbiter owns the single active-alert slot. It is a two-state machine,
// idle or active(reminder): the first reminder fired while idle becomes
// active, and later firings never preempt it. The slot is cleared only by
// Dismiss or Complete.
//
// The slot is shared between the scheduler goroutine and the UI, so all
// access goes through the mutex.
type Arbiter struct {
	mu     sync.Mutex
	active *model.Reminder

	notifier     Notifier
	player       Player
	defaultSound string
}

// NewArbiter creates an Arbiter with the given collaborators. Either may
// be nil, in which case that side effect is skipped.
func NewArbiter(n Notifier, p Player, defaultSound string) *Arbiter {
	return &Arbiter{
		notifier:     n,
		player:       p,
		defaultSound: defaultSound,
	}
}

// Fire offers the reminders fired in one tick to the alert slot. If the
// slot is idle and fired is non-empty, the first reminder (evaluator input
// order) becomes active and is returned; otherwise nil. Activation
// triggers the notification and sound collaborators; their failures are
// theirs to swallow, the in-app alert is the primary channel.
func (a *Arbiter) Fire(fired []model.Reminder) *model.Reminder {
	if len(fired) == 0 {
		return nil
	}

	a.mu.Lock()
	if a.active != nil {
		a.mu.Unlock()
		return nil
	}
	r := fired[0]
	a.active = &r
	a.mu.Unlock()

	if a.notifier != nil {
		a.notifier.Notify(r.Title, alertBody(r))
	}
	if a.player != nil {
		sound := r.SoundRef
		if sound == "" {
			sound = a.defaultSound
		}
		if sound != "" {
			a.player.Play(sound)
		}
	}

	return &r
}

// Active returns a copy of the currently active reminder, or nil when the
// slot is idle.
func (a *Arbiter) Active() *model.Reminder {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.active == nil {
		return nil
	}
	r := *a.active
	return &r
}

// Dismiss clears the active alert without touching the reminder record.
func (a *Arbiter) Dismiss() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.active = nil
}

// Complete clears the active alert and, for a once reminder, marks the
// record completed. The mutated record is returned so the caller can
// persist it; completing an interval reminder returns nil because the
// firing-time increment already recorded the occurrence.
func (a *Arbiter) Complete() *model.Reminder {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.active == nil {
		return nil
	}

	r := *a.active
	a.active = nil

	if r.Mode != model.ModeOnce {
		return nil
	}
	r.IsCompleted = true
	return &r
}

// alertBody picks the notification body text for a reminder.
func alertBody(r model.Reminder) string {
	if r.Description != "" {
		return r.Description
	}
	return "Time for: " + r.Title
}
