// Package scheduler owns the reminder collection at runtime: it drives
// the trigger engine on a fixed cadence, commits firing-field updates
// back to the store before the next tick reads it, and publishes results
// to the Bubble Tea runtime as messages.
package scheduler

import (
	"context"
	"log"
	gosync "sync"
	"time"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/miniremind/internal/engine"
	"github.com/nhle/miniremind/internal/model"
	"github.com/nhle/miniremind/internal/store"
)

// tickTimeout is the maximum time allowed for one evaluation pass
// including its store round trips.
const tickTimeout = 10 * time.Second

// TickResultMsg is a tea.Msg sent after a tick that changed state.
type TickResultMsg struct {
	// FiredCount is how many reminders became due this tick.
	FiredCount int

	// Activated is the reminder that became the active alert, if the
	// alert slot was idle. Nil when an alert was already showing.
	Activated *model.Reminder

	// Err reports a store failure during the tick. Firing-state
	// transitions proceed regardless; the error is informational.
	Err error
}

// Scheduler runs the evaluation loop. Reminders are read from and written
// to the store only inside the loop goroutine, so each tick sees the
// previous tick fully committed.
type Scheduler struct {
	store    store.Store
	clock    clock.Clock
	eval     *engine.Evaluator
	arbiter  *engine.Arbiter
	interval time.Duration

	resultCh  chan TickResultMsg
	triggerCh chan struct{}
	stopCh    chan struct{}
	mu        gosync.Mutex
	running   bool
}

// New creates a Scheduler. The clock is injectable so tests can drive a
// mock; production callers pass clock.New().
func New(
	s store.Store,
	clk clock.Clock,
	eval *engine.Evaluator,
	arb *engine.Arbiter,
	interval time.Duration,
) *Scheduler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Scheduler{
		store:     s,
		clock:     clk,
		eval:      eval,
		arbiter:   arb,
		interval:  interval,
		resultCh:  make(chan TickResultMsg, 16),
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

// Start launches the tick loop goroutine and returns a subscription
// command that delivers TickResultMsg values to the Bubble Tea runtime.
func (s *Scheduler) Start() tea.Cmd {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return s.waitForResult()
	}
	s.running = true
	s.mu.Unlock()

	go s.run()

	return s.waitForResult()
}

// Stop halts the tick loop at the next tick boundary. No reminder state
// is left inconsistent: all mutation happens at the end of a completed
// evaluation.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	close(s.stopCh)
	s.running = false
}

// TickNow requests an immediate evaluation outside the regular cadence.
func (s *Scheduler) TickNow() tea.Cmd {
	select {
	case s.triggerCh <- struct{}{}:
	default:
	}
	return nil
}

// Active returns the currently active alert, if any.
func (s *Scheduler) Active() *model.Reminder {
	return s.arbiter.Active()
}

// Dismiss clears the active alert without touching the reminder record.
func (s *Scheduler) Dismiss() {
	s.arbiter.Dismiss()
}

// Complete acknowledges the active alert. A once reminder is marked
// completed and the change is persisted; the updated record is returned.
func (s *Scheduler) Complete(ctx context.Context) (*model.Reminder, error) {
	completed := s.arbiter.Complete()
	if completed == nil {
		return nil, nil
	}

	completed.UpdatedAt = s.clock.Now()
	if err := s.store.CommitEvaluated(ctx, []model.Reminder{*completed}); err != nil {
		return completed, err
	}
	return completed, nil
}

// run is the tick loop. It exits when Stop is called.
func (s *Scheduler) run() {
	ticker := s.clock.Ticker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.tick()
		case <-s.triggerCh:
			s.tick()
		}
	}
}

// tick performs one full evaluation pass against a single `now` sample:
// load, evaluate, commit, arbitrate, publish.
func (s *Scheduler) tick() {
	now := s.clock.Now()

	ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
	defer cancel()

	// Creation order keeps arbitration deterministic across ticks.
	reminders, err := s.store.GetReminders(ctx, store.ReminderFilter{
		SortBy:  "created_at",
		SortAsc: true,
	})
	if err != nil {
		s.sendResult(TickResultMsg{Err: err})
		return
	}

	res := s.eval.Evaluate(now, reminders)
	if !res.Changed {
		return
	}

	// Commit before arbitration side effects; a commit failure is
	// reported but does not block the in-app alert.
	commitErr := s.store.CommitEvaluated(ctx, res.Fired)
	if commitErr != nil {
		log.Printf("committing tick updates: %v", commitErr)
	}

	activated := s.arbiter.Fire(res.Fired)

	s.sendResult(TickResultMsg{
		FiredCount: len(res.Fired),
		Activated:  activated,
		Err:        commitErr,
	})
}

// sendResult sends a TickResultMsg without blocking the tick loop.
func (s *Scheduler) sendResult(msg TickResultMsg) {
	select {
	case s.resultCh <- msg:
	default:
		// Drop if the UI is not draining; the next tick supersedes it.
	}
}

// waitForResult returns a tea.Cmd that waits for the next tick result.
func (s *Scheduler) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-s.resultCh
		if !ok {
			return nil
		}
		return result
	}
}

// WaitForNextResult returns a tea.Cmd that waits for the next tick result.
// Call after processing a TickResultMsg to keep the subscription alive.
func (s *Scheduler) WaitForNextResult() tea.Cmd {
	return s.waitForResult()
}
