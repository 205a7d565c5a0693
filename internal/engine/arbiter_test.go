package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/miniremind/internal/model"
)

// recordingNotifier captures notification dispatches for assertions.
type recordingNotifier struct {
	titles []string
	bodies []string
}

func (n *recordingNotifier) Notify(title, body string) {
	n.titles = append(n.titles, title)
	n.bodies = append(n.bodies, body)
}

// recordingPlayer captures sound playback requests.
type recordingPlayer struct {
	played []string
}

func (p *recordingPlayer) Play(soundRef string) {
	p.played = append(p.played, soundRef)
}

func TestFireActivatesFirstInOrder(t *testing.T) {
	a := NewArbiter(nil, nil, "")

	first := onceReminder(monday)
	first.ID = "first"
	second := onceReminder(monday)
	second.ID = "second"

	activated := a.Fire([]model.Reminder{first, second})
	require.NotNil(t, activated)
	assert.Equal(t, "first", activated.ID)

	active := a.Active()
	require.NotNil(t, active)
	assert.Equal(t, "first", active.ID)
}

func TestFireDoesNotPreemptActiveAlert(t *testing.T) {
	a := NewArbiter(nil, nil, "")

	first := onceReminder(monday)
	first.ID = "first"
	a.Fire([]model.Reminder{first})

	later := onceReminder(monday)
	later.ID = "later"
	activated := a.Fire([]model.Reminder{later})

	assert.Nil(t, activated)
	require.NotNil(t, a.Active())
	assert.Equal(t, "first", a.Active().ID)
}

func TestFireWithNothingFired(t *testing.T) {
	a := NewArbiter(nil, nil, "")
	assert.Nil(t, a.Fire(nil))
	assert.Nil(t, a.Active())
}

func TestDismissClearsWithoutRecordChange(t *testing.T) {
	a := NewArbiter(nil, nil, "")
	r := onceReminder(monday)
	a.Fire([]model.Reminder{r})

	a.Dismiss()
	assert.Nil(t, a.Active())
}

func TestCompleteOnceMarksTerminal(t *testing.T) {
	e := NewEvaluator(DefaultGraceWindow)
	a := NewArbiter(nil, nil, "")

	due := monday
	res := e.Evaluate(due.Add(time.Second), []model.Reminder{onceReminder(due)})
	require.Len(t, res.Fired, 1)
	a.Fire(res.Fired)

	completed := a.Complete()
	require.NotNil(t, completed)
	assert.True(t, completed.IsCompleted)
	assert.Nil(t, a.Active())

	// Round trip: a completed once reminder never fires again.
	res.Updated[0] = *completed
	res2 := e.Evaluate(due.Add(2*time.Second), res.Updated)
	assert.Empty(t, res2.Fired)
}

func TestCompleteIntervalOnlyClearsSlot(t *testing.T) {
	a := NewArbiter(nil, nil, "")
	r := intervalReminder(monday, "09:00", "18:00", 30)
	a.Fire([]model.Reminder{r})

	completed := a.Complete()
	assert.Nil(t, completed)
	assert.Nil(t, a.Active())
}

func TestCompleteWhileIdle(t *testing.T) {
	a := NewArbiter(nil, nil, "")
	assert.Nil(t, a.Complete())
}

func TestActivationSideEffects(t *testing.T) {
	n := &recordingNotifier{}
	p := &recordingPlayer{}
	a := NewArbiter(n, p, "default.mp3")

	r := onceReminder(monday)
	r.Description = "Annual checkup"
	a.Fire([]model.Reminder{r})

	require.Len(t, n.titles, 1)
	assert.Equal(t, r.Title, n.titles[0])
	assert.Equal(t, "Annual checkup", n.bodies[0])

	require.Len(t, p.played, 1)
	assert.Equal(t, "default.mp3", p.played[0])
}

func TestActivationUsesPerReminderSound(t *testing.T) {
	p := &recordingPlayer{}
	a := NewArbiter(nil, p, "default.mp3")

	r := onceReminder(monday)
	r.SoundRef = "chime.wav"
	a.Fire([]model.Reminder{r})

	require.Len(t, p.played, 1)
	assert.Equal(t, "chime.wav", p.played[0])
}

func TestNoSideEffectsWhileActive(t *testing.T) {
	n := &recordingNotifier{}
	a := NewArbiter(n, nil, "")

	a.Fire([]model.Reminder{onceReminder(monday)})
	a.Fire([]model.Reminder{onceReminder(monday)})

	assert.Len(t, n.titles, 1)
}
