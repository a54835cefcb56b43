package timer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type State int

const (
	StatePending State = iota
	StateRunning
	StatePaused
	StateFinished
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateFinished:
		return "finished"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

type Timer struct {
	ID        string
	Label     string
	Duration  time.Duration
	CreatedAt time.Time
	StartedAt time.Time
	EndTime   time.Time // expected end, moved forward on resume
	State     State
	Alerted   bool

	clock     Clock
	remaining time.Duration // frozen while paused
}

func New(label string, duration time.Duration, clock Clock) (*Timer, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("creating timer %q: %w", label, ErrInvalidDuration)
	}
	if clock == nil {
		clock = SystemClock
	}
	if label == "" {
		label = DefaultLabel(duration)
	}

	now := clock.Now()
	return &Timer{
		ID:        uuid.NewString(),
		Label:     label,
		Duration:  duration,
		CreatedAt: now,
		EndTime:   now.Add(duration),
		State:     StatePending,
		clock:     clock,
		remaining: duration,
	}, nil
}

func (t *Timer) Start() error {
	if t.State != StatePending {
		return fmt.Errorf("starting %s timer: %w", t.State, ErrInvalidTransition)
	}
	now := t.clock.Now()
	t.StartedAt = now
	t.EndTime = now.Add(t.Duration)
	t.State = StateRunning
	return nil
}

func (t *Timer) Pause() error {
	if t.State != StateRunning {
		return fmt.Errorf("pausing %s timer: %w", t.State, ErrInvalidTransition)
	}
	t.remaining = t.Remaining()
	t.State = StatePaused
	return nil
}

func (t *Timer) Resume() error {
	if t.State != StatePaused {
		return fmt.Errorf("resuming %s timer: %w", t.State, ErrInvalidTransition)
	}
	t.EndTime = t.clock.Now().Add(t.remaining)
	t.State = StateRunning
	return nil
}

// Cancel ends the timer for good. A cancelled timer never alerts.
func (t *Timer) Cancel() error {
	if t.State == StateFinished || t.State == StateCancelled {
		return fmt.Errorf("cancelling %s timer: %w", t.State, ErrInvalidTransition)
	}
	t.remaining = t.Remaining()
	t.State = StateCancelled
	return nil
}

func (t *Timer) Remaining() time.Duration {
	switch t.State {
	case StateFinished:
		return 0
	case StatePending:
		return t.Duration
	case StatePaused, StateCancelled:
		return t.remaining
	}

	left := t.EndTime.Sub(t.clock.Now())
	if left < 0 {
		return 0
	}
	return left
}

func (t *Timer) Elapsed() time.Duration {
	return t.Duration - t.Remaining()
}

func (t *Timer) Paused() bool {
	return t.State == StatePaused
}

// Check marks a running timer finished once its end time has passed.
// It reports true only on the call that performs the transition.
func (t *Timer) Check() bool {
	if t.State != StateRunning || t.Alerted {
		return false
	}
	if t.clock.Now().Before(t.EndTime) {
		return false
	}
	t.State = StateFinished
	t.Alerted = true
	return true
}
