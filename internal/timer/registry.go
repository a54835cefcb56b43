package timer

import (
	"fmt"
	"time"
)

// Registry holds active timers in the order they were started.
// It is not safe for concurrent use; callers run it on one event loop.
type Registry struct {
	clock  Clock
	timers []*Timer
}

func NewRegistry(clock Clock) *Registry {
	if clock == nil {
		clock = SystemClock
	}
	return &Registry{clock: clock}
}

func (r *Registry) Clock() Clock {
	return r.clock
}

// Start creates a timer, starts it and appends it to the registry.
func (r *Registry) Start(label string, duration time.Duration) (*Timer, error) {
	t, err := New(label, duration, r.clock)
	if err != nil {
		return nil, err
	}
	if err := r.Add(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Add registers an existing timer, starting it if it is still pending.
// Finished or cancelled timers are rejected since they would never leave.
func (r *Registry) Add(t *Timer) error {
	switch t.State {
	case StatePending:
		if err := t.Start(); err != nil {
			return err
		}
	case StateFinished, StateCancelled:
		return fmt.Errorf("adding %s timer: %w", t.State, ErrInvalidTransition)
	}
	r.timers = append(r.timers, t)
	return nil
}

func (r *Registry) Get(id string) (*Timer, error) {
	idx := r.index(id)
	if idx < 0 {
		return nil, fmt.Errorf("timer %s: %w", id, ErrNotFound)
	}
	return r.timers[idx], nil
}

func (r *Registry) Remove(id string) (*Timer, error) {
	idx := r.index(id)
	if idx < 0 {
		return nil, fmt.Errorf("timer %s: %w", id, ErrNotFound)
	}
	t := r.timers[idx]
	r.timers = append(r.timers[:idx], r.timers[idx+1:]...)
	return t, nil
}

func (r *Registry) Len() int {
	return len(r.timers)
}

// List returns a copy of the active timers in insertion order.
func (r *Registry) List() []*Timer {
	out := make([]*Timer, len(r.timers))
	copy(out, r.timers)
	return out
}

func (r *Registry) Pause(id string) (*Timer, error) {
	t, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return t, t.Pause()
}

func (r *Registry) Resume(id string) (*Timer, error) {
	t, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return t, t.Resume()
}

// Cancel stops the timer and drops it from the registry.
func (r *Registry) Cancel(id string) (*Timer, error) {
	t, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if err := t.Cancel(); err != nil {
		return nil, err
	}
	if _, err := r.Remove(id); err != nil {
		return nil, err
	}
	return t, nil
}

// Tick checks every timer and removes the ones that just finished.
func (r *Registry) Tick() []*Timer {
	var expired []*Timer
	kept := r.timers[:0]
	for _, t := range r.timers {
		if t.Check() {
			expired = append(expired, t)
			continue
		}
		kept = append(kept, t)
	}
	// clear the tail so removed timers can be collected
	for i := len(kept); i < len(r.timers); i++ {
		r.timers[i] = nil
	}
	r.timers = kept
	return expired
}

func (r *Registry) index(id string) int {
	for i, t := range r.timers {
		if t.ID == id {
			return i
		}
	}
	return -1
}
