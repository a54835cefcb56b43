package timer

import "time"

// Clock abstracts time so timers can be driven by tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the default Clock backed by time.Now.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to.
type ManualClock struct {
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time { return c.now }

func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
