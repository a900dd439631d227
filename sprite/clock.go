package sprite

import "time"

// DefaultStep is the animation sub-step.
const DefaultStep = time.Second / 60

// Clock paces frame advances independently of the physics step.
type Clock struct {
	Step time.Duration

	acc     time.Duration
	last    time.Duration
	started bool
}

func NewClock(step time.Duration) Clock {
	if step <= 0 {
		step = DefaultStep
	}
	return Clock{Step: step}
}

// Tick records the timestamp now and reports whether a frame advance is due.
// Leftover time is discarded on an advance so a stall never bursts frames.
func (c Clock) Tick(now time.Duration) (Clock, bool) {
	if !c.started {
		c.started = true
		c.last = now
	}
	if delta := now - c.last; delta > 0 {
		c.acc += delta
	}
	c.last = now

	if c.acc >= c.Step {
		c.acc = 0
		return c, true
	}
	return c, false
}
