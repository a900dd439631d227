package loop

import (
	"fmt"
	"math"
	"time"

	"github.com/jakecoffman/cp"
)

// Config controls the fixed step and the catch-up limit.
type Config struct {
	// Step is the fixed simulation step.
	Step time.Duration
	// MaxDelta caps the time credited by a single callback so a stall never
	// turns into hundreds of catch-up steps.
	MaxDelta time.Duration
}

func DefaultConfig() Config {
	return Config{
		Step:     time.Second / 60,
		MaxDelta: 250 * time.Millisecond,
	}
}

// ConfigForRate returns the default config stepping rate times per second.
// A zero rate selects the default step.
func ConfigForRate(rate float64) (Config, error) {
	cfg := DefaultConfig()
	switch {
	case rate == 0:
		return cfg, nil
	case !(rate > 0) || math.IsInf(rate, 0):
		return cfg, fmt.Errorf("loop: rate must be a positive finite number, got %v", rate)
	}
	cfg.Step = time.Duration(float64(time.Second) / rate)
	return cfg, nil
}

// Tick summarizes one render callback.
type Tick struct {
	// Steps is how many fixed steps ran, possibly zero.
	Steps int
	// Alpha is the unconsumed fraction of a step, in [0, 1).
	Alpha float64
	// Delta is the clamped time credited by this callback.
	Delta time.Duration
	// FPS is the callback rate estimated from Delta.
	FPS float64
}

// Scheduler decouples variable-rate render callbacks from a fixed step.
type Scheduler struct {
	cfg Config

	acc     time.Duration
	last    time.Duration
	started bool
	fps     float64
}

func New(cfg Config) (*Scheduler, error) {
	if cfg.Step <= 0 {
		return nil, fmt.Errorf("loop: step must be positive, got %v", cfg.Step)
	}
	if cfg.MaxDelta < cfg.Step {
		return nil, fmt.Errorf("loop: max delta %v is shorter than step %v", cfg.MaxDelta, cfg.Step)
	}
	return &Scheduler{cfg: cfg}, nil
}

func (s *Scheduler) Config() Config { return s.cfg }

// Advance credits the time elapsed since the previous callback and runs step
// once per whole fixed step available. The first call only records the
// baseline timestamp. An error from step stops the drain and is returned.
func (s *Scheduler) Advance(now time.Duration, step func() error) (Tick, error) {
	if !s.started {
		s.started = true
		s.last = now
		return Tick{Alpha: s.Alpha()}, nil
	}

	delta := now - s.last
	s.last = now
	if delta < 0 {
		delta = 0
	}
	if delta > s.cfg.MaxDelta {
		delta = s.cfg.MaxDelta
	}
	s.acc += delta
	if delta > 0 {
		s.fps = float64(time.Second) / float64(delta)
	}

	tick := Tick{Delta: delta, FPS: s.fps}
	for s.acc >= s.cfg.Step {
		s.acc -= s.cfg.Step
		if err := step(); err != nil {
			tick.Alpha = s.Alpha()
			return tick, err
		}
		tick.Steps++
	}
	tick.Alpha = s.Alpha()
	return tick, nil
}

// Alpha is the pending fraction of a fixed step.
func (s *Scheduler) Alpha() float64 {
	return float64(s.acc) / float64(s.cfg.Step)
}

// Reset forgets accumulated time and the baseline timestamp.
func (s *Scheduler) Reset() {
	s.acc = 0
	s.last = 0
	s.started = false
	s.fps = 0
}

// Interpolate blends the previous and current positions. Alpha 0 yields the
// current position and alpha 1 the previous one.
func Interpolate(previous, current cp.Vector, alpha float64) cp.Vector {
	return current.Lerp(previous, alpha)
}
