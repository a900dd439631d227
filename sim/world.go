package sim

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/input"
	"github.com/milk9111/platformer/loop"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/sprite"
)

// Options tune a World. Zero values fall back to the defaults.
type Options struct {
	Timing     physics.Timing
	Loop       loop.Config
	Ranges     sprite.Ranges
	SpriteStep time.Duration
	Logger     *log.Logger
}

// stepTolerance is how far the scheduler step may drift from the physics
// rate before the two are considered to disagree.
const stepTolerance = time.Microsecond

// withDefaults fills zero fields. A timing left at zero follows the loop
// step, and a loop step left at zero follows the timing.
func (o Options) withDefaults() (Options, error) {
	switch {
	case o.Timing.Rate == 0 && o.Loop.Step > 0:
		o.Timing = physics.Timing{Rate: float64(time.Second) / float64(o.Loop.Step)}
	case o.Timing.Rate == 0:
		o.Timing = physics.DefaultTiming()
	}
	if o.Loop.Step == 0 {
		cfg, err := loop.ConfigForRate(o.Timing.Rate)
		if err != nil {
			return o, err
		}
		if o.Loop.MaxDelta > 0 {
			cfg.MaxDelta = o.Loop.MaxDelta
		}
		o.Loop = cfg
	}
	if o.Loop.MaxDelta == 0 {
		o.Loop.MaxDelta = loop.DefaultConfig().MaxDelta
	}

	want := time.Duration(float64(time.Second) / o.Timing.Rate)
	if d := o.Loop.Step - want; d > stepTolerance || d < -stepTolerance {
		return o, fmt.Errorf("sim: loop step %v does not match physics rate %v (step %v)", o.Loop.Step, o.Timing.Rate, want)
	}

	if o.Ranges == nil {
		o.Ranges = sprite.DefaultRanges()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o, nil
}

// Frame is everything the renderer needs for one callback.
type Frame struct {
	Environment physics.Environment
	Body        physics.Body
	Sprite      sprite.State
	// Position is the interpolated body position to draw at.
	Position cp.Vector
	Motion   sprite.Motion
	Tick     loop.Tick
	Steps    uint64
}

// World owns the simulated state and drives it from render callbacks.
type World struct {
	opts  Options
	keys  *input.State
	sched *loop.Scheduler

	initialEnv  physics.Environment
	initialBody physics.Body
	initialSprt sprite.State

	env      physics.Environment
	body     physics.Body
	sprite   sprite.State
	clock    sprite.Clock
	motion   sprite.Motion
	contact  physics.Resolution
	grounded bool

	position cp.Vector
	tick     loop.Tick
	steps    uint64
	now      time.Duration
}

// New initializes the environment and body and returns a World ready to be
// stepped. Configuration problems surface here as *physics.ConfigurationError.
func New(env physics.Environment, body physics.Body, character sprite.State, keys *input.State, opts Options) (*World, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	sched, err := loop.New(opts.Loop)
	if err != nil {
		return nil, err
	}

	w := &World{
		opts:        opts,
		keys:        keys,
		sched:       sched,
		initialEnv:  env,
		initialBody: body,
		initialSprt: character,
	}
	if err := w.reset(env, body, character); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *World) reset(env physics.Environment, body physics.Body, character sprite.State) error {
	env, body, err := physics.Initialize(env, body, w.opts.Timing)
	if err != nil {
		return err
	}
	body.Previous = body.Position
	env = physics.Follow(env, body)

	w.env, w.body, w.sprite = env, body, character
	w.clock = sprite.NewClock(w.opts.SpriteStep)
	w.motion = sprite.Idle
	w.contact = physics.Resolution{}
	w.grounded = false
	w.position = body.Position
	w.tick = loop.Tick{}
	w.steps = 0
	w.sched.Reset()
	return nil
}

// Restart puts the world back into the state it was created with.
func (w *World) Restart() error {
	w.opts.Logger.Info("restarting simulation")
	return w.reset(w.initialEnv, w.initialBody, w.initialSprt)
}

// Reconfigure adopts new environment constants, body tuning, character
// sheet and options while keeping the body where it is. The geometry and
// world bounds come from env. A nil logger keeps the current one. Later
// restarts spawn with the new configuration.
func (w *World) Reconfigure(env physics.Environment, body physics.Body, character sprite.State, opts Options) error {
	if opts.Logger == nil {
		opts.Logger = w.opts.Logger
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return err
	}
	sched, err := loop.New(opts.Loop)
	if err != nil {
		return err
	}
	spawnEnv, spawn := env, body

	body.Position = w.body.Position
	body.Previous = w.body.Previous
	body.Velocity = w.body.Velocity
	body.Locked = w.body.Locked

	env, body, err = physics.Initialize(env, body, opts.Timing)
	if err != nil {
		return err
	}

	w.opts, w.sched = opts, sched
	w.env = physics.Follow(env, body)
	w.body = body
	w.sprite = opts.Ranges.Apply(character, w.motion)
	w.clock.Step = sprite.NewClock(opts.SpriteStep).Step
	w.initialEnv, w.initialBody, w.initialSprt = spawnEnv, spawn, character
	w.opts.Logger.Info("simulation reconfigured",
		"gravity", env.Constants.Gravity,
		"jump", body.Impulse.Jump,
		"mass", body.Mass,
		"rate", opts.Timing.Rate,
		"step", opts.Loop.Step)
	return nil
}

// Step handles one render callback at timestamp now: it runs as many fixed
// steps as the elapsed time allows and then computes the interpolated
// render position.
func (w *World) Step(now time.Duration) (loop.Tick, error) {
	w.now = now
	tick, err := w.sched.Advance(now, w.fixedStep)
	w.tick = tick
	if err != nil {
		return tick, err
	}

	w.position = loop.Interpolate(w.body.Previous, w.body.Position, tick.Alpha)
	w.body.Previous = w.body.Position
	return tick, nil
}

func (w *World) fixedStep() error {
	out, err := physics.Step(w.env, w.body, w.keys, w.opts.Timing)
	if err != nil {
		return err
	}
	w.env, w.body, w.contact = out.Environment, out.Body, out.Contact
	w.steps++

	if w.body.Jumped {
		w.opts.Logger.Debug("jump", "step", w.steps, "x", w.body.Position.X, "y", w.body.Position.Y)
	}
	if grounded := out.Contact.Grounded(); grounded != w.grounded {
		w.grounded = grounded
		if grounded {
			w.opts.Logger.Debug("landed", "step", w.steps, "y", w.body.Position.Y)
		}
	}

	w.animate(out.Contact.Delta)
	return nil
}

func (w *World) animate(delta cp.Vector) {
	motion := sprite.Classify(delta.X, delta.Y,
		w.keys.Pressed(w.body.Keys.Right),
		w.keys.Pressed(w.body.Keys.Left))
	if motion != w.motion {
		w.opts.Logger.Debug("motion", "from", w.motion, "to", motion)
		w.motion = motion
	}
	w.sprite = w.opts.Ranges.Apply(w.sprite, motion)

	var due bool
	w.clock, due = w.clock.Tick(w.now)
	if due {
		w.sprite = w.sprite.Subsequent()
	}
}

// Frame returns the state to render for the latest callback.
func (w *World) Frame() Frame {
	return Frame{
		Environment: w.env,
		Body:        w.body,
		Sprite:      w.sprite,
		Position:    w.position,
		Motion:      w.motion,
		Tick:        w.tick,
		Steps:       w.steps,
	}
}

// Contact is the resolution of the most recent fixed step.
func (w *World) Contact() physics.Resolution { return w.contact }
