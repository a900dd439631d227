package physics

import "math"

// Timing describes the fixed simulation step.
type Timing struct {
	// Rate is the number of fixed steps per second.
	Rate float64
}

// DefaultTiming steps at the reference rate.
func DefaultTiming() Timing {
	return Timing{Rate: ReferenceRate}
}

// Step returns the fixed step size in seconds.
func (t Timing) Step() float64 {
	return 1 / t.Rate
}

// Ratio corrects per-reference-step quantities for a different step rate.
func (t Timing) Ratio() float64 {
	return ReferenceRate / t.Rate
}

func (t Timing) validate() error {
	if !(t.Rate > 0) || math.IsInf(t.Rate, 0) {
		return configErr("timing.rate", "must be a positive finite number, got %v", t.Rate)
	}
	return nil
}

// Initialize derives the body's mass and the environment's per-step decay
// coefficients. It returns a ConfigurationError for anything that would make
// the simulation divide by zero or decay by a negative factor.
func Initialize(env Environment, body Body, t Timing) (Environment, Body, error) {
	if err := t.validate(); err != nil {
		return env, body, err
	}
	if err := validateBody(body); err != nil {
		return env, body, err
	}
	if err := validateEnvironment(env); err != nil {
		return env, body, err
	}

	body.Mass = body.Size.X * body.Size.Y * body.Density
	if !(body.Mass > 0) || math.IsInf(body.Mass, 0) {
		return env, body, configErr("body.mass", "must be positive, got %v", body.Mass)
	}

	ratio := t.Ratio()
	c := env.Constants
	env.Coefficients = Coefficients{
		Friction:     math.Pow(1-c.Friction, ratio),
		Resistance:   math.Pow(1-c.Resistance, ratio),
		DissipationX: math.Pow(1-c.DissipationX, ratio),
		DissipationY: math.Pow(1-c.DissipationY, ratio),
	}
	env.ready = true

	return Constrain(env), body, nil
}

func validateBody(b Body) error {
	if !(b.Size.X > 0) {
		return configErr("body.width", "must be positive, got %v", b.Size.X)
	}
	if !(b.Size.Y > 0) {
		return configErr("body.height", "must be positive, got %v", b.Size.Y)
	}
	if !(b.Density > 0) {
		return configErr("body.density", "must be positive, got %v", b.Density)
	}
	return nil
}

func validateEnvironment(e Environment) error {
	if !(e.Width > 0) || !(e.Height > 0) {
		return configErr("environment.bounds", "must be positive, got %vx%v", e.Width, e.Height)
	}
	if !(e.Viewport.W > 0) || !(e.Viewport.H > 0) {
		return configErr("environment.viewport", "must be positive, got %vx%v", e.Viewport.W, e.Viewport.H)
	}
	rates := []struct {
		name string
		v    float64
	}{
		{"friction", e.Constants.Friction},
		{"resistance", e.Constants.Resistance},
		{"dissipation_x", e.Constants.DissipationX},
		{"dissipation_y", e.Constants.DissipationY},
	}
	for _, r := range rates {
		if r.v < 0 || r.v > 1 || math.IsNaN(r.v) {
			return configErr("environment."+r.name, "must be within [0, 1], got %v", r.v)
		}
	}
	if math.IsNaN(e.Constants.Gravity) || math.IsInf(e.Constants.Gravity, 0) {
		return configErr("environment.gravity", "must be finite, got %v", e.Constants.Gravity)
	}
	return nil
}
