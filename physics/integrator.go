package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/input"
)

// contactSlack is the largest overlap that still lets the resolved
// displacement become the new velocity. Larger overlaps stop the axis.
const contactSlack = 1.0

// KeyReader is the read side of the input state.
type KeyReader interface {
	Pressed(k input.Key) bool
}

// Outcome is the result of one fixed step.
type Outcome struct {
	Environment Environment
	Body        Body
	Contact     Resolution
}

// Step advances the environment and body by one fixed step. Both are taken by
// value and the updated copies are returned in the Outcome.
func Step(env Environment, body Body, keys KeyReader, t Timing) (Outcome, error) {
	if !env.ready {
		return Outcome{}, configErr("environment", "not initialized")
	}
	if !(body.Mass > 0) {
		return Outcome{}, configErr("body.mass", "must be positive, got %v", body.Mass)
	}
	if err := t.validate(); err != nil {
		return Outcome{}, err
	}

	step, ratio := t.Step(), t.Ratio()

	body.Direction = Intent(body.Keys, keys)

	force := body.Force.Mult(1 / body.Mass)
	push := cp.Vector{
		X: body.Impulse.X * body.Direction.X,
		Y: body.Impulse.Y * body.Direction.Y,
	}
	body.Acceleration = force.Add(push).Add(cp.Vector{Y: env.Constants.Gravity}).Mult(step)
	body.Velocity = body.Velocity.Add(body.Acceleration.Mult(ratio))

	res := Resolve(body.Bounds(), body.Velocity, env.Geometry)

	body.Velocity = cp.Vector{
		X: settle(res.Delta.X, res.Overlap.X),
		Y: settle(res.Delta.Y, res.Overlap.Y),
	}
	body.Velocity = damp(body.Velocity, res, env.Coefficients)

	body.Position = body.Position.Add(res.Delta)

	env = Follow(env, body)
	body = Jump(body, keys, res, t)

	return Outcome{Environment: env, Body: body, Contact: res}, nil
}

// Intent derives the direction the held keys ask for, each axis in {-1,0,1}.
func Intent(b Bindings, keys KeyReader) cp.Vector {
	return cp.Vector{
		X: common.Bool01(keys.Pressed(b.Right)) - common.Bool01(keys.Pressed(b.Left)),
		Y: common.Bool01(keys.Pressed(b.Down)) - common.Bool01(keys.Pressed(b.Up)),
	}
}

func settle(delta, overlap float64) float64 {
	if math.Abs(overlap) < contactSlack {
		return delta
	}
	return 0
}

// damp applies passive dissipation, then contact friction to the free axis or
// air resistance to both when nothing was touched.
func damp(v cp.Vector, res Resolution, c Coefficients) cp.Vector {
	v.X *= c.DissipationX
	v.Y *= c.DissipationY

	switch {
	case res.Overlap.X != 0:
		v.Y *= c.Friction
	case res.Overlap.Y != 0:
		v.X *= c.Friction
	default:
		v.X *= c.Resistance
		v.Y *= c.Resistance
	}
	return v
}
