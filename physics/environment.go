package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
)

// ReferenceRate is the step rate the configured constants are tuned for.
const ReferenceRate = 60.0

// Constants are the configured environment rates. Friction, Resistance and
// the dissipations are fractions of velocity lost per reference step.
type Constants struct {
	Gravity      float64
	Friction     float64
	Resistance   float64
	DissipationX float64
	DissipationY float64
}

// Coefficients are the per-step multipliers derived from Constants.
type Coefficients struct {
	Friction     float64
	Resistance   float64
	DissipationX float64
	DissipationY float64
}

// Viewport is the visible screen area in world units.
type Viewport struct {
	W, H float64
}

// Clipped reports whether r, already shifted into screen space, lies entirely
// outside the viewport.
func (v Viewport) Clipped(r common.Rect) bool {
	if r.X > v.W || r.Right() < 0 {
		return true
	}
	if r.Y > v.H || r.Bottom() < 0 {
		return true
	}
	return false
}

// Environment is the world container: bounds, constants, camera offset and
// the static geometry.
type Environment struct {
	Width, Height float64
	Viewport      Viewport
	Constants     Constants
	Coefficients  Coefficients
	Offset        cp.Vector
	Geometry      Geometry

	ready bool
}

// Ready reports whether Initialize has derived the step coefficients.
func (e Environment) Ready() bool { return e.ready }

// Shift moves a world-space rectangle into screen space.
func (e Environment) Shift(r common.Rect) common.Rect {
	return r.Translate(-e.Offset.X, -e.Offset.Y)
}

// ShiftPoint moves a world-space point into screen space.
func (e Environment) ShiftPoint(p cp.Vector) cp.Vector {
	return p.Sub(e.Offset)
}

// Follow centers the viewport on the body and clamps it to the world bounds.
// A world no larger than the viewport pins the offset to zero.
func Follow(env Environment, body Body) Environment {
	c := body.Center()
	env.Offset = cp.Vector{
		X: c.X - env.Viewport.W/2,
		Y: c.Y - env.Viewport.H/2,
	}
	return Constrain(env)
}

// Constrain clamps the offset so the viewport stays within the world.
func Constrain(env Environment) Environment {
	env.Offset.X = cp.Clamp(env.Offset.X, 0, math.Max(0, env.Width-env.Viewport.W))
	env.Offset.Y = cp.Clamp(env.Offset.Y, 0, math.Max(0, env.Height-env.Viewport.H))
	return env
}
