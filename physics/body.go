package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/input"
)

// Impulse holds the magnitudes applied from player intent.
type Impulse struct {
	X, Y float64
	Jump float64
}

// Bindings maps the four movement directions to keys.
type Bindings struct {
	Up, Left, Down, Right input.Key
}

// Body is the single simulated rectangle. All fields are values so a copy of
// a Body never aliases another.
type Body struct {
	Position     cp.Vector
	Size         cp.Vector
	Previous     cp.Vector
	Velocity     cp.Vector
	Acceleration cp.Vector
	Force        cp.Vector
	Direction    cp.Vector

	Density float64
	Mass    float64
	Impulse Impulse
	Keys    Bindings

	// Locked is set when a jump fires and cleared once the up key is
	// released while standing on something.
	Locked bool
	// Jumped is true only on the step that applied the jump impulse.
	Jumped bool
}

// Bounds returns the axis-aligned box occupied by the body.
func (b Body) Bounds() common.Rect {
	return common.NewRect(b.Position.X, b.Position.Y, b.Size.X, b.Size.Y)
}

// Center returns the midpoint of the body's box.
func (b Body) Center() cp.Vector {
	return cp.Vector{X: b.Position.X + b.Size.X/2, Y: b.Position.Y + b.Size.Y/2}
}
