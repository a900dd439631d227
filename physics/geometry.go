package physics

import (
	"image/color"

	"github.com/milk9111/platformer/common"
)

type Kind int

const (
	// Rectangle is a flat colored box.
	Rectangle Kind = iota
	// Graphic is a run of tiles drawn from the tileset.
	Graphic
)

func (k Kind) String() string {
	switch k {
	case Rectangle:
		return "rectangle"
	case Graphic:
		return "graphic"
	}
	return "unknown"
}

// Entry is one piece of level geometry. Only solid entries collide.
type Entry struct {
	Kind   Kind
	Bounds common.Rect
	Solid  bool
	// Tile is the 1-based tileset frame for Graphic entries.
	Tile int
	// CellW and CellH are the tile size used to repeat Tile across Bounds.
	CellW, CellH float64
	Color        color.Color
}

// Geometry is the static level content. It is built once at load time and
// never mutated by the simulation.
type Geometry []Entry

// Solids returns only the collidable entries.
func (g Geometry) Solids() Geometry {
	out := make(Geometry, 0, len(g))
	for _, e := range g {
		if e.Solid {
			out = append(out, e)
		}
	}
	return out
}
