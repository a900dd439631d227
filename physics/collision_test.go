package physics

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(x, y, w, h float64) Entry {
	return Entry{Kind: Rectangle, Bounds: common.NewRect(x, y, w, h), Solid: true}
}

func TestResolveStopsFlushAgainstContact(t *testing.T) {
	wall := solid(15, 15, 10, 10)

	tests := []struct {
		name    string
		start   common.Rect
		delta   cp.Vector
		want    cp.Vector
		overlap cp.Vector
	}{
		{"moving_right", common.NewRect(0, 15, 10, 10), cp.Vector{X: 10}, cp.Vector{X: 5}, cp.Vector{X: 5}},
		{"moving_left", common.NewRect(30, 15, 10, 10), cp.Vector{X: -10}, cp.Vector{X: -5}, cp.Vector{X: -5}},
		{"moving_down", common.NewRect(15, 0, 10, 10), cp.Vector{Y: 10}, cp.Vector{Y: 5}, cp.Vector{Y: 5}},
		{"moving_up", common.NewRect(15, 30, 10, 10), cp.Vector{Y: -10}, cp.Vector{Y: -5}, cp.Vector{Y: -5}},
		{"already_touching", common.NewRect(5, 15, 10, 10), cp.Vector{X: 3}, cp.Vector{}, cp.Vector{X: 3}},
		{"short_of_contact", common.NewRect(0, 15, 10, 10), cp.Vector{X: 4}, cp.Vector{X: 4}, cp.Vector{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.start, tt.delta, Geometry{wall})
			assert.Equal(t, tt.want, res.Delta)
			assert.Equal(t, tt.overlap, res.Overlap)

			moved := tt.start.Translate(res.Delta.X, res.Delta.Y)
			assert.False(t, moved.Intersects(wall.Bounds), "resolved box must not overlap the wall")
		})
	}
}

func TestResolveZeroDisplacementIsIdempotent(t *testing.T) {
	geometry := Geometry{
		solid(0, 0, 100, 10),
		solid(0, 10, 10, 100),
		solid(4, 4, 8, 8), // overlaps the body's start
	}
	res := Resolve(common.NewRect(5, 5, 10, 10), cp.Vector{}, geometry)
	assert.Equal(t, cp.Vector{}, res.Delta)
	assert.Equal(t, cp.Vector{}, res.Overlap)
	assert.False(t, res.Contact())
}

func TestResolveEmptyGeometryReturnsRequest(t *testing.T) {
	delta := cp.Vector{X: 3.5, Y: -7}
	res := Resolve(common.NewRect(0, 0, 10, 10), delta, nil)
	assert.Equal(t, delta, res.Delta)
	assert.Equal(t, cp.Vector{}, res.Overlap)
}

func TestResolveIgnoresDecorativeEntries(t *testing.T) {
	plant := Entry{Kind: Graphic, Bounds: common.NewRect(10, 0, 10, 10), Solid: false}
	res := Resolve(common.NewRect(0, 0, 10, 10), cp.Vector{X: 5}, Geometry{plant})
	assert.Equal(t, cp.Vector{X: 5}, res.Delta)
	assert.False(t, res.Contact())
}

func TestResolveNearestContactWinsRegardlessOfOrder(t *testing.T) {
	near := solid(12, 0, 10, 10)
	far := solid(15, 0, 10, 10)
	start := common.NewRect(0, 0, 10, 10)

	for _, geometry := range []Geometry{{near, far}, {far, near}} {
		res := Resolve(start, cp.Vector{X: 10}, geometry)
		require.Equal(t, 2.0, res.Delta.X)
		require.Equal(t, 8.0, res.Overlap.X)
	}
}

func TestResolveAxesAreIndependent(t *testing.T) {
	floor := solid(0, 20, 100, 10)
	wall := solid(20, 0, 10, 20)
	start := common.NewRect(0, 5, 10, 10)

	res := Resolve(start, cp.Vector{X: 15, Y: 8}, Geometry{floor, wall})
	assert.Equal(t, cp.Vector{X: 10, Y: 5}, res.Delta)
	assert.Equal(t, cp.Vector{X: 5, Y: 3}, res.Overlap)
	assert.True(t, res.Grounded())
}
