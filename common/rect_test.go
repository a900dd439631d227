package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectIntersects(t *testing.T) {
	base := NewRect(0, 0, 10, 10)

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlapping", NewRect(5, 5, 10, 10), true},
		{"contained", NewRect(2, 2, 2, 2), true},
		{"touching_right_edge", NewRect(10, 0, 5, 5), false},
		{"touching_bottom_edge", NewRect(0, 10, 5, 5), false},
		{"disjoint", NewRect(20, 20, 1, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Intersects(tt.other))
			assert.Equal(t, tt.want, tt.other.Intersects(base))
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(4, 6, 10, 20).Translate(-4, 4)
	assert.Equal(t, NewRect(0, 10, 10, 20), r)
	assert.Equal(t, 10.0, r.Right())
	assert.Equal(t, 30.0, r.Bottom())
}

func TestBool01(t *testing.T) {
	assert.Equal(t, 1.0, Bool01(true)-Bool01(false))
}
