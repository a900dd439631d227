package sprite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		dx, dy      float64
		right, left bool
		want        Motion
	}{
		{"falling", 0, 2, false, false, Airborne},
		{"rising_while_running", 3, -4, true, false, Airborne},
		{"running_right", 1, 0, true, false, RunRight},
		{"running_left", -1, 0, false, true, RunLeft},
		{"sliding_right", 1, 0, false, false, SlideRight},
		{"sliding_left", -1, 0.05, false, false, SlideLeft},
		{"idle_within_slack", 0.04, 0.09, true, false, Idle},
		{"pushing_wall", 0, 0, true, false, Idle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.dx, tt.dy, tt.right, tt.left))
		})
	}
}

func TestRangesApply(t *testing.T) {
	ranges := DefaultRanges()
	s := New(characterSheet, true, false)

	s = ranges.Apply(s, RunRight)
	assert.Equal(t, 25, s.First)
	assert.Equal(t, 32, s.Last)

	s = s.Next()
	s = ranges.Apply(s, RunRight)
	assert.Equal(t, 26, s.Frame, "same motion must not restart the animation")

	s = ranges.Apply(s, Airborne)
	assert.Equal(t, 9, s.Frame)
}

func TestClockAdvancesOnSubStep(t *testing.T) {
	c := NewClock(0)
	assert.Equal(t, DefaultStep, c.Step)

	var due bool
	c, due = c.Tick(0)
	assert.False(t, due)

	c, due = c.Tick(10 * time.Millisecond)
	assert.False(t, due)

	// repeated timestamps within one callback add nothing
	c, due = c.Tick(10 * time.Millisecond)
	assert.False(t, due)

	c, due = c.Tick(17 * time.Millisecond)
	assert.True(t, due)

	// leftover is dropped after an advance
	_, due = c.Tick(20 * time.Millisecond)
	assert.False(t, due)
}
