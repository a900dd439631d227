package loop

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counter(n *int) func() error {
	return func() error {
		*n++
		return nil
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(Config{Step: 0, MaxDelta: time.Second})
	require.Error(t, err)

	_, err = New(Config{Step: time.Second, MaxDelta: time.Millisecond})
	require.Error(t, err)
}

func TestAdvanceClampsStall(t *testing.T) {
	s, err := New(DefaultConfig())
	require.NoError(t, err)

	var steps int
	var ticks []Tick
	for _, ms := range []int{0, 16, 33, 1000} {
		tick, err := s.Advance(time.Duration(ms)*time.Millisecond, counter(&steps))
		require.NoError(t, err)
		ticks = append(ticks, tick)
	}

	assert.Equal(t, 0, ticks[0].Steps)
	assert.Equal(t, 0, ticks[1].Steps)
	assert.Equal(t, 1, ticks[2].Steps)

	stall := ticks[3]
	assert.Equal(t, 250*time.Millisecond, stall.Delta)
	assert.Equal(t, 15, stall.Steps)
	assert.InDelta(t, 4.0, stall.FPS, 1e-9)
	assert.Equal(t, 16, steps)

	for _, tick := range ticks {
		assert.GreaterOrEqual(t, tick.Alpha, 0.0)
		assert.Less(t, tick.Alpha, 1.0)
	}
}

func TestAdvanceIgnoresBackwardsTime(t *testing.T) {
	s, err := New(DefaultConfig())
	require.NoError(t, err)

	var steps int
	_, _ = s.Advance(time.Second, counter(&steps))
	tick, err := s.Advance(500*time.Millisecond, counter(&steps))
	require.NoError(t, err)
	assert.Equal(t, 0, tick.Steps)
	assert.Equal(t, time.Duration(0), tick.Delta)
}

func TestAdvanceStopsOnStepError(t *testing.T) {
	s, err := New(DefaultConfig())
	require.NoError(t, err)

	boom := errors.New("boom")
	calls := 0
	_, _ = s.Advance(0, nil)
	tick, err := s.Advance(100*time.Millisecond, func() error {
		calls++
		if calls == 2 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, tick.Steps)
}

func TestResetForgetsBaseline(t *testing.T) {
	s, err := New(DefaultConfig())
	require.NoError(t, err)

	var steps int
	_, _ = s.Advance(0, counter(&steps))
	_, _ = s.Advance(10*time.Millisecond, counter(&steps))
	s.Reset()

	tick, err := s.Advance(5*time.Second, counter(&steps))
	require.NoError(t, err)
	assert.Equal(t, 0, tick.Steps)
	assert.Equal(t, 0.0, s.Alpha())
}

func TestConfigForRate(t *testing.T) {
	cfg, err := ConfigForRate(30)
	require.NoError(t, err)
	assert.Equal(t, time.Second/30, cfg.Step)

	cfg, err = ConfigForRate(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	for _, rate := range []float64{-30, math.NaN(), math.Inf(1)} {
		_, err := ConfigForRate(rate)
		assert.Error(t, err, "rate %v", rate)
	}
}

func TestInterpolate(t *testing.T) {
	prev := cp.Vector{X: 0, Y: 10}
	cur := cp.Vector{X: 10, Y: 20}

	assert.Equal(t, cur, Interpolate(prev, cur, 0))
	assert.Equal(t, prev, Interpolate(prev, cur, 1))
	assert.Equal(t, cp.Vector{X: 5, Y: 15}, Interpolate(prev, cur, 0.5))
}
