package prefabs

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/sprite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadBundleFromEmbed(t *testing.T) {
	old := Dir
	Dir = t.TempDir()
	defer func() { Dir = old }()

	b, err := LoadBundle()
	require.NoError(t, err)

	assert.Equal(t, 40.0, b.Environment.Gravity)
	assert.Equal(t, physics.Viewport{W: 768, H: 576}, b.Environment.ViewportSize())
	assert.Equal(t, 0.25, b.Player.Density)
	assert.Equal(t, "E", b.Player.Keys.Up)
	assert.Equal(t, 32, b.Character.Sheet.Frames)
	assert.Equal(t, 250*time.Millisecond, b.Loop.MaxDelta)
}

func TestCharacterRanges(t *testing.T) {
	spec := CharacterSpec{
		Name:  "hero",
		Sheet: SheetSpec{FrameW: 24, FrameH: 32, Rows: 4, Columns: 8, Frames: 32},
		Run:   true,
		Animation: map[string]FrameRangeSpec{
			"idle":      {First: 9},
			"run_right": {First: 25, Last: 32},
		},
	}

	ranges, err := spec.Ranges()
	require.NoError(t, err)
	assert.Equal(t, sprite.FrameRange{First: 9}, ranges[sprite.Idle])
	assert.Equal(t, sprite.FrameRange{First: 25, Last: 32}, ranges[sprite.RunRight])

	st, err := spec.State()
	require.NoError(t, err)
	assert.Equal(t, 9, st.Frame)
	assert.True(t, st.Run)
}

func TestCharacterRangesRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		anim map[string]FrameRangeSpec
	}{
		{"unknown motion", map[string]FrameRangeSpec{"crouch": {First: 1}}},
		{"zero first", map[string]FrameRangeSpec{"idle": {First: 0}}},
		{"inverted", map[string]FrameRangeSpec{"idle": {First: 5, Last: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CharacterSpec{Name: "x", Animation: tt.anim}.Ranges()
			assert.Error(t, err)
		})
	}
}

func TestCharacterRangesDefault(t *testing.T) {
	ranges, err := CharacterSpec{}.Ranges()
	require.NoError(t, err)
	assert.Equal(t, sprite.DefaultRanges(), ranges)
}

func TestLoopSpecDefaults(t *testing.T) {
	var s LoopSpec
	assert.Equal(t, physics.DefaultTiming(), s.Timing())
	assert.Equal(t, sprite.DefaultStep, s.SpriteStepOrDefault())

	s = LoopSpec{Rate: 120, MaxDelta: time.Second}
	assert.Equal(t, 120.0, s.Timing().Rate)
	cfg, err := s.Config()
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.MaxDelta)
	assert.Equal(t, time.Second/120, cfg.Step)
}

func TestLoopSpecRejectsNegatives(t *testing.T) {
	tests := []struct {
		name  string
		spec  LoopSpec
		field string
	}{
		{name: "rate", spec: LoopSpec{Rate: -60}, field: "loop.rate"},
		{name: "nan rate", spec: LoopSpec{Rate: math.NaN()}, field: "loop.rate"},
		{name: "infinite rate", spec: LoopSpec{Rate: math.Inf(1)}, field: "loop.rate"},
		{name: "max delta", spec: LoopSpec{Rate: 60, MaxDelta: -time.Millisecond}, field: "loop.max_delta"},
		{name: "sprite step", spec: LoopSpec{SpriteStep: -time.Millisecond}, field: "loop.sprite_step"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfgErr *physics.ConfigurationError

			err := tt.spec.Validate()
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)

			_, err = tt.spec.Config()
			assert.Error(t, err)
		})
	}
}

func TestLoadBundleRejectsNegativeLoop(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{name: "rate", yaml: "rate: -60\n", field: "loop.rate"},
		{name: "max delta", yaml: "rate: 60\nmax_delta: -250ms\n", field: "loop.max_delta"},
		{name: "sprite step", yaml: "sprite_step: -16ms\n", field: "loop.sprite_step"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := Dir
			Dir = t.TempDir()
			defer func() { Dir = old }()
			require.NoError(t, os.WriteFile(filepath.Join(Dir, LoopFile), []byte(tt.yaml), 0o644))

			_, err := LoadBundle()
			var cfgErr *physics.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestDiskOverridesEmbed(t *testing.T) {
	old := Dir
	Dir = t.TempDir()
	defer func() { Dir = old }()

	require.NoError(t, os.WriteFile(filepath.Join(Dir, EnvironmentFile), []byte("gravity: 12\n"), 0o644))

	env, err := LoadSpec[EnvironmentSpec](EnvironmentFile)
	require.NoError(t, err)
	assert.Equal(t, 12.0, env.Gravity)

	_, ok := ModTime("prefabs/" + EnvironmentFile)
	assert.True(t, ok)
	_, ok = ModTime(PlayerFile)
	assert.False(t, ok)
}

func TestLoadSpecMissing(t *testing.T) {
	_, err := LoadSpec[EnvironmentSpec]("missing.yaml")
	assert.ErrorContains(t, err, "prefabs: load missing.yaml")
}

func TestYAMLColorOr(t *testing.T) {
	var p PaletteSpec
	require.NoError(t, yaml.Unmarshal([]byte("sky_top: '#102030'"), &p))
	assert.NotNil(t, p.SkyTop)
	r, g, b, _ := p.SkyTop.Or(nil).RGBA()
	assert.Equal(t, []uint32{0x10, 0x20, 0x30}, []uint32{r >> 8, g >> 8, b >> 8})
	assert.Nil(t, p.SkyBottom.Or(nil))
}

func TestWatcherReportsSpecEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(context.Background(), dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, PlayerFile), []byte("density: 1\n"), 0o644))

	select {
	case r := <-w.Reloads:
		assert.Equal(t, PlayerFile, r.Name)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload event")
	}
}

func TestWatcherCloseIdempotent(t *testing.T) {
	w, err := NewWatcher(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestWatched(t *testing.T) {
	assert.True(t, Watched("a/player.yaml"))
	assert.True(t, Watched("scene.TENGO"))
	assert.False(t, Watched("character.png"))
}
