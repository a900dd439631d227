package prefabs

import (
	"fmt"
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/loop"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/sprite"
)

// Bundle is every spec the game needs at startup.
type Bundle struct {
	Environment EnvironmentSpec
	Player      PlayerSpec
	Character   CharacterSpec
	Tileset     TilesetSpec
	Loop        LoopSpec
}

func LoadBundle() (Bundle, error) {
	var b Bundle
	var err error
	if b.Environment, err = LoadSpec[EnvironmentSpec](EnvironmentFile); err != nil {
		return b, err
	}
	if b.Player, err = LoadSpec[PlayerSpec](PlayerFile); err != nil {
		return b, err
	}
	if b.Character, err = LoadSpec[CharacterSpec](CharacterFile); err != nil {
		return b, err
	}
	if b.Tileset, err = LoadSpec[TilesetSpec](TilesetFile); err != nil {
		return b, err
	}
	if b.Loop, err = LoadSpec[LoopSpec](LoopFile); err != nil {
		return b, err
	}
	if err = b.Loop.Validate(); err != nil {
		return b, fmt.Errorf("prefabs: %s: %w", LoopFile, err)
	}
	return b, nil
}

func (s EnvironmentSpec) Constants() physics.Constants {
	return physics.Constants{
		Gravity:      s.Gravity,
		Friction:     s.Friction,
		Resistance:   s.Resistance,
		DissipationX: s.DissipationX,
		DissipationY: s.DissipationY,
	}
}

func (s EnvironmentSpec) ViewportSize() physics.Viewport {
	return physics.Viewport{W: s.Viewport.Width, H: s.Viewport.Height}
}

// Body builds the player body. Key names are resolved by the caller since
// they depend on the input backend.
func (s PlayerSpec) Body(keys physics.Bindings) physics.Body {
	return physics.Body{
		Position: cp.Vector{X: s.Transform.X, Y: s.Transform.Y},
		Size:     cp.Vector{X: s.Size.Width, Y: s.Size.Height},
		Density:  s.Density,
		Impulse: physics.Impulse{
			X:    s.Impulse.X,
			Y:    s.Impulse.Y,
			Jump: s.Impulse.Jump,
		},
		Keys: keys,
	}
}

func (s SheetSpec) Sheet() sprite.Sheet {
	return sprite.Sheet{
		FrameW:  s.FrameW,
		FrameH:  s.FrameH,
		Rows:    s.Rows,
		Columns: s.Columns,
		Frames:  s.Frames,
	}
}

// State returns the character's initial animation state, starting on the
// idle range when one is configured.
func (s CharacterSpec) State() (sprite.State, error) {
	st := sprite.New(s.Sheet.Sheet(), s.Run, s.Reverse)
	ranges, err := s.Ranges()
	if err != nil {
		return st, err
	}
	return ranges.Apply(st, sprite.Idle), nil
}

// Ranges converts the named animation ranges.
func (s CharacterSpec) Ranges() (sprite.Ranges, error) {
	if len(s.Animation) == 0 {
		return sprite.DefaultRanges(), nil
	}
	out := make(sprite.Ranges, len(s.Animation))
	for name, fr := range s.Animation {
		m, ok := sprite.ParseMotion(name)
		if !ok {
			return nil, fmt.Errorf("prefabs: character %q: unknown animation %q", s.Name, name)
		}
		if fr.First < 1 || (fr.Last != 0 && fr.Last < fr.First) {
			return nil, fmt.Errorf("prefabs: character %q: animation %q has invalid range %d-%d", s.Name, name, fr.First, fr.Last)
		}
		out[m] = sprite.FrameRange{First: fr.First, Last: fr.Last}
	}
	return out, nil
}

// Validate rejects negative or non-finite values. Zero fields are left for
// the defaults.
func (s LoopSpec) Validate() error {
	switch {
	case math.IsNaN(s.Rate) || math.IsInf(s.Rate, 0) || s.Rate < 0:
		return &physics.ConfigurationError{Field: "loop.rate", Reason: fmt.Sprintf("must be a positive finite number, got %v", s.Rate)}
	case s.MaxDelta < 0:
		return &physics.ConfigurationError{Field: "loop.max_delta", Reason: fmt.Sprintf("must not be negative, got %v", s.MaxDelta)}
	case s.SpriteStep < 0:
		return &physics.ConfigurationError{Field: "loop.sprite_step", Reason: fmt.Sprintf("must not be negative, got %v", s.SpriteStep)}
	}
	return nil
}

func (s LoopSpec) Timing() physics.Timing {
	if s.Rate == 0 {
		return physics.DefaultTiming()
	}
	return physics.Timing{Rate: s.Rate}
}

func (s LoopSpec) Config() (loop.Config, error) {
	if err := s.Validate(); err != nil {
		return loop.Config{}, err
	}
	cfg, err := loop.ConfigForRate(s.Rate)
	if err != nil {
		return cfg, err
	}
	if s.MaxDelta > 0 {
		cfg.MaxDelta = s.MaxDelta
	}
	return cfg, nil
}

func (s LoopSpec) SpriteStepOrDefault() time.Duration {
	if s.SpriteStep == 0 {
		return sprite.DefaultStep
	}
	return s.SpriteStep
}
