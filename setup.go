package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/loop"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/render"
	"github.com/milk9111/platformer/sim"
	"github.com/milk9111/platformer/sprite"
)

// setup is everything built from the prefab specs and a level script.
type setup struct {
	Bundle prefabs.Bundle
	Level  *levels.Level
	Tiles  levels.Tiles
	Env    physics.Environment
	Body   physics.Body
	Sprite sprite.State
	Ranges sprite.Ranges
	Loop   loop.Config
}

func loadSetup(ctx context.Context, level string) (setup, error) {
	var s setup

	b, err := prefabs.LoadBundle()
	if err != nil {
		return s, err
	}

	scale := b.Tileset.Scale
	if scale == 0 {
		scale = 1
	}
	tiles := levels.Tiles{
		W: float64(b.Tileset.Sheet.FrameW) * scale,
		H: float64(b.Tileset.Sheet.FrameH) * scale,
	}
	lvl, err := levels.Load(ctx, level, tiles)
	if err != nil {
		return s, err
	}

	keys, err := bindings(b.Player.Keys)
	if err != nil {
		return s, fmt.Errorf("prefabs: %s: %w", prefabs.PlayerFile, err)
	}

	st, err := b.Character.State()
	if err != nil {
		return s, err
	}
	ranges, err := b.Character.Ranges()
	if err != nil {
		return s, err
	}
	cfg, err := b.Loop.Config()
	if err != nil {
		return s, fmt.Errorf("prefabs: %s: %w", prefabs.LoopFile, err)
	}

	s = setup{
		Bundle: b,
		Level:  lvl,
		Tiles:  tiles,
		Env: physics.Environment{
			Width:     lvl.Width,
			Height:    lvl.Height,
			Viewport:  b.Environment.ViewportSize(),
			Constants: b.Environment.Constants(),
			Geometry:  lvl.Geometry,
		},
		Body:   b.Player.Body(keys),
		Sprite: st,
		Ranges: ranges,
		Loop:   cfg,
	}
	return s, nil
}

func (s setup) options(logger *log.Logger) sim.Options {
	return sim.Options{
		Timing:     s.Bundle.Loop.Timing(),
		Loop:       s.Loop,
		Ranges:     s.Ranges,
		SpriteStep: s.Bundle.Loop.SpriteStepOrDefault(),
		Logger:     logger,
	}
}

func (s setup) palette() render.Palette {
	def := render.DefaultPalette()
	p := s.Bundle.Environment.Palette
	return render.Palette{
		SkyTop:    p.SkyTop.Or(def.SkyTop),
		SkyBottom: p.SkyBottom.Or(def.SkyBottom),
		Content:   p.Content.Or(def.Content),
		Player:    s.Bundle.Player.Color.Or(def.Player),
		Text:      p.Text.Or(def.Text),
	}
}
