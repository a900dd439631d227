package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvironmentFile = "environment.yaml"
	PlayerFile      = "player.yaml"
	CharacterFile   = "character.yaml"
	TilesetFile     = "tileset.yaml"
	LoopFile        = "loop.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// EnvironmentSpec holds the world constants. Friction, resistance and the
// dissipations are fractions of velocity lost per 1/60 s.
type EnvironmentSpec struct {
	Gravity      float64     `yaml:"gravity"`
	Friction     float64     `yaml:"friction"`
	Resistance   float64     `yaml:"resistance"`
	DissipationX float64     `yaml:"dissipation_x"`
	DissipationY float64     `yaml:"dissipation_y"`
	Viewport     SizeSpec    `yaml:"viewport"`
	Palette      PaletteSpec `yaml:"palette"`
}

type PaletteSpec struct {
	SkyTop    *YAMLColor `yaml:"sky_top"`
	SkyBottom *YAMLColor `yaml:"sky_bottom"`
	Content   *YAMLColor `yaml:"content"`
	Text      *YAMLColor `yaml:"text"`
}

type PlayerSpec struct {
	Name      string        `yaml:"name"`
	Transform TransformSpec `yaml:"transform"`
	Size      SizeSpec      `yaml:"size"`
	Density   float64       `yaml:"density"`
	Impulse   ImpulseSpec   `yaml:"impulse"`
	Keys      KeysSpec      `yaml:"keys"`
	Color     *YAMLColor    `yaml:"color"`
}

type ImpulseSpec struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Jump float64 `yaml:"jump"`
}

// KeysSpec names the movement keys, e.g. "E" or "ArrowUp".
type KeysSpec struct {
	Up    string `yaml:"up"`
	Left  string `yaml:"left"`
	Down  string `yaml:"down"`
	Right string `yaml:"right"`
}

type CharacterSpec struct {
	Name      string                    `yaml:"name"`
	Sheet     SheetSpec                 `yaml:"sheet"`
	Offset    TransformSpec             `yaml:"offset"`
	Scale     float64                   `yaml:"scale"`
	Run       bool                      `yaml:"run"`
	Reverse   bool                      `yaml:"reverse"`
	Animation map[string]FrameRangeSpec `yaml:"animation"`
}

type TilesetSpec struct {
	Name  string    `yaml:"name"`
	Sheet SheetSpec `yaml:"sheet"`
	Scale float64   `yaml:"scale"`
}

type SheetSpec struct {
	Image   string `yaml:"image"`
	FrameW  int    `yaml:"frame_w"`
	FrameH  int    `yaml:"frame_h"`
	Rows    int    `yaml:"rows"`
	Columns int    `yaml:"columns"`
	Frames  int    `yaml:"frames"`
}

type FrameRangeSpec struct {
	First int `yaml:"first"`
	Last  int `yaml:"last"`
}

type LoopSpec struct {
	Rate       float64       `yaml:"rate"`
	MaxDelta   time.Duration `yaml:"max_delta"`
	SpriteStep time.Duration `yaml:"sprite_step"`
}

type TransformSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type SizeSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type YAMLColor struct {
	color.Color
}

// Or returns the wrapped color, or fallback when c was not set.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
