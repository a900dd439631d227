package levels

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/physics"
)

//go:embed *.tengo
var LevelsFS embed.FS

// Dir is checked before the embedded scripts.
var Dir = "levels"

// Tiles is the on-screen size of one tileset cell.
type Tiles struct {
	W, H float64
}

type Level struct {
	Name     string
	Width    float64
	Height   float64
	Geometry physics.Geometry
}

// Names lists the embedded levels.
func Names() []string {
	entries, _ := LevelsFS.ReadDir(".")
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".tengo"))
	}
	return out
}

func LoadScript(name string) ([]byte, error) {
	file := strings.TrimSuffix(filepath.Base(name), ".tengo") + ".tengo"
	if data, err := os.ReadFile(filepath.Join(Dir, file)); err == nil {
		return data, nil
	}
	return LevelsFS.ReadFile(file)
}

// Load runs the named level script. Scripts describe geometry by calling
// engine.rect(x, y, w, h) in pixels and engine.graphic(nx, ny, nw, nh, tile,
// solid) in tile cells, and must define width and height.
func Load(ctx context.Context, name string, tiles Tiles) (*Level, error) {
	src, err := LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}

	b := &builder{tiles: tiles}
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := script.Add("engine", b.engine()); err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("levels: compile %s: %w", name, err)
	}
	if err := compiled.RunContext(ctx); err != nil {
		return nil, fmt.Errorf("levels: run %s: %w", name, err)
	}
	if b.err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, b.err)
	}

	lvl := &Level{
		Name:     strings.TrimSuffix(filepath.Base(name), ".tengo"),
		Geometry: b.geometry,
	}
	for _, dim := range []struct {
		name string
		dst  *float64
	}{{"width", &lvl.Width}, {"height", &lvl.Height}} {
		if !compiled.IsDefined(dim.name) {
			return nil, fmt.Errorf("levels: %s: %s is not defined", name, dim.name)
		}
		*dim.dst = compiled.Get(dim.name).Float()
		if *dim.dst <= 0 {
			return nil, fmt.Errorf("levels: %s: %s must be positive", name, dim.name)
		}
	}
	return lvl, nil
}

type builder struct {
	tiles    Tiles
	geometry physics.Geometry
	err      error
}

func (b *builder) engine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}
	values["tile_w"] = &tengo.Float{Value: b.tiles.W}
	values["tile_h"] = &tengo.Float{Value: b.tiles.H}

	values["rect"] = &tengo.UserFunction{Name: "rect", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, err := floats("rect", args, 4)
		if err != nil {
			return nil, err
		}
		b.geometry = append(b.geometry, physics.Entry{
			Kind:   physics.Rectangle,
			Bounds: common.NewRect(v[0], v[1], v[2], v[3]),
			Solid:  true,
		})
		return tengo.UndefinedValue, nil
	}}

	values["graphic"] = &tengo.UserFunction{Name: "graphic", Value: func(args ...tengo.Object) (tengo.Object, error) {
		solid := true
		if len(args) == 6 {
			solid = !args[5].IsFalsy()
			args = args[:5]
		}
		v, err := floats("graphic", args, 5)
		if err != nil {
			return nil, err
		}
		if b.tiles.W <= 0 || b.tiles.H <= 0 {
			b.err = fmt.Errorf("graphic used without a tileset")
			return tengo.UndefinedValue, nil
		}
		b.geometry = append(b.geometry, physics.Entry{
			Kind:   physics.Graphic,
			Bounds: common.NewRect(v[0]*b.tiles.W, v[1]*b.tiles.H, v[2]*b.tiles.W, v[3]*b.tiles.H),
			Solid:  solid,
			Tile:   int(v[4]),
			CellW:  b.tiles.W,
			CellH:  b.tiles.H,
		})
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func floats(fn string, args []tengo.Object, n int) ([]float64, error) {
	if len(args) != n {
		return nil, tengo.ErrWrongNumArguments
	}
	out := make([]float64, n)
	for i, a := range args {
		f, ok := tengo.ToFloat64(a)
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{
				Name:     fmt.Sprintf("%s arg %d", fn, i+1),
				Expected: "number",
				Found:    a.TypeName(),
			}
		}
		out[i] = f
	}
	return out, nil
}
