package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/sim"
	"github.com/milk9111/platformer/sprite"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	debugLineWidth = 1
	margin         = 8
)

type Palette struct {
	SkyTop    color.Color
	SkyBottom color.Color
	Content   color.Color
	Player    color.Color
	Text      color.Color
}

// DefaultPalette mirrors the colors shipped in environment.yaml.
func DefaultPalette() Palette {
	return Palette{
		SkyTop:    color.NRGBA{R: 0x7f, G: 0x9f, B: 0xff, A: 0xff},
		SkyBottom: color.NRGBA{R: 0xdf, G: 0xef, B: 0xff, A: 0xff},
		Content:   color.NRGBA{R: 0x00, G: 0x2f, B: 0x3f, A: 0xff},
		Player:    color.NRGBA{R: 0xff, G: 0x3f, B: 0x00, A: 0xff},
		Text:      color.NRGBA{R: 0x00, G: 0x2f, B: 0x3f, A: 0xff},
	}
}

func (p Palette) withDefaults() Palette {
	def := DefaultPalette()
	for _, f := range []struct {
		dst *color.Color
		def color.Color
	}{
		{&p.SkyTop, def.SkyTop},
		{&p.SkyBottom, def.SkyBottom},
		{&p.Content, def.Content},
		{&p.Player, def.Player},
		{&p.Text, def.Text},
	} {
		if *f.dst == nil {
			*f.dst = f.def
		}
	}
	return p
}

type Options struct {
	Palette Palette
	// Character is the character sheet. Without it the body is drawn as a box.
	Character *ebiten.Image
	Offset    cp.Vector
	Scale     float64
	// Tiles is the tileset sheet used by Graphic entries.
	Tiles     *ebiten.Image
	TileSheet sprite.Sheet
	ShowFPS   bool
	Debug     bool
}

type Renderer struct {
	opts Options
	sky  *ebiten.Image
	tile sprite.State
	face ebtext.Face
}

func New(opts Options) *Renderer {
	if opts.Scale == 0 {
		opts.Scale = 1
	}
	opts.Palette = opts.Palette.withDefaults()
	return &Renderer{
		opts: opts,
		tile: sprite.New(opts.TileSheet, false, false),
		face: ebtext.NewGoXFace(basicfont.Face7x13),
	}
}

// Draw paints one frame: sky, character, geometry and the overlays.
func (r *Renderer) Draw(screen *ebiten.Image, f sim.Frame) {
	if r == nil || screen == nil {
		return
	}
	env := f.Environment

	r.drawSky(screen)
	r.drawCharacter(screen, env, f)

	for _, e := range env.Geometry {
		bounds := env.Shift(e.Bounds)
		if env.Viewport.Clipped(bounds) {
			continue
		}
		switch e.Kind {
		case physics.Rectangle:
			c := e.Color
			if c == nil {
				c = r.opts.Palette.Content
			}
			fillRect(screen, bounds, c)
		case physics.Graphic:
			r.drawGraphic(screen, env, e)
		}
		if r.opts.Debug && e.Solid {
			strokeRect(screen, bounds, colornames.Magenta)
		}
	}

	if r.opts.Debug {
		body := f.Body
		body.Position = f.Position
		strokeRect(screen, env.Shift(body.Bounds()), colornames.Lime)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("motion: %s\nframe: %d\nsteps: %d",
			f.Motion, f.Sprite.Frame, f.Steps), margin, margin)
	}

	if r.opts.ShowFPS {
		text := fmt.Sprintf("FPS: %.0f", f.Tick.FPS)
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(float64(screen.Bounds().Dx())-ebtext.Advance(text, r.face)-margin, margin)
		op.ColorScale.ScaleWithColor(r.opts.Palette.Text)
		ebtext.Draw(screen, text, r.face, op)
	}
}

func (r *Renderer) drawSky(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if r.sky == nil || r.sky.Bounds().Dx() != w || r.sky.Bounds().Dy() != h {
		r.sky = ebiten.NewImageFromImage(Gradient(w, h, r.opts.Palette.SkyTop, r.opts.Palette.SkyBottom))
	}
	screen.DrawImage(r.sky, nil)
}

func (r *Renderer) drawCharacter(screen *ebiten.Image, env physics.Environment, f sim.Frame) {
	at := env.ShiftPoint(f.Position)
	if r.opts.Character == nil {
		body := f.Body
		fillRect(screen, common.NewRect(at.X, at.Y, body.Size.X, body.Size.Y), r.opts.Palette.Player)
		return
	}

	src := f.Sprite.Source()
	img, ok := r.opts.Character.SubImage(src).(*ebiten.Image)
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.opts.Scale, r.opts.Scale)
	op.GeoM.Translate(at.X+r.opts.Offset.X, at.Y+r.opts.Offset.Y)
	screen.DrawImage(img, op)
}

func (r *Renderer) drawGraphic(screen *ebiten.Image, env physics.Environment, e physics.Entry) {
	if r.opts.Tiles == nil || r.opts.TileSheet.FrameW == 0 || r.opts.TileSheet.FrameH == 0 {
		fillRect(screen, env.Shift(e.Bounds), r.opts.Palette.Content)
		return
	}
	st := r.tile.Range(e.Tile, 0)
	img, ok := r.opts.Tiles.SubImage(st.Source()).(*ebiten.Image)
	if !ok {
		return
	}
	sx := e.CellW / float64(st.FrameW)
	sy := e.CellH / float64(st.FrameH)
	for _, cell := range Cells(e) {
		cell = env.Shift(cell)
		if env.Viewport.Clipped(cell) {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(sx, sy)
		op.GeoM.Translate(cell.X, cell.Y)
		screen.DrawImage(img, op)
	}
}

// Cells splits a Graphic entry into its tile-sized cells in world space.
func Cells(e physics.Entry) []common.Rect {
	if e.CellW <= 0 || e.CellH <= 0 {
		return nil
	}
	nw := int(e.Bounds.Width/e.CellW + 0.5)
	nh := int(e.Bounds.Height/e.CellH + 0.5)
	out := make([]common.Rect, 0, nw*nh)
	for x := 0; x < nw; x++ {
		for y := 0; y < nh; y++ {
			out = append(out, common.NewRect(
				e.Bounds.X+float64(x)*e.CellW,
				e.Bounds.Y+float64(y)*e.CellH,
				e.CellW, e.CellH))
		}
	}
	return out
}

// Gradient builds a vertical gradient from top to bottom.
func Gradient(w, h int, top, bottom color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	tr, tg, tb, ta := top.RGBA()
	br, bg, bb, ba := bottom.RGBA()
	for y := 0; y < h; y++ {
		t := 0.0
		if h > 1 {
			t = float64(y) / float64(h-1)
		}
		c := color.RGBA64{
			R: uint16(cp.Lerp(float64(tr), float64(br), t)),
			G: uint16(cp.Lerp(float64(tg), float64(bg), t)),
			B: uint16(cp.Lerp(float64(tb), float64(bb), t)),
			A: uint16(cp.Lerp(float64(ta), float64(ba), t)),
		}
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func fillRect(dst *ebiten.Image, r common.Rect, c color.Color) {
	vector.FillRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), c, false)
}

func strokeRect(dst *ebiten.Image, r common.Rect, c color.Color) {
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), debugLineWidth, c, false)
}
