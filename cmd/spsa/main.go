// spsa previews frame ranges of a sprite sheet with the same animation state
// the game uses.
//
// Keys: Up/Down cycle the character's motion ranges, Left/Right step a frame,
// Space toggles playback, V toggles reverse.
package main

import (
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/sprite"
	"github.com/spf13/cobra"
)

const size = 256

var (
	flagSheet string
	flagFirst int
	flagLast  int
	flagFPS   float64
	flagScale float64
)

type preview struct {
	sheet  *ebiten.Image
	state  sprite.State
	clock  sprite.Clock
	ranges sprite.Ranges
	motion sprite.Motion
	scale  float64
	start  time.Time
}

func (p *preview) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyUp) && p.ranges != nil:
		p.setMotion((p.motion + 1) % (sprite.SlideLeft + 1))
	case inpututil.IsKeyJustPressed(ebiten.KeyDown) && p.ranges != nil:
		p.setMotion((p.motion + sprite.SlideLeft) % (sprite.SlideLeft + 1))
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		p.state = p.state.Next()
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		p.state = p.state.Previous()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		p.state.Run = !p.state.Run
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		p.state.Reverse = !p.state.Reverse
	}

	var due bool
	p.clock, due = p.clock.Tick(time.Since(p.start))
	if due {
		p.state = p.state.Subsequent()
	}
	return nil
}

func (p *preview) setMotion(m sprite.Motion) {
	p.motion = m
	p.state = p.ranges.Apply(p.state, m)
}

func (p *preview) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})

	frame, ok := p.sheet.SubImage(p.state.Source()).(*ebiten.Image)
	if ok {
		fw := float64(p.state.FrameW) * p.scale
		fh := float64(p.state.FrameH) * p.scale
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(p.scale, p.scale)
		op.GeoM.Translate((size-fw)/2, (size-fh)/2)
		op.Filter = ebiten.FilterNearest
		screen.DrawImage(frame, op)
	}

	label := fmt.Sprintf("frame %d [%d-%d]\nrun %v reverse %v", p.state.Frame, p.state.First, p.state.Last, p.state.Run, p.state.Reverse)
	if p.ranges != nil {
		label = p.motion.String() + "\n" + label
	}
	ebitenutil.DebugPrintAt(screen, label, 4, 4)
}

func (p *preview) Layout(outsideWidth, outsideHeight int) (int, int) {
	return size, size
}

func load() (*preview, error) {
	p := &preview{scale: flagScale, start: time.Now()}

	var spec prefabs.SheetSpec
	switch flagSheet {
	case "character":
		c, err := prefabs.LoadSpec[prefabs.CharacterSpec](prefabs.CharacterFile)
		if err != nil {
			return nil, err
		}
		if p.state, err = c.State(); err != nil {
			return nil, err
		}
		if p.ranges, err = c.Ranges(); err != nil {
			return nil, err
		}
		spec = c.Sheet
	case "tileset":
		t, err := prefabs.LoadSpec[prefabs.TilesetSpec](prefabs.TilesetFile)
		if err != nil {
			return nil, err
		}
		spec = t.Sheet
		p.state = sprite.New(spec.Sheet(), true, false)
	default:
		return nil, fmt.Errorf("unknown sheet %q (character or tileset)", flagSheet)
	}

	if flagFirst > 0 {
		p.ranges = nil
		p.state = p.state.Range(flagFirst, flagLast)
	} else if p.ranges == nil {
		p.state = p.state.Range(1, spec.Frames)
	}

	img, err := assets.LoadImage(spec.Image)
	if err != nil {
		return nil, err
	}
	p.sheet = img

	step := sprite.DefaultStep
	if flagFPS > 0 {
		step = time.Duration(float64(time.Second) / flagFPS)
	}
	p.clock = sprite.NewClock(step)
	return p, nil
}

var rootCmd = &cobra.Command{
	Use:          "spsa",
	Short:        "Preview sprite sheet frame ranges",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := load()
		if err != nil {
			return err
		}
		log.Info("previewing", "sheet", flagSheet, "first", p.state.First, "last", p.state.Last)

		ebiten.SetWindowSize(size*2, size*2)
		ebiten.SetWindowTitle("spsa - " + flagSheet)
		return ebiten.RunGame(p)
	},
}

func init() {
	rootCmd.Flags().StringVar(&flagSheet, "sheet", "character", "sheet to preview: character or tileset")
	rootCmd.Flags().IntVar(&flagFirst, "first", 0, "first frame (1-based), overrides the motion ranges")
	rootCmd.Flags().IntVar(&flagLast, "last", 0, "last frame (0 means only first)")
	rootCmd.Flags().Float64Var(&flagFPS, "fps", 12, "animation frames per second")
	rootCmd.Flags().Float64Var(&flagScale, "scale", 4, "zoom factor")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
