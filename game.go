package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/input"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/render"
	"github.com/milk9111/platformer/sim"
	"github.com/spf13/cobra"
	"golang.design/x/clipboard"
)

type Game struct {
	ctx    context.Context
	logger *log.Logger
	level  string

	world    *sim.World
	keys     *input.State
	poll     []ebiten.Key
	renderer *render.Renderer
	viewport physics.Viewport
	tiles    levels.Tiles
	watcher  *prefabs.Watcher
	pauseUI  *ebitenui.UI

	// clock only advances while the game is not paused.
	clock time.Duration
	last  time.Time

	paused    bool
	quit      bool
	debug     bool
	clipboard bool
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := newLogger()

	s, err := loadSetup(ctx, flagLevel)
	if err != nil {
		return err
	}

	keys := input.NewState()
	world, err := sim.New(s.Env, s.Body, s.Sprite, keys, s.options(logger))
	if err != nil {
		return err
	}

	renderer, err := newRenderer(s, flagFPS, flagDebug)
	if err != nil {
		return err
	}

	g := &Game{
		ctx:      ctx,
		logger:   logger,
		level:    flagLevel,
		world:    world,
		keys:     keys,
		poll:     polled(s.Body.Keys),
		renderer: renderer,
		viewport: s.Env.Viewport,
		tiles:    s.Tiles,
		debug:    flagDebug,
	}
	g.pauseUI = newPauseUI(g)

	if flagDebug {
		if err := clipboard.Init(); err != nil {
			logger.Warn("clipboard unavailable", "err", err)
		} else {
			g.clipboard = true
		}
	}

	if flagWatch {
		w, err := watchDirs(ctx, prefabs.Dir, levels.Dir)
		if err != nil {
			logger.Warn("hot reload disabled", "err", err)
		} else {
			g.watcher = w
			defer w.Close()
		}
	}

	logger.Info("starting", "level", s.Level.Name, "width", s.Level.Width, "height", s.Level.Height,
		"geometry", len(s.Level.Geometry), "solids", len(s.Level.Geometry.Solids()))

	ebiten.SetWindowSize(int(s.Env.Viewport.W), int(s.Env.Viewport.H))
	ebiten.SetWindowTitle("platformer")
	ebiten.SetTPS(ebiten.SyncWithFPS)

	return ebiten.RunGame(g)
}

func newRenderer(s setup, showFPS, debug bool) (*render.Renderer, error) {
	character, err := assets.LoadImage(s.Bundle.Character.Sheet.Image)
	if err != nil {
		return nil, err
	}
	tileset, err := assets.LoadImage(s.Bundle.Tileset.Sheet.Image)
	if err != nil {
		return nil, err
	}
	return render.New(render.Options{
		Palette:   s.palette(),
		Character: character,
		Offset:    cp.Vector{X: s.Bundle.Character.Offset.X, Y: s.Bundle.Character.Offset.Y},
		Scale:     s.Bundle.Character.Scale,
		Tiles:     tileset,
		TileSheet: s.Bundle.Tileset.Sheet.Sheet(),
		ShowFPS:   showFPS,
		Debug:     debug,
	}), nil
}

func watchDirs(ctx context.Context, dirs ...string) (*prefabs.Watcher, error) {
	var existing []string
	for _, d := range dirs {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			existing = append(existing, d)
		}
	}
	if len(existing) == 0 {
		return nil, fmt.Errorf("none of %v exist", dirs)
	}
	return prefabs.NewWatcher(ctx, existing...)
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	now := time.Now()
	if g.last.IsZero() {
		g.last = now
	}
	if !g.paused {
		g.clock += now.Sub(g.last)
	}
	g.last = now

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
		if g.paused {
			// Keys released while the menu is up never reach the poll.
			g.keys.Reset()
		}
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.drainReloads()

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart()
	}

	for _, k := range g.poll {
		g.keys.Set(input.Key(k), ebiten.IsKeyPressed(k))
	}

	if g.clipboard && ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyPosition()
	}

	_, err := g.world.Step(g.clock)
	return err
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.world.Frame())
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.viewport.W), int(g.viewport.H)
}

func (g *Game) restart() {
	if err := g.world.Restart(); err != nil {
		g.logger.Error("restart failed", "err", err)
	}
	g.paused = false
}

func (g *Game) drainReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case r, ok := <-g.watcher.Reloads:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(r)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.logger.Warn("watch error", "err", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(r prefabs.Reload) {
	if filepath.Ext(r.Name) == ".tengo" && r.Name != g.level+".tengo" {
		return
	}
	s, err := loadSetup(g.ctx, g.level)
	if err != nil {
		g.logger.Error("reload failed", "file", r.Name, "err", err)
		return
	}
	renderer, err := newRenderer(s, flagFPS, g.debug)
	if err != nil {
		g.logger.Error("reload failed", "file", r.Name, "err", err)
		return
	}
	if err := g.world.Reconfigure(s.Env, s.Body, s.Sprite, s.options(nil)); err != nil {
		g.logger.Error("reload rejected", "file", r.Name, "err", err)
		return
	}
	g.renderer = renderer
	g.viewport = s.Env.Viewport
	g.tiles = s.Tiles
	g.poll = polled(s.Body.Keys)
	g.logger.Info("reloaded", "file", r.Name)
}

// copyPosition puts the body's tile cell on the clipboard, ready to paste
// into a level script.
func (g *Game) copyPosition() {
	if g.tiles.W <= 0 || g.tiles.H <= 0 {
		return
	}
	b := g.world.Frame().Body.Bounds()
	nx := int(b.X / g.tiles.W)
	ny := int(b.Bottom() / g.tiles.H)
	text := fmt.Sprintf("engine.graphic(%d, %d, 1, 1, 48, true)", nx, ny)
	clipboard.Write(clipboard.FmtText, []byte(text))
	g.logger.Debug("copied position", "text", text)
}
