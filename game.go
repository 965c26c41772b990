package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/scene"
	"golang.org/x/image/colornames"
)

// reloader is implemented by scenes that can apply prefab edits live.
type reloader interface {
	ReloadPrefab(ctx *scene.Context, name string) error
}

type Game struct {
	scene scene.Scene
	ctx   *scene.Context
	log   *log.Logger

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
	watcher *prefabs.Watcher
}

// NewGame loads and builds s. When watchPrefabs is set the on-disk prefab
// directory is watched and changes are applied between frames.
func NewGame(s scene.Scene, ctx *scene.Context, watchPrefabs bool) (*Game, error) {
	g := &Game{scene: s, ctx: ctx, log: ctx.Log}

	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	if err := s.Build(ctx); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g, ctx.Settings.Window.Width, ctx.Settings.Window.Height)

	if watchPrefabs {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			g.log.Warn("prefab hot reload disabled", "dir", prefabs.Dir, "err", err)
		} else {
			g.watcher = w
			g.log.Info("watching prefabs", "dir", prefabs.Dir)
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.ctx.Debug = !g.ctx.Debug
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.applyPrefabChanges()

	return g.scene.OnFrame(g.ctx)
}

func (g *Game) applyPrefabChanges() {
	if g.watcher == nil {
		return
	}
	r, ok := g.scene.(reloader)
	for _, name := range g.watcher.Poll() {
		if !ok {
			continue
		}
		if err := r.ReloadPrefab(g.ctx, name); err != nil {
			g.log.Error("prefab reload failed", "name", name, "err", err)
		}
	}
	select {
	case err, open := <-g.watcher.Errors:
		if open && err != nil {
			g.log.Warn("prefab watcher", "err", err)
		}
	default:
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Skyblue)
	g.scene.Draw(g.ctx, screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ctx.Settings.Window.Width, g.ctx.Settings.Window.Height
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

// run drives the game until the window closes or Quit is chosen.
func run(g *Game) error {
	defer g.Close()
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
