// Package scene defines the lifecycle a game host drives and the
// platformer scene that implements it.
package scene

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/config"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/input"
)

var (
	ErrAlreadyBuilt = errors.New("scene: already built")
	ErrNotLoaded    = errors.New("scene: assets not loaded")
)

// Context carries everything a scene reads or mutates. The host owns it
// and passes the same value to every call.
type Context struct {
	World    *ecs.World
	Settings *config.Settings
	Assets   *assets.Bundle
	Controls *input.Controls
	Log      *log.Logger
	Debug    bool
}

// NewContext fills in an empty world, keyboard controls and the default
// logger where the caller left them nil.
func NewContext(settings *config.Settings, logger *log.Logger) *Context {
	if logger == nil {
		logger = log.Default()
	}
	return &Context{
		World:    ecs.NewWorld(),
		Settings: settings,
		Controls: input.NewControls(input.Keyboard, input.DefaultBindings()),
		Log:      logger,
		Debug:    settings != nil && settings.Debug,
	}
}

// Scene is driven by the host in order: Load once, Build once, then
// OnFrame every tick. OnHazardContact is invoked by the physics step.
type Scene interface {
	Load(ctx *Context) error
	Build(ctx *Context) error
	OnFrame(ctx *Context) error
	OnHazardContact(ctx *Context, player, hazard ecs.Entity)
	Draw(ctx *Context, screen *ebiten.Image)
}
