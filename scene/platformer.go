package scene

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/prefabs"
)

// Platformer is the single level scene: tiles, spikes, and the player.
type Platformer struct {
	loader   *assets.Loader
	manifest assets.Manifest

	playerSpec *prefabs.PlayerSpec
	spikeSpec  *prefabs.SpikeSpec

	built     bool
	player    ecs.Entity
	hazards   []ecs.Entity
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	responder *system.HazardSystem
}

func NewPlatformer(loader *assets.Loader, manifest assets.Manifest) *Platformer {
	return &Platformer{loader: loader, manifest: manifest}
}

// Load reads the asset manifest and prefab specs. Assets already present
// on the context are kept.
func (p *Platformer) Load(ctx *Context) error {
	if ctx.Assets == nil {
		if p.loader == nil {
			return fmt.Errorf("scene: load: no asset loader")
		}
		bundle, err := p.loader.Load(p.manifest)
		if err != nil {
			return fmt.Errorf("scene: load: %w", err)
		}
		ctx.Assets = bundle
	}

	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return fmt.Errorf("scene: load: %w", err)
	}
	spikeSpec, err := prefabs.LoadSpikeSpec()
	if err != nil {
		return fmt.Errorf("scene: load: %w", err)
	}
	p.playerSpec = playerSpec
	p.spikeSpec = spikeSpec

	ctx.Log.Info("scene loaded", "map", p.manifest.Tilemap.Path, "images", len(ctx.Assets.Images))
	return nil
}

// Build creates every entity and system. It runs once.
func (p *Platformer) Build(ctx *Context) error {
	if p.built {
		return ErrAlreadyBuilt
	}
	if ctx.Assets == nil || ctx.Assets.Map == nil || p.playerSpec == nil || p.spikeSpec == nil {
		return ErrNotLoaded
	}
	settings := ctx.Settings
	w := ctx.World
	bundle := ctx.Assets

	background, err := bundle.Image("background")
	if err != nil {
		return fmt.Errorf("scene: build: %w", err)
	}
	if _, err := entity.NewBackground(w, background, settings.Level.BackgroundSX, settings.Level.BackgroundSY); err != nil {
		return fmt.Errorf("scene: build: %w", err)
	}

	tiles, err := bundle.Image(settings.Level.TilesImage)
	if err != nil {
		return fmt.Errorf("scene: build: %w", err)
	}
	info, err := entity.LoadLevel(w, bundle.Map, entity.LevelOptions{
		Tileset:       settings.Level.Tileset,
		PlatformLayer: settings.Level.PlatformLayer,
		Tiles:         tiles,
	})
	if err != nil {
		return fmt.Errorf("scene: build: %w", err)
	}

	spikeImg, err := bundle.Image(p.spikeSpec.Sprite.Image)
	if err != nil {
		return fmt.Errorf("scene: build: %w", err)
	}
	placements, err := entity.SpikePlacements(bundle.Map, p.spikeSpec)
	if err != nil {
		return fmt.Errorf("scene: build: %w", err)
	}
	p.hazards = p.hazards[:0]
	for _, pl := range placements {
		e, err := entity.NewSpikeAt(w, p.spikeSpec, spikeImg, pl)
		if err != nil {
			return fmt.Errorf("scene: build: %w", err)
		}
		p.hazards = append(p.hazards, e)
	}

	atlas, err := bundle.Atlas(p.playerSpec.Sprite.Atlas)
	if err != nil {
		return fmt.Errorf("scene: build: %w", err)
	}
	p.player, err = entity.NewPlayerAt(w, p.playerSpec, atlas, p.playerSpec.Spawn.X, p.playerSpec.Spawn.Y)
	if err != nil {
		return fmt.Errorf("scene: build: %w", err)
	}

	if _, err := entity.NewCamera(w, float64(settings.Window.Width), float64(settings.Window.Height), settings.Camera.Zoom, settings.Camera.Smoothness); err != nil {
		return fmt.Errorf("scene: build: %w", err)
	}

	p.physics = system.NewPhysicsSystem(system.PhysicsConfig{
		Gravity:    settings.Physics.Gravity,
		Iterations: settings.Physics.Iterations,
		Step:       settings.Step(),
	})
	p.physics.OnHazardContact(func(_ *ecs.World, player, hazard ecs.Entity) {
		p.OnHazardContact(ctx, player, hazard)
	})
	p.responder = system.NewHazardSystem(ctx.Log)

	p.scheduler = ecs.NewScheduler(
		system.NewInputSystem(ctx.Controls),
		system.NewPlayerControllerSystem(),
		system.NewBlinkSystem(settings.Step()),
		p.physics,
		system.NewAnimationSystem(settings.Physics.TPS),
		system.NewCameraSystem(),
		system.NewRenderSystem(),
	)

	p.built = true
	ctx.Log.Info("scene built",
		"level", fmt.Sprintf("%.0fx%.0f", info.Width, info.Height),
		"tiles", info.Tiles,
		"colliders", info.Colliders,
		"hazards", len(p.hazards),
	)
	return nil
}

// OnFrame runs one fixed tick. Blink advances before physics so a reset
// made during the step is drawn at alpha 0.
func (p *Platformer) OnFrame(ctx *Context) error {
	if !p.built {
		return ErrNotLoaded
	}
	p.scheduler.Update(ctx.World)
	for _, evt := range ctx.World.Events().Drain() {
		ctx.Log.Debug("collision", "kind", evt.Kind, "entity", evt.Entity, "other", evt.Other)
	}
	return nil
}

func (p *Platformer) OnHazardContact(ctx *Context, player, hazard ecs.Entity) {
	if p.responder == nil {
		return
	}
	p.responder.Respond(ctx.World, player, hazard)
}

func (p *Platformer) Draw(ctx *Context, screen *ebiten.Image) {
	if !p.built {
		return
	}
	p.scheduler.Draw(ctx.World, screen)
	if ctx.Debug {
		system.DrawPhysicsDebug(p.physics.Space(), ctx.World, screen)
		system.DrawHazardDebug(ctx.World, screen)
		system.DrawPlayerStateDebug(ctx.World, screen)
	}
}

// ReloadPrefab re-reads a changed prefab and applies what can change at
// runtime. Unknown names are ignored.
func (p *Platformer) ReloadPrefab(ctx *Context, name string) error {
	switch name {
	case "player.yaml":
		spec, err := prefabs.LoadPlayerSpec()
		if err != nil {
			return fmt.Errorf("scene: reload %s: %w", name, err)
		}
		p.playerSpec = spec
		if p.built {
			if err := entity.ApplyPlayerSpec(ctx.World, p.player, spec); err != nil {
				return fmt.Errorf("scene: reload %s: %w", name, err)
			}
		}
		ctx.Log.Info("prefab reloaded", "name", name, "move_speed", spec.MoveSpeed, "jump_speed", spec.JumpSpeed)
	default:
		ctx.Log.Debug("prefab change ignored", "name", name)
	}
	return nil
}

func (p *Platformer) Player() ecs.Entity {
	return p.player
}

// Hazards lists the hazard entities in level order.
func (p *Platformer) Hazards() []ecs.Entity {
	return append([]ecs.Entity(nil), p.hazards...)
}

func (p *Platformer) Space() *cp.Space {
	if p.physics == nil {
		return nil
	}
	return p.physics.Space()
}
