package entity

import (
	"errors"
	"fmt"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/render"
	"github.com/milk9111/platformer/prefabs"
)

var ErrPlayerExists = errors.New("entity: player already exists")

// NewPlayerAt creates the single player entity centred on (x, y). Every
// clip in the spec must resolve against the atlas.
func NewPlayerAt(w *ecs.World, spec *prefabs.PlayerSpec, atlas *render.Atlas, x, y float64) (ecs.Entity, error) {
	if spec == nil || atlas == nil {
		return 0, fmt.Errorf("player: spec and atlas are required")
	}
	if _, ok := w.First(component.PlayerTagComponent.Kind()); ok {
		return 0, ErrPlayerExists
	}

	lib := render.NewAnimationLibrary()
	for _, c := range spec.Animations {
		clip := component.AnimationClip{Name: c.Name, Frames: c.Frames, FPS: c.FPS, Loop: c.Loop}
		if err := lib.Register(atlas, clip); err != nil {
			return 0, fmt.Errorf("player: %w", err)
		}
	}
	initial := spec.InitialClip
	if initial == "" {
		initial = "idle"
	}
	if _, ok := lib.Get(initial); !ok {
		return 0, fmt.Errorf("player: initial clip %q not defined", initial)
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add tag: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}

	anim := &component.Animation{
		Sheet:  atlas.Image,
		Frames: atlas.Frames(),
		Clips:  lib.Clips(),
	}
	anim.Play(initial)
	sprite := &component.Sprite{
		Image:     atlas.Image,
		Source:    anim.Frames[anim.FrameName()],
		UseSource: true,
		OriginX:   spec.Sprite.OriginX,
		OriginY:   spec.Sprite.OriginY,
		Alpha:     1,
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), sprite); err != nil {
		return 0, fmt.Errorf("player: add sprite: %w", err)
	}
	if err := ecs.Add(w, e, component.AnimationComponent.Kind(), anim); err != nil {
		return 0, fmt.Errorf("player: add animation: %w", err)
	}

	layer := spec.RenderLayer.Index
	if layer == 0 {
		layer = component.LayerPlayer
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layer}); err != nil {
		return 0, fmt.Errorf("player: add render layer: %w", err)
	}

	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:      spec.Collider.Width,
		Height:     spec.Collider.Height,
		OffsetX:    spec.Collider.OffsetX,
		OffsetY:    spec.Collider.OffsetY,
		Mass:       1,
		Elasticity: spec.Bounce,
	}); err != nil {
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}

	player := &component.Player{SpawnX: x, SpawnY: y}
	applyTunables(player, spec)
	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), player); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}
	if err := ecs.Add(w, e, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{}); err != nil {
		return 0, fmt.Errorf("player: add player collision: %w", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}

	return e, nil
}

// ApplyPlayerSpec copies reloadable tunables onto an existing player.
// Spawn, collider and clips stay as built.
func ApplyPlayerSpec(w *ecs.World, e ecs.Entity, spec *prefabs.PlayerSpec) error {
	player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok {
		return fmt.Errorf("player: %w", component.ErrEntityNotAlive)
	}
	applyTunables(player, spec)
	return nil
}

func applyTunables(p *component.Player, spec *prefabs.PlayerSpec) {
	p.MoveSpeed = spec.MoveSpeed
	p.JumpSpeed = spec.JumpSpeed
	p.BlinkDuration = spec.RespawnBlink.DurationMS / 1000
	p.BlinkRepeat = spec.RespawnBlink.Repeat
}
