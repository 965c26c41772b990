package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

const (
	ClipWalk = "walk"
	ClipIdle = "idle"
	ClipJump = "jump"
)

type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := w.Query(
		component.PlayerTagComponent.Kind(),
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		component.PlayerComponent.Kind(),
	)
	for _, e := range entities {
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if bodyComp.Body == nil {
			continue
		}

		grounded := false
		if pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind()); ok {
			grounded = pc.Grounded
		}

		vel := bodyComp.Body.Velocity()
		clip := ""
		switch {
		case input.Left:
			vel.X = -player.MoveSpeed
		case input.Right:
			vel.X = player.MoveSpeed
		default:
			vel.X = 0
		}
		if grounded {
			clip = ClipIdle
			if vel.X != 0 {
				clip = ClipWalk
			}
		}

		if input.JumpHeld() && grounded {
			vel.Y = -player.JumpSpeed
			clip = ClipJump
		}

		bodyComp.Body.SetVelocityVector(vel)

		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			if vel.X > 0 {
				sprite.FacingLeft = false
			} else if vel.X < 0 {
				sprite.FacingLeft = true
			}
		}
		if clip != "" {
			if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
				anim.Play(clip)
			}
		}
	}
}
