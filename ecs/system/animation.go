package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

type AnimationSystem struct {
	tps float64
}

func NewAnimationSystem(tps int) *AnimationSystem {
	if tps <= 0 {
		tps = 60
	}
	return &AnimationSystem{tps: float64(tps)}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.AnimationComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, anim *component.Animation, sprite *component.Sprite) {
		clip, ok := anim.Clips[anim.Current]
		if !ok || len(clip.Frames) == 0 {
			return
		}

		if anim.Playing {
			// Advance frame every N ticks based on FPS and the tick rate.
			ticksPerFrame := int(a.tps / clip.FPS)
			if ticksPerFrame < 1 {
				ticksPerFrame = 1
			}

			anim.FrameTimer++
			if anim.FrameTimer >= ticksPerFrame {
				anim.FrameTimer = 0
				anim.Frame++
				if anim.Frame >= len(clip.Frames) {
					if clip.Loop {
						anim.Frame = 0
					} else {
						anim.Frame = len(clip.Frames) - 1
						anim.Playing = false
					}
				}
			}
		}

		rect, ok := anim.Frames[anim.FrameName()]
		if !ok {
			return
		}
		if anim.Sheet != nil {
			sprite.Image = anim.Sheet
		}
		sprite.Source = rect
		sprite.UseSource = true
	})
}
