package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// BlinkSystem advances blink tweens and writes their alpha to the sprite.
type BlinkSystem struct {
	dt float64
}

func NewBlinkSystem(dt float64) *BlinkSystem {
	return &BlinkSystem{dt: dt}
}

func (s *BlinkSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.BlinkComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, b *component.Blink, sprite *component.Sprite) {
		sprite.Alpha = b.Handle.Update(s.dt)
		if b.Handle.Done() {
			ecs.Remove(w, e, component.BlinkComponent.Kind())
		}
	})
}
