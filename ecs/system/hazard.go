package system

import (
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/tween"
)

// HazardSystem resets the player when physics reports a hazard contact.
type HazardSystem struct {
	log *log.Logger
}

func NewHazardSystem(logger *log.Logger) *HazardSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &HazardSystem{log: logger}
}

// Respond zeroes the player's velocity, moves it back to spawn, plays idle
// and restarts the respawn blink from alpha 0. A blink already running is
// cancelled and replaced.
func (s *HazardSystem) Respond(w *ecs.World, player, hazard ecs.Entity) {
	if w == nil || !w.IsAlive(player) {
		return
	}
	p, ok := ecs.Get(w, player, component.PlayerComponent.Kind())
	if !ok {
		return
	}

	if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
		body, bok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
		if bok {
			PlaceBody(t, body, p.SpawnX, p.SpawnY)
			if body.Body != nil {
				body.Body.SetVelocityVector(cp.Vector{})
			}
		} else {
			t.X, t.Y = p.SpawnX, p.SpawnY
		}
	}

	if anim, ok := ecs.Get(w, player, component.AnimationComponent.Kind()); ok {
		anim.Play(ClipIdle)
	}
	if sprite, ok := ecs.Get(w, player, component.SpriteComponent.Kind()); ok {
		sprite.Alpha = 0
	}

	if prev, ok := ecs.Get(w, player, component.BlinkComponent.Kind()); ok {
		prev.Handle.Cancel()
	}
	blink := tween.NewBlink(p.BlinkDuration, p.BlinkRepeat)
	_ = ecs.Add(w, player, component.BlinkComponent.Kind(), &component.Blink{Handle: blink})

	p.Resets++
	s.log.Debug("hazard contact", "player", player, "hazard", hazard, "resets", p.Resets)
}

// DrawHazardDebug renders hazard colliders for debug visualization.
func DrawHazardDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	camX, camY, zoom := debugCameraTransform(w)
	ecs.ForEach2(w, component.HazardComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, h *component.Hazard, t *component.Transform) {
		x := (t.X + h.OffsetX - camX) * zoom
		y := (t.Y + h.OffsetY - camY) * zoom
		wdt := h.Width * zoom
		hgt := h.Height * zoom
		vector.FillRect(screen, float32(x), float32(y), float32(wdt), float32(hgt), color.RGBA{R: 255, G: 0, B: 0, A: 48}, false)
		vector.StrokeRect(screen, float32(x), float32(y), float32(wdt), float32(hgt), 1.0, color.RGBA{R: 255, G: 0, B: 0, A: 200}, false)
	})
}
