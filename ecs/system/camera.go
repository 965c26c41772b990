package system

import (
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update centres the camera on the player and keeps the view inside the
// level bounds.
func (cs *CameraSystem) Update(w *ecs.World) {
	if !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}
	if !w.IsAlive(cs.targetEntity) {
		target, ok := w.First(component.PlayerTagComponent.Kind())
		if !ok {
			return
		}
		cs.targetEntity = target
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	targetTransform, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	viewW := cam.ViewW / zoom
	viewH := cam.ViewH / zoom

	x := targetTransform.X - viewW/2
	y := targetTransform.Y - viewH/2
	if boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind()); ok {
		if bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind()); ok {
			// A view larger than the level stays pinned at 0.
			x = common.Clamp(x, 0, bounds.Width-viewW)
			y = common.Clamp(y, 0, bounds.Height-viewH)
		}
	}

	if cam.Smoothness > 0 && cam.Smoothness < 1 {
		x = common.Lerp(camTransform.X, x, 1-cam.Smoothness)
		y = common.Lerp(camTransform.Y, y, 1-cam.Smoothness)
	}
	camTransform.X = x
	camTransform.Y = y
}
