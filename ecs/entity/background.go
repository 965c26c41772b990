package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// NewBackground places img at the world origin, below every other layer.
func NewBackground(w *ecs.World, img *ebiten.Image, scaleX, scaleY float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.BackgroundTagComponent.Kind(), &component.BackgroundTag{}); err != nil {
		return 0, fmt.Errorf("background: add tag: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{ScaleX: scaleX, ScaleY: scaleY}); err != nil {
		return 0, fmt.Errorf("background: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Image: img, Alpha: 1}); err != nil {
		return 0, fmt.Errorf("background: add sprite: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: component.LayerBackground}); err != nil {
		return 0, fmt.Errorf("background: add render layer: %w", err)
	}
	return e, nil
}
