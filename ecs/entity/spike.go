package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
)

// HazardPlacement is a hazard's top-left corner and size in world units.
type HazardPlacement struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// SpikePlacements reads the spike object layer. Tiled anchors tile objects
// at the bottom-left, so the top-left is y - height, shifted by the layer
// offset. Objects whose gid is not the spike gid are skipped.
func SpikePlacements(lvl *levels.Map, spec *prefabs.SpikeSpec) ([]HazardPlacement, error) {
	layer, err := lvl.Layer(spec.Layer)
	if err != nil {
		return nil, fmt.Errorf("spike: %w", err)
	}
	if layer.Type != levels.LayerTypeObject {
		return nil, fmt.Errorf("spike: layer %q is %s, want %s", layer.Name, layer.Type, levels.LayerTypeObject)
	}

	var out []HazardPlacement
	for _, obj := range layer.Objects {
		if spec.GID != 0 && obj.GID != spec.GID {
			continue
		}
		out = append(out, HazardPlacement{
			X:      obj.X + layer.OffsetX,
			Y:      obj.Y + layer.OffsetY - obj.Height,
			Width:  obj.Width,
			Height: obj.Height,
		})
	}
	return out, nil
}

// NewSpikeAt creates a static hazard whose collider starts HitMargin below
// the sprite's top edge.
func NewSpikeAt(w *ecs.World, spec *prefabs.SpikeSpec, img *ebiten.Image, p HazardPlacement) (ecs.Entity, error) {
	margin := spec.HitMargin
	if margin >= p.Height {
		return 0, fmt.Errorf("spike: hit margin %v leaves no collider in height %v", margin, p.Height)
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: p.X, Y: p.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("spike: add transform: %w", err)
	}

	sprite := &component.Sprite{Image: img, Alpha: 1}
	if img != nil {
		// Stretch the sprite to the placement size.
		iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
		if iw > 0 && ih > 0 {
			t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			t.ScaleX = p.Width / float64(iw)
			t.ScaleY = p.Height / float64(ih)
		}
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), sprite); err != nil {
		return 0, fmt.Errorf("spike: add sprite: %w", err)
	}

	layer := spec.RenderLayer.Index
	if layer == 0 {
		layer = component.LayerHazards
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layer}); err != nil {
		return 0, fmt.Errorf("spike: add render layer: %w", err)
	}

	if err := ecs.Add(w, e, component.HazardComponent.Kind(), &component.Hazard{
		Width:   p.Width,
		Height:  p.Height - margin,
		OffsetY: margin,
	}); err != nil {
		return 0, fmt.Errorf("spike: add hazard: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:        p.Width,
		Height:       p.Height - margin,
		OffsetY:      margin,
		Static:       true,
		Sensor:       true,
		AlignTopLeft: true,
	}); err != nil {
		return 0, fmt.Errorf("spike: add physics body: %w", err)
	}

	return e, nil
}
