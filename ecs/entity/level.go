package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/levels"
)

// LevelOptions binds a map document to its tileset and collision layer.
type LevelOptions struct {
	Tileset       string
	PlatformLayer string
	Tiles         *ebiten.Image
}

// LevelInfo summarises what LoadLevel created.
type LevelInfo struct {
	Width     float64
	Height    float64
	Tiles     int
	Colliders int
}

// LoadLevel creates tile sprites and merged static colliders for the
// platform layer, plus the level bounds entity. Every tile whose index is
// not levels.EmptyTile is solid.
func LoadLevel(world *ecs.World, lvl *levels.Map, opts LevelOptions) (LevelInfo, error) {
	var info LevelInfo
	tileset, err := lvl.Tileset(opts.Tileset)
	if err != nil {
		return info, fmt.Errorf("level: %w", err)
	}
	layer, err := lvl.Layer(opts.PlatformLayer)
	if err != nil {
		return info, fmt.Errorf("level: %w", err)
	}
	if layer.Type != levels.LayerTypeTile {
		return info, fmt.Errorf("level: layer %q is %s, want %s", layer.Name, layer.Type, levels.LayerTypeTile)
	}

	tileW := float64(lvl.TileWidth)
	tileH := float64(lvl.TileHeight)
	for y := 0; y < layer.Height; y++ {
		for x := 0; x < layer.Width; x++ {
			gid := layer.TileIndex(x, y)
			if gid == levels.EmptyTile {
				continue
			}
			src, ok := tileset.Source(gid)
			if !ok {
				return info, fmt.Errorf("level: tile %d at (%d, %d) is not in tileset %q", gid, x, y, tileset.Name)
			}

			e := world.CreateEntity()
			if err := ecs.Add(world, e, component.TransformComponent.Kind(), &component.Transform{
				X:      float64(x)*tileW + layer.OffsetX,
				Y:      float64(y)*tileH + layer.OffsetY,
				ScaleX: 1,
				ScaleY: 1,
			}); err != nil {
				return info, err
			}
			if err := ecs.Add(world, e, component.SpriteComponent.Kind(), &component.Sprite{
				Image:     opts.Tiles,
				Source:    src,
				UseSource: true,
				Alpha:     1,
			}); err != nil {
				return info, err
			}
			if err := ecs.Add(world, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: component.LayerTiles}); err != nil {
				return info, err
			}
			info.Tiles++
		}
	}

	mask := layer.SolidMask(levels.EmptyTile)
	rects := MergeSolidTiles(mask, layer.Width, layer.Height)
	for _, r := range rects {
		e := world.CreateEntity()
		if err := ecs.Add(world, e, component.TransformComponent.Kind(), &component.Transform{
			X:      float64(r.X)*tileW + layer.OffsetX,
			Y:      float64(r.Y)*tileH + layer.OffsetY,
			ScaleX: 1,
			ScaleY: 1,
		}); err != nil {
			return info, err
		}
		if err := ecs.Add(world, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Width:        float64(r.W) * tileW,
			Height:       float64(r.H) * tileH,
			Friction:     0.9,
			Elasticity:   1,
			Static:       true,
			AlignTopLeft: true,
		}); err != nil {
			return info, err
		}
	}
	info.Colliders = len(rects)

	info.Width, info.Height = LevelExtent(lvl)
	boundsEntity := world.CreateEntity()
	if err := ecs.Add(world, boundsEntity, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  info.Width,
		Height: info.Height,
	}); err != nil {
		return info, err
	}

	return info, nil
}

// LevelExtent is the map size grown by the largest positive layer offset.
func LevelExtent(lvl *levels.Map) (float64, float64) {
	w, h := lvl.PixelSize()
	maxX, maxY := 0.0, 0.0
	for _, l := range lvl.Layers {
		if l.OffsetX > maxX {
			maxX = l.OffsetX
		}
		if l.OffsetY > maxY {
			maxY = l.OffsetY
		}
	}
	return w + maxX, h + maxY
}

// TileRect is a block of tiles in grid coordinates.
type TileRect struct {
	X, Y, W, H int
}

// MergeSolidTiles greedily covers the solid cells with as few rectangles
// as it can, scanning rows top to bottom.
func MergeSolidTiles(solid []bool, width, height int) []TileRect {
	if width <= 0 || height <= 0 {
		return nil
	}
	visited := make([]bool, width*height)
	index := func(x, y int) int { return y*width + x }
	open := func(x, y int) bool {
		idx := index(x, y)
		return idx < len(solid) && solid[idx] && !visited[idx]
	}

	var out []TileRect
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !open(x, y) {
				continue
			}

			maxW := 0
			for x2 := x; x2 < width && open(x2, y); x2++ {
				maxW++
			}

			maxH := 1
			for y2 := y + 1; y2 < height; y2++ {
				rowOK := true
				for x2 := x; x2 < x+maxW; x2++ {
					if !open(x2, y2) {
						rowOK = false
						break
					}
				}
				if !rowOK {
					break
				}
				maxH++
			}

			for yy := y; yy < y+maxH; yy++ {
				for xx := x; xx < x+maxW; xx++ {
					visited[index(xx, yy)] = true
				}
			}
			out = append(out, TileRect{X: x, Y: y, W: maxW, H: maxH})
		}
	}
	return out
}
