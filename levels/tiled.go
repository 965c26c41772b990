// Package levels decodes Tiled JSON map documents.
package levels

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
)

var (
	ErrLayerNotFound   = errors.New("levels: layer not found")
	ErrTilesetNotFound = errors.New("levels: tileset not found")
)

// EmptyTile is the tile index reported for cells with no tile.
const EmptyTile = -1

const (
	LayerTypeTile   = "tilelayer"
	LayerTypeObject = "objectgroup"
)

// Tiled stores flip/rotation flags in the top bits of a gid.
const gidFlagMask = 0x1FFFFFFF

type Map struct {
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	TileWidth  int       `json:"tilewidth"`
	TileHeight int       `json:"tileheight"`
	Layers     []Layer   `json:"layers"`
	Tilesets   []Tileset `json:"tilesets"`
}

type Layer struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Data    []int    `json:"data,omitempty"`
	Objects []Object `json:"objects,omitempty"`
	OffsetX float64  `json:"offsetx"`
	OffsetY float64  `json:"offsety"`
	Visible bool     `json:"visible"`
}

// Object is a placement in an object layer. Tile objects (GID != 0) are
// anchored at their bottom-left corner, as Tiled authors them.
type Object struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	GID    int     `json:"gid"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Tileset struct {
	FirstGID    int    `json:"firstgid"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	ImageWidth  int    `json:"imagewidth"`
	ImageHeight int    `json:"imageheight"`
	TileWidth   int    `json:"tilewidth"`
	TileHeight  int    `json:"tileheight"`
	Columns     int    `json:"columns"`
	TileCount   int    `json:"tilecount"`
	Margin      int    `json:"margin"`
	Spacing     int    `json:"spacing"`
}

// Parse decodes and validates a Tiled JSON document.
func Parse(data []byte) (*Map, error) {
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("levels: unmarshal map: %w", err)
	}
	if m.Width <= 0 || m.Height <= 0 || m.TileWidth <= 0 || m.TileHeight <= 0 {
		return nil, fmt.Errorf("levels: invalid map size %dx%d tiles of %dx%d", m.Width, m.Height, m.TileWidth, m.TileHeight)
	}
	for i := range m.Layers {
		l := &m.Layers[i]
		if l.Type != LayerTypeTile {
			continue
		}
		if l.Width == 0 && l.Height == 0 {
			l.Width, l.Height = m.Width, m.Height
		}
		if len(l.Data) != l.Width*l.Height {
			return nil, fmt.Errorf("levels: layer %q has %d cells, want %d", l.Name, len(l.Data), l.Width*l.Height)
		}
	}
	return &m, nil
}

// Load reads and parses a map document from disk.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	return Parse(data)
}

// Layer returns the named layer.
func (m *Map) Layer(name string) (*Layer, error) {
	for i := range m.Layers {
		if m.Layers[i].Name == name {
			return &m.Layers[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrLayerNotFound, name)
}

// Tileset returns the tileset with the given name.
func (m *Map) Tileset(name string) (*Tileset, error) {
	for i := range m.Tilesets {
		if m.Tilesets[i].Name == name {
			return &m.Tilesets[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrTilesetNotFound, name)
}

// PixelSize is the map extent in world units, ignoring layer offsets.
func (m *Map) PixelSize() (float64, float64) {
	return float64(m.Width * m.TileWidth), float64(m.Height * m.TileHeight)
}

// TileIndex returns the global tile id at (x, y), or EmptyTile.
func (l *Layer) TileIndex(x, y int) int {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return EmptyTile
	}
	gid := l.Data[y*l.Width+x] & gidFlagMask
	if gid == 0 {
		return EmptyTile
	}
	return gid
}

// SolidMask marks every cell whose index is not the excluded value.
func (l *Layer) SolidMask(exclude int) []bool {
	mask := make([]bool, l.Width*l.Height)
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			mask[y*l.Width+x] = l.TileIndex(x, y) != exclude
		}
	}
	return mask
}

// Contains reports whether gid belongs to this tileset.
func (t *Tileset) Contains(gid int) bool {
	if gid < t.FirstGID {
		return false
	}
	if t.TileCount > 0 && gid >= t.FirstGID+t.TileCount {
		return false
	}
	return true
}

// Source returns the sub-rectangle of the tileset image for gid.
func (t *Tileset) Source(gid int) (image.Rectangle, bool) {
	if !t.Contains(gid) || t.Columns <= 0 || t.TileWidth <= 0 || t.TileHeight <= 0 {
		return image.Rectangle{}, false
	}
	local := gid - t.FirstGID
	col := local % t.Columns
	row := local / t.Columns
	x := t.Margin + col*(t.TileWidth+t.Spacing)
	y := t.Margin + row*(t.TileHeight+t.Spacing)
	return image.Rect(x, y, x+t.TileWidth, y+t.TileHeight), true
}
