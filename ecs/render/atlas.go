package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

var ErrUnknownFrame = errors.New("render: unknown atlas frame")

// Atlas is a sprite sheet plus named frame rectangles.
type Atlas struct {
	Image  *ebiten.Image
	frames map[string]image.Rectangle
}

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Filename string   `json:"filename"`
	Frame    jsonRect `json:"frame"`
}

// ParseAtlas reads TexturePacker JSON in either the hash layout
// ({"frames": {"name": {...}}}) or the array layout
// ({"frames": [{"filename": "name", ...}]}).
func ParseAtlas(data []byte) (map[string]image.Rectangle, error) {
	var probe struct {
		Frames json.RawMessage `json:"frames"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("render: parse atlas: %w", err)
	}
	raw := bytes.TrimSpace(probe.Frames)
	if len(raw) == 0 {
		return nil, fmt.Errorf("render: atlas has no \"frames\" key")
	}

	out := make(map[string]image.Rectangle)
	switch raw[0] {
	case '{':
		var frames map[string]jsonFrame
		if err := json.Unmarshal(raw, &frames); err != nil {
			return nil, fmt.Errorf("render: parse atlas frames: %w", err)
		}
		for name, f := range frames {
			out[name] = toRect(f.Frame)
		}
	case '[':
		var frames []jsonFrame
		if err := json.Unmarshal(raw, &frames); err != nil {
			return nil, fmt.Errorf("render: parse atlas frames: %w", err)
		}
		for _, f := range frames {
			if f.Filename == "" {
				return nil, fmt.Errorf("render: atlas frame without filename")
			}
			out[f.Filename] = toRect(f.Frame)
		}
	default:
		return nil, fmt.Errorf("render: unexpected atlas frames value")
	}
	return out, nil
}

func toRect(r jsonRect) image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// NewAtlas pairs a sheet image with its frame metadata.
func NewAtlas(img *ebiten.Image, data []byte) (*Atlas, error) {
	frames, err := ParseAtlas(data)
	if err != nil {
		return nil, err
	}
	return &Atlas{Image: img, frames: frames}, nil
}

// Frame returns the rectangle of a named frame.
func (a *Atlas) Frame(name string) (image.Rectangle, error) {
	if a != nil {
		if r, ok := a.frames[name]; ok {
			return r, nil
		}
	}
	return image.Rectangle{}, fmt.Errorf("%w: %q", ErrUnknownFrame, name)
}

// Frames returns a copy of the frame table.
func (a *Atlas) Frames() map[string]image.Rectangle {
	out := make(map[string]image.Rectangle, len(a.frames))
	for k, v := range a.frames {
		out[k] = v
	}
	return out
}

func (a *Atlas) Names() []string {
	names := make([]string, 0, len(a.frames))
	for k := range a.frames {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
