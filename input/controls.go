// Package input polls the keyboard for the four gameplay buttons.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/ecs/component"
)

// KeySource reports whether a key is held this tick.
type KeySource interface {
	IsKeyPressed(key ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) IsKeyPressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

// Keyboard is the live ebiten key source.
var Keyboard KeySource = ebitenKeys{}

// Bindings maps each logical button to the keys that trigger it.
type Bindings struct {
	Left  []ebiten.Key
	Right []ebiten.Key
	Up    []ebiten.Key
	Jump  []ebiten.Key
}

func DefaultBindings() Bindings {
	return Bindings{
		Left:  []ebiten.Key{ebiten.KeyArrowLeft},
		Right: []ebiten.Key{ebiten.KeyArrowRight},
		Up:    []ebiten.Key{ebiten.KeyArrowUp},
		Jump:  []ebiten.Key{ebiten.KeySpace},
	}
}

// Controls is the input handle created by the scene.
type Controls struct {
	src      KeySource
	bindings Bindings
}

func NewControls(src KeySource, bindings Bindings) *Controls {
	if src == nil {
		src = Keyboard
	}
	return &Controls{src: src, bindings: bindings}
}

// Poll samples held state for this tick.
func (c *Controls) Poll() component.Input {
	if c == nil {
		return component.Input{}
	}
	return component.Input{
		Left:  c.any(c.bindings.Left),
		Right: c.any(c.bindings.Right),
		Up:    c.any(c.bindings.Up),
		Jump:  c.any(c.bindings.Jump),
	}
}

func (c *Controls) any(keys []ebiten.Key) bool {
	for _, k := range keys {
		if c.src.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// Held is a KeySource backed by a set, for tests and replays.
type Held map[ebiten.Key]bool

func (h Held) IsKeyPressed(key ebiten.Key) bool {
	return h[key]
}
