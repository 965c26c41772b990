package component

import "github.com/milk9111/platformer/tween"

// Blink drives Sprite.Alpha from a running tween handle.
type Blink struct {
	Handle *tween.Blink
}

var BlinkComponent = NewComponent[Blink]()
