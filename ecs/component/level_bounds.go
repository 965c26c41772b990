package component

// LevelBounds stores the world-space extent the player is clamped to,
// layer offsets included.
type LevelBounds struct {
	Width  float64
	Height float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
