package component

type Player struct {
	MoveSpeed float64
	JumpSpeed float64
	SpawnX    float64
	SpawnY    float64

	// Respawn blink, in seconds per cycle and extra cycles.
	BlinkDuration float64
	BlinkRepeat   int

	Resets int
}

var PlayerComponent = NewComponent[Player]()
