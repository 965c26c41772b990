package component

// Input stores the held state of the four logical buttons for this tick.
type Input struct {
	Left  bool
	Right bool
	Up    bool
	Jump  bool
}

// JumpHeld reports whether either jump binding is down.
func (in Input) JumpHeld() bool {
	return in.Jump || in.Up
}

var InputComponent = NewComponent[Input]()
