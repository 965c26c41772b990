package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/input"
)

type InputSystem struct {
	controls *input.Controls
}

func NewInputSystem(controls *input.Controls) *InputSystem {
	if controls == nil {
		controls = input.NewControls(input.Keyboard, input.DefaultBindings())
	}
	return &InputSystem{controls: controls}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	state := i.controls.Poll()
	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, in *component.Input) {
		*in = state
	})
}
