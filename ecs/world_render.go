package ecs

import "github.com/hajimehoshi/ebiten/v2"

// Drawer is implemented by systems that render.
type Drawer interface {
	Draw(w *World, screen *ebiten.Image)
}

// Draw calls every scheduled system that is also a Drawer, in order.
func (s *Scheduler) Draw(w *World, screen *ebiten.Image) {
	if s == nil || w == nil || screen == nil {
		return
	}
	for _, sys := range s.systems {
		if d, ok := sys.(Drawer); ok {
			d.Draw(w, screen)
		}
	}
}
