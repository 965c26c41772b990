package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// AnimationClip is an ordered list of atlas frame names played at FPS.
type AnimationClip struct {
	Name   string
	Frames []string
	FPS    float64
	Loop   bool
}

type Animation struct {
	Sheet  *ebiten.Image
	Frames map[string]image.Rectangle
	Clips  map[string]AnimationClip

	Current    string
	Frame      int
	FrameTimer int
	Playing    bool
}

// Play switches to the named clip. A clip that is already playing keeps its
// current frame. Unknown names are ignored and reported as false.
func (a *Animation) Play(name string) bool {
	if a == nil {
		return false
	}
	if _, ok := a.Clips[name]; !ok {
		return false
	}
	if a.Current == name && a.Playing {
		return true
	}
	a.Current = name
	a.Frame = 0
	a.FrameTimer = 0
	a.Playing = true
	return true
}

// FrameName is the atlas frame shown right now, or "".
func (a *Animation) FrameName() string {
	if a == nil {
		return ""
	}
	clip, ok := a.Clips[a.Current]
	if !ok || len(clip.Frames) == 0 {
		return ""
	}
	idx := a.Frame
	if idx < 0 || idx >= len(clip.Frames) {
		idx = len(clip.Frames) - 1
	}
	return clip.Frames[idx]
}

var AnimationComponent = NewComponent[Animation]()
