package render

import (
	"fmt"

	"github.com/milk9111/platformer/ecs/component"
)

// AnimationLibrary stores animation clips by key.
type AnimationLibrary struct {
	clips map[string]component.AnimationClip
}

// NewAnimationLibrary creates an empty library.
func NewAnimationLibrary() *AnimationLibrary {
	return &AnimationLibrary{clips: make(map[string]component.AnimationClip)}
}

// Register adds a clip, resolving every frame against the atlas.
func (l *AnimationLibrary) Register(atlas *Atlas, clip component.AnimationClip) error {
	if clip.Name == "" {
		return fmt.Errorf("render: clip without name")
	}
	if len(clip.Frames) == 0 {
		return fmt.Errorf("render: clip %q has no frames", clip.Name)
	}
	if clip.FPS <= 0 {
		return fmt.Errorf("render: clip %q has fps %v", clip.Name, clip.FPS)
	}
	for _, f := range clip.Frames {
		if _, err := atlas.Frame(f); err != nil {
			return fmt.Errorf("render: clip %q: %w", clip.Name, err)
		}
	}
	l.clips[clip.Name] = clip
	return nil
}

// Get returns an animation clip by key.
func (l *AnimationLibrary) Get(key string) (component.AnimationClip, bool) {
	if l == nil || key == "" {
		return component.AnimationClip{}, false
	}
	clip, ok := l.clips[key]
	return clip, ok
}

// Clips returns a copy suitable for an Animation component.
func (l *AnimationLibrary) Clips() map[string]component.AnimationClip {
	out := make(map[string]component.AnimationClip, len(l.clips))
	for k, v := range l.clips {
		out[k] = v
	}
	return out
}
