// Package tween wraps gween tweens in handles that gameplay code can query
// or cancel.
package tween

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Blink fades alpha linearly from 0 to 1 over a fixed duration and then
// restarts from 0 for a number of extra cycles. Nothing waits on it by
// default; callers may poll Done, register OnComplete or Cancel it.
type Blink struct {
	tween     *gween.Tween
	repeat    int
	cycle     int
	alpha     float64
	done      bool
	cancelled bool
	onDone    []func()
}

// NewBlink creates a blink running for 1+repeat cycles of duration seconds.
// A non-positive duration yields a handle that is already done.
func NewBlink(duration float64, repeat int) *Blink {
	if repeat < 0 {
		repeat = 0
	}
	b := &Blink{repeat: repeat}
	if duration <= 0 {
		b.done = true
		b.alpha = 1
		return b
	}
	b.tween = gween.New(0, 1, float32(duration), ease.Linear)
	return b
}

// Update advances the blink by dt seconds and returns the alpha to render.
func (b *Blink) Update(dt float64) float64 {
	if b == nil {
		return 1
	}
	if b.done {
		return b.alpha
	}

	val, finished := b.tween.Update(float32(dt))
	b.alpha = float64(val)
	if !finished {
		return b.alpha
	}

	if b.cycle < b.repeat {
		b.cycle++
		b.tween.Reset()
		return b.alpha
	}

	b.done = true
	b.alpha = 1
	for _, fn := range b.onDone {
		fn()
	}
	b.onDone = nil
	return b.alpha
}

// Cancel stops the blink and leaves the target fully opaque. Completion
// callbacks are not run.
func (b *Blink) Cancel() {
	if b == nil || b.done {
		return
	}
	b.done = true
	b.cancelled = true
	b.alpha = 1
	b.onDone = nil
}

// OnComplete registers fn to run when the last cycle finishes. If the blink
// already completed normally fn runs immediately.
func (b *Blink) OnComplete(fn func()) {
	if b == nil || fn == nil {
		return
	}
	if b.done {
		if !b.cancelled {
			fn()
		}
		return
	}
	b.onDone = append(b.onDone, fn)
}

func (b *Blink) Alpha() float64 {
	if b == nil {
		return 1
	}
	return b.alpha
}

func (b *Blink) Done() bool {
	return b == nil || b.done
}

func (b *Blink) Cancelled() bool {
	return b != nil && b.cancelled
}

// Cycle is the zero-based index of the cycle in progress.
func (b *Blink) Cycle() int {
	if b == nil {
		return 0
	}
	return b.cycle
}

// Cycles is the total number of cycles, the first one included.
func (b *Blink) Cycles() int {
	if b == nil {
		return 0
	}
	return b.repeat + 1
}
