package overlay

import (
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/karthickk/splash-screen/internal/document"
)

const (
	// EffectDuration is how long a fade or slide runs.
	EffectDuration = 300 * time.Millisecond
	// FrameRate is the number of effect frames per second.
	FrameRate = 30

	frameInterval = time.Second / FrameRate

	// slide spring parameters; critically damped so the overlay never
	// overshoots the screen edge.
	slideFrequency = 15.0
	slideDamping   = 1.0
)

// FrameMsg advances the effect with the matching ID by one frame.
type FrameMsg struct {
	ID uint64
}

// effect is a single in-flight transition.
type effect struct {
	id         uint64
	transition document.Transition
	dir        Direction
	frame      int
	frames     int
	positions  []float64
}

func newEffect(id uint64, transition document.Transition, dir Direction) *effect {
	frames := int(EffectDuration / frameInterval)
	if frames < 1 {
		frames = 1
	}
	e := &effect{id: id, transition: transition, dir: dir, frames: frames}
	if transition == document.TransitionSlide {
		e.positions = springPositions(frames)
	}
	return e
}

// springPositions samples a harmonica spring from 0 to 1 once per frame. The
// last sample is pinned to 1 so the effect always lands exactly.
func springPositions(frames int) []float64 {
	spring := harmonica.NewSpring(harmonica.FPS(FrameRate), slideFrequency, slideDamping)
	positions := make([]float64, frames+1)
	pos, vel := 0.0, 0.0
	for i := 1; i <= frames; i++ {
		pos, vel = spring.Update(pos, vel, 1.0)
		positions[i] = clamp01(pos)
	}
	positions[frames] = 1
	return positions
}

func (e *effect) done() bool {
	return e.frame >= e.frames
}

// progress is how far the effect has travelled toward its target, 0..1.
func (e *effect) progress() float64 {
	if e.frame >= e.frames {
		return 1
	}
	if e.positions != nil {
		return e.positions[e.frame]
	}
	return float64(e.frame) / float64(e.frames)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
