package animator

import (
	"math"

	"github.com/dariandzirko/water-spider/common"
)

const (
	// DefaultSpeed is the phase advance per frame, in radians, before direction scaling.
	DefaultSpeed float32 = 0.02
)

// DefaultDirection scrolls the water towards the top-left.
var DefaultDirection = [2]float32{-1, -1}

// water is the implementation of the Water interface.
type water struct {
	speed     float32
	direction [2]float32
	phaseX    float32
	phaseY    float32
	uniform   OffsetUniform
}

// Water holds the scroll speed, direction and accumulated phase of the water overlay.
// Each rendered frame advances the phase once and derives the OffsetUniform the
// fragment stage uses to shift the water texture.
type Water interface {
	// Advance moves the phase by direction * speed, wraps it into [0, 2π) and
	// returns the offset derived from the new phase.
	//
	// Returns:
	//   - OffsetUniform: the offset for this frame, padding always zero
	Advance() OffsetUniform

	// Phase returns the current phase pair.
	//
	// Returns:
	//   - float32: the x phase in [0, 2π)
	//   - float32: the y phase in [0, 2π)
	Phase() (float32, float32)

	// Speed returns the phase advance per frame.
	Speed() float32

	// Direction returns the per-axis direction multipliers.
	Direction() [2]float32

	// Uniform returns the most recently derived offset without advancing.
	Uniform() OffsetUniform
}

var _ Water = &water{}

// NewWater creates a Water animation state starting at phase (0, 0).
//
// Parameters:
//   - options: functional options overriding the default speed and direction
//
// Returns:
//   - Water: the new animation state
func NewWater(options ...WaterBuilderOption) Water {
	w := &water{
		speed:     DefaultSpeed,
		direction: DefaultDirection,
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *water) Advance() OffsetUniform {
	w.phaseX = common.WrapAngle(w.phaseX + w.direction[0]*w.speed)
	w.phaseY = common.WrapAngle(w.phaseY + w.direction[1]*w.speed)

	w.uniform = OffsetUniform{
		Offset: [2]float32{
			OffsetForPhase(w.phaseX),
			OffsetForPhase(w.phaseY),
		},
	}
	return w.uniform
}

func (w *water) Phase() (float32, float32) {
	return w.phaseX, w.phaseY
}

func (w *water) Speed() float32 {
	return w.speed
}

func (w *water) Direction() [2]float32 {
	return w.direction
}

func (w *water) Uniform() OffsetUniform {
	return w.uniform
}

// OffsetForPhase maps a phase onto the [0, 0.02] texture offset range.
//
// Parameters:
//   - phase: the phase in radians
//
// Returns:
//   - float32: (sin(phase) + 1) / 100
func OffsetForPhase(phase float32) float32 {
	return (float32(math.Sin(float64(phase))) + 1) / 100
}
