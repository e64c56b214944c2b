package renderer

import (
	"errors"
	"fmt"
)

// ErrSurfaceOutOfMemory is returned by RenderFrame when the surface reports it is out of memory.
// The frame loop must stop.
var ErrSurfaceOutOfMemory = errors.New("surface out of memory")

// FrameOutcome reports what a single RenderFrame call did.
type FrameOutcome int

const (
	// FramePresented means the frame was recorded, submitted and presented.
	FramePresented FrameOutcome = iota

	// FrameReconfigured means the surface was lost or outdated and was reconfigured at the last known size.
	// Nothing was drawn.
	FrameReconfigured

	// FrameTimedOut means acquisition timed out. Nothing was drawn and nothing changed.
	FrameTimedOut

	// FrameDropped means a texture was acquired but recording failed, so nothing was submitted.
	FrameDropped

	// FrameFatal means rendering cannot continue. RenderFrame also returns a non-nil error.
	FrameFatal
)

// String returns the outcome name used in logs and profiler output.
func (o FrameOutcome) String() string {
	switch o {
	case FramePresented:
		return "presented"
	case FrameReconfigured:
		return "reconfigured"
	case FrameTimedOut:
		return "timed_out"
	case FrameDropped:
		return "dropped"
	case FrameFatal:
		return "fatal"
	default:
		return fmt.Sprintf("FrameOutcome(%d)", int(o))
	}
}
