package gpu

import (
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// AcquireStatus classifies the outcome of requesting the next presentable surface texture.
type AcquireStatus int

const (
	// AcquireSuccess means a surface texture was acquired and can be rendered into.
	AcquireSuccess AcquireStatus = iota

	// AcquireTimeout means the presentation engine did not hand out a texture in time.
	// The frame is abandoned and retried on the next redraw.
	AcquireTimeout

	// AcquireOutdated means the surface no longer matches its configuration (usually a resize in flight).
	// The surface must be reconfigured before the next acquire.
	AcquireOutdated

	// AcquireLost means the surface was lost and must be reconfigured.
	AcquireLost

	// AcquireOutOfMemory means the driver ran out of memory. This is fatal.
	AcquireOutOfMemory
)

// String returns the status name used in logs.
func (s AcquireStatus) String() string {
	switch s {
	case AcquireSuccess:
		return "Success"
	case AcquireTimeout:
		return "Timeout"
	case AcquireOutdated:
		return "Outdated"
	case AcquireLost:
		return "Lost"
	case AcquireOutOfMemory:
		return "OutOfMemory"
	default:
		return "Unknown"
	}
}

// Recoverable reports whether reconfiguring the surface recovers from the status.
//
// Returns:
//   - bool: true for Lost and Outdated
func (s AcquireStatus) Recoverable() bool {
	return s == AcquireLost || s == AcquireOutdated
}

// acquireStatusNames lists the lower-case spellings of each failure status, using the
// binding's own status names first. Out-of-memory is matched before lost.
var acquireStatusNames = []struct {
	status AcquireStatus
	names  []string
}{
	{AcquireOutOfMemory, []string{wgpu.SurfaceGetCurrentTextureStatusOutOfMemory.String(), "out of memory", "outofmemory"}},
	{AcquireTimeout, []string{wgpu.SurfaceGetCurrentTextureStatusTimeout.String(), "timeout", "timed out"}},
	{AcquireOutdated, []string{wgpu.SurfaceGetCurrentTextureStatusOutdated.String(), "outdated"}},
	{AcquireLost, []string{wgpu.SurfaceGetCurrentTextureStatusLost.String(), "lost"}},
}

// ClassifyAcquireError maps an error from acquiring a surface texture onto an AcquireStatus.
// The status only reaches Go as error text, so the classification matches on the status
// names. Errors that name no known status are treated as Lost, which reconfigures the
// surface and retries on the next frame.
//
// Parameters:
//   - err: the error from the acquire call, or nil
//
// Returns:
//   - AcquireStatus: the classified status
func ClassifyAcquireError(err error) AcquireStatus {
	if err == nil {
		return AcquireSuccess
	}

	msg := strings.ToLower(err.Error())
	for _, entry := range acquireStatusNames {
		for _, name := range entry.names {
			if name != "" && strings.Contains(msg, strings.ToLower(name)) {
				return entry.status
			}
		}
	}
	return AcquireLost
}
