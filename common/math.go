package common

import (
	"math"
	"unsafe"
)

// Tau is the full-turn angle 2π as a float32, the period used for phase wrapping.
const Tau = float32(2 * math.Pi)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// WrapAngle reduces an angle in radians into the half-open range [0, Tau).
// Negative inputs wrap up from Tau rather than keeping the sign of the remainder.
//
// Parameters:
//   - angle: the angle in radians, any sign
//
// Returns:
//   - float32: the equivalent angle in [0, Tau)
func WrapAngle(angle float32) float32 {
	tau := float64(Tau)
	wrapped := math.Mod(math.Mod(float64(angle), tau)+tau, tau)
	// float32 rounding of a value just below tau can land on tau itself.
	if out := float32(wrapped); out < Tau {
		return out
	}
	return 0
}
