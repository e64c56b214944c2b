package animator

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUOffsetUniformSource is the canonical WGSL definition of the OffsetUniform struct.
// Matches OffsetUniform layout exactly (16 bytes, uniform aligned).
//
//go:embed assets/offset_uniform.wgsl
var GPUOffsetUniformSource string

// OffsetUniformSize is the byte size of OffsetUniform on the GPU and the minimum
// binding size of the offset uniform buffer.
const OffsetUniformSize = 16

// OffsetUniform is the GPU-aligned texture offset fed to the fragment stage each frame.
// Size: 16 bytes. Uniform bindings need a 16-byte minimum, so the trailing pair is
// explicit padding and is always zero.
type OffsetUniform struct {
	Offset  [2]float32 // offset 0: water texture offset in UV units, each component in [0, 0.02]
	Padding [2]float32 // offset 8: alignment pad, always (0, 0)
}

// Size returns the size of the OffsetUniform struct in bytes.
//
// Returns:
//   - int: The size of the struct in bytes.
func (u *OffsetUniform) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the OffsetUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte little-endian buffer ready for GPU upload.
func (u *OffsetUniform) Marshal() []byte {
	buf := make([]byte, OffsetUniformSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(u.Offset[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(u.Offset[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(u.Padding[0]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(u.Padding[1]))
	return buf
}
