package renderer

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/dariandzirko/water-spider/common"
)

// Vertex is a single quad corner as laid out in the vertex buffer.
// Size: 20 bytes, tightly packed.
type Vertex struct {
	Position [3]float32 // offset 0: clip-space position, z always 0
	UV       [2]float32 // offset 12: texture coordinate, (0, 0) is the top-left of the image
}

// VertexSize is the stride of Vertex in the vertex buffer.
const VertexSize = uint64(unsafe.Sizeof(Vertex{}))

// QuadVertices are the four corners of the full-screen quad: bottom-left, bottom-right,
// top-right, top-left. V is flipped relative to Y so the image is drawn upright.
var QuadVertices = []Vertex{
	{Position: [3]float32{-1, -1, 0}, UV: [2]float32{0, 1}},
	{Position: [3]float32{1, -1, 0}, UV: [2]float32{1, 1}},
	{Position: [3]float32{1, 1, 0}, UV: [2]float32{1, 0}},
	{Position: [3]float32{-1, 1, 0}, UV: [2]float32{0, 0}},
}

// QuadIndices form two counter-clockwise triangles covering the quad.
var QuadIndices = []uint16{0, 1, 2, 0, 2, 3}

// VertexBufferLayout describes Vertex for the pipeline: stride 20, per-vertex,
// location 0 Float32x3 at offset 0 and location 1 Float32x2 at offset 12.
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout for vertex buffer slot 0
func VertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: VertexSize,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{
				Format:         wgpu.VertexFormatFloat32x3,
				Offset:         uint64(unsafe.Offsetof(Vertex{}.Position)),
				ShaderLocation: 0,
			},
			{
				Format:         wgpu.VertexFormatFloat32x2,
				Offset:         uint64(unsafe.Offsetof(Vertex{}.UV)),
				ShaderLocation: 1,
			},
		},
	}
}

// quadVertexBytes returns the vertex buffer contents.
func quadVertexBytes() []byte {
	return common.SliceToBytes(QuadVertices)
}

// quadIndexBytes returns the index buffer contents.
func quadIndexBytes() []byte {
	return common.SliceToBytes(QuadIndices)
}
