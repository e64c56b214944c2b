package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/dariandzirko/water-spider/engine/renderer/shader"
)

// ReplaceBlend overwrites the target with the fragment output.
var ReplaceBlend = wgpu.BlendState{
	Color: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorZero,
		Operation: wgpu.BlendOperationAdd,
	},
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorZero,
		Operation: wgpu.BlendOperationAdd,
	},
}

// pipeline is the implementation of the Pipeline interface.
// It holds the fixed-function state of a render pipeline and, once created, the GPU object.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, also used as its label
	pipelineKey string

	// shader provides the module and the vs_main/fs_main entry points
	shader shader.Shader

	// vertexLayouts are bound in slot order starting at slot 0
	vertexLayouts []wgpu.VertexBufferLayout

	// renderPipeline is nil until SetRenderPipeline is called
	renderPipeline *wgpu.RenderPipeline

	cullMode    wgpu.CullMode
	topology    wgpu.PrimitiveTopology
	frontFace   wgpu.FrontFace
	writeMask   wgpu.ColorWriteMask
	blendState  wgpu.BlendState
	sampleCount uint32
}

// Pipeline describes a render pipeline with a single color target and no depth/stencil attachment.
// It holds all configuration state required for pipeline creation, including cull, winding,
// topology, blend and vertex layouts.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used as its label.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader returns the shader providing both stages.
	//
	// Returns:
	//   - shader.Shader: the shader, or nil if not set
	Shader() shader.Shader

	// VertexLayouts returns the vertex buffer layouts in slot order.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the layouts
	VertexLayouts() []wgpu.VertexBufferLayout

	// Pipeline returns the created render pipeline.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the GPU pipeline, or nil before creation
	Pipeline() *wgpu.RenderPipeline

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode for this pipeline (e.g., wgpu.CullModeNone, wgpu.CullModeFront, wgpu.CullModeBack)
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology for this pipeline (e.g., wgpu.PrimitiveTopologyTriangleList)
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order for this pipeline (e.g., wgpu.FrontFaceCCW, wgpu.FrontFaceCW)
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask configured for this pipeline.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the color write mask for this pipeline (e.g., wgpu.ColorWriteMaskAll)
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state of the color target.
	//
	// Returns:
	//   - wgpu.BlendState: the blend state, ReplaceBlend by default
	BlendState() wgpu.BlendState

	// Descriptor builds the render pipeline descriptor for a compiled module.
	//
	// Parameters:
	//   - module: the shader module compiled from Shader()
	//   - layout: the pipeline layout holding the bind group layouts in slot order
	//   - format: the color target format, matching the surface format
	//
	// Returns:
	//   - *wgpu.RenderPipelineDescriptor: the descriptor ready for CreateRenderPipeline
	Descriptor(module *wgpu.ShaderModule, layout *wgpu.PipelineLayout, format wgpu.TextureFormat) *wgpu.RenderPipelineDescriptor

	// SetRenderPipeline sets the render pipeline
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release releases the render pipeline if it was created.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline is the entry point to create a new Pipeline interface.
// Defaults: triangle list, counter-clockwise front face, back-face culling, write mask all,
// ReplaceBlend and a single sample.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey: pipelineKey,
		cullMode:    wgpu.CullModeBack,
		topology:    wgpu.PrimitiveTopologyTriangleList,
		frontFace:   wgpu.FrontFaceCCW,
		writeMask:   wgpu.ColorWriteMaskAll,
		blendState:  ReplaceBlend,
		sampleCount: 1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) VertexLayouts() []wgpu.VertexBufferLayout {
	return p.vertexLayouts
}

func (p *pipeline) Pipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) Descriptor(module *wgpu.ShaderModule, layout *wgpu.PipelineLayout, format wgpu.TextureFormat) *wgpu.RenderPipelineDescriptor {
	vertexEntry := shader.VertexEntryPoint
	fragmentEntry := shader.FragmentEntryPoint
	if p.shader != nil {
		vertexEntry = p.shader.VertexEntryPoint()
		fragmentEntry = p.shader.FragmentEntryPoint()
	}
	blend := p.blendState

	return &wgpu.RenderPipelineDescriptor{
		Label:  p.pipelineKey,
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: vertexEntry,
			Buffers:    p.vertexLayouts,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: fragmentEntry,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					Blend:     &blend,
					WriteMask: p.writeMask,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.topology,
			FrontFace: p.frontFace,
			CullMode:  p.cullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count: p.sampleCount,
			Mask:  0xFFFFFFFF,
		},
	}
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
