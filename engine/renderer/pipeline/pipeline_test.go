package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("Render Pipeline")
	if p.PipelineKey() != "Render Pipeline" {
		t.Errorf("key = %q", p.PipelineKey())
	}
	if p.Topology() != wgpu.PrimitiveTopologyTriangleList {
		t.Errorf("topology = %v", p.Topology())
	}
	if p.FrontFace() != wgpu.FrontFaceCCW {
		t.Errorf("front face = %v", p.FrontFace())
	}
	if p.CullMode() != wgpu.CullModeBack {
		t.Errorf("cull mode = %v", p.CullMode())
	}
	if p.WriteMask() != wgpu.ColorWriteMaskAll {
		t.Errorf("write mask = %v", p.WriteMask())
	}
	if p.BlendState() != ReplaceBlend {
		t.Errorf("blend = %+v, want ReplaceBlend", p.BlendState())
	}
	if p.Pipeline() != nil {
		t.Error("pipeline created before SetRenderPipeline")
	}
	p.Release()
}

func TestPipelineDescriptor(t *testing.T) {
	layout := wgpu.VertexBufferLayout{
		ArrayStride: 20,
		StepMode:    wgpu.VertexStepModeVertex,
	}
	p := NewPipeline("Render Pipeline",
		WithVertexLayouts(layout),
		WithCullMode(wgpu.CullModeNone),
		WithFrontFace(wgpu.FrontFaceCW),
	)

	d := p.Descriptor(nil, nil, wgpu.TextureFormatBGRA8UnormSrgb)
	if d.Label != "Render Pipeline" {
		t.Errorf("label = %q", d.Label)
	}
	if d.Vertex.EntryPoint != "vs_main" || d.Fragment.EntryPoint != "fs_main" {
		t.Errorf("entry points = %q/%q", d.Vertex.EntryPoint, d.Fragment.EntryPoint)
	}
	if len(d.Vertex.Buffers) != 1 || d.Vertex.Buffers[0].ArrayStride != 20 {
		t.Errorf("vertex buffers = %+v", d.Vertex.Buffers)
	}
	if len(d.Fragment.Targets) != 1 {
		t.Fatalf("targets = %d, want 1", len(d.Fragment.Targets))
	}
	target := d.Fragment.Targets[0]
	if target.Format != wgpu.TextureFormatBGRA8UnormSrgb {
		t.Errorf("target format = %v", target.Format)
	}
	if target.Blend == nil || *target.Blend != ReplaceBlend {
		t.Errorf("target blend = %+v", target.Blend)
	}
	if target.WriteMask != wgpu.ColorWriteMaskAll {
		t.Errorf("target write mask = %v", target.WriteMask)
	}
	if d.Primitive.CullMode != wgpu.CullModeNone || d.Primitive.FrontFace != wgpu.FrontFaceCW {
		t.Errorf("primitive = %+v", d.Primitive)
	}
	if d.DepthStencil != nil {
		t.Error("depth stencil state set")
	}
	if d.Multisample.Count != 1 || d.Multisample.Mask != 0xFFFFFFFF {
		t.Errorf("multisample = %+v", d.Multisample)
	}
}

func TestPipelineOptionsOverrideDefaults(t *testing.T) {
	additive := wgpu.BlendState{
		Color: wgpu.BlendComponent{SrcFactor: wgpu.BlendFactorOne, DstFactor: wgpu.BlendFactorOne, Operation: wgpu.BlendOperationAdd},
		Alpha: wgpu.BlendComponent{SrcFactor: wgpu.BlendFactorOne, DstFactor: wgpu.BlendFactorOne, Operation: wgpu.BlendOperationAdd},
	}
	p := NewPipeline("Render Pipeline",
		WithTopology(wgpu.PrimitiveTopologyTriangleStrip),
		WithWriteMask(wgpu.ColorWriteMaskRed),
		WithBlendState(additive),
	)
	if p.Topology() != wgpu.PrimitiveTopologyTriangleStrip {
		t.Errorf("topology = %v", p.Topology())
	}
	if p.WriteMask() != wgpu.ColorWriteMaskRed {
		t.Errorf("write mask = %v", p.WriteMask())
	}
	if p.BlendState() != additive {
		t.Errorf("blend = %+v", p.BlendState())
	}
}
