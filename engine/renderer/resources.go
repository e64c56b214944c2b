package renderer

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/dariandzirko/water-spider/engine/animator"
	"github.com/dariandzirko/water-spider/engine/gpu"
	"github.com/dariandzirko/water-spider/engine/renderer/bind_group_provider"
	"github.com/dariandzirko/water-spider/engine/renderer/pipeline"
	"github.com/dariandzirko/water-spider/engine/renderer/shader"
	"github.com/dariandzirko/water-spider/engine/renderer/texture"
)

// PipelineResources holds every GPU object created once before the frame loop:
// the bind group layouts, the render pipeline, the quad buffers and the three bind groups.
// Nothing in it changes after BuildPipelineResources returns, except the offset buffer contents.
type PipelineResources struct {
	TextureLayout  *wgpu.BindGroupLayout
	OffsetLayout   *wgpu.BindGroupLayout
	PipelineLayout *wgpu.PipelineLayout
	ShaderModule   *wgpu.ShaderModule
	Pipeline       pipeline.Pipeline

	Mesh       bind_group_provider.BindGroupProvider
	Background bind_group_provider.BindGroupProvider
	Water      bind_group_provider.BindGroupProvider
	Offset     bind_group_provider.BindGroupProvider
}

// BuildPipelineResources creates the pipeline and everything it binds.
// The shader's declared bindings are checked against the slot layouts before any GPU object is created.
//
// Parameters:
//   - ctx: the GPU context providing the device, queue and surface format
//   - background: the texture bound at group 0
//   - water: the texture bound at group 1
//   - s: the validated quad shader
//
// Returns:
//   - *PipelineResources: the created resources
//   - error: shader.ErrInvalidShader (wrapped) on a binding mismatch, or the device error if creation fails
func BuildPipelineResources(ctx gpu.Context, background, water texture.Texture, s shader.Shader) (*PipelineResources, error) {
	if err := checkShaderBindings(s); err != nil {
		return nil, err
	}

	res := &PipelineResources{}
	if err := res.build(ctx, background, water, s); err != nil {
		res.Release()
		return nil, err
	}
	return res, nil
}

func (res *PipelineResources) build(ctx gpu.Context, background, water texture.Texture, s shader.Shader) error {
	device := ctx.Device()
	queue := ctx.Queue()

	var err error
	textureLayout := TextureBindGroupLayout()
	if res.TextureLayout, err = device.CreateBindGroupLayout(&textureLayout); err != nil {
		return fmt.Errorf("create texture bind group layout: %w", err)
	}
	offsetLayout := OffsetBindGroupLayout()
	if res.OffsetLayout, err = device.CreateBindGroupLayout(&offsetLayout); err != nil {
		return fmt.Errorf("create offset bind group layout: %w", err)
	}

	res.Background = bind_group_provider.NewBindGroupProvider("diffuse_background_bind_group",
		bind_group_provider.WithBindGroupLayout(res.TextureLayout),
		bind_group_provider.WithTextureView(0, background.View()),
		bind_group_provider.WithSampler(1, background.Sampler()),
	)
	res.Water = bind_group_provider.NewBindGroupProvider("diffuse_water_bind_group",
		bind_group_provider.WithBindGroupLayout(res.TextureLayout),
		bind_group_provider.WithTextureView(0, water.View()),
		bind_group_provider.WithSampler(1, water.Sampler()),
	)

	offsetBuffer, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Offset Buffer",
		Size:  animator.OffsetUniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create offset buffer: %w", err)
	}
	res.Offset = bind_group_provider.NewBindGroupProvider("offset_bind_group",
		bind_group_provider.WithBindGroupLayout(res.OffsetLayout),
		bind_group_provider.WithBuffer(0, offsetBuffer),
	)
	initial := animator.OffsetUniform{}
	queue.WriteBuffer(offsetBuffer, 0, initial.Marshal())

	for _, p := range []bind_group_provider.BindGroupProvider{res.Background, res.Water, res.Offset} {
		bg, bgErr := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:   p.Label(),
			Layout:  p.BindGroupLayout(),
			Entries: p.Entries(),
		})
		if bgErr != nil {
			return fmt.Errorf("create %s: %w", p.Label(), bgErr)
		}
		p.SetBindGroup(bg)
	}

	res.Mesh = bind_group_provider.NewBindGroupProvider("Quad")
	if err := initMeshBuffers(device, queue, res.Mesh, quadVertexBytes(), quadIndexBytes(), len(QuadIndices)); err != nil {
		return err
	}

	if res.ShaderModule, err = device.CreateShaderModule(s.Module()); err != nil {
		return fmt.Errorf("%w: create shader module: %v", shader.ErrInvalidShader, err)
	}

	if res.PipelineLayout, err = device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label: "Render Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{
			BackgroundGroup: res.TextureLayout,
			WaterGroup:      res.TextureLayout,
			OffsetGroup:     res.OffsetLayout,
		},
	}); err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}

	res.Pipeline = quadPipeline(s)
	created, err := device.CreateRenderPipeline(res.Pipeline.Descriptor(res.ShaderModule, res.PipelineLayout, ctx.Config().Format))
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}
	res.Pipeline.SetRenderPipeline(created)

	Logger().Debug("pipeline resources created",
		"format", ctx.Config().Format,
		"vertices", len(QuadVertices),
		"indices", len(QuadIndices),
	)
	return nil
}

// quadPipeline describes the fixed-function state of the quad pipeline: triangle list,
// counter-clockwise front faces with back-face culling, and a replacing color write.
func quadPipeline(s shader.Shader) pipeline.Pipeline {
	return pipeline.NewPipeline("Render Pipeline",
		pipeline.WithShader(s),
		pipeline.WithVertexLayouts(VertexBufferLayout()),
		pipeline.WithTopology(wgpu.PrimitiveTopologyTriangleList),
		pipeline.WithFrontFace(wgpu.FrontFaceCCW),
		pipeline.WithCullMode(wgpu.CullModeBack),
		pipeline.WithWriteMask(wgpu.ColorWriteMaskAll),
		pipeline.WithBlendState(pipeline.ReplaceBlend),
	)
}

// initMeshBuffers uploads vertex and index data and stores the buffers on the provider.
func initMeshBuffers(device *wgpu.Device, queue *wgpu.Queue, provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	vb, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create vertex buffer: %w", err)
	}
	queue.WriteBuffer(vb, 0, vertexData)
	provider.SetVertexBuffer(vb)

	ib, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create index buffer: %w", err)
	}
	queue.WriteBuffer(ib, 0, indexData)
	provider.SetIndexBuffer(ib)
	provider.SetIndexCount(indexCount)

	return nil
}

// DrawCommand returns the per-frame draw for these resources.
//
// Returns:
//   - DrawCommand: the pipeline, bind groups in slot order, quad mesh, one instance and ClearColor
func (res *PipelineResources) DrawCommand() DrawCommand {
	return DrawCommand{
		Pipeline: res.Pipeline,
		BindGroups: []bind_group_provider.BindGroupProvider{
			BackgroundGroup: res.Background,
			WaterGroup:      res.Water,
			OffsetGroup:     res.Offset,
		},
		Mesh:          res.Mesh,
		InstanceCount: 1,
		ClearColor:    ClearColor,
	}
}

// Release releases all resources in reverse creation order. Safe on partially built resources.
func (res *PipelineResources) Release() {
	if res.Pipeline != nil {
		res.Pipeline.Release()
		res.Pipeline = nil
	}
	if res.PipelineLayout != nil {
		res.PipelineLayout.Release()
		res.PipelineLayout = nil
	}
	if res.ShaderModule != nil {
		res.ShaderModule.Release()
		res.ShaderModule = nil
	}
	for _, p := range []bind_group_provider.BindGroupProvider{res.Mesh, res.Offset, res.Water, res.Background} {
		if p != nil {
			p.Release()
		}
	}
	res.Mesh, res.Offset, res.Water, res.Background = nil, nil, nil, nil
	if res.OffsetLayout != nil {
		res.OffsetLayout.Release()
		res.OffsetLayout = nil
	}
	if res.TextureLayout != nil {
		res.TextureLayout.Release()
		res.TextureLayout = nil
	}
}
