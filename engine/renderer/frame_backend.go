package renderer

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/dariandzirko/water-spider/engine/gpu"
	"github.com/dariandzirko/water-spider/engine/renderer/bind_group_provider"
	"github.com/dariandzirko/water-spider/engine/renderer/pipeline"
)

// ErrFrameInFlight is returned by BeginFrame when the previous frame's surface texture was
// acquired but never presented or released.
var ErrFrameInFlight = errors.New("previous frame surface not yet presented")

// ClearColor is the color the render pass clears the surface to before drawing.
var ClearColor = wgpu.Color{R: 0.1, G: 0.2, B: 0.3, A: 1.0}

// DrawCommand is everything recorded into the render pass for one frame.
type DrawCommand struct {
	Pipeline pipeline.Pipeline
	// BindGroups are set in slot order starting at group 0.
	BindGroups    []bind_group_provider.BindGroupProvider
	Mesh          bind_group_provider.BindGroupProvider
	InstanceCount uint32
	ClearColor    wgpu.Color
}

// frameBackend performs the GPU side of a frame. RenderFrame drives it in the order
// WriteBuffers, BeginFrame, DrawCall, EndFrame, Present.
type frameBackend interface {
	// SurfaceConfig returns the last applied surface configuration.
	SurfaceConfig() gpu.SurfaceConfig

	// Reconfigure reapplies the surface configuration at the given size; zero dimensions are ignored.
	Reconfigure(width, height int) bool

	// WriteBuffers queues buffer writes ahead of the frame's submission.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the surface texture and opens the render pass. A non-success status
	// means nothing usable was acquired; an acquired texture that cannot be viewed reports
	// AcquireOutdated. A success status with an error means the pass could not be opened
	// (the texture has already been released) or ErrFrameInFlight.
	BeginFrame(clear wgpu.Color) (gpu.AcquireStatus, error)

	// DrawCall records the draw into the open render pass.
	DrawCall(cmd DrawCommand)

	// EndFrame closes the pass and submits the command buffer. On error nothing was submitted
	// and the acquired texture has been released.
	EndFrame() error

	// Present presents the submitted frame and releases the frame's texture and view.
	Present()
}

// wgpuFrameBackend is the frameBackend implementation over a gpu.Context.
type wgpuFrameBackend struct {
	ctx gpu.Context

	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
}

var _ frameBackend = &wgpuFrameBackend{}

func newWGPUFrameBackend(ctx gpu.Context) *wgpuFrameBackend {
	return &wgpuFrameBackend{ctx: ctx}
}

func (b *wgpuFrameBackend) SurfaceConfig() gpu.SurfaceConfig {
	return b.ctx.Config()
}

func (b *wgpuFrameBackend) Reconfigure(width, height int) bool {
	return b.ctx.Reconfigure(width, height)
}

func (b *wgpuFrameBackend) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	queue := b.ctx.Queue()
	for _, w := range writes {
		buf := w.Provider.Buffer(w.Binding)
		if buf == nil {
			continue
		}
		queue.WriteBuffer(buf, w.Offset, w.Data)
	}
}

func (b *wgpuFrameBackend) BeginFrame(clear wgpu.Color) (gpu.AcquireStatus, error) {
	if b.frameSurface != nil {
		return gpu.AcquireSuccess, ErrFrameInFlight
	}

	surfaceTexture, status, err := b.ctx.AcquireFrame()
	if status != gpu.AcquireSuccess {
		return status, err
	}
	if surfaceTexture == nil {
		return gpu.AcquireOutdated, gpu.ErrNoSurfaceTexture
	}

	// Timeout, outdated and lost acquisitions can come back without an error but with an
	// unusable texture; the view creation is where they surface.
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return gpu.AcquireOutdated, fmt.Errorf("create surface view: %w", err)
	}

	encoder, err := b.ctx.Device().CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: "Render Encoder",
	})
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return gpu.AcquireSuccess, fmt.Errorf("create command encoder: %w", err)
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Render Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: clear,
			},
		},
	})

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view

	return gpu.AcquireSuccess, nil
}

func (b *wgpuFrameBackend) DrawCall(cmd DrawCommand) {
	b.framePass.SetPipeline(cmd.Pipeline.Pipeline())

	for i, bg := range cmd.BindGroups {
		b.framePass.SetBindGroup(uint32(i), bg.BindGroup(), nil)
	}

	b.framePass.SetVertexBuffer(0, cmd.Mesh.VertexBuffer(), 0, wgpu.WholeSize)
	b.framePass.SetIndexBuffer(cmd.Mesh.IndexBuffer(), wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(uint32(cmd.Mesh.IndexCount()), cmd.InstanceCount, 0, 0, 0)
}

func (b *wgpuFrameBackend) EndFrame() error {
	b.framePass.End()
	b.framePass.Release()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	b.frameEncoder.Release()
	b.frameEncoder = nil
	if err != nil {
		b.releaseFrame()
		return fmt.Errorf("finish command encoder: %w", err)
	}

	b.ctx.Queue().Submit(commandBuffer)
	commandBuffer.Release()
	return nil
}

func (b *wgpuFrameBackend) Present() {
	if b.frameSurface == nil {
		return
	}
	b.ctx.Present()
	b.releaseFrame()
}

// releaseFrame drops the frame's surface view and texture.
func (b *wgpuFrameBackend) releaseFrame() {
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}
