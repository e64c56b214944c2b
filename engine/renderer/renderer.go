package renderer

import (
	"errors"
	"fmt"

	"github.com/dariandzirko/water-spider/assets"
	"github.com/dariandzirko/water-spider/engine/animator"
	"github.com/dariandzirko/water-spider/engine/gpu"
	"github.com/dariandzirko/water-spider/engine/renderer/bind_group_provider"
	"github.com/dariandzirko/water-spider/engine/renderer/shader"
	"github.com/dariandzirko/water-spider/engine/renderer/texture"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	ctx       gpu.Context
	backend   frameBackend
	resources *PipelineResources

	background texture.Texture
	water      texture.Texture

	animation animator.Water
	offset    bind_group_provider.BindGroupProvider
	draw      DrawCommand

	// Pre-creation config collected from builder options
	loader          texture.Loader
	backgroundImage []byte
	waterImage      []byte
	shaderSources   []string
}

// Renderer owns the GPU context, textures, pipeline resources and water animation, and
// renders one frame of the animated quad per RenderFrame call.
type Renderer interface {
	// RenderFrame advances the animation, uploads the new offset and then draws and presents
	// one frame. Lost and outdated surfaces are reconfigured at the last known size and
	// timeouts skip the frame; neither is an error.
	//
	// Returns:
	//   - FrameOutcome: what the frame did
	//   - error: ErrSurfaceOutOfMemory when the outcome is FrameFatal, nil otherwise
	RenderFrame() (FrameOutcome, error)

	// Resize reconfigures the surface for a new window size. Zero dimensions are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - bool: true if the surface was reconfigured
	Resize(width, height int) bool

	// SurfaceConfig returns the current surface configuration.
	//
	// Returns:
	//   - gpu.SurfaceConfig: the negotiated format, modes and last applied size
	SurfaceConfig() gpu.SurfaceConfig

	// Animation returns the water animation state advanced by RenderFrame.
	//
	// Returns:
	//   - animator.Water: the animation state
	Animation() animator.Water

	// Release releases pipeline resources and textures in reverse creation order.
	// The GPU context itself is owned by the caller.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer loads the textures and shader and builds the pipeline resources on a GPU context.
//
// Parameters:
//   - ctx: the configured GPU context
//   - options: functional options overriding the loader, images, shader or animation
//
// Returns:
//   - Renderer: the renderer ready for RenderFrame
//   - error: texture.ErrDecode, shader.ErrInvalidShader (wrapped) or a device error
func NewRenderer(ctx gpu.Context, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		ctx:             ctx,
		loader:          texture.ImageLoader{},
		backgroundImage: assets.Background,
		waterImage:      assets.WaterNormal,
		shaderSources:   []string{animator.GPUOffsetUniformSource, assets.ReflectWaterSource},
	}
	for _, opt := range options {
		opt(r)
	}
	if r.animation == nil {
		r.animation = animator.NewWater()
	}

	s, err := shader.NewShader("Shader", r.shaderSources...)
	if err != nil {
		return nil, err
	}

	if r.water, err = texture.FromBytes(ctx, r.loader, r.waterImage, "water_normal.png"); err != nil {
		return nil, err
	}
	if r.background, err = texture.FromBytes(ctx, r.loader, r.backgroundImage, "Left_Environment_Water.png"); err != nil {
		r.Release()
		return nil, err
	}

	if r.resources, err = BuildPipelineResources(ctx, r.background, r.water, s); err != nil {
		r.Release()
		return nil, err
	}

	r.backend = newWGPUFrameBackend(ctx)
	r.offset = r.resources.Offset
	r.draw = r.resources.DrawCommand()

	Logger().Info("renderer ready",
		"background", fmt.Sprintf("%dx%d", r.background.Width(), r.background.Height()),
		"water", fmt.Sprintf("%dx%d", r.water.Width(), r.water.Height()),
	)
	return r, nil
}

func (r *renderer) RenderFrame() (FrameOutcome, error) {
	uniform := r.animation.Advance()
	r.backend.WriteBuffers([]bind_group_provider.BufferWrite{
		{
			Provider: r.offset,
			Binding:  0,
			Offset:   0,
			Data:     uniform.Marshal(),
		},
	})

	status, err := r.backend.BeginFrame(r.draw.ClearColor)
	switch {
	case status == gpu.AcquireSuccess:
	case status.Recoverable():
		cfg := r.backend.SurfaceConfig()
		Logger().Warn("surface needs reconfiguring", "status", status, "width", cfg.Width, "height", cfg.Height, "error", err)
		r.backend.Reconfigure(int(cfg.Width), int(cfg.Height))
		return FrameReconfigured, nil
	case status == gpu.AcquireTimeout:
		Logger().Warn("Surface timeout")
		return FrameTimedOut, nil
	case status == gpu.AcquireOutOfMemory:
		Logger().Error("surface out of memory", "error", err)
		return FrameFatal, errors.Join(ErrSurfaceOutOfMemory, err)
	}
	if errors.Is(err, ErrFrameInFlight) {
		Logger().Error("frame dropped, previous surface texture still held", "stage", "in_flight")
		return FrameDropped, nil
	}
	if err != nil {
		Logger().Warn("frame dropped", "stage", "begin", "error", err)
		return FrameDropped, nil
	}

	r.backend.DrawCall(r.draw)

	if err := r.backend.EndFrame(); err != nil {
		Logger().Warn("frame dropped", "stage", "submit", "error", err)
		return FrameDropped, nil
	}
	r.backend.Present()
	return FramePresented, nil
}

func (r *renderer) Resize(width, height int) bool {
	return r.backend.Reconfigure(width, height)
}

func (r *renderer) SurfaceConfig() gpu.SurfaceConfig {
	return r.backend.SurfaceConfig()
}

func (r *renderer) Animation() animator.Water {
	return r.animation
}

func (r *renderer) Release() {
	if r.resources != nil {
		r.resources.Release()
		r.resources = nil
	}
	if r.background != nil {
		r.background.Release()
		r.background = nil
	}
	if r.water != nil {
		r.water.Release()
		r.water = nil
	}
}
