package gpu

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrNoAdapter is returned when no adapter compatible with the surface exists.
	ErrNoAdapter = errors.New("no compatible GPU adapter")

	// ErrDeviceRequest is returned when the adapter refuses the logical device request.
	ErrDeviceRequest = errors.New("GPU device request failed")

	// ErrNoSurfaceTexture is returned when an acquire reports no error but hands out no usable texture.
	ErrNoSurfaceTexture = errors.New("surface returned no texture")
)

// gpuContext is the implementation of the Context interface.
type gpuContext struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface
	device   *wgpu.Device
	queue    *wgpu.Queue

	config SurfaceConfig

	// Pre-creation config collected from builder options
	powerPreference      wgpu.PowerPreference
	forceFallbackAdapter bool
	downlevelLimits      bool
	presentOverride      *wgpu.PresentMode
}

// Context owns the logical device, its command queue and the presentation surface.
// It is created once before the frame loop starts and reconfigured on resize.
type Context interface {
	// Device returns the logical device.
	//
	// Returns:
	//   - *wgpu.Device: the device used for all resource creation
	Device() *wgpu.Device

	// Queue returns the device's command queue.
	//
	// Returns:
	//   - *wgpu.Queue: the queue used for buffer writes and submission
	Queue() *wgpu.Queue

	// Surface returns the presentation surface.
	//
	// Returns:
	//   - *wgpu.Surface: the surface frames are presented to
	Surface() *wgpu.Surface

	// Config returns the current surface configuration.
	//
	// Returns:
	//   - SurfaceConfig: the negotiated format, mode and last applied size
	Config() SurfaceConfig

	// Reconfigure updates the stored surface size and reapplies the surface configuration.
	// A zero dimension is ignored and nothing is reconfigured.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	//
	// Returns:
	//   - bool: true if the surface was reconfigured
	Reconfigure(width, height int) bool

	// AcquireFrame requests the next presentable surface texture.
	//
	// Returns:
	//   - *wgpu.Texture: the acquired texture, nil unless the status is AcquireSuccess
	//   - AcquireStatus: the classified acquire outcome
	//   - error: the underlying acquire error, nil on success
	AcquireFrame() (*wgpu.Texture, AcquireStatus, error)

	// Present presents the most recently acquired surface texture.
	Present()

	// Release releases the device, surface, adapter and instance in reverse creation order.
	Release()
}

var _ Context = &gpuContext{}

// NewContext creates the GPU context for a window surface.
// Selects an adapter compatible with the surface, requests a device with no extra
// features, negotiates the surface format and configures the surface at the requested size.
//
// Parameters:
//   - surfaceDescriptor: the platform-specific descriptor obtained from the window
//   - width: the initial surface width in pixels
//   - height: the initial surface height in pixels
//   - options: functional options for adapter and device selection
//
// Returns:
//   - Context: the initialized context
//   - error: ErrNoAdapter, ErrDeviceRequest or ErrUnsupportedSurface (wrapped) on failure
func NewContext(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, options ...ContextBuilderOption) (Context, error) {
	runtime.LockOSThread()

	c := &gpuContext{
		powerPreference: wgpu.PowerPreferenceUndefined,
	}
	for _, opt := range options {
		opt(c)
	}

	if surfaceDescriptor == nil {
		return nil, fmt.Errorf("%w: window has no surface descriptor", ErrUnsupportedSurface)
	}

	c.instance = wgpu.CreateInstance(nil)
	c.surface = c.instance.CreateSurface(surfaceDescriptor)

	adapter, err := c.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference:      c.powerPreference,
		ForceFallbackAdapter: c.forceFallbackAdapter,
		CompatibleSurface:    c.surface,
	})
	if err != nil || adapter == nil {
		c.Release()
		return nil, fmt.Errorf("%w: %v", ErrNoAdapter, err)
	}
	c.adapter = adapter

	limits := wgpu.DefaultLimits()
	if c.downlevelLimits {
		limits = downlevelLimits(limits)
	}

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: limits,
		},
	})
	if err != nil {
		c.Release()
		return nil, fmt.Errorf("%w: %v", ErrDeviceRequest, err)
	}
	c.device = device
	c.queue = device.GetQueue()

	caps := c.surface.GetCapabilities(c.adapter)
	c.config, err = NegotiateSurfaceConfig(SurfaceCapabilities{
		Formats:      caps.Formats,
		PresentModes: caps.PresentModes,
		AlphaModes:   caps.AlphaModes,
	}, width, height, c.presentOverride)
	if err != nil {
		c.Release()
		return nil, err
	}

	if c.presentOverride != nil && c.config.PresentMode != *c.presentOverride {
		Logger().Info("present mode not advertised, using surface default",
			"requested", *c.presentOverride,
			"present_mode", c.config.PresentMode,
		)
	}

	c.surface.Configure(c.adapter, c.device, c.config.Configuration())
	Logger().Info("surface configured",
		"format", c.config.Format,
		"present_mode", c.config.PresentMode,
		"alpha_mode", c.config.AlphaMode,
		"width", c.config.Width,
		"height", c.config.Height,
	)

	return c, nil
}

// downlevelLimits lowers the default limits to what constrained (WebGL2-class) targets guarantee.
func downlevelLimits(limits wgpu.Limits) wgpu.Limits {
	limits.MaxTextureDimension1D = 2048
	limits.MaxTextureDimension2D = 2048
	limits.MaxTextureDimension3D = 256
	limits.MaxBindGroups = 4
	limits.MaxStorageBuffersPerShaderStage = 0
	limits.MaxStorageTexturesPerShaderStage = 0
	return limits
}

func (c *gpuContext) Device() *wgpu.Device {
	return c.device
}

func (c *gpuContext) Queue() *wgpu.Queue {
	return c.queue
}

func (c *gpuContext) Surface() *wgpu.Surface {
	return c.surface
}

func (c *gpuContext) Config() SurfaceConfig {
	return c.config
}

func (c *gpuContext) Reconfigure(width, height int) bool {
	next, ok := c.config.Resized(width, height)
	if !ok {
		Logger().Debug("ignoring zero-area resize", "width", width, "height", height)
		return false
	}
	c.config = next
	c.surface.Configure(c.adapter, c.device, c.config.Configuration())
	return true
}

func (c *gpuContext) AcquireFrame() (*wgpu.Texture, AcquireStatus, error) {
	tex, err := c.surface.GetCurrentTexture()
	if status := ClassifyAcquireError(err); status != AcquireSuccess {
		return nil, status, err
	}
	if tex == nil {
		return nil, AcquireOutdated, ErrNoSurfaceTexture
	}
	return tex, AcquireSuccess, nil
}

func (c *gpuContext) Present() {
	c.surface.Present()
}

func (c *gpuContext) Release() {
	if c.queue != nil {
		c.queue.Release()
		c.queue = nil
	}
	if c.device != nil {
		c.device.Release()
		c.device = nil
	}
	if c.surface != nil {
		c.surface.Release()
		c.surface = nil
	}
	if c.adapter != nil {
		c.adapter.Release()
		c.adapter = nil
	}
	if c.instance != nil {
		c.instance.Release()
		c.instance = nil
	}
}
