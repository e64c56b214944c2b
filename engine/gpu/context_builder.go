package gpu

import "github.com/cogentcore/webgpu/wgpu"

// ContextBuilderOption is a functional option applied to a GPU context during construction via NewContext.
type ContextBuilderOption func(*gpuContext)

// WithPowerPreference sets the adapter power profile requested from the instance.
// The default leaves the choice to the driver.
//
// Parameters:
//   - preference: the wgpu power preference
//
// Returns:
//   - ContextBuilderOption: a function that applies the power preference option
func WithPowerPreference(preference wgpu.PowerPreference) ContextBuilderOption {
	return func(c *gpuContext) {
		c.powerPreference = preference
	}
}

// WithForceFallbackAdapter forces a CPU/software fallback adapter instead of hardware acceleration.
// This requires a software Vulkan ICD (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the fallback adapter
//
// Returns:
//   - ContextBuilderOption: a function that applies the fallback option
func WithForceFallbackAdapter(force bool) ContextBuilderOption {
	return func(c *gpuContext) {
		c.forceFallbackAdapter = force
	}
}

// WithDownlevelLimits requests reduced device limits for constrained targets.
//
// Parameters:
//   - enabled: true to request downlevel limits instead of the defaults
//
// Returns:
//   - ContextBuilderOption: a function that applies the limits option
func WithDownlevelLimits(enabled bool) ContextBuilderOption {
	return func(c *gpuContext) {
		c.downlevelLimits = enabled
	}
}

// WithPresentMode prefers a present mode over the adapter's first advertised one.
// The preference is ignored when the surface does not advertise it.
//
// Parameters:
//   - mode: the preferred present mode
//
// Returns:
//   - ContextBuilderOption: a function that applies the present mode option
func WithPresentMode(mode wgpu.PresentMode) ContextBuilderOption {
	return func(c *gpuContext) {
		c.presentOverride = &mode
	}
}
