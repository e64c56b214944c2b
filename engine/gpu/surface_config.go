package gpu

import (
	"errors"
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrUnsupportedSurface is returned when the surface advertises no usable format, present mode or alpha mode.
var ErrUnsupportedSurface = errors.New("surface advertises no usable configuration")

// SurfaceCapabilities is the subset of the adapter's surface capabilities used for negotiation.
// Lists are in the adapter's preference order.
type SurfaceCapabilities struct {
	Formats      []wgpu.TextureFormat
	PresentModes []wgpu.PresentMode
	AlphaModes   []wgpu.CompositeAlphaMode
}

// SurfaceConfig is the negotiated surface configuration.
// Width and Height are always greater than zero.
type SurfaceConfig struct {
	Format      wgpu.TextureFormat
	Width       uint32
	Height      uint32
	PresentMode wgpu.PresentMode
	AlphaMode   wgpu.CompositeAlphaMode
}

// NegotiateSurfaceConfig picks a surface configuration from the advertised capabilities.
// The first sRGB format wins, else the first advertised format. The present mode is the
// override when one is given and advertised, else the first advertised mode. The alpha
// mode is always the first advertised one.
//
// Parameters:
//   - caps: the advertised capabilities
//   - width: the initial surface width in pixels
//   - height: the initial surface height in pixels
//   - presentOverride: an optional preferred present mode, nil for the adapter default
//
// Returns:
//   - SurfaceConfig: the negotiated configuration
//   - error: ErrUnsupportedSurface if a list is empty or a dimension is not positive
func NegotiateSurfaceConfig(caps SurfaceCapabilities, width, height int, presentOverride *wgpu.PresentMode) (SurfaceConfig, error) {
	if len(caps.Formats) == 0 || len(caps.PresentModes) == 0 || len(caps.AlphaModes) == 0 {
		return SurfaceConfig{}, ErrUnsupportedSurface
	}
	if width <= 0 || height <= 0 {
		return SurfaceConfig{}, ErrUnsupportedSurface
	}

	format := caps.Formats[0]
	if i := slices.IndexFunc(caps.Formats, IsSRGB); i >= 0 {
		format = caps.Formats[i]
	}

	presentMode := caps.PresentModes[0]
	if presentOverride != nil && slices.Contains(caps.PresentModes, *presentOverride) {
		presentMode = *presentOverride
	}

	return SurfaceConfig{
		Format:      format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: presentMode,
		AlphaMode:   caps.AlphaModes[0],
	}, nil
}

// IsSRGB reports whether a surface format stores sRGB-encoded color.
//
// Parameters:
//   - format: the texture format to check
//
// Returns:
//   - bool: true for the sRGB variants a surface can advertise
func IsSRGB(format wgpu.TextureFormat) bool {
	switch format {
	case wgpu.TextureFormatRGBA8UnormSrgb, wgpu.TextureFormatBGRA8UnormSrgb:
		return true
	default:
		return false
	}
}

// Resized returns the configuration with new dimensions.
// A zero or negative dimension leaves the configuration unchanged.
//
// Parameters:
//   - width: the new width in pixels
//   - height: the new height in pixels
//
// Returns:
//   - SurfaceConfig: the resulting configuration
//   - bool: false if the resize was ignored
func (c SurfaceConfig) Resized(width, height int) (SurfaceConfig, bool) {
	if width <= 0 || height <= 0 {
		return c, false
	}
	c.Width = uint32(width)
	c.Height = uint32(height)
	return c, true
}

// Configuration converts the negotiated configuration into the wgpu descriptor.
//
// Returns:
//   - *wgpu.SurfaceConfiguration: a render-attachment configuration for Surface.Configure
func (c SurfaceConfig) Configuration() *wgpu.SurfaceConfiguration {
	return &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      c.Format,
		Width:       c.Width,
		Height:      c.Height,
		PresentMode: c.PresentMode,
		AlphaMode:   c.AlphaMode,
	}
}
