package texture

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/dariandzirko/water-spider/common"
	"github.com/dariandzirko/water-spider/engine/gpu"
)

// texture is the implementation of the Texture interface.
type texture struct {
	label   string
	width   uint32
	height  uint32
	texture *wgpu.Texture
	view    *wgpu.TextureView
	sampler *wgpu.Sampler
}

// Texture is an immutable sampled 2D image on the GPU together with its view and sampler.
// Each instance owns its resources; no two textures share a view or sampler.
type Texture interface {
	// Label returns the debug label the GPU objects were created with.
	Label() string

	// Width returns the texture width in pixels.
	Width() uint32

	// Height returns the texture height in pixels.
	Height() uint32

	// View returns the full-resource view bound at the texture binding.
	//
	// Returns:
	//   - *wgpu.TextureView: the texture view
	View() *wgpu.TextureView

	// Sampler returns the filtering sampler bound next to the view.
	//
	// Returns:
	//   - *wgpu.Sampler: the sampler
	Sampler() *wgpu.Sampler

	// Release releases the sampler, view and texture.
	Release()
}

var _ Texture = &texture{}

// DefaultSampler returns the sampler settings used for every loaded texture:
// clamp-to-edge addressing, linear magnification, nearest minification and mip selection.
//
// Returns:
//   - common.SamplerStagingData: the sampler configuration
func DefaultSampler() common.SamplerStagingData {
	return common.SamplerStagingData{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}
}

// FromBytes decodes an encoded image and uploads it as an sRGB RGBA8 texture with a view
// and a default sampler.
//
// Parameters:
//   - ctx: the GPU context providing the device and queue
//   - loader: the decoder for the encoded bytes
//   - encoded: the encoded image file contents
//   - label: the debug label applied to the texture, view and sampler
//
// Returns:
//   - Texture: the uploaded texture
//   - error: ErrDecode (wrapped) for bad input, or the device error if a GPU object could not be created
func FromBytes(ctx gpu.Context, loader Loader, encoded []byte, label string) (Texture, error) {
	staging, err := loader.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	return FromStaging(ctx, staging, DefaultSampler(), label)
}

// FromStaging uploads already decoded RGBA8 pixels.
//
// Parameters:
//   - ctx: the GPU context providing the device and queue
//   - staging: the decoded pixels
//   - samplerData: the sampler configuration
//   - label: the debug label applied to the texture, view and sampler
//
// Returns:
//   - Texture: the uploaded texture
//   - error: the device error if a GPU object could not be created
func FromStaging(ctx gpu.Context, staging common.TextureStagingData, samplerData common.SamplerStagingData, label string) (Texture, error) {
	if want := int(staging.BytesPerRow() * staging.Height); len(staging.Pixels) != want {
		return nil, fmt.Errorf("%s: %w: have %d pixel bytes, want %d", label, ErrDecode, len(staging.Pixels), want)
	}

	device := ctx.Device()
	t := &texture{
		label:  label,
		width:  staging.Width,
		height: staging.Height,
	}

	var err error
	t.texture, err = device.CreateTexture(textureDescriptor(label, staging))
	if err != nil {
		return nil, fmt.Errorf("%s: create texture: %w", label, err)
	}

	size := extent(staging)
	ctx.Queue().WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  t.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		staging.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  staging.BytesPerRow(),
			RowsPerImage: staging.Height,
		},
		&size,
	)

	t.view, err = t.texture.CreateView(nil)
	if err != nil {
		t.Release()
		return nil, fmt.Errorf("%s: create view: %w", label, err)
	}

	t.sampler, err = device.CreateSampler(samplerDescriptor(label, samplerData))
	if err != nil {
		t.Release()
		return nil, fmt.Errorf("%s: create sampler: %w", label, err)
	}

	return t, nil
}

// extent returns the single-layer 3D extent of the staged image.
func extent(staging common.TextureStagingData) wgpu.Extent3D {
	return wgpu.Extent3D{
		Width:              staging.Width,
		Height:             staging.Height,
		DepthOrArrayLayers: 1,
	}
}

// textureDescriptor builds the descriptor for a sampled, copy-destination sRGB texture.
func textureDescriptor(label string, staging common.TextureStagingData) *wgpu.TextureDescriptor {
	return &wgpu.TextureDescriptor{
		Label:         label,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		Size:          extent(staging),
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	}
}

// samplerDescriptor builds a sampler descriptor. Zero LOD max clamp and anisotropy are
// invalid on the device, so they fall back to 32 and 1.
func samplerDescriptor(label string, data common.SamplerStagingData) *wgpu.SamplerDescriptor {
	return &wgpu.SamplerDescriptor{
		Label:         label,
		AddressModeU:  data.AddressModeU,
		AddressModeV:  data.AddressModeV,
		AddressModeW:  data.AddressModeW,
		MagFilter:     data.MagFilter,
		MinFilter:     data.MinFilter,
		MipmapFilter:  data.MipmapFilter,
		LodMinClamp:   data.LodMinClamp,
		LodMaxClamp:   common.Coalesce(data.LodMaxClamp, 32.0),
		MaxAnisotropy: common.Coalesce(data.MaxAnisotropy, 1),
	}
}

func (t *texture) Label() string {
	return t.label
}

func (t *texture) Width() uint32 {
	return t.width
}

func (t *texture) Height() uint32 {
	return t.height
}

func (t *texture) View() *wgpu.TextureView {
	return t.view
}

func (t *texture) Sampler() *wgpu.Sampler {
	return t.sampler
}

func (t *texture) Release() {
	if t.sampler != nil {
		t.sampler.Release()
		t.sampler = nil
	}
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}
