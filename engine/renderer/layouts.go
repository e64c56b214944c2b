package renderer

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/dariandzirko/water-spider/engine/animator"
	"github.com/dariandzirko/water-spider/engine/renderer/shader"
)

// Bind group slots used by the quad shader.
const (
	BackgroundGroup = 0
	WaterGroup      = 1
	OffsetGroup     = 2
)

// TextureBindGroupLayout describes a sampled texture with its sampler, both visible to the
// fragment stage: binding 0 is a filterable float 2D texture, binding 1 a filtering sampler.
// The background and water groups share this layout.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the layout descriptor
func TextureBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "texture_bind_group_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
					Multisampled:  false,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	}
}

// OffsetBindGroupLayout describes the offset uniform buffer at binding 0, visible to the
// fragment stage, without dynamic offsets.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the layout descriptor
func OffsetBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "offset_bind_group_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					HasDynamicOffset: false,
					MinBindingSize:   animator.OffsetUniformSize,
				},
			},
		},
	}
}

// groupLayouts returns the layout descriptor for each bind group slot, in slot order.
func groupLayouts() []wgpu.BindGroupLayoutDescriptor {
	return []wgpu.BindGroupLayoutDescriptor{
		BackgroundGroup: TextureBindGroupLayout(),
		WaterGroup:      TextureBindGroupLayout(),
		OffsetGroup:     OffsetBindGroupLayout(),
	}
}

// checkShaderBindings verifies every binding the shader declares exists in the slot layouts
// with a matching resource kind, and that every layout entry is declared by the shader.
func checkShaderBindings(s shader.Shader) error {
	layouts := groupLayouts()
	declared := make(map[[2]uint32]bool)

	for _, b := range s.Bindings() {
		if int(b.Group) >= len(layouts) {
			return fmt.Errorf("%w: %s declares @group(%d), only %d groups are bound", shader.ErrInvalidShader, b.Name, b.Group, len(layouts))
		}
		entry, ok := findEntry(layouts[b.Group], b.Binding)
		if !ok {
			return fmt.Errorf("%w: %s at @group(%d) @binding(%d) has no layout entry", shader.ErrInvalidShader, b.Name, b.Group, b.Binding)
		}
		if kind := entryKind(entry); kind != b.Kind {
			return fmt.Errorf("%w: %s at @group(%d) @binding(%d) is %s, layout expects %s", shader.ErrInvalidShader, b.Name, b.Group, b.Binding, b.Kind, kind)
		}
		declared[[2]uint32{b.Group, b.Binding}] = true
	}

	for g, layout := range layouts {
		for _, e := range layout.Entries {
			if !declared[[2]uint32{uint32(g), e.Binding}] {
				return fmt.Errorf("%w: @group(%d) @binding(%d) is not declared by %s", shader.ErrInvalidShader, g, e.Binding, s.Key())
			}
		}
	}
	return nil
}

func findEntry(layout wgpu.BindGroupLayoutDescriptor, binding uint32) (wgpu.BindGroupLayoutEntry, bool) {
	for _, e := range layout.Entries {
		if e.Binding == binding {
			return e, true
		}
	}
	return wgpu.BindGroupLayoutEntry{}, false
}

func entryKind(e wgpu.BindGroupLayoutEntry) shader.BindingKind {
	switch {
	case e.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
		return shader.BindingTexture
	case e.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
		return shader.BindingSampler
	case e.Buffer.Type == wgpu.BufferBindingTypeUniform:
		return shader.BindingUniform
	case e.Buffer.Type != wgpu.BufferBindingTypeUndefined:
		return shader.BindingStorage
	}
	return shader.BindingUnknown
}
