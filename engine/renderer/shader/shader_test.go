package shader

import (
	"errors"
	"strings"
	"testing"

	"github.com/dariandzirko/water-spider/assets"
	"github.com/dariandzirko/water-spider/engine/animator"
)

const minimalQuad = `
@vertex
fn vs_main(@location(0) position: vec3<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(position, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(0.1, 0.2, 0.3, 1.0);
}
`

// TestNewShaderReflectWater checks the embedded quad shader compiles once the
// offset uniform struct is prepended, and declares the expected bindings.
func TestNewShaderReflectWater(t *testing.T) {
	s, err := NewShader("Shader", animator.GPUOffsetUniformSource, assets.ReflectWaterSource)
	if err != nil {
		t.Fatalf("NewShader: %v", err)
	}
	if s.VertexEntryPoint() != VertexEntryPoint || s.FragmentEntryPoint() != FragmentEntryPoint {
		t.Errorf("entry points = %q/%q", s.VertexEntryPoint(), s.FragmentEntryPoint())
	}
	if s.Module() == nil || s.Module().Label != "Shader" || s.Module().WGSLDescriptor.Code != s.Source() {
		t.Errorf("module descriptor does not mirror the shader")
	}

	want := []struct {
		group, binding uint32
		kind           BindingKind
	}{
		{0, 0, BindingTexture},
		{0, 1, BindingSampler},
		{1, 0, BindingTexture},
		{1, 1, BindingSampler},
		{2, 0, BindingUniform},
	}
	got := s.Bindings()
	if len(got) != len(want) {
		t.Fatalf("got %d bindings, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Group != w.group || got[i].Binding != w.binding || got[i].Kind != w.kind {
			t.Errorf("binding %d = %+v, want group %d binding %d kind %d", i, got[i], w.group, w.binding, w.kind)
		}
	}
}

// TestNewShaderRejectsMissingStruct checks the quad shader alone does not compile.
func TestNewShaderRejectsMissingStruct(t *testing.T) {
	if _, err := NewShader("Shader", assets.ReflectWaterSource); !errors.Is(err, ErrInvalidShader) {
		t.Fatalf("err = %v, want ErrInvalidShader", err)
	}
}

// TestNewShaderInvalid covers syntax errors and wrongly named entry points.
func TestNewShaderInvalid(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"empty", ""},
		{"syntax", "fn vs_main( {"},
		{"renamed vertex", strings.Replace(minimalQuad, "fn vs_main", "fn main_vs", 1)},
		{"renamed fragment", strings.Replace(minimalQuad, "fn fs_main", "fn main_fs", 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewShader(tt.name, tt.source); !errors.Is(err, ErrInvalidShader) {
				t.Errorf("err = %v, want ErrInvalidShader", err)
			}
		})
	}
}

// TestNewShaderMinimal checks a binding-free shader is accepted.
func TestNewShaderMinimal(t *testing.T) {
	s, err := NewShader("minimal", minimalQuad)
	if err != nil {
		t.Fatalf("NewShader: %v", err)
	}
	if len(s.Bindings()) != 0 {
		t.Errorf("bindings = %+v, want none", s.Bindings())
	}
}
