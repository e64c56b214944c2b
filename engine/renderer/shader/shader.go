package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/naga"
)

const (
	// VertexEntryPoint is the vertex stage function every render shader must declare.
	VertexEntryPoint = "vs_main"

	// FragmentEntryPoint is the fragment stage function every render shader must declare.
	FragmentEntryPoint = "fs_main"
)

// ErrInvalidShader is returned when WGSL source fails validation or lacks a required entry point.
var ErrInvalidShader = errors.New("invalid shader")

// shader is the implementation of the Shader interface.
// It holds the composed WGSL source and the metadata parsed from it.
type shader struct {
	key           string
	source        string
	vertexEntry   string
	fragmentEntry string
	bindings      []Binding
	module        *wgpu.ShaderModuleDescriptor
}

// Shader is a validated WGSL render program with a vertex and a fragment stage.
// It exposes the entry points and resource bindings declared in the source so the
// pipeline can be checked against the layouts built for it.
type Shader interface {
	// Key retrieves the unique identifier for this shader, also used as the module label.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the full WGSL source submitted to the device
	Source() string

	// VertexEntryPoint returns the name of the @vertex function.
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the @fragment function.
	FragmentEntryPoint() string

	// Bindings returns every @group/@binding declaration in the source, ordered by group then binding.
	//
	// Returns:
	//   - []Binding: the declared resource bindings
	Bindings() []Binding

	// Module returns the wgpu.ShaderModuleDescriptor for this shader.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the shader module descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader validates WGSL source and parses its entry points and bindings.
// The source is compiled with naga before it ever reaches the device, so syntax and
// type errors surface as ErrInvalidShader instead of a device validation panic.
//
// Parameters:
//   - key: a unique identifier for the shader, used as the module label
//   - sources: WGSL fragments concatenated in order (shared struct definitions first)
//
// Returns:
//   - Shader: the validated shader
//   - error: ErrInvalidShader (wrapped) if compilation fails or vs_main/fs_main are missing
func NewShader(key string, sources ...string) (Shader, error) {
	s := &shader{
		key:    key,
		source: strings.Join(sources, "\n"),
	}

	if _, err := naga.Compile(s.source); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidShader, key, err)
	}

	s.vertexEntry = parseEntryPoint(s.source, StageVertex)
	s.fragmentEntry = parseEntryPoint(s.source, StageFragment)
	if s.vertexEntry != VertexEntryPoint {
		return nil, fmt.Errorf("%w: %s: vertex entry point %q, want %q", ErrInvalidShader, key, s.vertexEntry, VertexEntryPoint)
	}
	if s.fragmentEntry != FragmentEntryPoint {
		return nil, fmt.Errorf("%w: %s: fragment entry point %q, want %q", ErrInvalidShader, key, s.fragmentEntry, FragmentEntryPoint)
	}

	s.bindings = parseBindings(s.source)
	s.module = &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntry
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntry
}

func (s *shader) Bindings() []Binding {
	return s.bindings
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}
