package shader

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Stage identifies a programmable pipeline stage in WGSL source.
type Stage int

const (
	// StageVertex matches @vertex functions.
	StageVertex Stage = iota

	// StageFragment matches @fragment functions.
	StageFragment
)

// BindingKind classifies the resource bound at a @group/@binding slot.
type BindingKind int

const (
	// BindingUnknown is any declaration the parser does not classify.
	BindingUnknown BindingKind = iota

	// BindingTexture is a sampled texture (texture_2d and friends).
	BindingTexture

	// BindingSampler is a filtering or comparison sampler.
	BindingSampler

	// BindingUniform is a var<uniform> buffer.
	BindingUniform

	// BindingStorage is a var<storage> buffer.
	BindingStorage
)

// String returns the kind name used in error messages.
func (k BindingKind) String() string {
	switch k {
	case BindingTexture:
		return "texture"
	case BindingSampler:
		return "sampler"
	case BindingUniform:
		return "uniform buffer"
	case BindingStorage:
		return "storage buffer"
	default:
		return "unknown"
	}
}

// Binding is a single resource declaration parsed from WGSL, such as
// `@group(2) @binding(0) var<uniform> water_offset: OffsetUniform;`.
type Binding struct {
	Group   uint32
	Binding uint32
	Name    string
	Type    string
	Kind    BindingKind
}

var (
	// vertexEntryRegex matches @vertex functions and captures the entry point name
	vertexEntryRegex = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)

	// fragmentEntryRegex matches @fragment functions and captures the entry point name
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)

	// bindGroupDeclRegex captures group, binding, optional address space, variable name, and type
	// from declarations like: @group(2) @binding(0) var<uniform> water_offset: OffsetUniform;
	// or handle types: @group(0) @binding(0) var t_background: texture_2d<f32>;
	bindGroupDeclRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

// parseEntryPoint extracts the entry point function name for the given stage from WGSL source.
// Returns an empty string if no matching entry point annotation is found.
//
// Parameters:
//   - source: the raw WGSL source code string
//   - stage: the stage to search for
//
// Returns:
//   - string: the entry point function name, or empty string if not found
func parseEntryPoint(source string, stage Stage) string {
	cleaned := stripComments(source)

	re := vertexEntryRegex
	if stage == StageFragment {
		re = fragmentEntryRegex
	}
	if match := re.FindStringSubmatch(cleaned); match != nil {
		return match[1]
	}
	return ""
}

// parseBindings extracts all resource declarations from WGSL source, sorted by group then binding.
//
// Parameters:
//   - source: the raw WGSL source code string
//
// Returns:
//   - []Binding: the parsed declarations
func parseBindings(source string) []Binding {
	cleaned := stripComments(source)

	var out []Binding
	for _, match := range bindGroupDeclRegex.FindAllStringSubmatch(cleaned, -1) {
		group, _ := strconv.ParseUint(match[1], 10, 32)
		binding, _ := strconv.ParseUint(match[2], 10, 32)
		typeName := strings.TrimSpace(match[5])
		out = append(out, Binding{
			Group:   uint32(group),
			Binding: uint32(binding),
			Name:    strings.TrimSpace(match[4]),
			Type:    typeName,
			Kind:    classifyBinding(strings.TrimSpace(match[3]), typeName),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].Binding < out[j].Binding
	})
	return out
}

// classifyBinding maps an address space and type name onto a BindingKind.
func classifyBinding(addressSpace, typeName string) BindingKind {
	space, _, _ := strings.Cut(addressSpace, ",")
	switch strings.TrimSpace(space) {
	case "uniform":
		return BindingUniform
	case "storage":
		return BindingStorage
	}
	switch {
	case typeName == "sampler", typeName == "sampler_comparison":
		return BindingSampler
	case strings.HasPrefix(typeName, "texture_"):
		return BindingTexture
	}
	return BindingUnknown
}

// stripComments removes both line and block comments from WGSL source.
func stripComments(source string) string {
	return stripLineComments(stripBlockComments(source))
}

// stripLineComments removes single-line // comments from WGSL source.
func stripLineComments(source string) string {
	var sb strings.Builder
	for line := range strings.SplitSeq(source, "\n") {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// stripBlockComments removes block comments (/* ... */) from WGSL source,
// handling nested block comments.
func stripBlockComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	for i := 0; i < len(source); i++ {
		if i+1 < len(source) {
			if source[i] == '/' && source[i+1] == '*' {
				depth++
				i++
				continue
			}
			if source[i] == '*' && source[i+1] == '/' && depth > 0 {
				depth--
				i++
				continue
			}
		}
		if depth == 0 {
			sb.WriteByte(source[i])
		}
	}
	return sb.String()
}
