package shader

import "testing"

func TestParseEntryPoint(t *testing.T) {
	src := `
// @vertex fn commented_out() {}
/* @fragment fn also_commented() {} */
@vertex
fn vs_main() {}

@fragment fn fs_main() {}
`
	if got := parseEntryPoint(src, StageVertex); got != "vs_main" {
		t.Errorf("vertex entry = %q", got)
	}
	if got := parseEntryPoint(src, StageFragment); got != "fs_main" {
		t.Errorf("fragment entry = %q", got)
	}
	if got := parseEntryPoint("fn helper() {}", StageVertex); got != "" {
		t.Errorf("entry without annotation = %q", got)
	}
}

func TestParseBindings(t *testing.T) {
	src := `
@group(1) @binding(1) var s_water: sampler;
@group(2) @binding(0) var<uniform> water_offset: OffsetUniform;
@group(0) @binding(0) var t_background: texture_2d<f32>;
@group(0) @binding(2) var<storage, read> data: array<f32>;
@group(0) @binding(3) var s_shadow: sampler_comparison;
// @group(3) @binding(0) var ignored: sampler;
`
	got := parseBindings(src)
	want := []Binding{
		{Group: 0, Binding: 0, Name: "t_background", Type: "texture_2d<f32>", Kind: BindingTexture},
		{Group: 0, Binding: 2, Name: "data", Type: "array<f32>", Kind: BindingStorage},
		{Group: 0, Binding: 3, Name: "s_shadow", Type: "sampler_comparison", Kind: BindingSampler},
		{Group: 1, Binding: 1, Name: "s_water", Type: "sampler", Kind: BindingSampler},
		{Group: 2, Binding: 0, Name: "water_offset", Type: "OffsetUniform", Kind: BindingUniform},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d bindings, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("binding %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestStripBlockCommentsNested(t *testing.T) {
	src := "a /* outer /* inner */ still outer */ b"
	if got := stripBlockComments(src); got != "a  b" {
		t.Errorf("stripBlockComments = %q", got)
	}
}
