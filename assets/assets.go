// Package assets embeds the textures and shader source drawn by water-spider.
package assets

import _ "embed"

// WaterNormal is the encoded water overlay texture sampled at the animated offset.
//
//go:embed water_normal.png
var WaterNormal []byte

// Background is the encoded environment texture behind the water.
//
//go:embed Left_Environment_Water.png
var Background []byte

// ReflectWaterSource is the WGSL for the quad. It references OffsetUniform
// without declaring it, so the struct source must be prepended before compilation.
//
//go:embed reflect_water.wgsl
var ReflectWaterSource string
