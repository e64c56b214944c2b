package renderer

import (
	"github.com/dariandzirko/water-spider/engine/animator"
	"github.com/dariandzirko/water-spider/engine/renderer/texture"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithLoader sets the decoder used for both textures.
//
// Parameters:
//   - loader: the texture loader
//
// Returns:
//   - RendererBuilderOption: a function that applies the loader option to a renderer
func WithLoader(loader texture.Loader) RendererBuilderOption {
	return func(r *renderer) {
		r.loader = loader
	}
}

// WithImages replaces the embedded background and water images.
//
// Parameters:
//   - background: the encoded background image
//   - water: the encoded water overlay image
//
// Returns:
//   - RendererBuilderOption: a function that applies the images option to a renderer
func WithImages(background, water []byte) RendererBuilderOption {
	return func(r *renderer) {
		r.backgroundImage = background
		r.waterImage = water
	}
}

// WithShaderSources replaces the WGSL fragments the quad shader is built from.
//
// Parameters:
//   - sources: WGSL fragments concatenated in order
//
// Returns:
//   - RendererBuilderOption: a function that applies the shader option to a renderer
func WithShaderSources(sources ...string) RendererBuilderOption {
	return func(r *renderer) {
		r.shaderSources = sources
	}
}

// WithAnimation sets the water animation state advanced every frame.
//
// Parameters:
//   - w: the animation state
//
// Returns:
//   - RendererBuilderOption: a function that applies the animation option to a renderer
func WithAnimation(w animator.Water) RendererBuilderOption {
	return func(r *renderer) {
		r.animation = w
	}
}
