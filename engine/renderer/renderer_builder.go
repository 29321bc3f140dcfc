package renderer

import "github.com/Carmen-Shannon/oxy-sketch/common"

// RendererBuilderOption is a functional option for configuring a Renderer.
// Use the With* functions to create options.
type RendererBuilderOption func(r *renderer)

// WithSize sets the initial logical output size. Defaults to 800×600.
//
// Parameters:
//   - width: logical width in pixels
//   - height: logical height in pixels
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithSize(width, height int) RendererBuilderOption {
	return func(r *renderer) {
		r.width = max(width, 1)
		r.height = max(height, 1)
	}
}

// WithPixelRatio sets the initial device pixel ratio, clamped to common.MaxPixelRatio.
//
// Parameters:
//   - ratio: the device pixel ratio
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithPixelRatio(ratio float64) RendererBuilderOption {
	return func(r *renderer) {
		r.pixelRatio = common.ClampPixelRatio(ratio)
	}
}

// WithPresentMode sets the surface present mode on backends that support one.
// If not set, the backend's default is used.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}
