package wgpu_renderer

import "github.com/Carmen-Shannon/oxy-sketch/engine/renderer"

type backendConfig struct {
	sampleCount          renderer.MSAASampleCount
	forceFallbackAdapter bool
}

// BackendBuilderOption is a functional option for configuring the WebGPU backend.
type BackendBuilderOption func(c *backendConfig)

// WithMSAA sets the multisample anti-aliasing sample count. Defaults to MSAA4x.
//
// Parameters:
//   - count: the MSAA sample count (MSAAOff or MSAA4x)
//
// Returns:
//   - BackendBuilderOption: option function to apply
func WithMSAA(count renderer.MSAASampleCount) BackendBuilderOption {
	return func(c *backendConfig) {
		c.sampleCount = count
	}
}

// WithForceFallbackAdapter requests the software fallback adapter.
//
// Parameters:
//   - force: true to force the fallback adapter
//
// Returns:
//   - BackendBuilderOption: option function to apply
func WithForceFallbackAdapter(force bool) BackendBuilderOption {
	return func(c *backendConfig) {
		c.forceFallbackAdapter = force
	}
}
