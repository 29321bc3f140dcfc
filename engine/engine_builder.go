package engine

import (
	"github.com/Carmen-Shannon/oxy-sketch/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sketch/engine/session"
)

// engineConfig holds options applied after the session is known.
type engineConfig struct {
	renderer renderer.Renderer
}

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine, *engineConfig)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine, _ *engineConfig) {
		e.profilingEnabled = enabled
	}
}

// WithSession sets the session the engine drives.
//
// Parameters:
//   - s: the session
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSession(s session.Session) EngineBuilderOption {
	return func(e *engine, _ *engineConfig) {
		e.session = s
	}
}

// WithRenderer attaches a renderer to the session, replacing any it already has.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(_ *engine, cfg *engineConfig) {
		cfg.renderer = r
	}
}

// WithFrameRequester sets the host that schedules frames.
//
// Parameters:
//   - fr: the frame requester
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameRequester(fr FrameRequester) EngineBuilderOption {
	return func(e *engine, _ *engineConfig) {
		e.requester = fr
	}
}

// WithTickCallback registers the per-frame callback. See Engine.SetTickCallback.
//
// Parameters:
//   - callback: receives elapsed and delta seconds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickCallback(callback func(elapsed, delta float64)) EngineBuilderOption {
	return func(e *engine, _ *engineConfig) {
		e.tickCallback = callback
	}
}
