package ebiten_host

import "github.com/Carmen-Shannon/oxy-sketch/engine/debug"

// backendConfig holds options applied when the backend is created.
type backendConfig struct {
	strokeWidth float32
	antialias   bool
}

// HostBuilderOption is a functional option for configuring a Host.
type HostBuilderOption func(*hostImpl, *backendConfig)

// WithTitle sets the window title.
//
// Parameters:
//   - title: the title
//
// Returns:
//   - HostBuilderOption: option function to apply
func WithTitle(title string) HostBuilderOption {
	return func(h *hostImpl, _ *backendConfig) {
		h.title = title
	}
}

// WithSize sets the initial window size in logical pixels.
//
// Parameters:
//   - width, height: the size
//
// Returns:
//   - HostBuilderOption: option function to apply
func WithSize(width, height int) HostBuilderOption {
	return func(h *hostImpl, _ *backendConfig) {
		h.width, h.height = width, height
	}
}

// WithTPS sets ebiten's update rate, which is also the frame rate. Defaults to 60.
//
// Parameters:
//   - tps: ticks per second
//
// Returns:
//   - HostBuilderOption: option function to apply
func WithTPS(tps int) HostBuilderOption {
	return func(h *hostImpl, _ *backendConfig) {
		if tps > 0 {
			h.tps = tps
		}
	}
}

// WithPanel shows gui as a text overlay while it is not hidden.
//
// Parameters:
//   - gui: the debug panel
//
// Returns:
//   - HostBuilderOption: option function to apply
func WithPanel(gui debug.GUI) HostBuilderOption {
	return func(h *hostImpl, _ *backendConfig) {
		h.panel = gui
	}
}

// WithStroke sets the wireframe line width and antialiasing.
//
// Parameters:
//   - width: line width in pixels
//   - antialias: whether lines are antialiased
//
// Returns:
//   - HostBuilderOption: option function to apply
func WithStroke(width float32, antialias bool) HostBuilderOption {
	return func(_ *hostImpl, cfg *backendConfig) {
		if width > 0 {
			cfg.strokeWidth = width
		}
		cfg.antialias = antialias
	}
}
