package session

import (
	"strings"

	"github.com/Carmen-Shannon/oxy-sketch/common"
	"github.com/Carmen-Shannon/oxy-sketch/engine/camera"
	"github.com/Carmen-Shannon/oxy-sketch/engine/clock"
	"github.com/Carmen-Shannon/oxy-sketch/engine/debug"
	"github.com/Carmen-Shannon/oxy-sketch/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sketch/engine/scene"
	"github.com/Carmen-Shannon/oxy-sketch/engine/tween"
)

// SessionBuilderOption is a functional option for configuring a Session.
// Use the With* functions to create options.
type SessionBuilderOption func(s *sessionImpl)

// WithClock sets the session clock.
//
// Parameters:
//   - c: the clock
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithClock(c clock.Clock) SessionBuilderOption {
	return func(s *sessionImpl) {
		s.clock = c
	}
}

// WithCamera sets the session camera. Its aspect is replaced by the viewport aspect.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SessionBuilderOption {
	return func(s *sessionImpl) {
		s.camera = cam
	}
}

// WithScene sets the scene the frame loop renders.
//
// Parameters:
//   - sc: the scene
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithScene(sc scene.Scene) SessionBuilderOption {
	return func(s *sessionImpl) {
		s.scene = sc
	}
}

// WithGUI sets the root debug panel.
//
// Parameters:
//   - g: the panel
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithGUI(g debug.GUI) SessionBuilderOption {
	return func(s *sessionImpl) {
		s.gui = g
	}
}

// WithTweens sets the tween manager.
//
// Parameters:
//   - m: the manager
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithTweens(m tween.Manager) SessionBuilderOption {
	return func(s *sessionImpl) {
		s.tweens = m
	}
}

// WithRenderer attaches a renderer.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) SessionBuilderOption {
	return func(s *sessionImpl) {
		s.renderer = r
	}
}

// WithViewport sets the initial drawable size. The pixel ratio is clamped with
// common.ClampPixelRatio.
//
// Parameters:
//   - width: width in logical pixels
//   - height: height in logical pixels
//   - pixelRatio: the device pixel ratio
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithViewport(width, height int, pixelRatio float64) SessionBuilderOption {
	return func(s *sessionImpl) {
		if width > 0 && height > 0 {
			s.viewport = common.Viewport{Width: width, Height: height, PixelRatio: common.ClampPixelRatio(pixelRatio)}
		}
	}
}

// WithToggleKey sets the key that shows and hides the debug panel. Defaults to "h".
//
// Parameters:
//   - key: the key name
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithToggleKey(key string) SessionBuilderOption {
	return func(s *sessionImpl) {
		s.toggleKey = strings.ToLower(key)
	}
}
