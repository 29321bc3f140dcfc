// Package session holds the per-application state the frame loop and input handlers share:
// clock, camera, scene, debug panel, viewport, tweens and the renderer. All of it is touched
// from the host thread only.
package session

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-sketch/common"
	"github.com/Carmen-Shannon/oxy-sketch/engine/camera"
	"github.com/Carmen-Shannon/oxy-sketch/engine/clock"
	"github.com/Carmen-Shannon/oxy-sketch/engine/debug"
	"github.com/Carmen-Shannon/oxy-sketch/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sketch/engine/scene"
	"github.com/Carmen-Shannon/oxy-sketch/engine/tween"
)

// Session owns the state of one running sketch.
type Session interface {
	// Clock returns the session clock.
	Clock() clock.Clock

	// Camera returns the session camera.
	Camera() camera.Camera

	// Scene returns the scene the frame loop renders.
	Scene() scene.Scene

	// GUI returns the root debug panel.
	GUI() debug.GUI

	// Tweens returns the tween manager the frame loop advances.
	Tweens() tween.Manager

	// Renderer returns the renderer, or nil when none is attached.
	Renderer() renderer.Renderer

	// SetRenderer attaches a renderer and sizes it to the current viewport.
	//
	// Parameters:
	//   - r: the renderer
	SetRenderer(r renderer.Renderer)

	// Viewport returns the current drawable size and clamped pixel ratio.
	Viewport() common.Viewport

	// Cursor returns the last pointer position normalized to [-0.5, 0.5] on both axes, with
	// y growing downward.
	//
	// Returns:
	//   - float64: normalized x
	//   - float64: normalized y
	Cursor() (float64, float64)

	// OnKey registers a handler run when key is pressed. The panel toggle key runs its
	// handlers after toggling.
	//
	// Parameters:
	//   - key: the key name, case-insensitive
	//   - fn: the handler
	OnKey(key string, fn func())

	// Dispatch applies one input event to the session state.
	//
	// Parameters:
	//   - ev: the event
	//
	// Returns:
	//   - error: an error if a parameter event does not resolve or its value is rejected
	Dispatch(ev Event) error

	// Render draws the scene from the camera through the attached renderer. Without a
	// renderer it does nothing.
	//
	// Returns:
	//   - error: the renderer's error
	Render() error
}

type sessionImpl struct {
	clock    clock.Clock
	camera   camera.Camera
	scene    scene.Scene
	gui      debug.GUI
	tweens   tween.Manager
	renderer renderer.Renderer
	viewport common.Viewport

	toggleKey   string
	keyHandlers map[string][]func()

	dragging   bool
	dragButton PointerButton
	lastX      float64
	lastY      float64
	cursorX    float64
	cursorY    float64
}

var _ Session = &sessionImpl{}

// NewSession creates a session. Unset parts get defaults: a new clock, a camera at (0,0,3)
// with a static drive, an empty active scene, a "Controls" panel, an 800×600 viewport and
// no renderer.
//
// Parameters:
//   - options: variadic list of SessionBuilderOption functions to configure the session
//
// Returns:
//   - Session: the new session
func NewSession(options ...SessionBuilderOption) Session {
	s := &sessionImpl{
		viewport:    common.Viewport{Width: 800, Height: 600, PixelRatio: 1},
		toggleKey:   "h",
		keyHandlers: make(map[string][]func()),
	}
	for _, option := range options {
		option(s)
	}
	if s.clock == nil {
		s.clock = clock.NewClock()
	}
	if s.camera == nil {
		s.camera = camera.NewCamera(camera.WithPosition(0, 0, 3))
	}
	if s.scene == nil {
		s.scene = scene.NewScene("main")
	}
	if s.gui == nil {
		s.gui = debug.NewGUI()
	}
	if s.tweens == nil {
		s.tweens = tween.NewManager()
	}
	s.camera.SetAspect(s.viewport.Aspect())
	if s.renderer != nil {
		s.sizeRenderer()
	}
	return s
}

func (s *sessionImpl) Clock() clock.Clock {
	return s.clock
}

func (s *sessionImpl) Camera() camera.Camera {
	return s.camera
}

func (s *sessionImpl) Scene() scene.Scene {
	return s.scene
}

func (s *sessionImpl) GUI() debug.GUI {
	return s.gui
}

func (s *sessionImpl) Tweens() tween.Manager {
	return s.tweens
}

func (s *sessionImpl) Renderer() renderer.Renderer {
	return s.renderer
}

func (s *sessionImpl) SetRenderer(r renderer.Renderer) {
	s.renderer = r
	if r != nil {
		s.sizeRenderer()
	}
}

func (s *sessionImpl) Viewport() common.Viewport {
	return s.viewport
}

func (s *sessionImpl) Cursor() (float64, float64) {
	return s.cursorX, s.cursorY
}

func (s *sessionImpl) OnKey(key string, fn func()) {
	if fn == nil {
		return
	}
	k := strings.ToLower(key)
	s.keyHandlers[k] = append(s.keyHandlers[k], fn)
}

func (s *sessionImpl) Dispatch(ev Event) error {
	switch e := ev.(type) {
	case ResizeEvent:
		s.resize(e)
	case KeyDownEvent:
		s.keyDown(e.Key)
	case PointerDownEvent:
		s.dragging = true
		s.dragButton = e.Button
		s.lastX, s.lastY = e.X, e.Y
		s.trackCursor(e.X, e.Y)
	case PointerMoveEvent:
		s.pointerMove(e)
	case PointerUpEvent:
		if s.dragging && e.Button == s.dragButton {
			s.dragging = false
		}
		s.trackCursor(e.X, e.Y)
	case WheelEvent:
		if ctrl := s.camera.Controller(); ctrl != nil {
			ctrl.Zoom(float32(e.Delta))
		}
	case ParamInputEvent:
		c, err := s.lookup(e.Path)
		if err != nil {
			return err
		}
		return c.Input(e.Value)
	case ParamFinishEvent:
		c, err := s.lookup(e.Path)
		if err != nil {
			return err
		}
		c.Finish()
	case ParamPressEvent:
		c, err := s.lookup(e.Path)
		if err != nil {
			return err
		}
		return c.Press()
	case CallEvent:
		if e.Fn != nil {
			e.Fn(s)
		}
	default:
		return fmt.Errorf("session: unsupported event %T", ev)
	}
	return nil
}

func (s *sessionImpl) Render() error {
	if s.renderer == nil {
		return nil
	}
	return s.renderer.Render(s.scene, s.camera)
}

// resize ignores empty sizes, which minimized windows report.
func (s *sessionImpl) resize(e ResizeEvent) {
	if e.Width <= 0 || e.Height <= 0 {
		return
	}
	ratio := s.viewport.PixelRatio
	if e.PixelRatio > 0 {
		ratio = common.ClampPixelRatio(e.PixelRatio)
	}
	s.viewport = common.Viewport{Width: e.Width, Height: e.Height, PixelRatio: ratio}
	s.camera.SetAspect(s.viewport.Aspect())
	if s.renderer != nil {
		s.sizeRenderer()
	}
}

func (s *sessionImpl) sizeRenderer() {
	s.renderer.SetPixelRatio(s.viewport.PixelRatio)
	s.renderer.Resize(s.viewport.Width, s.viewport.Height)
}

func (s *sessionImpl) keyDown(key string) {
	k := strings.ToLower(key)
	if k == s.toggleKey {
		s.gui.Toggle()
	}
	for _, fn := range s.keyHandlers[k] {
		fn()
	}
}

func (s *sessionImpl) pointerMove(e PointerMoveEvent) {
	s.trackCursor(e.X, e.Y)
	if !s.dragging {
		return
	}
	dx, dy := e.X-s.lastX, e.Y-s.lastY
	s.lastX, s.lastY = e.X, e.Y
	ctrl := s.camera.Controller()
	if ctrl == nil {
		return
	}
	h := float32(s.viewport.Height)
	switch s.dragButton {
	case PointerLeft:
		ctrl.RotateByPixels(float32(dx), float32(dy), h)
	default:
		ctrl.PanByPixels(float32(dx), float32(dy), h, s.camera.Fov())
	}
}

func (s *sessionImpl) trackCursor(x, y float64) {
	if s.viewport.Width <= 0 || s.viewport.Height <= 0 {
		return
	}
	s.cursorX = x/float64(s.viewport.Width) - 0.5
	s.cursorY = y/float64(s.viewport.Height) - 0.5
}

func (s *sessionImpl) lookup(path string) (debug.Controller, error) {
	c, ok := s.gui.Lookup(path)
	if !ok {
		return nil, fmt.Errorf("session: %w: %q", debug.ErrUnknownParameter, path)
	}
	return c, nil
}
