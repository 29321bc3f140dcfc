// Package window is the desktop host: a GLFW window whose callbacks post session events to a
// host.Loop and whose message loop pumps that loop once per iteration.
package window

import (
	"context"
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-sketch/engine/host"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and the host side of the frame loop.
// Input arrives as session events; frames run through the embedded Loop.
type Window interface {
	host.Loop

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// Run runs the window message loop, pumping queued events and the pending frame once per
	// iteration. Blocks until the window is closed or ctx is done.
	//
	// Parameters:
	//   - ctx: cancelling it ends the loop
	Run(ctx context.Context)

	// Width returns the current client area width in logical pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current client area height in logical pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int

	// PixelRatio returns framebuffer pixels per logical pixel.
	//
	// Returns:
	//   - float64: the device pixel ratio
	PixelRatio() float64
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state and the event loop.
type engineWindow struct {
	host.Loop

	// title is the window title displayed in the title bar.
	title string

	// minWidth and minHeight bound resizing from below.
	minWidth  int
	minHeight int

	// width and height are the client area size in logical pixels.
	width  int
	height int

	// pixelRatio is framebuffer width over logical width.
	pixelRatio float64

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any
}

var _ Window = &engineWindow{}

// NewWindow creates and spawns a Window with the specified options.
// Applies default values first, then each option in order. Must be called from the main
// goroutine; GLFW pins it to the OS thread.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the open window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		Loop:       host.NewLoop(nil),
		title:      "oxy sketch",
		minWidth:   200,
		minHeight:  150,
		width:      800,
		height:     600,
		pixelRatio: 1,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("window: failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) Run(ctx context.Context) {
	for w.IsRunning() && ctx.Err() == nil {
		if succ := platformProcessMessages(w); !succ {
			break
		}
		w.Pump()
		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) PixelRatio() float64 {
	return w.pixelRatio
}
