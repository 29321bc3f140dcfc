package engine

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-sketch/engine/camera"
	"github.com/Carmen-Shannon/oxy-sketch/engine/profiler"
	"github.com/Carmen-Shannon/oxy-sketch/engine/session"
)

// FrameRequester schedules a callback for the next display refresh. Hosts implement it: the
// GLFW window, the ebiten host, the headless ticker and the manual host.
type FrameRequester interface {
	RequestFrame(callback func())
}

// engine implements the Engine interface.
// Drives one frame per display refresh on the host thread.
type engine struct {
	session   session.Session
	requester FrameRequester

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once
	started     bool
	ctx         context.Context

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickCallback func(elapsed, delta float64)
	lastElapsed  float64
	frames       uint64
}

// Engine is the frame scheduler. Each frame it reads the session clock, advances tweens,
// runs the tick callback, moves the camera (scripted motion or damped controller), renders,
// then re-arms itself with the host until cancelled or quit.
type Engine interface {
	// Session returns the session the engine drives.
	//
	// Returns:
	//   - session.Session: the session
	Session() session.Session

	// Start arms the first frame. Frames then run from the host's refresh loop.
	//
	// Parameters:
	//   - ctx: cancelling it stops the loop after the current frame
	//
	// Returns:
	//   - error: an error if no frame requester is set or the engine already started
	Start(ctx context.Context) error

	// Quit stops the loop: the next frame is not re-armed.
	// Safe to call multiple times and from any goroutine.
	Quit()

	// Done returns a channel closed once the loop stopped.
	//
	// Returns:
	//   - <-chan struct{}: the done channel
	Done() <-chan struct{}

	// Frames returns the number of completed frames.
	Frames() uint64

	// SetTickCallback registers the function called each frame after tweens advance and
	// before the camera moves.
	//
	// Parameters:
	//   - callback: receives elapsed seconds since start and seconds since the previous frame
	SetTickCallback(callback func(elapsed, delta float64))

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Profiler returns the frame profiler.
	Profiler() *profiler.Profiler
}

// ErrAlreadyStarted is returned by a second Start.
var ErrAlreadyStarted = errors.New("engine: already started")

// NewEngine creates a new Engine instance with the provided options.
// A session is created with session.NewSession when none is given.
//
// Parameters:
//   - options: functional options for engine configuration (session, renderer, host, profiling)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel: make(chan struct{}),
		profiler:    profiler.NewProfiler(),
	}
	cfg := &engineConfig{}
	for _, opt := range options {
		opt(e, cfg)
	}
	if e.session == nil {
		e.session = session.NewSession()
	}
	if cfg.renderer != nil {
		e.session.SetRenderer(cfg.renderer)
	}
	return e
}

func (e *engine) Session() session.Session {
	return e.session
}

func (e *engine) Start(ctx context.Context) error {
	if e.requester == nil {
		return errors.New("engine: Start requires a frame requester")
	}
	if e.started {
		return ErrAlreadyStarted
	}
	e.started = true
	e.ctx = ctx
	e.lastElapsed = e.session.Clock().Elapsed()
	go func() {
		select {
		case <-ctx.Done():
			e.signalQuit()
		case <-e.quitChannel:
		}
	}()
	e.requester.RequestFrame(e.tick)
	return nil
}

// Quit signals the loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal the loop to stop re-arming.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

// stopped reports whether Quit was called or the start context is done.
func (e *engine) stopped() bool {
	if e.ctx != nil && e.ctx.Err() != nil {
		e.signalQuit()
	}
	select {
	case <-e.quitChannel:
		return true
	default:
		return false
	}
}

// tick runs one frame and re-arms unless the loop stopped.
func (e *engine) tick() {
	if e.stopped() {
		return
	}

	elapsed := e.session.Clock().Elapsed()
	delta := elapsed - e.lastElapsed
	e.lastElapsed = elapsed

	e.session.Tweens().Update(elapsed)
	if e.tickCallback != nil {
		e.tickCallback(elapsed, delta)
	}

	cam := e.session.Camera()
	switch cam.Drive().Mode() {
	case camera.DriveScripted:
		cam.ApplyMotion(elapsed)
	case camera.DriveUserControlled:
		cam.Controller().Update()
		cam.Update()
	}

	e.render()
	e.frames++

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	if e.stopped() {
		return
	}
	e.requester.RequestFrame(e.tick)
}

// render draws one frame. A failed or panicking render is logged and the loop continues.
func (e *engine) render() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("engine: render recovered from panic: %v", r)
			e.profiler.RecordRenderError()
		}
	}()
	if err := e.session.Render(); err != nil {
		log.Printf("engine: frame %d: %v", e.frames+1, err)
		e.profiler.RecordRenderError()
	}
}

func (e *engine) Frames() uint64 {
	return e.frames
}

func (e *engine) SetTickCallback(callback func(elapsed, delta float64)) {
	e.tickCallback = callback
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}
