package engine

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-sketch/common"
	"github.com/Carmen-Shannon/oxy-sketch/engine/camera"
	"github.com/Carmen-Shannon/oxy-sketch/engine/clock"
	"github.com/Carmen-Shannon/oxy-sketch/engine/host"
	"github.com/Carmen-Shannon/oxy-sketch/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sketch/engine/scene"
	"github.com/Carmen-Shannon/oxy-sketch/engine/session"
	"github.com/Carmen-Shannon/oxy-sketch/engine/tween"
)

// fakeTime returns a time source and a function advancing it.
func fakeTime() (func() time.Time, func(time.Duration)) {
	now := time.Unix(100, 0)
	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}

func TestFramesRearmUntilQuit(t *testing.T) {
	m := host.NewManual(nil)
	e := NewEngine(WithFrameRequester(m))
	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("Start err = %v", err)
	}
	if err := e.Start(context.Background()); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("second Start err = %v, want ErrAlreadyStarted", err)
	}
	if ran := m.Step(5); ran != 5 || e.Frames() != 5 {
		t.Fatalf("Step ran %d, Frames = %d; want 5, 5", ran, e.Frames())
	}
	e.Quit()
	e.Quit()
	if ran := m.Step(5); ran != 1 || e.Frames() != 5 {
		// the pending callback runs once and sees the quit
		t.Fatalf("after Quit Step ran %d, Frames = %d; want 1, 5", ran, e.Frames())
	}
	select {
	case <-e.Done():
	default:
		t.Fatalf("Done not closed after Quit")
	}
}

func TestContextCancelStopsLoop(t *testing.T) {
	m := host.NewManual(nil)
	e := NewEngine(WithFrameRequester(m))
	ctx, cancel := context.WithCancel(context.Background())
	_ = e.Start(ctx)
	m.Step(2)
	cancel()
	m.Step(3)
	if e.Frames() != 2 || m.Pending() {
		t.Fatalf("Frames = %d, Pending = %v after cancel; want 2, false", e.Frames(), m.Pending())
	}
}

func TestStartRequiresFrameRequester(t *testing.T) {
	if err := NewEngine().Start(context.Background()); err == nil {
		t.Fatalf("Start without a frame requester succeeded")
	}
}

func TestScriptedMotionAppliedBeforeRender(t *testing.T) {
	now, advance := fakeTime()
	motion := camera.CircularMotion(common.Vec3{}, 3, 1, 3)
	cam := camera.NewCamera(camera.WithDrive(camera.Scripted(motion, common.Vec3{})))
	r, backend := renderer.NewHeadless()
	s := session.NewSession(session.WithClock(clock.NewClock(clock.WithTimeSource(now))), session.WithCamera(cam))
	m := host.NewManual(s)
	e := NewEngine(WithSession(s), WithRenderer(r), WithFrameRequester(m))
	_ = e.Start(context.Background())

	advance(1500 * time.Millisecond)
	m.Step(1)
	want := motion(1.5)
	if got := backend.Frame().CameraPosition; got.DistanceTo(want) > 1e-5 {
		t.Fatalf("rendered camera position = %v, want %v", got, want)
	}
	if d := cam.Position().Length(); math.Abs(float64(d)-math.Sqrt(18)) > 1e-4 {
		t.Fatalf("distance from aim = %v, want %v", d, math.Sqrt(18))
	}
}

func TestTweensAndTickCallbackRunEachFrame(t *testing.T) {
	now, advance := fakeTime()
	s := session.NewSession(session.WithClock(clock.NewClock(clock.WithTimeSource(now))))
	m := host.NewManual(s)

	var spin float32
	var deltas []float64
	e := NewEngine(WithSession(s), WithFrameRequester(m), WithTickCallback(func(_, delta float64) {
		deltas = append(deltas, delta)
	}))
	_ = e.Start(context.Background())
	s.Tweens().To(&spin, 2, tween.WithDuration(1))

	for range 3 {
		advance(500 * time.Millisecond)
		m.Step(1)
	}
	if spin != 2 {
		t.Fatalf("spin = %v, want 2", spin)
	}
	if len(deltas) != 3 || math.Abs(deltas[2]-0.5) > 1e-9 {
		t.Fatalf("deltas = %v, want three 0.5s frames", deltas)
	}
}

func TestDampedControllerConvergesThroughFrames(t *testing.T) {
	ctrl := camera.NewOrbitController(camera.WithDamping(true), camera.WithDampingFactor(0.1))
	cam := camera.NewCamera(camera.WithDrive(camera.UserControlled(ctrl)))
	s := session.NewSession(session.WithCamera(cam))
	m := host.NewManual(s)
	e := NewEngine(WithSession(s), WithFrameRequester(m))
	_ = e.Start(context.Background())

	ctrl.SetTarget(common.Vec3{X: 1, Y: 0.5, Z: -1})
	m.Step(50)
	if d := ctrl.Target().DistanceTo(ctrl.GoalTarget()); d >= 1e-3 {
		t.Fatalf("target error after 50 frames = %v, want < 1e-3", d)
	}
	if cam.Target().DistanceTo(ctrl.Target()) > 1e-6 {
		t.Fatalf("camera target %v does not follow controller %v", cam.Target(), ctrl.Target())
	}
}

type panickingRenderer struct {
	renderer.Renderer
	calls int
}

func (p *panickingRenderer) Render(scene.Scene, camera.Camera) error {
	p.calls++
	if p.calls == 1 {
		panic("device lost")
	}
	return nil
}

func (p *panickingRenderer) Resize(int, int)       {}
func (p *panickingRenderer) SetPixelRatio(float64) {}

func TestFailedRenderIsLoggedAndLoopContinues(t *testing.T) {
	r, backend := renderer.NewHeadless()
	m := host.NewManual(nil)
	e := NewEngine(WithRenderer(r), WithFrameRequester(m))
	_ = e.Start(context.Background())

	backend.FailNextFrame(errors.New("surface outdated"))
	if ran := m.Step(3); ran != 3 {
		t.Fatalf("Step ran %d frames, want 3", ran)
	}
	if backend.Frames() != 2 || e.Profiler().RenderErrors() != 1 {
		t.Fatalf("backend frames = %d, render errors = %d; want 2, 1", backend.Frames(), e.Profiler().RenderErrors())
	}

	p := &panickingRenderer{}
	m2 := host.NewManual(nil)
	e2 := NewEngine(WithRenderer(p), WithFrameRequester(m2))
	_ = e2.Start(context.Background())
	if ran := m2.Step(2); ran != 2 || p.calls != 2 {
		t.Fatalf("after a panic Step ran %d, render calls = %d; want 2, 2", ran, p.calls)
	}
}
