package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-sketch/engine/camera"
	"github.com/Carmen-Shannon/oxy-sketch/engine/geometry"
	"github.com/Carmen-Shannon/oxy-sketch/engine/scene"
)

func newScene(t *testing.T) (scene.Scene, *scene.Mesh) {
	t.Helper()
	g, err := geometry.NewBuilder(geometry.WithWorkers(1)).Box(1, 1, 1, 1, 1, 1)
	if err != nil {
		t.Fatalf("Box err = %v", err)
	}
	m, err := scene.NewMesh(g, scene.NewMaterial(scene.WithColor(0xff0000)))
	if err != nil {
		t.Fatalf("NewMesh err = %v", err)
	}
	return scene.NewScene("test", scene.WithMeshes(m)), m
}

func TestRenderUploadsOnce(t *testing.T) {
	s, m := newScene(t)
	r, b := NewHeadless(WithSize(800, 600))
	cam := camera.NewCamera(camera.WithAspect(800.0 / 600.0))

	for range 3 {
		if err := r.Render(s, cam); err != nil {
			t.Fatalf("Render err = %v", err)
		}
	}
	if r.Uploads() != 1 || b.Frames() != 3 {
		t.Fatalf("Uploads = %d, Frames = %d; want 1, 3", r.Uploads(), b.Frames())
	}
	batch, ok := b.Batch(m.Geometry().ID())
	if !ok || batch.Lines != 30 || batch.VertexCount() != 60 {
		t.Fatalf("batch = %d lines, %d vertices; want 30, 60", batch.Lines, batch.VertexCount())
	}
	draws := b.Draws()
	if len(draws) != 1 || draws[0].Color.Hex() != 0xff0000 {
		t.Fatalf("Draws = %+v", draws)
	}
	if f := r.LastFrame(); f.Index != 3 || f.Aspect != cam.Aspect() {
		t.Fatalf("LastFrame = %+v", f)
	}

	m.Visible = false
	if err := r.Render(s, cam); err != nil {
		t.Fatalf("Render err = %v", err)
	}
	if len(b.Draws()) != 0 {
		t.Fatalf("hidden mesh drawn")
	}
}

func TestDisposedGeometryIsFreed(t *testing.T) {
	s, m := newScene(t)
	r, b := NewHeadless()
	cam := camera.NewCamera()
	if err := r.Render(s, cam); err != nil {
		t.Fatalf("Render err = %v", err)
	}

	old := m.Geometry()
	next, _ := geometry.NewBuilder(geometry.WithWorkers(1)).Box(1, 1, 1, 2, 2, 2)
	if err := m.SetGeometry(next); err != nil {
		t.Fatalf("SetGeometry err = %v", err)
	}
	old.Dispose()
	if b.Frees() != 1 || r.Uploads() != 0 {
		t.Fatalf("after dispose Frees = %d, Uploads = %d; want 1, 0", b.Frees(), r.Uploads())
	}
	if err := r.Render(s, cam); err != nil {
		t.Fatalf("Render err = %v", err)
	}
	if _, ok := b.Batch(next.ID()); !ok || r.Uploads() != 1 {
		t.Fatalf("replacement geometry not uploaded")
	}
}

func TestDetachedGeometryIsPruned(t *testing.T) {
	s, m := newScene(t)
	r, b := NewHeadless()
	cam := camera.NewCamera()
	_ = r.Render(s, cam)

	old := m.Geometry()
	next, _ := geometry.NewBuilder(geometry.WithWorkers(1)).Box(1, 1, 1, 1, 1, 1)
	_ = m.SetGeometry(next)
	if err := r.Render(s, cam); err != nil {
		t.Fatalf("Render err = %v", err)
	}
	if _, ok := b.Batch(old.ID()); ok || r.Uploads() != 1 {
		t.Fatalf("detached geometry still uploaded, Uploads = %d", r.Uploads())
	}
	if old.Disposed() {
		t.Fatalf("renderer disposed a geometry it does not own")
	}
}

func TestResizeAndPixelRatio(t *testing.T) {
	r, b := NewHeadless(WithSize(100, 50))
	if w, h := b.BufferSize(); w != 100 || h != 50 {
		t.Fatalf("initial buffer = %dx%d, want 100x50", w, h)
	}
	r.SetPixelRatio(3)
	if r.PixelRatio() != 2 {
		t.Fatalf("PixelRatio = %v, want 2", r.PixelRatio())
	}
	r.Resize(1024, 768)
	if w, h := b.BufferSize(); w != 2048 || h != 1536 {
		t.Fatalf("buffer = %dx%d, want 2048x1536", w, h)
	}
	if w, h := r.Size(); w != 1024 || h != 768 {
		t.Fatalf("Size = %dx%d, want 1024x768", w, h)
	}
}

func TestFailedFrameDoesNotStopNextFrame(t *testing.T) {
	s, _ := newScene(t)
	r, b := NewHeadless()
	cam := camera.NewCamera()
	boom := errors.New("surface lost")
	b.FailNextFrame(boom)
	if err := r.Render(s, cam); !errors.Is(err, boom) {
		t.Fatalf("Render err = %v, want %v", err, boom)
	}
	if err := r.Render(s, cam); err != nil {
		t.Fatalf("next Render err = %v", err)
	}
	if r.LastFrame().Index != 1 {
		t.Fatalf("frame index = %d, want 1", r.LastFrame().Index)
	}
}

func TestInactiveSceneAndRelease(t *testing.T) {
	s, _ := newScene(t)
	r, b := NewHeadless()
	cam := camera.NewCamera()
	s.SetActive(false)
	if err := r.Render(s, cam); err != nil || b.Frames() != 0 {
		t.Fatalf("inactive scene rendered: err = %v, Frames = %d", err, b.Frames())
	}
	s.SetActive(true)
	_ = r.Render(s, cam)
	r.Release()
	if !b.Released() || r.Uploads() != 0 {
		t.Fatalf("Release left Released = %v, Uploads = %d", b.Released(), r.Uploads())
	}
	if err := r.Render(s, cam); !errors.Is(err, ErrReleased) {
		t.Fatalf("Render after Release err = %v, want ErrReleased", err)
	}
}

func TestLineBatchUsesVertexColors(t *testing.T) {
	axes := geometry.NewBuilder(geometry.WithWorkers(1)).Axes(2)
	batch := NewLineBatch(axes)
	if batch.Lines != 3 {
		t.Fatalf("Lines = %d, want 3", batch.Lines)
	}
	// second vertex of the x axis: position (2,0,0), colour (1,0.6,0)
	v := batch.Vertices[LineBatchStride : 2*LineBatchStride]
	want := []float32{2, 0, 0, 1, 0.6, 0}
	for i := range want {
		if v[i] != want[i] {
			t.Fatalf("vertex = %v, want %v", v, want)
		}
	}
}

func TestNilMaterialDrawsWhite(t *testing.T) {
	s, m := newScene(t)
	m.Material = nil
	r, b := NewHeadless(WithSize(800, 600))
	if err := r.Render(s, camera.NewCamera()); err != nil {
		t.Fatalf("Render err = %v", err)
	}
	draws := b.Draws()
	if len(draws) != 1 || draws[0].Color.Hex() != 0xffffff {
		t.Fatalf("Draws = %+v, want one white draw", draws)
	}
}
