package renderer

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-sketch/common"
	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func TestProjectBatchMapsClipSpaceToPixels(t *testing.T) {
	frame := FrameInfo{ViewProj: mgl32.Ident4()}
	call := DrawCall{Model: mgl32.Ident4(), Color: common.Color{R: 1, G: 0.5, B: 1}}
	batch := LineBatch{Vertices: []float32{
		-1, 1, 0, 1, 1, 0,
		1, -1, 0, 1, 1, 0,
	}, Lines: 1}

	got := ProjectBatch(frame, call, batch, 200, 100, nil)
	if len(got) != 1 {
		t.Fatalf("segments = %d, want 1", len(got))
	}
	s := got[0]
	if !near(s.X0, 0) || !near(s.Y0, 0) || !near(s.X1, 200) || !near(s.Y1, 100) {
		t.Fatalf("segment = %+v, want (0,0)-(200,100)", s)
	}
	if s.Color != (common.Color{R: 1, G: 0.5, B: 0}) {
		t.Fatalf("colour = %+v, want vertex colour times draw colour", s.Color)
	}
}

func TestProjectBatchCutsAtCameraPlane(t *testing.T) {
	frame := FrameInfo{ViewProj: mgl32.Perspective(mgl32.DegToRad(90), 1, 0.1, 100)}
	call := DrawCall{Model: mgl32.Ident4(), Color: common.Color{R: 1, G: 1, B: 1}}
	batch := LineBatch{Vertices: []float32{
		// crosses the camera plane
		0, 0.5, -2, 1, 1, 1,
		0, 0.5, 2, 1, 1, 1,
		// wholly behind the camera
		0, 0, 1, 1, 1, 1,
		1, 1, 3, 1, 1, 1,
	}, Lines: 2}

	got := ProjectBatch(frame, call, batch, 100, 100, nil)
	if len(got) != 1 {
		t.Fatalf("segments = %d, want 1", len(got))
	}
	if !near(got[0].X0, 50) || !near(got[0].Y0, 37.5) {
		t.Fatalf("front endpoint = (%v, %v), want (50, 37.5)", got[0].X0, got[0].Y0)
	}
}
