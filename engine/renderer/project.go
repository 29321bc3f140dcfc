package renderer

import (
	"github.com/Carmen-Shannon/oxy-sketch/common"
	"github.com/go-gl/mathgl/mgl32"
)

// nearW is the smallest clip-space w kept; segments are cut where they cross it.
const nearW = 1e-4

// Segment is a projected line in screen pixels, origin top-left, y down.
type Segment struct {
	X0, Y0, X1, Y1 float32
	Color          common.Color
}

// ProjectBatch projects a batch drawn with call into 2D segments on a width×height target.
// Segments wholly behind the camera are dropped and those crossing the camera plane are cut.
// Vertex colours are multiplied by the draw colour.
//
// Parameters:
//   - frame: the frame's camera matrices
//   - call: the draw call
//   - batch: the uploaded line list
//   - width, height: the target size in pixels
//   - dst: segments are appended here
//
// Returns:
//   - []Segment: dst with the projected segments appended
func ProjectBatch(frame FrameInfo, call DrawCall, batch LineBatch, width, height int, dst []Segment) []Segment {
	mvp := frame.ViewProj.Mul4(call.Model)
	w, h := float32(width), float32(height)
	toScreen := func(c mgl32.Vec4) (float32, float32) {
		return (c.X()/c.W() + 1) * 0.5 * w, (1 - c.Y()/c.W()) * 0.5 * h
	}

	v := batch.Vertices
	for i := 0; i+2*LineBatchStride <= len(v); i += 2 * LineBatchStride {
		a := mvp.Mul4x1(mgl32.Vec4{v[i], v[i+1], v[i+2], 1})
		j := i + LineBatchStride
		b := mvp.Mul4x1(mgl32.Vec4{v[j], v[j+1], v[j+2], 1})
		if a.W() < nearW && b.W() < nearW {
			continue
		}
		if a.W() < nearW {
			a = cut(b, a)
		} else if b.W() < nearW {
			b = cut(a, b)
		}
		x0, y0 := toScreen(a)
		x1, y1 := toScreen(b)
		dst = append(dst, Segment{
			X0: x0, Y0: y0, X1: x1, Y1: y1,
			Color: common.Color{
				R: v[i+3] * call.Color.R,
				G: v[i+4] * call.Color.G,
				B: v[i+5] * call.Color.B,
			},
		})
	}
	return dst
}

// cut moves out toward in until its w reaches nearW.
func cut(in, out mgl32.Vec4) mgl32.Vec4 {
	t := (in.W() - nearW) / (in.W() - out.W())
	return in.Add(out.Sub(in).Mul(t))
}
