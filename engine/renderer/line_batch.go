package renderer

import (
	"github.com/Carmen-Shannon/oxy-sketch/engine/geometry"
)

// LineBatchStride is the number of float32 values per LineBatch vertex: x, y, z, r, g, b.
const LineBatchStride = 6

// LineBatch is a geometry flattened into an interleaved line list ready for upload.
// Every pair of consecutive vertices is one line segment.
type LineBatch struct {
	// Vertices holds LineBatchStride floats per vertex.
	Vertices []float32

	// Lines is the number of segments.
	Lines int
}

// VertexCount returns the number of vertices in the batch.
func (b LineBatch) VertexCount() int {
	return len(b.Vertices) / LineBatchStride
}

// NewLineBatch flattens a geometry's unique edges into a line list. Vertex colours come from
// the geometry's color attribute when present and default to white.
//
// Parameters:
//   - g: the geometry to flatten
//
// Returns:
//   - LineBatch: the line list
func NewLineBatch(g geometry.Geometry) LineBatch {
	positions := g.Positions()
	colors, hasColor := g.Attribute(geometry.AttributeColor)
	if hasColor && (colors.ItemSize < 3 || colors.Count() < g.VertexCount()) {
		hasColor = false
	}

	edges := g.Edges()
	out := make([]float32, 0, len(edges)*2*LineBatchStride)
	appendVertex := func(i uint32) {
		p := int(i) * 3
		out = append(out, positions[p], positions[p+1], positions[p+2])
		if hasColor {
			c := int(i) * colors.ItemSize
			out = append(out, colors.Data[c], colors.Data[c+1], colors.Data[c+2])
			return
		}
		out = append(out, 1, 1, 1)
	}
	for _, e := range edges {
		appendVertex(e[0])
		appendVertex(e[1])
	}
	return LineBatch{Vertices: out, Lines: len(edges)}
}
