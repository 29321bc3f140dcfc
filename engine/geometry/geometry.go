// Package geometry holds CPU-side vertex data for meshes: box, random triangle and axes
// geometries, their ownership and disposal, and the Rebuilder that swaps a mesh's geometry
// when a debug parameter finishes changing.
package geometry

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	// ErrInvalidParameter is returned when a geometry parameter is out of range (e.g. zero segments).
	ErrInvalidParameter = errors.New("geometry: invalid parameter")

	// ErrGeometryOwned is returned when attaching a geometry that another mesh already owns.
	ErrGeometryOwned = errors.New("geometry: geometry already owned by a mesh")

	// ErrGeometryDisposed is returned when attaching or mutating a disposed geometry.
	ErrGeometryDisposed = errors.New("geometry: geometry is disposed")
)

// Standard attribute names.
const (
	AttributePosition = "position"
	AttributeNormal   = "normal"
	AttributeUV       = "uv"
	AttributeColor    = "color"
)

// Kind identifies how a geometry was produced.
type Kind int

const (
	KindBuffer Kind = iota
	KindBox
	KindAxes
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindAxes:
		return "axes"
	default:
		return "buffer"
	}
}

// Primitive is the topology the vertex data describes.
type Primitive int

const (
	// PrimitiveTriangles groups vertices (or indices) in threes.
	PrimitiveTriangles Primitive = iota

	// PrimitiveLines groups vertices in pairs.
	PrimitiveLines
)

// Attribute is a flat float32 array interpreted as Count() items of ItemSize components.
type Attribute struct {
	Data     []float32
	ItemSize int
}

// Count returns the number of items in the attribute.
func (a Attribute) Count() int {
	if a.ItemSize <= 0 {
		return 0
	}
	return len(a.Data) / a.ItemSize
}

var nextID atomic.Uint64

// Geometry is vertex data owned by at most one mesh.
// A geometry is attached to a mesh with Attach and returned with Detach. Dispose releases it
// for good: listeners registered with OnDispose run once so renderers can free their GPU copies.
type Geometry interface {
	// ID returns a process-unique identifier, stable for the geometry's lifetime.
	ID() uint64

	// Kind returns how the geometry was produced.
	Kind() Kind

	// Primitive returns the topology of the vertex data.
	Primitive() Primitive

	// Attribute returns a named attribute.
	//
	// Parameters:
	//   - name: attribute name, e.g. AttributePosition
	//
	// Returns:
	//   - Attribute: the attribute
	//   - bool: false if the attribute is not set
	Attribute(name string) (Attribute, bool)

	// SetAttribute sets or replaces a named attribute.
	//
	// Parameters:
	//   - name: attribute name
	//   - data: flat component data, length a multiple of itemSize
	//   - itemSize: components per item (3 for positions)
	//
	// Returns:
	//   - error: ErrInvalidParameter for a bad item size or length, ErrGeometryDisposed after Dispose
	SetAttribute(name string, data []float32, itemSize int) error

	// Positions returns the raw position attribute data, nil if unset.
	Positions() []float32

	// VertexCount returns the number of position items.
	VertexCount() int

	// Indices returns the index buffer, nil for non-indexed geometry.
	Indices() []uint32

	// Edges returns the wireframe line segments as vertex index pairs. Triangle edges shared
	// by two indexed triangles appear once.
	Edges() [][2]uint32

	// Attach marks the geometry as owned by a mesh.
	//
	// Returns:
	//   - error: ErrGeometryOwned if already attached, ErrGeometryDisposed after Dispose
	Attach() error

	// Detach clears the owned mark. Detaching an unattached geometry does nothing.
	Detach()

	// Attached reports whether a mesh owns the geometry.
	Attached() bool

	// Dispose releases the geometry and runs dispose listeners once. Later calls do nothing.
	Dispose()

	// Disposed reports whether Dispose has been called.
	Disposed() bool

	// OnDispose registers a listener run when the geometry is disposed. Registering on an
	// already disposed geometry runs fn immediately.
	//
	// Parameters:
	//   - fn: the listener
	OnDispose(fn func(Geometry))
}

type bufferGeometry struct {
	id         uint64
	kind       Kind
	primitive  Primitive
	attributes map[string]Attribute
	indices    []uint32
	edges      [][2]uint32

	attached  bool
	disposed  bool
	listeners []func(Geometry)
}

var _ Geometry = &bufferGeometry{}

// NewBufferGeometry creates an empty triangle geometry. Fill it with SetAttribute.
//
// Returns:
//   - Geometry: the new geometry
func NewBufferGeometry() Geometry {
	return newGeometry(KindBuffer, PrimitiveTriangles)
}

func newGeometry(kind Kind, primitive Primitive) *bufferGeometry {
	return &bufferGeometry{
		id:         nextID.Add(1),
		kind:       kind,
		primitive:  primitive,
		attributes: make(map[string]Attribute),
	}
}

func (g *bufferGeometry) ID() uint64 {
	return g.id
}

func (g *bufferGeometry) Kind() Kind {
	return g.kind
}

func (g *bufferGeometry) Primitive() Primitive {
	return g.primitive
}

func (g *bufferGeometry) Attribute(name string) (Attribute, bool) {
	a, ok := g.attributes[name]
	return a, ok
}

func (g *bufferGeometry) SetAttribute(name string, data []float32, itemSize int) error {
	if g.disposed {
		return ErrGeometryDisposed
	}
	if itemSize <= 0 || len(data)%itemSize != 0 {
		return fmt.Errorf("%w: attribute %q has %d components, not a multiple of item size %d",
			ErrInvalidParameter, name, len(data), itemSize)
	}
	g.attributes[name] = Attribute{Data: data, ItemSize: itemSize}
	if name == AttributePosition {
		g.edges = nil
	}
	return nil
}

func (g *bufferGeometry) Positions() []float32 {
	return g.attributes[AttributePosition].Data
}

func (g *bufferGeometry) VertexCount() int {
	return g.attributes[AttributePosition].Count()
}

func (g *bufferGeometry) Indices() []uint32 {
	return g.indices
}

func (g *bufferGeometry) Edges() [][2]uint32 {
	if g.edges == nil {
		g.edges = g.computeEdges()
	}
	return g.edges
}

// computeEdges derives wireframe segments from the index buffer or, when non-indexed,
// from consecutive vertices.
func (g *bufferGeometry) computeEdges() [][2]uint32 {
	n := uint32(g.VertexCount())
	if g.primitive == PrimitiveLines {
		edges := make([][2]uint32, 0, n/2)
		for i := uint32(0); i+1 < n; i += 2 {
			edges = append(edges, [2]uint32{i, i + 1})
		}
		return edges
	}

	if g.indices == nil {
		edges := make([][2]uint32, 0, n)
		for i := uint32(0); i+2 < n; i += 3 {
			edges = append(edges, [2]uint32{i, i + 1}, [2]uint32{i + 1, i + 2}, [2]uint32{i + 2, i})
		}
		return edges
	}

	seen := make(map[[2]uint32]struct{}, len(g.indices))
	edges := make([][2]uint32, 0, len(g.indices))
	for i := 0; i+2 < len(g.indices); i += 3 {
		tri := [3]uint32{g.indices[i], g.indices[i+1], g.indices[i+2]}
		for j := range 3 {
			a, b := tri[j], tri[(j+1)%3]
			key := [2]uint32{min(a, b), max(a, b)}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			edges = append(edges, [2]uint32{a, b})
		}
	}
	return edges
}

func (g *bufferGeometry) Attach() error {
	if g.disposed {
		return ErrGeometryDisposed
	}
	if g.attached {
		return ErrGeometryOwned
	}
	g.attached = true
	return nil
}

func (g *bufferGeometry) Detach() {
	g.attached = false
}

func (g *bufferGeometry) Attached() bool {
	return g.attached
}

func (g *bufferGeometry) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	g.attached = false
	listeners := g.listeners
	g.listeners = nil
	for _, fn := range listeners {
		fn(g)
	}
}

func (g *bufferGeometry) Disposed() bool {
	return g.disposed
}

func (g *bufferGeometry) OnDispose(fn func(Geometry)) {
	if fn == nil {
		return
	}
	if g.disposed {
		fn(g)
		return
	}
	g.listeners = append(g.listeners, fn)
}
