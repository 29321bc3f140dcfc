package geometry

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// Builder constructs geometries. Box faces are generated concurrently on a reusable worker
// pool; every call still returns only after the geometry is complete, so callers on the
// frame loop thread never observe a partially built geometry.
type Builder interface {
	// Box builds a box centred on the origin, each face split into a grid of segments.
	//
	// Parameters:
	//   - width, height, depth: box size along X, Y and Z
	//   - widthSegments, heightSegments, depthSegments: grid subdivisions per axis (minimum 1)
	//
	// Returns:
	//   - Geometry: indexed triangles with position, normal and uv attributes
	//   - error: ErrInvalidParameter when a segment count is below 1 or a size is negative
	Box(width, height, depth float32, widthSegments, heightSegments, depthSegments int) (Geometry, error)

	// RandomTriangles builds count independent triangles with every coordinate drawn
	// uniformly from [-0.5, 0.5).
	//
	// Parameters:
	//   - count: number of triangles (minimum 1)
	//   - rng: random source; nil uses a source seeded from the current time
	//
	// Returns:
	//   - Geometry: non-indexed triangles with a position attribute of item size 3
	//   - error: ErrInvalidParameter when count is below 1
	RandomTriangles(count int, rng *rand.Rand) (Geometry, error)

	// Axes builds the X (red), Y (green) and Z (blue) axis lines from the origin.
	//
	// Parameters:
	//   - size: line length
	//
	// Returns:
	//   - Geometry: line segments with position and color attributes
	Axes(size float32) Geometry
}

type builderImpl struct {
	workers int
	pool    worker.DynamicWorkerPool
	taskID  int
}

var _ Builder = &builderImpl{}

// NewBuilder creates a geometry Builder.
//
// Parameters:
//   - options: functional options to configure the builder
//
// Returns:
//   - Builder: the new builder
func NewBuilder(options ...BuilderOption) Builder {
	b := &builderImpl{
		workers: defaultWorkers(),
	}
	for _, option := range options {
		option(b)
	}
	if b.workers > 1 {
		// six faces per box; the queue leaves room for several boxes in flight
		b.pool = worker.NewDynamicWorkerPool(b.workers, 64, 1*time.Second)
	}
	return b
}

// boxFace describes one face of a box as a plane spanned by axes u and v at offset w.
type boxFace struct {
	u, v, w      int
	udir, vdir   float32
	width        float32
	height       float32
	depth        float32
	gridX, gridY int
}

func (f boxFace) vertexCount() int {
	return (f.gridX + 1) * (f.gridY + 1)
}

func (f boxFace) indexCount() int {
	return f.gridX * f.gridY * 6
}

func (b *builderImpl) Box(width, height, depth float32, widthSegments, heightSegments, depthSegments int) (Geometry, error) {
	if widthSegments < 1 || heightSegments < 1 || depthSegments < 1 {
		return nil, fmt.Errorf("%w: box segments must be at least 1, got %d x %d x %d",
			ErrInvalidParameter, widthSegments, heightSegments, depthSegments)
	}
	if width < 0 || height < 0 || depth < 0 {
		return nil, fmt.Errorf("%w: box size must not be negative, got %v x %v x %v",
			ErrInvalidParameter, width, height, depth)
	}

	const x, y, z = 0, 1, 2
	faces := [6]boxFace{
		{u: z, v: y, w: x, udir: -1, vdir: -1, width: depth, height: height, depth: width, gridX: depthSegments, gridY: heightSegments},   // px
		{u: z, v: y, w: x, udir: 1, vdir: -1, width: depth, height: height, depth: -width, gridX: depthSegments, gridY: heightSegments},   // nx
		{u: x, v: z, w: y, udir: 1, vdir: 1, width: width, height: depth, depth: height, gridX: widthSegments, gridY: depthSegments},      // py
		{u: x, v: z, w: y, udir: 1, vdir: -1, width: width, height: depth, depth: -height, gridX: widthSegments, gridY: depthSegments},    // ny
		{u: x, v: y, w: z, udir: 1, vdir: -1, width: width, height: height, depth: depth, gridX: widthSegments, gridY: heightSegments},    // pz
		{u: x, v: y, w: z, udir: -1, vdir: -1, width: width, height: height, depth: -depth, gridX: widthSegments, gridY: heightSegments}, // nz
	}

	vertexTotal, indexTotal := 0, 0
	var vertexStart, indexStart [6]int
	for i, f := range faces {
		vertexStart[i] = vertexTotal
		indexStart[i] = indexTotal
		vertexTotal += f.vertexCount()
		indexTotal += f.indexCount()
	}

	positions := make([]float32, vertexTotal*3)
	normals := make([]float32, vertexTotal*3)
	uvs := make([]float32, vertexTotal*2)
	indices := make([]uint32, indexTotal)

	// Each face writes a disjoint range of the shared buffers.
	build := func(i int) {
		f := faces[i]
		vs, is := vertexStart[i], indexStart[i]
		buildPlane(f, uint32(vs),
			positions[vs*3:(vs+f.vertexCount())*3],
			normals[vs*3:(vs+f.vertexCount())*3],
			uvs[vs*2:(vs+f.vertexCount())*2],
			indices[is:is+f.indexCount()])
	}

	if b.pool == nil {
		for i := range faces {
			build(i)
		}
	} else {
		var wg sync.WaitGroup
		for i := range faces {
			wg.Add(1)
			face := i
			id := b.taskID
			b.taskID++
			b.pool.SubmitTask(worker.Task{
				ID: id,
				Do: func() (any, error) {
					defer wg.Done()
					build(face)
					return nil, nil
				},
			})
		}
		wg.Wait()
	}

	g := newGeometry(KindBox, PrimitiveTriangles)
	g.attributes[AttributePosition] = Attribute{Data: positions, ItemSize: 3}
	g.attributes[AttributeNormal] = Attribute{Data: normals, ItemSize: 3}
	g.attributes[AttributeUV] = Attribute{Data: uvs, ItemSize: 2}
	g.indices = indices
	return g, nil
}

// buildPlane fills one box face: a (gridX+1) x (gridY+1) vertex grid and two triangles per cell.
// Index values are offset by start, the face's first vertex in the shared buffer.
func buildPlane(f boxFace, start uint32, positions, normals, uvs []float32, indices []uint32) {
	segmentWidth := f.width / float32(f.gridX)
	segmentHeight := f.height / float32(f.gridY)
	widthHalf := f.width / 2
	heightHalf := f.height / 2
	depthHalf := f.depth / 2
	gridX1 := f.gridX + 1
	gridY1 := f.gridY + 1

	normal := float32(1)
	if f.depth < 0 {
		normal = -1
	}

	n := 0
	for iy := range gridY1 {
		py := float32(iy)*segmentHeight - heightHalf
		for ix := range gridX1 {
			px := float32(ix)*segmentWidth - widthHalf

			var vec, nrm [3]float32
			vec[f.u] = px * f.udir
			vec[f.v] = py * f.vdir
			vec[f.w] = depthHalf
			nrm[f.w] = normal
			copy(positions[n*3:], vec[:])
			copy(normals[n*3:], nrm[:])
			uvs[n*2] = float32(ix) / float32(f.gridX)
			uvs[n*2+1] = 1 - float32(iy)/float32(f.gridY)
			n++
		}
	}

	k := 0
	for iy := range f.gridY {
		for ix := range f.gridX {
			a := start + uint32(ix+gridX1*iy)
			b := start + uint32(ix+gridX1*(iy+1))
			c := start + uint32(ix+1+gridX1*(iy+1))
			d := start + uint32(ix+1+gridX1*iy)
			copy(indices[k:], []uint32{a, b, d, b, c, d})
			k += 6
		}
	}
}

func (b *builderImpl) RandomTriangles(count int, rng *rand.Rand) (Geometry, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: triangle count must be at least 1, got %d", ErrInvalidParameter, count)
	}
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	positions := make([]float32, count*3*3)
	for i := range positions {
		positions[i] = rng.Float32() - 0.5
	}
	g := newGeometry(KindBuffer, PrimitiveTriangles)
	g.attributes[AttributePosition] = Attribute{Data: positions, ItemSize: 3}
	return g, nil
}

func (b *builderImpl) Axes(size float32) Geometry {
	g := newGeometry(KindAxes, PrimitiveLines)
	g.attributes[AttributePosition] = Attribute{Data: []float32{
		0, 0, 0, size, 0, 0,
		0, 0, 0, 0, size, 0,
		0, 0, 0, 0, 0, size,
	}, ItemSize: 3}
	g.attributes[AttributeColor] = Attribute{Data: []float32{
		1, 0, 0, 1, 0.6, 0,
		0, 1, 0, 0.6, 1, 0,
		0, 0, 1, 0, 0.6, 1,
	}, ItemSize: 3}
	return g
}
