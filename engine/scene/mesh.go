package scene

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-sketch/common"
	"github.com/Carmen-Shannon/oxy-sketch/engine/geometry"
	"github.com/go-gl/mathgl/mgl32"
)

// Material is the flat-colour surface description of a mesh.
// Fields are exported so debug controllers can bind to them directly.
type Material struct {
	Color     common.Color
	Wireframe bool
}

// NewMaterial creates a white, filled material.
//
// Parameters:
//   - options: functional options to configure the material
//
// Returns:
//   - *Material: the new material
func NewMaterial(options ...MaterialBuilderOption) *Material {
	m := &Material{Color: common.Color{R: 1, G: 1, B: 1}}
	for _, option := range options {
		option(m)
	}
	return m
}

// Mesh pairs a geometry with a material and a transform.
// Position, Rotation (Euler angles, YXZ order) and Scale are plain fields so they can be bound
// to debug controllers and animated by tweens; ModelMatrix reads them on every call.
type Mesh struct {
	Name     string
	Position common.Vec3
	Rotation common.Vec3
	Scale    common.Vec3
	Visible  bool
	Material *Material

	id       uint64
	geometry geometry.Geometry
}

var _ geometry.Holder = &Mesh{}

// NewMesh creates a visible mesh with unit scale that owns g.
//
// Parameters:
//   - g: the geometry; must not be owned by another mesh or disposed
//   - mat: the material; nil uses NewMaterial()
//   - options: functional options to configure the transform
//
// Returns:
//   - *Mesh: the new mesh
//   - error: geometry.ErrGeometryOwned or geometry.ErrGeometryDisposed
func NewMesh(g geometry.Geometry, mat *Material, options ...MeshBuilderOption) (*Mesh, error) {
	if g == nil {
		return nil, fmt.Errorf("scene: mesh requires a geometry")
	}
	if err := g.Attach(); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if mat == nil {
		mat = NewMaterial()
	}
	m := &Mesh{
		Scale:    common.Vec3{X: 1, Y: 1, Z: 1},
		Visible:  true,
		Material: mat,
		geometry: g,
	}
	for _, option := range options {
		option(m)
	}
	return m, nil
}

// ID returns the identifier assigned when the mesh was added to a scene, 0 before that.
func (m *Mesh) ID() uint64 {
	return m.id
}

// Geometry returns the owned geometry.
func (m *Mesh) Geometry() geometry.Geometry {
	return m.geometry
}

// SetGeometry attaches g and detaches the previous geometry. The previous geometry is not
// disposed; the caller decides its fate.
//
// Parameters:
//   - g: the replacement geometry
//
// Returns:
//   - error: geometry.ErrGeometryOwned or geometry.ErrGeometryDisposed
func (m *Mesh) SetGeometry(g geometry.Geometry) error {
	if g == nil {
		return fmt.Errorf("scene: nil geometry")
	}
	if g == m.geometry {
		return nil
	}
	if err := g.Attach(); err != nil {
		return err
	}
	if m.geometry != nil {
		m.geometry.Detach()
	}
	m.geometry = g
	return nil
}

// ModelMatrix builds the local-to-world matrix from Position, Rotation and Scale.
func (m *Mesh) ModelMatrix() mgl32.Mat4 {
	return common.BuildModelMatrix(m.Position, m.Rotation, m.Scale)
}

// LookAt rotates the mesh so its local +Z axis points at target. Rotation.Z is reset to 0.
// A target at the mesh position leaves the rotation unchanged.
//
// Parameters:
//   - target: world-space point to face
func (m *Mesh) LookAt(target common.Vec3) {
	dir := target.Sub(m.Position)
	if dir.Length() == 0 {
		return
	}
	dir.Normalize()
	m.Rotation = common.Vec3{
		X: float32(math.Asin(float64(common.Clamp(-dir.Y, -1, 1)))),
		Y: float32(math.Atan2(float64(dir.X), float64(dir.Z))),
	}
}
