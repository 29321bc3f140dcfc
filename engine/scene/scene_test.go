package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-sketch/common"
	"github.com/Carmen-Shannon/oxy-sketch/engine/geometry"
	"github.com/go-gl/mathgl/mgl32"
)

func box(t *testing.T) geometry.Geometry {
	t.Helper()
	g, err := geometry.NewBuilder(geometry.WithWorkers(1)).Box(1, 1, 1, 1, 1, 1)
	if err != nil {
		t.Fatalf("Box err = %v", err)
	}
	return g
}

func TestMeshOwnsGeometryExclusively(t *testing.T) {
	g := box(t)
	a, err := NewMesh(g, nil)
	if err != nil {
		t.Fatalf("NewMesh err = %v", err)
	}
	if _, err := NewMesh(g, nil); !errors.Is(err, geometry.ErrGeometryOwned) {
		t.Fatalf("second NewMesh err = %v, want ErrGeometryOwned", err)
	}

	next := box(t)
	if err := a.SetGeometry(next); err != nil {
		t.Fatalf("SetGeometry err = %v", err)
	}
	if g.Attached() || !next.Attached() {
		t.Fatalf("old attached = %v, new attached = %v", g.Attached(), next.Attached())
	}
	next.Dispose()
	if err := a.SetGeometry(next); err != nil {
		t.Fatalf("SetGeometry with the current geometry err = %v", err)
	}
	disposed := box(t)
	disposed.Dispose()
	if err := a.SetGeometry(disposed); !errors.Is(err, geometry.ErrGeometryDisposed) {
		t.Fatalf("SetGeometry(disposed) err = %v, want ErrGeometryDisposed", err)
	}
}

func TestMeshTransform(t *testing.T) {
	m, _ := NewMesh(box(t), NewMaterial(WithColor(0xff0000)),
		WithPosition(0.7, -0.6, 1), WithScale(2, 0.5, 0.5))
	if m.Material.Color.Hex() != 0xff0000 || !m.Visible {
		t.Fatalf("Material = %+v, Visible = %v", m.Material, m.Visible)
	}
	p, _ := common.TransformPoint(m.ModelMatrix(), mgl32.Vec3{0, 0, 0})
	if p != (mgl32.Vec3{0.7, -0.6, 1}) {
		t.Fatalf("origin maps to %v, want mesh position", p)
	}
}

func TestMeshLookAt(t *testing.T) {
	m, _ := NewMesh(box(t), nil)
	target := common.Vec3{X: 1, Y: 1, Z: 1}
	m.LookAt(target)

	z := m.ModelMatrix().Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3()
	want := target.Vec().Normalize()
	if !z.ApproxEqualThreshold(want, 1e-5) {
		t.Fatalf("local +Z = %v, want %v", z, want)
	}
	before := m.Rotation
	m.LookAt(m.Position)
	if m.Rotation != before {
		t.Fatalf("LookAt own position changed rotation")
	}
	if math.IsNaN(float64(m.Rotation.X)) {
		t.Fatalf("rotation is NaN")
	}
}

func TestSceneRegistry(t *testing.T) {
	a, _ := NewMesh(box(t), nil, WithName("a"))
	b, _ := NewMesh(box(t), nil, WithName("b"))
	s := NewScene("main", WithMeshes(a), WithBackground(0x101010))

	idB := s.Add(b)
	if s.Add(b) != idB || s.Count() != 2 {
		t.Fatalf("re-adding changed the registry: Count = %d", s.Count())
	}
	if s.Get(idB) != b || s.Find("a") != a {
		t.Fatalf("Get/Find returned the wrong mesh")
	}
	s.Remove(a.ID())
	if s.Count() != 1 || s.Meshes()[0] != b {
		t.Fatalf("after Remove Meshes = %v", s.Meshes())
	}
	if a.Geometry().Disposed() {
		t.Fatalf("Remove disposed the mesh geometry")
	}
	if s.Background().Hex() != 0x101010 || !s.Active() {
		t.Fatalf("Background = %#06x, Active = %v", s.Background().Hex(), s.Active())
	}
	s.Clear()
	if s.Count() != 0 {
		t.Fatalf("Count after Clear = %d", s.Count())
	}
}
