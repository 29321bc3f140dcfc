package scene

import "github.com/Carmen-Shannon/oxy-sketch/common"

// MeshBuilderOption is a functional option for configuring a Mesh.
type MeshBuilderOption func(m *Mesh)

// MaterialBuilderOption is a functional option for configuring a Material.
type MaterialBuilderOption func(m *Material)

// WithName sets the mesh name.
//
// Parameters:
//   - name: the mesh name
//
// Returns:
//   - MeshBuilderOption: option function to apply
func WithName(name string) MeshBuilderOption {
	return func(m *Mesh) {
		m.Name = name
	}
}

// WithPosition sets the initial position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - MeshBuilderOption: option function to apply
func WithPosition(x, y, z float32) MeshBuilderOption {
	return func(m *Mesh) {
		m.Position.Set(x, y, z)
	}
}

// WithScale sets the initial scale.
//
// Parameters:
//   - sx, sy, sz: scale components
//
// Returns:
//   - MeshBuilderOption: option function to apply
func WithScale(sx, sy, sz float32) MeshBuilderOption {
	return func(m *Mesh) {
		m.Scale.Set(sx, sy, sz)
	}
}

// WithRotation sets the initial Euler rotation in radians (YXZ order).
//
// Parameters:
//   - rx, ry, rz: rotation angles
//
// Returns:
//   - MeshBuilderOption: option function to apply
func WithRotation(rx, ry, rz float32) MeshBuilderOption {
	return func(m *Mesh) {
		m.Rotation.Set(rx, ry, rz)
	}
}

// WithVisible sets whether the mesh is drawn.
//
// Parameters:
//   - visible: true to draw
//
// Returns:
//   - MeshBuilderOption: option function to apply
func WithVisible(visible bool) MeshBuilderOption {
	return func(m *Mesh) {
		m.Visible = visible
	}
}

// WithColor sets the material colour from a 0xRRGGBB value.
//
// Parameters:
//   - hex: packed colour
//
// Returns:
//   - MaterialBuilderOption: option function to apply
func WithColor(hex uint32) MaterialBuilderOption {
	return func(m *Material) {
		m.Color = common.ColorFromHex(hex)
	}
}

// WithWireframe draws the material as edges only.
//
// Parameters:
//   - wireframe: true for wireframe
//
// Returns:
//   - MaterialBuilderOption: option function to apply
func WithWireframe(wireframe bool) MaterialBuilderOption {
	return func(m *Material) {
		m.Wireframe = wireframe
	}
}
