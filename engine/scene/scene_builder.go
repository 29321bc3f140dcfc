package scene

import "github.com/Carmen-Shannon/oxy-sketch/common"

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithMeshes adds initial meshes to the scene.
// Meshes without IDs will be assigned new IDs.
//
// Parameters:
//   - meshes: the meshes to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithMeshes(meshes ...*Mesh) SceneBuilderOption {
	return func(s *scene) {
		for _, m := range meshes {
			s.Add(m)
		}
	}
}

// WithBackground sets the clear colour from a 0xRRGGBB value.
//
// Parameters:
//   - hex: packed background colour
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackground(hex uint32) SceneBuilderOption {
	return func(s *scene) {
		s.background = common.ColorFromHex(hex)
	}
}
