package scene

import (
	"github.com/Carmen-Shannon/oxy-sketch/common"
)

// Scene is an ordered registry of meshes plus the background colour they are drawn over.
// Meshes are drawn in insertion order. Removing a mesh does not dispose its geometry.
// Scenes are owned by the frame loop thread and are not safe for concurrent use.
type Scene interface {
	// Name returns the scene's identifier.
	//
	// Returns:
	//   - string: the scene name
	Name() string

	// SetName sets the scene's identifier.
	//
	// Parameters:
	//   - name: the new name
	SetName(name string)

	// Active returns whether the scene is active for rendering.
	//
	// Returns:
	//   - bool: true if active
	Active() bool

	// SetActive sets whether the scene is active for rendering.
	//
	// Parameters:
	//   - active: true to activate
	SetActive(active bool)

	// Background returns the clear colour.
	//
	// Returns:
	//   - common.Color: the background colour
	Background() common.Color

	// SetBackground sets the clear colour.
	//
	// Parameters:
	//   - c: the background colour
	SetBackground(c common.Color)

	// Add registers a mesh, assigning it an ID if it has none.
	// Adding a mesh that is already registered returns its existing ID.
	//
	// Parameters:
	//   - m: the mesh to add (must not be nil)
	//
	// Returns:
	//   - uint64: the mesh ID
	Add(m *Mesh) uint64

	// Get returns a registered mesh.
	//
	// Parameters:
	//   - id: the mesh ID
	//
	// Returns:
	//   - *Mesh: the mesh, or nil if unknown
	Get(id uint64) *Mesh

	// Find returns the first mesh with the given name.
	//
	// Parameters:
	//   - name: the mesh name
	//
	// Returns:
	//   - *Mesh: the mesh, or nil if none matches
	Find(name string) *Mesh

	// Remove unregisters a mesh. Unknown IDs are ignored.
	//
	// Parameters:
	//   - id: the mesh ID
	Remove(id uint64)

	// Clear unregisters every mesh.
	Clear()

	// Count returns the number of registered meshes.
	//
	// Returns:
	//   - int: mesh count
	Count() int

	// Meshes returns the registered meshes in insertion order.
	//
	// Returns:
	//   - []*Mesh: a copy of the mesh list
	Meshes() []*Mesh
}

type scene struct {
	name       string
	active     bool
	background common.Color
	meshes     []*Mesh
	registry   map[uint64]*Mesh
	nextID     uint64
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates an active scene with a black background.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		name:     name,
		active:   true,
		registry: make(map[uint64]*Mesh),
		nextID:   1,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) SetName(name string) {
	s.name = name
}

func (s *scene) Active() bool {
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.active = active
}

func (s *scene) Background() common.Color {
	return s.background
}

func (s *scene) SetBackground(c common.Color) {
	s.background = c
}

func (s *scene) Add(m *Mesh) uint64 {
	if m == nil {
		panic("scene: cannot Add a nil Mesh")
	}
	if existing, ok := s.registry[m.id]; ok && existing == m {
		return m.id
	}
	if m.id == 0 || s.registry[m.id] != nil {
		m.id = s.nextID
	}
	s.nextID = max(s.nextID, m.id+1)
	s.registry[m.id] = m
	s.meshes = append(s.meshes, m)
	return m.id
}

func (s *scene) Get(id uint64) *Mesh {
	return s.registry[id]
}

func (s *scene) Find(name string) *Mesh {
	for _, m := range s.meshes {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func (s *scene) Remove(id uint64) {
	m, exists := s.registry[id]
	if !exists {
		return
	}
	delete(s.registry, id)
	for i, existing := range s.meshes {
		if existing == m {
			s.meshes = append(s.meshes[:i], s.meshes[i+1:]...)
			break
		}
	}
}

func (s *scene) Clear() {
	s.registry = make(map[uint64]*Mesh)
	s.meshes = nil
}

func (s *scene) Count() int {
	return len(s.meshes)
}

func (s *scene) Meshes() []*Mesh {
	return append([]*Mesh(nil), s.meshes...)
}
