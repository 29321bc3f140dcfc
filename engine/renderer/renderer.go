// Package renderer draws a scene from a camera through a RendererBackend. Geometries are
// flattened into line batches and uploaded on first use; a geometry's upload is freed when
// it is disposed or no longer attached to a mesh.
package renderer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-sketch/common"
	"github.com/Carmen-Shannon/oxy-sketch/engine/camera"
	"github.com/Carmen-Shannon/oxy-sketch/engine/geometry"
	"github.com/Carmen-Shannon/oxy-sketch/engine/scene"
)

// ErrReleased is returned by Render after Release.
var ErrReleased = errors.New("renderer: renderer released")

// Renderer is the rendering surface the frame loop draws into.
type Renderer interface {
	// Render draws one frame of the scene as seen by the camera. An inactive scene is skipped.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - cam: the camera to draw from
	//
	// Returns:
	//   - error: an error if the backend failed; the next frame is unaffected
	Render(s scene.Scene, cam camera.Camera) error

	// Resize sets the logical output size. The backend buffer becomes size × pixel ratio.
	//
	// Parameters:
	//   - width: logical width in pixels
	//   - height: logical height in pixels
	Resize(width, height int)

	// SetPixelRatio sets the device pixel ratio, clamped with common.ClampPixelRatio.
	//
	// Parameters:
	//   - ratio: the device pixel ratio
	SetPixelRatio(ratio float64)

	// Release frees every upload and the backend. Render fails afterwards.
	Release()

	// Size returns the logical output size.
	//
	// Returns:
	//   - int: width in logical pixels
	//   - int: height in logical pixels
	Size() (int, int)

	// BufferSize returns the backend buffer size in device pixels.
	//
	// Returns:
	//   - int: width in device pixels
	//   - int: height in device pixels
	BufferSize() (int, int)

	// PixelRatio returns the clamped device pixel ratio.
	PixelRatio() float64

	// LastFrame returns the state of the most recently completed frame.
	LastFrame() FrameInfo

	// Uploads returns the number of geometries currently uploaded to the backend.
	Uploads() int
}

type renderer struct {
	backend    RendererBackend
	width      int
	height     int
	pixelRatio float64

	uploaded  map[uint64]geometry.Geometry
	frames    uint64
	lastFrame FrameInfo
	released  bool

	pendingPresentMode *PresentMode
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer driving backend. The backend is resized to the initial size
// immediately.
//
// Parameters:
//   - backend: the backend to draw with (must not be nil)
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the new renderer
func NewRenderer(backend RendererBackend, options ...RendererBuilderOption) Renderer {
	if backend == nil {
		panic("renderer: NewRenderer requires a backend")
	}
	r := &renderer{
		backend:    backend,
		width:      800,
		height:     600,
		pixelRatio: 1,
		uploaded:   make(map[uint64]geometry.Geometry),
	}
	for _, option := range options {
		option(r)
	}
	if r.pendingPresentMode != nil {
		if p, ok := backend.(interface{ SetPresentMode(PresentMode) }); ok {
			p.SetPresentMode(*r.pendingPresentMode)
		}
	}
	r.resizeBackend()
	return r
}

func (r *renderer) Render(s scene.Scene, cam camera.Camera) error {
	if r.released {
		return ErrReleased
	}
	if s == nil || cam == nil {
		return fmt.Errorf("renderer: Render requires a scene and a camera")
	}
	if !s.Active() {
		return nil
	}

	meshes := s.Meshes()
	for _, m := range meshes {
		if err := r.ensureUploaded(m.Geometry()); err != nil {
			return err
		}
	}

	bw, bh := r.BufferSize()
	frame := FrameInfo{
		Index:          r.frames + 1,
		ViewProj:       cam.ViewProjectionMatrix(),
		CameraPosition: cam.Position(),
		Aspect:         cam.Aspect(),
		Background:     s.Background(),
		Width:          bw,
		Height:         bh,
	}
	if err := r.backend.BeginFrame(frame); err != nil {
		return fmt.Errorf("renderer: begin frame: %w", err)
	}
	for _, m := range meshes {
		if !m.Visible {
			continue
		}
		err := r.backend.Draw(DrawCall{
			GeometryID: m.Geometry().ID(),
			Model:      m.ModelMatrix(),
			Color:      meshColor(m),
		})
		if err != nil {
			// the pass is still open; close it so the backend can start the next frame
			_ = r.backend.EndFrame()
			return fmt.Errorf("renderer: draw mesh %d: %w", m.ID(), err)
		}
	}
	if err := r.backend.EndFrame(); err != nil {
		return fmt.Errorf("renderer: end frame: %w", err)
	}

	r.frames = frame.Index
	r.lastFrame = frame
	r.pruneDetached()
	return nil
}

// meshColor returns the material colour of m, or white when the material was cleared.
func meshColor(m *scene.Mesh) common.Color {
	if m.Material == nil {
		return common.Color{R: 1, G: 1, B: 1}
	}
	return m.Material.Color
}

// ensureUploaded flattens and uploads g the first time it is drawn.
func (r *renderer) ensureUploaded(g geometry.Geometry) error {
	if g == nil {
		return fmt.Errorf("renderer: mesh has no geometry")
	}
	if _, ok := r.uploaded[g.ID()]; ok {
		return nil
	}
	if g.Disposed() {
		return fmt.Errorf("renderer: geometry %d: %w", g.ID(), geometry.ErrGeometryDisposed)
	}
	if err := r.backend.Upload(g.ID(), NewLineBatch(g)); err != nil {
		return fmt.Errorf("renderer: upload geometry %d: %w", g.ID(), err)
	}
	r.uploaded[g.ID()] = g
	g.OnDispose(func(disposed geometry.Geometry) {
		r.free(disposed.ID())
	})
	return nil
}

// pruneDetached frees uploads whose geometry no mesh owns any more.
func (r *renderer) pruneDetached() {
	for id, g := range r.uploaded {
		if !g.Attached() {
			r.free(id)
		}
	}
}

func (r *renderer) free(id uint64) {
	if _, ok := r.uploaded[id]; !ok || r.released {
		return
	}
	delete(r.uploaded, id)
	r.backend.Free(id)
}

func (r *renderer) Resize(width, height int) {
	r.width = max(width, 1)
	r.height = max(height, 1)
	r.resizeBackend()
}

func (r *renderer) SetPixelRatio(ratio float64) {
	r.pixelRatio = common.ClampPixelRatio(ratio)
	r.resizeBackend()
}

func (r *renderer) resizeBackend() {
	if r.released {
		return
	}
	r.backend.Resize(r.BufferSize())
}

func (r *renderer) Release() {
	if r.released {
		return
	}
	for id := range r.uploaded {
		r.backend.Free(id)
	}
	r.uploaded = make(map[uint64]geometry.Geometry)
	r.backend.Release()
	r.released = true
}

func (r *renderer) Size() (int, int) {
	return r.width, r.height
}

func (r *renderer) BufferSize() (int, int) {
	return int(float64(r.width) * r.pixelRatio), int(float64(r.height) * r.pixelRatio)
}

func (r *renderer) PixelRatio() float64 {
	return r.pixelRatio
}

func (r *renderer) LastFrame() FrameInfo {
	return r.lastFrame
}

func (r *renderer) Uploads() int {
	return len(r.uploaded)
}
