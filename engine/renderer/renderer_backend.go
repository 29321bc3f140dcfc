package renderer

import (
	"github.com/Carmen-Shannon/oxy-sketch/common"
	"github.com/go-gl/mathgl/mgl32"
)

// PresentMode controls how rendered frames are presented to the display surface.
// Backends without a swapchain ignore it.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// Only specific power-of-two values are valid for GPU hardware. WebGPU guarantees support for
// 1 (off) and 4; higher values (8, 16) are adapter-dependent and may not be available.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default for GPU backends.
	MSAA4x MSAASampleCount = 4
)

// FrameInfo is the per-frame state handed to a backend before any mesh is drawn.
type FrameInfo struct {
	// Index counts rendered frames starting at 1.
	Index uint64

	// ViewProj is the camera's combined view-projection matrix.
	ViewProj mgl32.Mat4

	// CameraPosition is the camera position in world space.
	CameraPosition common.Vec3

	// Aspect is the camera aspect ratio used for this frame.
	Aspect float32

	// Background is the clear colour.
	Background common.Color

	// Width and Height are the output buffer size in device pixels.
	Width, Height int
}

// DrawCall is one mesh draw within a frame.
type DrawCall struct {
	// GeometryID identifies the uploaded LineBatch to draw.
	GeometryID uint64

	// Model is the mesh's model matrix.
	Model mgl32.Mat4

	// Color is the material colour multiplied with the batch's vertex colours.
	Color common.Color
}

// RendererBackend is the drawing surface a Renderer drives. The Renderer owns the geometry
// cache and scene traversal; a backend only holds uploaded line batches and draws them.
//
// Call order per frame: BeginFrame, zero or more Draw, EndFrame. Upload and Free happen
// outside of BeginFrame/EndFrame.
type RendererBackend interface {
	// Upload stores a line batch under a geometry ID, replacing any previous upload.
	//
	// Parameters:
	//   - id: the geometry ID
	//   - batch: the line list to store
	//
	// Returns:
	//   - error: an error if backend resources could not be created
	Upload(id uint64, batch LineBatch) error

	// Free releases the batch stored under id. Unknown IDs are ignored.
	//
	// Parameters:
	//   - id: the geometry ID
	Free(id uint64)

	// BeginFrame starts a frame and clears the output buffer.
	//
	// Parameters:
	//   - frame: the per-frame camera and buffer state
	//
	// Returns:
	//   - error: an error if the output buffer could not be acquired
	BeginFrame(frame FrameInfo) error

	// Draw encodes one mesh draw.
	//
	// Parameters:
	//   - call: the geometry, transform and colour to draw
	//
	// Returns:
	//   - error: an error if the geometry was never uploaded
	Draw(call DrawCall) error

	// EndFrame submits and presents the frame.
	//
	// Returns:
	//   - error: an error if submission failed
	EndFrame() error

	// Resize reallocates the output buffer.
	//
	// Parameters:
	//   - width: buffer width in device pixels
	//   - height: buffer height in device pixels
	Resize(width, height int)

	// Release frees every backend resource. The backend is unusable afterwards.
	Release()
}
