package renderer

import "fmt"

// HeadlessBackend is a RendererBackend with no output surface. It keeps uploaded batches in
// memory and records the draw calls of the last frame, for CLI hosts and tests.
type HeadlessBackend struct {
	batches  map[uint64]LineBatch
	width    int
	height   int
	frame    FrameInfo
	draws    []DrawCall
	inFrame  bool
	frames   int
	frees    int
	failNext error
	released bool
}

var _ RendererBackend = &HeadlessBackend{}

// NewHeadlessBackend creates an empty headless backend.
//
// Returns:
//   - *HeadlessBackend: the new backend
func NewHeadlessBackend() *HeadlessBackend {
	return &HeadlessBackend{batches: make(map[uint64]LineBatch)}
}

func (b *HeadlessBackend) Upload(id uint64, batch LineBatch) error {
	if b.released {
		return fmt.Errorf("headless backend released")
	}
	b.batches[id] = batch
	return nil
}

func (b *HeadlessBackend) Free(id uint64) {
	if _, ok := b.batches[id]; ok {
		delete(b.batches, id)
		b.frees++
	}
}

func (b *HeadlessBackend) BeginFrame(frame FrameInfo) error {
	if b.released {
		return fmt.Errorf("headless backend released")
	}
	if b.failNext != nil {
		err := b.failNext
		b.failNext = nil
		return err
	}
	b.inFrame = true
	b.frame = frame
	b.draws = b.draws[:0]
	return nil
}

func (b *HeadlessBackend) Draw(call DrawCall) error {
	if !b.inFrame {
		return fmt.Errorf("draw outside of a frame")
	}
	if _, ok := b.batches[call.GeometryID]; !ok {
		return fmt.Errorf("geometry %d not uploaded", call.GeometryID)
	}
	b.draws = append(b.draws, call)
	return nil
}

func (b *HeadlessBackend) EndFrame() error {
	if !b.inFrame {
		return fmt.Errorf("end frame without begin frame")
	}
	b.inFrame = false
	b.frames++
	return nil
}

func (b *HeadlessBackend) Resize(width, height int) {
	b.width, b.height = width, height
}

func (b *HeadlessBackend) Release() {
	b.batches = make(map[uint64]LineBatch)
	b.released = true
}

// FailNextFrame makes the next BeginFrame return err.
//
// Parameters:
//   - err: the error to return once
func (b *HeadlessBackend) FailNextFrame(err error) {
	b.failNext = err
}

// Frame returns the FrameInfo of the last frame begun.
func (b *HeadlessBackend) Frame() FrameInfo {
	return b.frame
}

// Draws returns the draw calls of the last frame.
func (b *HeadlessBackend) Draws() []DrawCall {
	return append([]DrawCall(nil), b.draws...)
}

// Batch returns the uploaded batch for a geometry ID.
//
// Parameters:
//   - id: the geometry ID
//
// Returns:
//   - LineBatch: the uploaded batch
//   - bool: false if nothing is uploaded under id
func (b *HeadlessBackend) Batch(id uint64) (LineBatch, bool) {
	batch, ok := b.batches[id]
	return batch, ok
}

// BufferSize returns the size passed to the last Resize.
func (b *HeadlessBackend) BufferSize() (int, int) {
	return b.width, b.height
}

// Frames returns the number of completed frames.
func (b *HeadlessBackend) Frames() int {
	return b.frames
}

// Frees returns the number of uploads freed.
func (b *HeadlessBackend) Frees() int {
	return b.frees
}

// Released reports whether Release was called.
func (b *HeadlessBackend) Released() bool {
	return b.released
}

// NewHeadless creates a Renderer backed by a new HeadlessBackend.
//
// Parameters:
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the new renderer
//   - *HeadlessBackend: its backend, for inspection
func NewHeadless(options ...RendererBuilderOption) (Renderer, *HeadlessBackend) {
	b := NewHeadlessBackend()
	return NewRenderer(b, options...), b
}
