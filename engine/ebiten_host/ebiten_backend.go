package ebiten_host

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-sketch/engine/renderer"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ebitenBackend is a RendererBackend that projects line batches on the CPU and strokes them
// onto the ebiten screen. A frame is recorded between BeginFrame and EndFrame, then drawn by
// the next Game.Draw.
type ebitenBackend struct {
	batches map[uint64]renderer.LineBatch
	width   int
	height  int

	frame   renderer.FrameInfo
	draws   []renderer.DrawCall
	inFrame bool

	// ready is the last completed frame, replayed by present.
	ready      renderer.FrameInfo
	readyDraws []renderer.DrawCall
	hasFrame   bool

	segments    []renderer.Segment
	strokeWidth float32
	antialias   bool
}

var _ renderer.RendererBackend = &ebitenBackend{}

func newEbitenBackend(strokeWidth float32, antialias bool) *ebitenBackend {
	return &ebitenBackend{
		batches:     make(map[uint64]renderer.LineBatch),
		width:       1,
		height:      1,
		strokeWidth: strokeWidth,
		antialias:   antialias,
	}
}

func (b *ebitenBackend) Upload(id uint64, batch renderer.LineBatch) error {
	b.batches[id] = batch
	return nil
}

func (b *ebitenBackend) Free(id uint64) {
	delete(b.batches, id)
}

func (b *ebitenBackend) BeginFrame(frame renderer.FrameInfo) error {
	b.frame = frame
	b.draws = b.draws[:0]
	b.inFrame = true
	return nil
}

func (b *ebitenBackend) Draw(call renderer.DrawCall) error {
	if !b.inFrame {
		return fmt.Errorf("ebiten backend: draw outside of a frame")
	}
	if _, ok := b.batches[call.GeometryID]; !ok {
		return fmt.Errorf("ebiten backend: geometry %d not uploaded", call.GeometryID)
	}
	b.draws = append(b.draws, call)
	return nil
}

func (b *ebitenBackend) EndFrame() error {
	if !b.inFrame {
		return fmt.Errorf("ebiten backend: end frame without begin frame")
	}
	b.inFrame = false
	b.ready = b.frame
	b.readyDraws = append(b.readyDraws[:0], b.draws...)
	b.hasFrame = true
	return nil
}

func (b *ebitenBackend) Resize(width, height int) {
	b.width, b.height = max(width, 1), max(height, 1)
}

func (b *ebitenBackend) Release() {
	clear(b.batches)
	b.readyDraws = nil
	b.hasFrame = false
}

// present strokes the last completed frame onto screen.
func (b *ebitenBackend) present(screen *ebiten.Image) {
	if !b.hasFrame {
		return
	}
	screen.Fill(b.ready.Background.ToRGBA())
	bounds := screen.Bounds()
	b.segments = b.segments[:0]
	for _, call := range b.readyDraws {
		batch, ok := b.batches[call.GeometryID]
		if !ok {
			continue
		}
		b.segments = renderer.ProjectBatch(b.ready, call, batch, bounds.Dx(), bounds.Dy(), b.segments)
	}
	for _, s := range b.segments {
		vector.StrokeLine(screen, s.X0, s.Y0, s.X1, s.Y1, b.strokeWidth, s.Color.ToRGBA(), b.antialias)
	}
}
