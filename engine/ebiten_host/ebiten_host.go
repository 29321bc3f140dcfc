// Package ebiten_host runs a sketch inside an ebiten game. ebiten's Update drives the frame
// loop, its input state becomes session events, and Draw strokes the wireframe plus a text
// overlay of the debug panel.
package ebiten_host

import (
	"context"
	"strings"

	"github.com/Carmen-Shannon/oxy-sketch/common"
	"github.com/Carmen-Shannon/oxy-sketch/engine/console"
	"github.com/Carmen-Shannon/oxy-sketch/engine/debug"
	"github.com/Carmen-Shannon/oxy-sketch/engine/host"
	"github.com/Carmen-Shannon/oxy-sketch/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sketch/engine/session"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Host is an ebiten-backed host.Loop with its own renderer backend.
type Host interface {
	host.Loop

	// Backend returns the renderer backend that draws into the ebiten screen.
	//
	// Returns:
	//   - renderer.RendererBackend: the backend
	Backend() renderer.RendererBackend

	// Run opens the window and blocks until it closes or ctx is done.
	// Must be called from the main goroutine.
	//
	// Parameters:
	//   - ctx: cancelling it closes the window
	//
	// Returns:
	//   - error: the ebiten error, nil on a normal close
	Run(ctx context.Context) error
}

// hostImpl implements Host and ebiten.Game.
type hostImpl struct {
	host.Loop
	backend *ebitenBackend

	title  string
	width  int
	height int
	tps    int
	panel  debug.GUI

	ctx        context.Context
	lastWidth  int
	lastHeight int
	lastX      int
	lastY      int
	keys       []ebiten.Key
}

var (
	_ Host        = &hostImpl{}
	_ ebiten.Game = &hostImpl{}
)

// mouseButtons maps the ebiten buttons the session understands.
var mouseButtons = []struct {
	button  ebiten.MouseButton
	pointer session.PointerButton
}{
	{ebiten.MouseButtonLeft, session.PointerLeft},
	{ebiten.MouseButtonRight, session.PointerRight},
	{ebiten.MouseButtonMiddle, session.PointerMiddle},
}

// NewHost creates an ebiten host. The window opens on Run.
//
// Parameters:
//   - options: variadic list of HostBuilderOption functions
//
// Returns:
//   - Host: the new host
func NewHost(options ...HostBuilderOption) Host {
	h := &hostImpl{
		Loop:   host.NewLoop(nil),
		title:  "oxy sketch",
		width:  800,
		height: 600,
		tps:    60,
	}
	cfg := &backendConfig{strokeWidth: 1, antialias: true}
	for _, option := range options {
		option(h, cfg)
	}
	h.backend = newEbitenBackend(cfg.strokeWidth, cfg.antialias)
	return h
}

func (h *hostImpl) Backend() renderer.RendererBackend {
	return h.backend
}

func (h *hostImpl) Run(ctx context.Context) error {
	h.ctx = ctx
	ebiten.SetWindowTitle(h.title)
	ebiten.SetWindowSize(h.width, h.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(h.tps)
	return ebiten.RunGame(h)
}

// Update posts this tick's input, then pumps the loop so handlers run before the frame.
func (h *hostImpl) Update() error {
	if h.ctx != nil && h.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	h.pollInput()
	h.Pump()
	return nil
}

func (h *hostImpl) pollInput() {
	h.keys = inpututil.AppendJustPressedKeys(h.keys[:0])
	for _, k := range h.keys {
		if name := keyName(k); name != "" {
			h.Post(session.KeyDownEvent{Key: name})
		}
	}

	x, y := ebiten.CursorPosition()
	for _, mb := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(mb.button) {
			h.Post(session.PointerDownEvent{X: float64(x), Y: float64(y), Button: mb.pointer})
		}
	}
	if x != h.lastX || y != h.lastY {
		h.lastX, h.lastY = x, y
		h.Post(session.PointerMoveEvent{X: float64(x), Y: float64(y)})
	}
	for _, mb := range mouseButtons {
		if inpututil.IsMouseButtonJustReleased(mb.button) {
			h.Post(session.PointerUpEvent{X: float64(x), Y: float64(y), Button: mb.pointer})
		}
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		h.Post(session.WheelEvent{Delta: dy})
	}
}

func (h *hostImpl) Draw(screen *ebiten.Image) {
	h.backend.present(screen)
	if h.panel != nil && !h.panel.Hidden() {
		ebitenutil.DebugPrintAt(screen, console.Describe(h.panel), 8, 8)
	}
}

// Layout keeps the screen at the window's logical size and reports size changes as resize
// events.
func (h *hostImpl) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != h.lastWidth || outsideHeight != h.lastHeight {
		h.lastWidth, h.lastHeight = outsideWidth, outsideHeight
		h.Post(session.ResizeEvent{
			Width:      outsideWidth,
			Height:     outsideHeight,
			PixelRatio: common.ClampPixelRatio(ebiten.Monitor().DeviceScaleFactor()),
		})
	}
	return outsideWidth, outsideHeight
}

// keyName converts an ebiten key into the lower-case name session key events carry.
func keyName(k ebiten.Key) string {
	name := strings.ToLower(k.String())
	name = strings.TrimPrefix(name, "digit")
	switch name {
	case "", "escape":
		return ""
	}
	return name
}
