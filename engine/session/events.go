package session

// Event is an input event consumed by Session.Dispatch. Hosts translate their native input
// into these values.
type Event interface {
	event()
}

// PointerButton identifies the pointer button of a press or release.
type PointerButton int

const (
	// PointerLeft is the primary button. Dragging with it orbits the camera.
	PointerLeft PointerButton = iota

	// PointerRight is the secondary button. Dragging with it pans the camera.
	PointerRight

	// PointerMiddle is the middle button. Dragging with it pans the camera.
	PointerMiddle
)

func (b PointerButton) String() string {
	switch b {
	case PointerRight:
		return "right"
	case PointerMiddle:
		return "middle"
	default:
		return "left"
	}
}

// ResizeEvent reports a new drawable size in logical pixels and the device pixel ratio.
type ResizeEvent struct {
	Width      int
	Height     int
	PixelRatio float64
}

// KeyDownEvent reports a key press. Key is the printable name, e.g. "h" or "escape".
type KeyDownEvent struct {
	Key string
}

// PointerDownEvent reports a button press at a position in logical pixels.
type PointerDownEvent struct {
	X, Y   float64
	Button PointerButton
}

// PointerMoveEvent reports the pointer position in logical pixels.
type PointerMoveEvent struct {
	X, Y float64
}

// PointerUpEvent reports a button release.
type PointerUpEvent struct {
	X, Y   float64
	Button PointerButton
}

// WheelEvent reports a scroll. Positive Delta scrolls up and zooms in.
type WheelEvent struct {
	Delta float64
}

// ParamInputEvent edits a debug panel controller addressed by "folder/label".
type ParamInputEvent struct {
	Path  string
	Value any
}

// ParamFinishEvent ends an edit of a debug panel controller, like releasing a slider.
type ParamFinishEvent struct {
	Path string
}

// ParamPressEvent clicks a function controller.
type ParamPressEvent struct {
	Path string
}

// CallEvent runs Fn with the session on the host thread. Background goroutines use it to
// read session state safely.
type CallEvent struct {
	Fn func(s Session)
}

func (ResizeEvent) event()      {}
func (KeyDownEvent) event()     {}
func (PointerDownEvent) event() {}
func (PointerMoveEvent) event() {}
func (PointerUpEvent) event()   {}
func (WheelEvent) event()       {}
func (ParamInputEvent) event()  {}
func (ParamFinishEvent) event() {}
func (ParamPressEvent) event()  {}
func (CallEvent) event()        {}
