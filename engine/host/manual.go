package host

// Manual is a Loop stepped explicitly, one Pump per frame.
type Manual interface {
	Loop

	// Step pumps the loop up to frames times, stopping early when no frame is pending.
	//
	// Parameters:
	//   - frames: the number of frames to run
	//
	// Returns:
	//   - int: the number of frames that ran
	Step(frames int) int
}

type manualImpl struct {
	*loopImpl
}

var _ Manual = &manualImpl{}

// NewManual creates a manually stepped host.
//
// Parameters:
//   - dispatcher: where queued events go; may be nil and set later
//
// Returns:
//   - Manual: the new host
func NewManual(dispatcher Dispatcher) Manual {
	return &manualImpl{loopImpl: newLoop(dispatcher)}
}

func (m *manualImpl) Step(frames int) int {
	ran := 0
	for range frames {
		if !m.Pump() {
			break
		}
		ran++
	}
	return ran
}
