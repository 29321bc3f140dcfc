package host

import (
	"context"
	"time"
)

// Ticker is a headless Loop pumped at a fixed frame rate.
type Ticker interface {
	Loop

	// Run pumps the loop once per tick until ctx is done, the maximum frame count is reached,
	// or no frame is pending after a tick.
	//
	// Parameters:
	//   - ctx: cancels the run
	//
	// Returns:
	//   - int: the number of frames run
	//   - error: ctx.Err() when cancelled, nil otherwise
	Run(ctx context.Context) (int, error)

	// FrameRate returns the tick rate in frames per second.
	FrameRate() int
}

type tickerImpl struct {
	*loopImpl
	frameRate int
	maxFrames int
}

var _ Ticker = &tickerImpl{}

// NewTicker creates a headless fixed-rate host.
//
// Parameters:
//   - dispatcher: where queued events go; may be nil and set later
//   - options: variadic list of TickerBuilderOption functions to configure the ticker
//
// Returns:
//   - Ticker: the new ticker
func NewTicker(dispatcher Dispatcher, options ...TickerBuilderOption) Ticker {
	t := &tickerImpl{
		loopImpl:  newLoop(dispatcher),
		frameRate: 60,
	}
	for _, option := range options {
		option(t)
	}
	return t
}

func (t *tickerImpl) Run(ctx context.Context) (int, error) {
	ticker := time.NewTicker(time.Second / time.Duration(t.frameRate))
	defer ticker.Stop()

	frames := 0
	for {
		select {
		case <-ctx.Done():
			return frames, ctx.Err()
		case <-ticker.C:
		}
		if t.Pump() {
			frames++
		}
		if t.maxFrames > 0 && frames >= t.maxFrames {
			return frames, nil
		}
		if !t.Pending() {
			return frames, nil
		}
	}
}

func (t *tickerImpl) FrameRate() int {
	return t.frameRate
}
