package host

// TickerBuilderOption is a functional option for configuring a Ticker.
type TickerBuilderOption func(t *tickerImpl)

// WithFrameRate sets the tick rate. Defaults to 60; non-positive values are ignored.
//
// Parameters:
//   - fps: frames per second
//
// Returns:
//   - TickerBuilderOption: option function to apply
func WithFrameRate(fps int) TickerBuilderOption {
	return func(t *tickerImpl) {
		if fps > 0 {
			t.frameRate = fps
		}
	}
}

// WithMaxFrames stops Run after n frames. Zero runs until cancelled.
//
// Parameters:
//   - n: the frame limit
//
// Returns:
//   - TickerBuilderOption: option function to apply
func WithMaxFrames(n int) TickerBuilderOption {
	return func(t *tickerImpl) {
		t.maxFrames = max(n, 0)
	}
}
