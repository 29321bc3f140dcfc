package clock

import "time"

// ClockBuilderOption is a functional option for configuring a Clock.
type ClockBuilderOption func(*clockImpl)

// WithTimeSource replaces time.Now as the clock's time source.
// Intended for tests and fixed-step hosts.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - ClockBuilderOption: option function to apply
func WithTimeSource(now func() time.Time) ClockBuilderOption {
	return func(c *clockImpl) {
		if now != nil {
			c.now = now
		}
	}
}
