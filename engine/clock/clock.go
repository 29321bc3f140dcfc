package clock

import "time"

// Clock is a monotonic elapsed-time source for the frame loop.
// Elapsed time never decreases and is never reset for the lifetime of the clock.
type Clock interface {
	// Elapsed returns the seconds since the clock was created.
	//
	// Returns:
	//   - float64: monotonically non-decreasing elapsed seconds
	Elapsed() float64

	// Delta returns the seconds since the previous Elapsed or Delta query.
	// The first call measures from clock creation.
	//
	// Returns:
	//   - float64: non-negative seconds since the last query
	Delta() float64
}

type clockImpl struct {
	now         func() time.Time
	start       time.Time
	lastElapsed float64
}

var _ Clock = &clockImpl{}

// NewClock creates a Clock started at the current time of its time source.
//
// Parameters:
//   - options: functional options to configure the clock
//
// Returns:
//   - Clock: the newly created clock
func NewClock(options ...ClockBuilderOption) Clock {
	c := &clockImpl{
		now: time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	c.start = c.now()
	return c
}

func (c *clockImpl) Elapsed() float64 {
	// time.Time from time.Now carries a monotonic reading, so Sub is immune to wall clock steps.
	// Injected sources may still go backwards; hold at the last value in that case.
	e := c.now().Sub(c.start).Seconds()
	if e < c.lastElapsed {
		e = c.lastElapsed
	}
	c.lastElapsed = e
	return e
}

func (c *clockImpl) Delta() float64 {
	prev := c.lastElapsed
	return c.Elapsed() - prev
}
