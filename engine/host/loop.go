// Package host provides the display-refresh side of the frame loop for hosts without a
// native one: an event queue with a pending frame callback, a fixed-rate headless ticker
// and a manually stepped host for tests.
package host

import (
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-sketch/engine/session"
)

// Dispatcher consumes input events on the host thread. session.Session implements it.
type Dispatcher interface {
	Dispatch(ev session.Event) error
}

// Loop queues input events and holds at most one pending frame callback.
// Post and RequestFrame may be called from any goroutine; Pump runs on the host thread.
type Loop interface {
	// Post queues an input event for the next Pump.
	//
	// Parameters:
	//   - ev: the event
	Post(ev session.Event)

	// RequestFrame schedules callback for the next Pump, replacing any pending callback.
	//
	// Parameters:
	//   - callback: the frame callback
	RequestFrame(callback func())

	// SetDispatcher sets where Pump delivers queued events.
	//
	// Parameters:
	//   - d: the dispatcher
	SetDispatcher(d Dispatcher)

	// Pump delivers every queued event to the dispatcher, then runs the pending frame
	// callback. Dispatch errors are logged.
	//
	// Returns:
	//   - bool: true if a frame callback ran
	Pump() bool

	// Pending reports whether a frame callback is scheduled.
	Pending() bool

	// Queued returns the number of undelivered events.
	Queued() int
}

type loopImpl struct {
	mu         *sync.Mutex
	events     []session.Event
	pending    func()
	dispatcher Dispatcher
}

var _ Loop = &loopImpl{}

// NewLoop creates an empty loop.
//
// Parameters:
//   - dispatcher: where queued events go; may be nil and set later
//
// Returns:
//   - Loop: the new loop
func NewLoop(dispatcher Dispatcher) Loop {
	return newLoop(dispatcher)
}

func newLoop(dispatcher Dispatcher) *loopImpl {
	return &loopImpl{mu: &sync.Mutex{}, dispatcher: dispatcher}
}

func (l *loopImpl) Post(ev session.Event) {
	if ev == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *loopImpl) RequestFrame(callback func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = callback
}

func (l *loopImpl) SetDispatcher(d Dispatcher) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dispatcher = d
}

func (l *loopImpl) Pump() bool {
	l.mu.Lock()
	events := l.events
	l.events = nil
	dispatcher := l.dispatcher
	l.mu.Unlock()

	// handlers run outside the lock so they can Post or RequestFrame
	for _, ev := range events {
		if dispatcher == nil {
			break
		}
		if err := dispatcher.Dispatch(ev); err != nil {
			log.Printf("host: dispatch %T: %v", ev, err)
		}
	}

	l.mu.Lock()
	frame := l.pending
	l.pending = nil
	l.mu.Unlock()
	if frame == nil {
		return false
	}
	frame()
	return true
}

func (l *loopImpl) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending != nil
}

func (l *loopImpl) Queued() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}
