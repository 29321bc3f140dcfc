package host

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-sketch/engine/session"
)

type recorder struct {
	events []session.Event
	order  *[]string
}

func (r *recorder) Dispatch(ev session.Event) error {
	r.events = append(r.events, ev)
	if r.order != nil {
		*r.order = append(*r.order, "event")
	}
	if _, ok := ev.(session.WheelEvent); ok {
		return errors.New("wheel rejected")
	}
	return nil
}

func TestPumpDrainsEventsBeforeFrame(t *testing.T) {
	var order []string
	rec := &recorder{order: &order}
	l := NewLoop(rec)

	l.Post(session.KeyDownEvent{Key: "h"})
	l.Post(session.WheelEvent{Delta: 1})
	l.RequestFrame(func() { order = append(order, "frame") })
	if l.Queued() != 2 || !l.Pending() {
		t.Fatalf("Queued = %d, Pending = %v", l.Queued(), l.Pending())
	}

	if !l.Pump() {
		t.Fatalf("Pump did not run the frame")
	}
	if len(order) != 3 || order[2] != "frame" {
		t.Fatalf("order = %v, want events before frame", order)
	}
	if l.Pending() || l.Queued() != 0 {
		t.Fatalf("Pump left Pending = %v, Queued = %d", l.Pending(), l.Queued())
	}
	if l.Pump() {
		t.Fatalf("Pump ran a frame nobody requested")
	}
}

func TestRequestFrameReplacesPending(t *testing.T) {
	l := NewLoop(nil)
	var ran []int
	l.RequestFrame(func() { ran = append(ran, 1) })
	l.RequestFrame(func() { ran = append(ran, 2) })
	l.Pump()
	if len(ran) != 1 || ran[0] != 2 {
		t.Fatalf("ran = %v, want [2]", ran)
	}
}

func TestPostFromOtherGoroutines(t *testing.T) {
	rec := &recorder{}
	l := NewLoop(rec)
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Post(session.KeyDownEvent{Key: string(rune('a' + i))})
		}()
	}
	wg.Wait()
	l.Pump()
	if len(rec.events) != 8 {
		t.Fatalf("dispatched %d events, want 8", len(rec.events))
	}
}

func TestManualStepRearms(t *testing.T) {
	m := NewManual(nil)
	frames := 0
	var tick func()
	tick = func() {
		frames++
		if frames < 3 {
			m.RequestFrame(tick)
		}
	}
	m.RequestFrame(tick)
	if ran := m.Step(10); ran != 3 || frames != 3 {
		t.Fatalf("Step ran %d frames, callback ran %d; want 3, 3", ran, frames)
	}
}

func TestTickerRunsUntilMaxFrames(t *testing.T) {
	tk := NewTicker(nil, WithFrameRate(500), WithMaxFrames(4))
	var tick func()
	tick = func() { tk.RequestFrame(tick) }
	tk.RequestFrame(tick)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	frames, err := tk.Run(ctx)
	if err != nil || frames != 4 {
		t.Fatalf("Run = %d, %v; want 4, nil", frames, err)
	}
	if tk.FrameRate() != 500 {
		t.Fatalf("FrameRate = %d, want 500", tk.FrameRate())
	}
}

func TestTickerStopsOnCancel(t *testing.T) {
	tk := NewTicker(nil, WithFrameRate(1000))
	var tick func()
	tick = func() { tk.RequestFrame(tick) }
	tk.RequestFrame(tick)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	if _, err := tk.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run err = %v, want context.Canceled", err)
	}
}
