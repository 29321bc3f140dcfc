package profiler

import (
	"testing"
	"time"
)

func TestTickLogsOncePerInterval(t *testing.T) {
	now := time.Unix(0, 0)
	p := NewProfiler(WithUpdateInterval(time.Second), WithTimeSource(func() time.Time { return now }))

	logged := 0
	for range 250 {
		now = now.Add(10 * time.Millisecond)
		if p.Tick() {
			logged++
		}
	}
	if logged != 2 {
		t.Fatalf("logged %d times over 2.5 seconds, want 2", logged)
	}
	if p.Frames() != 250 {
		t.Fatalf("Frames = %d, want 250", p.Frames())
	}
}

func TestCounters(t *testing.T) {
	p := NewProfiler()
	p.RecordRenderError()
	p.RecordRenderError()
	if p.RenderErrors() != 2 {
		t.Fatalf("RenderErrors = %d, want 2", p.RenderErrors())
	}
}
