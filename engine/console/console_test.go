package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-sketch/engine/debug"
	"github.com/Carmen-Shannon/oxy-sketch/engine/host"
	"github.com/Carmen-Shannon/oxy-sketch/engine/session"
)

type recorder struct {
	events []session.Event
}

func (r *recorder) Post(ev session.Event) {
	r.events = append(r.events, ev)
}

func TestExecPostsEvents(t *testing.T) {
	tests := []struct {
		line string
		want []session.Event
	}{
		{"set Speed 3", []session.Event{session.ParamInputEvent{Path: "Speed", Value: "3"}}},
		{`set "Cube/Color" '#ff0000'`, []session.Event{session.ParamInputEvent{Path: "Cube/Color", Value: "#ff0000"}}},
		{"finish Speed", []session.Event{session.ParamFinishEvent{Path: "Speed"}}},
		{"commit Speed 4", []session.Event{
			session.ParamInputEvent{Path: "Speed", Value: "4"},
			session.ParamFinishEvent{Path: "Speed"},
		}},
		{"press spin", []session.Event{session.ParamPressEvent{Path: "spin"}}},
		{"KEY h", []session.Event{session.KeyDownEvent{Key: "h"}}},
		{"resize 1024 768", []session.Event{session.ResizeEvent{Width: 1024, Height: 768}}},
		{"resize 1024 768 3", []session.Event{session.ResizeEvent{Width: 1024, Height: 768, PixelRatio: 3}}},
		{"zoom -2.5", []session.Event{session.WheelEvent{Delta: -2.5}}},
		{"drag right 0 0 10 20 2", []session.Event{
			session.PointerDownEvent{X: 0, Y: 0, Button: session.PointerRight},
			session.PointerMoveEvent{X: 5, Y: 10},
			session.PointerMoveEvent{X: 10, Y: 20},
			session.PointerUpEvent{X: 10, Y: 20, Button: session.PointerRight},
		}},
		{"drag 1 2 3 4", []session.Event{
			session.PointerDownEvent{X: 1, Y: 2},
			session.PointerMoveEvent{X: 3, Y: 4},
			session.PointerUpEvent{X: 3, Y: 4},
		}},
		{"   ", nil},
		{"# a comment", nil},
	}
	for _, tt := range tests {
		r := &recorder{}
		if err := NewConsole(r).Exec(tt.line); err != nil {
			t.Fatalf("Exec(%q) err = %v", tt.line, err)
		}
		if len(r.events) != len(tt.want) {
			t.Fatalf("Exec(%q) posted %v, want %v", tt.line, r.events, tt.want)
		}
		for i := range tt.want {
			if r.events[i] != tt.want[i] {
				t.Fatalf("Exec(%q) event %d = %#v, want %#v", tt.line, i, r.events[i], tt.want[i])
			}
		}
	}
}

func TestExecRejectsBadLines(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{"fly away", ErrUnknownCommand},
		{"set Speed", ErrUsage},
		{"resize wide 10", ErrUsage},
		{"zoom lots", ErrUsage},
		{"drag left 1 2 3", ErrUsage},
		{"drag 1 2 3 4 0", ErrUsage},
		{"drag 0 0 1 1 1001", ErrUsage},
		{"drag 0 0 1 1 1000000000", ErrUsage},
	}
	for _, tt := range tests {
		r := &recorder{}
		err := NewConsole(r).Exec(tt.line)
		if !errors.Is(err, tt.want) {
			t.Fatalf("Exec(%q) err = %v, want %v", tt.line, err, tt.want)
		}
		if len(r.events) != 0 {
			t.Fatalf("Exec(%q) posted %v after an error", tt.line, r.events)
		}
	}
	if err := NewConsole(&recorder{}).Exec(`set "unterminated`); err == nil {
		t.Fatalf("unterminated quote accepted")
	}
}

type params struct {
	Speed float64
	Wire  bool
}

func TestRunDrivesSessionThroughLoop(t *testing.T) {
	p := &params{Speed: 2, Wire: true}
	gui := debug.NewGUI()
	gui.Add(p, "Speed", 0, 10, 1)
	gui.AddFolder("Camera").Add(p, "Wire")

	s := session.NewSession(session.WithGUI(gui))
	m := host.NewManual(s)
	var out bytes.Buffer
	quit := 0
	c := NewConsole(m, WithOutput(&out), WithQuit(func() { quit++ }))

	script := strings.Join([]string{
		"commit Speed 6.6",
		"set Camera/Wire false",
		"bogus",
		"key h",
		"show",
		"quit",
	}, "\n")
	if err := c.Run(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("Run err = %v", err)
	}
	if quit != 1 {
		t.Fatalf("quit called %d times, want 1", quit)
	}
	if m.Queued() != 5 {
		t.Fatalf("Queued = %d, want 5", m.Queued())
	}
	m.Pump()

	if p.Speed != 7 || p.Wire {
		t.Fatalf("params = %+v, want Speed 7 and Wire false", *p)
	}
	want := "Controls (hidden)\n  Speed = 7 [0..10] step 1\n  Camera\n    Wire = false\n"
	if out.String() != want {
		t.Fatalf("show printed\n%q\nwant\n%q", out.String(), want)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	r := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewConsole(r).Run(ctx, strings.NewReader("key a\nkey b\n"))
	if !errors.Is(err, context.Canceled) || len(r.events) != 0 {
		t.Fatalf("Run err = %v, events = %v; want context.Canceled and none", err, r.events)
	}
}

func TestDragAcceptsMaxSteps(t *testing.T) {
	r := &recorder{}
	if err := NewConsole(r).Exec("drag 0 0 1 1 1000"); err != nil {
		t.Fatalf("Exec err = %v", err)
	}
	if len(r.events) != MaxDragSteps+2 {
		t.Fatalf("posted %d events, want %d", len(r.events), MaxDragSteps+2)
	}
}
