package tween

import (
	"math"
	"testing"
)

func TestToReachesEndValue(t *testing.T) {
	m := NewManager()
	m.Update(10)

	var y float32 = 1
	completed := 0
	tw := m.To(&y, 1+2*math.Pi, WithDuration(1), WithOnComplete(func() { completed++ }))

	m.Update(10.5)
	if y <= 1 || y >= 1+2*math.Pi {
		t.Fatalf("midway y = %v, want strictly between start and end", y)
	}
	// power1.out is past the linear midpoint at half time
	if want := float32(1 + 2*math.Pi*0.75); math.Abs(float64(y-want)) > 1e-5 {
		t.Fatalf("midway y = %v, want %v", y, want)
	}
	m.Update(11.2)
	if y != float32(1+2*math.Pi) || !tw.Done() || completed != 1 {
		t.Fatalf("y = %v, done = %v, completed = %d", y, tw.Done(), completed)
	}
	if m.Active() != 0 {
		t.Fatalf("Active() = %d, want 0", m.Active())
	}
}

func TestDelayAndKill(t *testing.T) {
	m := NewManager()
	var x float32
	tw := m.To(&x, 10, WithDuration(1), WithDelay(1), WithEase(Linear))
	m.Update(0.5)
	if x != 0 {
		t.Fatalf("x during delay = %v, want 0", x)
	}
	m.Update(1.5)
	if x != 5 {
		t.Fatalf("x at half progress = %v, want 5", x)
	}
	tw.Kill()
	m.Update(3)
	if x != 5 || m.Active() != 0 {
		t.Fatalf("killed tween moved x to %v, Active = %d", x, m.Active())
	}
}

func TestOnCompleteCanChainTweens(t *testing.T) {
	m := NewManager()
	var x float32
	m.To(&x, 1, WithDuration(0), WithOnComplete(func() {
		m.To(&x, 2, WithDuration(1), WithEase(Linear))
	}))
	m.Update(0)
	if x != 1 || m.Active() != 1 {
		t.Fatalf("x = %v, Active = %d; want 1, 1", x, m.Active())
	}
	m.Update(1)
	if x != 2 {
		t.Fatalf("chained x = %v, want 2", x)
	}
}

func TestEaseByName(t *testing.T) {
	for _, name := range []string{"sine", "power1", "power1.inOut", "none"} {
		e, ok := EaseByName(name)
		if !ok {
			t.Fatalf("EaseByName(%q) not found", name)
		}
		if e(0) != 0 || math.Abs(e(1)-1) > 1e-12 {
			t.Fatalf("%s(0), %s(1) = %v, %v", name, name, e(0), e(1))
		}
	}
	if _, ok := EaseByName("bounce"); ok {
		t.Fatalf("EaseByName(bounce) ok = true")
	}
}
