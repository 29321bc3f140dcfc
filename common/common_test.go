package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func approx(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func TestVec3Helpers(t *testing.T) {
	v := NewVec3(3, 0, 4)
	if got := v.Length(); got != 5 {
		t.Fatalf("Length() = %v, want 5", got)
	}
	if got := v.DistanceTo(NewVec3(3, 0, 0)); got != 4 {
		t.Fatalf("DistanceTo() = %v, want 4", got)
	}
	v.Normalize()
	if !approx(v.Length(), 1, 1e-6) {
		t.Fatalf("Normalize() length = %v, want 1", v.Length())
	}

	var zero Vec3
	zero.Normalize()
	if zero != (Vec3{}) {
		t.Fatalf("Normalize() of zero vector = %v, want zero", zero)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{in: "#ff0000", want: 0xff0000},
		{in: "00ff00", want: 0x00ff00},
		{in: "#00f", want: 0x0000ff},
		{in: "0x123456", want: 0x123456},
		{in: "red", wantErr: true},
		{in: "#12345", wantErr: true},
	}
	for _, tt := range tests {
		c, err := ParseColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseColor(%q) err = nil, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseColor(%q) err = %v", tt.in, err)
		}
		if got := c.Hex(); got != tt.want {
			t.Fatalf("ParseColor(%q).Hex() = %#06x, want %#06x", tt.in, got, tt.want)
		}
	}
	if got := ColorFromHex(0xff0000).HexString(); got != "#ff0000" {
		t.Fatalf("HexString() = %q, want #ff0000", got)
	}
}

func TestViewportAspectAndPixelRatio(t *testing.T) {
	if got := (Viewport{Width: 1024, Height: 768}).Aspect(); got != float32(1024)/768 {
		t.Fatalf("Aspect() = %v, want %v", got, float32(1024)/768)
	}
	if got := (Viewport{Width: 10}).Aspect(); got != 1 {
		t.Fatalf("Aspect() with zero height = %v, want 1", got)
	}
	for in, want := range map[float64]float64{0: 1, 1: 1, 1.5: 1.5, 3: 2} {
		if got := ClampPixelRatio(in); got != want {
			t.Fatalf("ClampPixelRatio(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestLookAtTargetsCenter(t *testing.T) {
	view := LookAt(NewVec3(0, 0, 3), Vec3{}, NewVec3(0, 1, 0))
	p, _ := TransformPoint(view, mgl32.Vec3{0, 0, 0})
	// The target lands on the view-space -Z axis at the eye distance.
	if !approx(p[0], 0, 1e-6) || !approx(p[1], 0, 1e-6) || !approx(p[2], -3, 1e-5) {
		t.Fatalf("LookAt target in view space = %v, want (0, 0, -3)", p)
	}

	if got := LookAt(NewVec3(1, 1, 1), NewVec3(1, 1, 1), NewVec3(0, 1, 0)); got != mgl32.Ident4() {
		t.Fatalf("LookAt with coincident eye/center = %v, want identity", got)
	}

	straightDown := LookAt(NewVec3(0, 5, 0), Vec3{}, NewVec3(0, 1, 0))
	for i, f := range straightDown {
		if math.IsNaN(float64(f)) {
			t.Fatalf("LookAt straight down produced NaN at %d", i)
		}
	}
}

func TestBuildModelMatrixTranslationAndScale(t *testing.T) {
	m := BuildModelMatrix(NewVec3(0.7, -0.6, 1), Vec3{}, NewVec3(2, 0.5, 0.5))
	p, _ := TransformPoint(m, mgl32.Vec3{1, 1, 1})
	want := mgl32.Vec3{2.7, -0.1, 1.5}
	for i := range 3 {
		if !approx(p[i], want[i], 1e-5) {
			t.Fatalf("BuildModelMatrix point = %v, want %v", p, want)
		}
	}
}

func TestInvert4(t *testing.T) {
	var singular mgl32.Mat4
	if _, ok := Invert4(singular); ok {
		t.Fatalf("Invert4(zero) ok = true, want false")
	}
	p := Perspective(float32(math.Pi/4), 4.0/3.0, 0.1, 100)
	inv, ok := Invert4(p)
	if !ok {
		t.Fatalf("Invert4(perspective) ok = false, want true")
	}
	id := p.Mul4(inv)
	if !id.ApproxEqualThreshold(mgl32.Ident4(), 1e-4) {
		t.Fatalf("P * P^-1 = %v, want identity", id)
	}
}

func TestClampAndCoalesce(t *testing.T) {
	if got := Clamp(5, 1, 3); got != 3 {
		t.Fatalf("Clamp(5, 1, 3) = %v, want 3", got)
	}
	if got := Clamp(0.5, 3.0, 1.0); got != 1.0 {
		t.Fatalf("Clamp with swapped bounds = %v, want 1", got)
	}
	if got := Coalesce("", "", "x"); got != "x" {
		t.Fatalf("Coalesce() = %q, want x", got)
	}
	if got := KeyName(KeyH); got != "h" {
		t.Fatalf("KeyName(KeyH) = %q, want h", got)
	}
}
