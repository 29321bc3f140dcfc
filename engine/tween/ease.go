package tween

import (
	"math"
	"strings"
)

// Ease maps linear progress in [0, 1] to eased progress.
type Ease func(t float64) float64

// Linear applies no easing.
func Linear(t float64) float64 {
	return t
}

// Power1Out decelerates quadratically. It is the default ease.
func Power1Out(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// Power1In accelerates quadratically.
func Power1In(t float64) float64 {
	return t * t
}

// Power1InOut accelerates then decelerates quadratically.
func Power1InOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - 2*(1-t)*(1-t)
}

// SineOut decelerates along a quarter sine wave.
func SineOut(t float64) float64 {
	return math.Sin(t * math.Pi / 2)
}

// SineIn accelerates along a quarter sine wave.
func SineIn(t float64) float64 {
	return 1 - math.Cos(t*math.Pi/2)
}

// SineInOut follows half a cosine wave.
func SineInOut(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// EaseByName resolves the ease names used by gsap: "none"/"linear", "power1" (out),
// "power1.in", "power1.out", "power1.inOut", "sine" (out), "sine.in", "sine.out", "sine.inOut".
//
// Parameters:
//   - name: the ease name, case-insensitive
//
// Returns:
//   - Ease: the ease function
//   - bool: false if the name is unknown
func EaseByName(name string) (Ease, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "linear":
		return Linear, true
	case "power1", "power1.out":
		return Power1Out, true
	case "power1.in":
		return Power1In, true
	case "power1.inout":
		return Power1InOut, true
	case "sine", "sine.out":
		return SineOut, true
	case "sine.in":
		return SineIn, true
	case "sine.inout":
		return SineInOut, true
	}
	return nil, false
}
