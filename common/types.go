// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 is a mutable 3-component vector used for scene node transforms.
// Fields are exported so debug controllers can bind directly to a single axis.
type Vec3 struct {
	X, Y, Z float32
}

// NewVec3 returns a Vec3 with the given components.
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Vec3FromMgl converts an mgl32 vector into a Vec3.
func Vec3FromMgl(v mgl32.Vec3) Vec3 {
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// Vec returns the vector as an mgl32.Vec3.
func (v Vec3) Vec() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

// Set assigns all three components in place.
func (v *Vec3) Set(x, y, z float32) {
	v.X, v.Y, v.Z = x, y, z
}

// Length returns the distance from the origin to the vector.
func (v Vec3) Length() float32 {
	return v.Vec().Len()
}

// Normalize scales the vector in place to unit length. A zero vector is left unchanged.
func (v *Vec3) Normalize() {
	if v.Length() == 0 {
		return
	}
	*v = Vec3FromMgl(v.Vec().Normalize())
}

// DistanceTo returns the euclidean distance between v and o.
func (v Vec3) DistanceTo(o Vec3) float32 {
	return v.Vec().Sub(o.Vec()).Len()
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3FromMgl(v.Vec().Add(o.Vec()))
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3FromMgl(v.Vec().Sub(o.Vec()))
}

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3FromMgl(v.Vec().Mul(s))
}

// Viewport holds the drawable surface size in logical pixels and the device pixel ratio
// applied to the renderer's output buffer.
type Viewport struct {
	Width      int
	Height     int
	PixelRatio float64
}

// Aspect returns Width / Height, or 1 when the height is not positive.
func (v Viewport) Aspect() float32 {
	if v.Height <= 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// MaxPixelRatio caps the device pixel ratio used for output buffers.
const MaxPixelRatio = 2.0

// ClampPixelRatio returns min(ratio, MaxPixelRatio), treating non-positive ratios as 1.
func ClampPixelRatio(ratio float64) float64 {
	if ratio <= 0 {
		return 1
	}
	return min(ratio, MaxPixelRatio)
}

// Color is an RGB colour with components in [0, 1].
type Color struct {
	R, G, B float32
}

// ColorFromHex builds a Color from a 0xRRGGBB integer.
func ColorFromHex(hex uint32) Color {
	return Color{
		R: float32((hex>>16)&0xff) / 255,
		G: float32((hex>>8)&0xff) / 255,
		B: float32(hex&0xff) / 255,
	}
}

// ParseColor parses "#rrggbb", "rrggbb", "#rgb" or "0xrrggbb".
//
// Parameters:
//   - s: the colour string
//
// Returns:
//   - Color: the parsed colour
//   - error: error if s is not a recognised colour literal
func ParseColor(s string) (Color, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(raw, "#")
	raw = strings.TrimPrefix(strings.ToLower(raw), "0x")
	if len(raw) == 3 {
		raw = string([]byte{raw[0], raw[0], raw[1], raw[1], raw[2], raw[2]})
	}
	if len(raw) != 6 {
		return Color{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(raw, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return ColorFromHex(uint32(v)), nil
}

// Hex returns the colour packed as 0xRRGGBB.
func (c Color) Hex() uint32 {
	to8 := func(f float32) uint32 {
		return uint32(min(max(f, 0), 1)*255 + 0.5)
	}
	return to8(c.R)<<16 | to8(c.G)<<8 | to8(c.B)
}

// HexString returns the colour as "#rrggbb".
func (c Color) HexString() string {
	return fmt.Sprintf("#%06x", c.Hex())
}

// ToRGBA converts the colour to an opaque image/color value.
func (c Color) ToRGBA() color.RGBA {
	h := c.Hex()
	return color.RGBA{R: uint8(h >> 16), G: uint8(h >> 8), B: uint8(h), A: 0xff}
}
