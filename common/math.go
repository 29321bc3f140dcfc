package common

import (
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// Perspective creates a perspective projection matrix.
// Depth maps to the WebGPU clip space range [0, 1] rather than the OpenGL range
// produced by mgl32.Perspective.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	out := mgl32.Ident4()

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
	return out
}

// BuildModelMatrix constructs a 4x4 model matrix from position, Euler rotation, and scale.
// The rotation order is Y * X * Z (the "YXZ" Euler order). All matrices are column-major.
//
// Parameters:
//   - position: translation in world space
//   - rotation: rotation angles in radians around each axis
//   - scale: scale factors along each axis
//
// Returns:
//   - mgl32.Mat4: the model matrix
func BuildModelMatrix(position, rotation, scale Vec3) mgl32.Mat4 {
	cx := float32(math.Cos(float64(rotation.X)))
	sx := float32(math.Sin(float64(rotation.X)))
	cy := float32(math.Cos(float64(rotation.Y)))
	sy := float32(math.Sin(float64(rotation.Y)))
	cz := float32(math.Cos(float64(rotation.Z)))
	sz := float32(math.Sin(float64(rotation.Z)))

	var out mgl32.Mat4

	// R = Ry * Rx * Rz, column-major
	out[0] = (cy*cz + sy*sx*sz) * scale.X
	out[1] = (cx * sz) * scale.X
	out[2] = (-sy*cz + cy*sx*sz) * scale.X

	out[4] = (cy*-sz + sy*sx*cz) * scale.Y
	out[5] = (cx * cz) * scale.Y
	out[6] = (sy*sz + cy*sx*cz) * scale.Y

	out[8] = (sy * cx) * scale.Z
	out[9] = (-sx) * scale.Z
	out[10] = (cy * cx) * scale.Z

	out[12] = position.X
	out[13] = position.Y
	out[14] = position.Z
	out[15] = 1
	return out
}

// Invert4 computes the inverse of a 4x4 column-major matrix.
// If the matrix is singular the identity is returned together with false.
//
// Parameters:
//   - m: source matrix
//
// Returns:
//   - mgl32.Mat4: the inverse, or identity when singular
//   - bool: true if the matrix was successfully inverted
func Invert4(m mgl32.Mat4) (mgl32.Mat4, bool) {
	if m.Det() == 0 {
		return mgl32.Ident4(), false
	}
	return m.Inv(), true
}

// LookAt creates a view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view/camera space.
// Coincident eye and center yield the identity; an up vector parallel to the
// view direction is replaced by the world Z axis.
//
// Parameters:
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically 0,1,0)
//
// Returns:
//   - mgl32.Mat4: the view matrix
func LookAt(eye, center, up Vec3) mgl32.Mat4 {
	e, c, u := eye.Vec(), center.Vec(), up.Vec()
	forward := c.Sub(e)
	if forward.Len() == 0 {
		return mgl32.Ident4()
	}
	if forward.Normalize().Cross(u.Normalize()).Len() < 1e-6 {
		u = mgl32.Vec3{0, 0, 1}
	}
	return mgl32.LookAtV(e, c, u)
}

// TransformPoint multiplies a point by a 4x4 matrix and performs the perspective divide.
//
// Parameters:
//   - m: the transform
//   - p: the point
//
// Returns:
//   - mgl32.Vec3: the transformed point
//   - float32: the clip-space w component before the divide
func TransformPoint(m mgl32.Mat4, p mgl32.Vec3) (mgl32.Vec3, float32) {
	v := m.Mul4x1(p.Vec4(1))
	if v[3] == 0 {
		return v.Vec3(), 0
	}
	return v.Vec3().Mul(1 / v[3]), v[3]
}
