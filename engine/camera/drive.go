package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-sketch/common"
)

// DriveMode identifies what moves the camera from frame to frame.
type DriveMode int

const (
	// DriveStatic leaves the camera pose untouched between frames. It is the zero value.
	DriveStatic DriveMode = iota

	// DriveScripted places the camera from a function of elapsed time each frame.
	DriveScripted

	// DriveUserControlled integrates an orbit controller's damping each frame.
	DriveUserControlled
)

// String returns a readable name for the mode.
func (m DriveMode) String() string {
	switch m {
	case DriveScripted:
		return "scripted"
	case DriveUserControlled:
		return "user-controlled"
	default:
		return "static"
	}
}

// MotionFunc returns the camera position for an elapsed time in seconds.
type MotionFunc func(elapsed float64) common.Vec3

// Drive selects exactly one source of camera motion. Scripted motion and a damped
// user controller are mutually exclusive: a Drive carries one or the other, never both.
// Build one with Scripted or UserControlled; the zero value is a static drive.
type Drive struct {
	mode       DriveMode
	motion     MotionFunc
	aim        common.Vec3
	controller CameraController
}

// Scripted creates a drive that positions the camera with motion and keeps it aimed at aim.
// A nil motion yields a static drive.
//
// Parameters:
//   - motion: position as a function of elapsed seconds
//   - aim: the fixed world-space point the camera looks at
//
// Returns:
//   - Drive: the scripted drive
func Scripted(motion MotionFunc, aim common.Vec3) Drive {
	if motion == nil {
		return Drive{}
	}
	return Drive{mode: DriveScripted, motion: motion, aim: aim}
}

// UserControlled creates a drive owned by a damped orbit controller.
// A nil controller yields a static drive.
//
// Parameters:
//   - ctrl: the controller that integrates user input
//
// Returns:
//   - Drive: the user-controlled drive
func UserControlled(ctrl CameraController) Drive {
	if ctrl == nil {
		return Drive{}
	}
	return Drive{mode: DriveUserControlled, controller: ctrl}
}

// Mode returns which variant the drive holds.
func (d Drive) Mode() DriveMode {
	return d.mode
}

// Motion returns the scripted motion function, or nil for other modes.
func (d Drive) Motion() MotionFunc {
	return d.motion
}

// Aim returns the fixed look-at point of a scripted drive.
func (d Drive) Aim() common.Vec3 {
	return d.aim
}

// Controller returns the orbit controller of a user-controlled drive, or nil for other modes.
func (d Drive) Controller() CameraController {
	return d.controller
}

// CircularMotion returns a MotionFunc moving on a circle of the given radius in the plane
// parallel to XY that sits depth units in front of center along +Z:
//
//	x = center.x + radius*cos(speed*t)
//	y = center.y + radius*sin(speed*t)
//	z = center.z + depth
//
// Parameters:
//   - center: the point the circle is built around
//   - radius: circle radius
//   - speed: angular speed in radians per second
//   - depth: offset of the circle plane along +Z
//
// Returns:
//   - MotionFunc: the motion function
func CircularMotion(center common.Vec3, radius, speed, depth float32) MotionFunc {
	return func(elapsed float64) common.Vec3 {
		angle := float64(speed) * elapsed
		return common.Vec3{
			X: center.X + radius*float32(math.Cos(angle)),
			Y: center.Y + radius*float32(math.Sin(angle)),
			Z: center.Z + depth,
		}
	}
}

// HorizontalOrbitMotion returns a MotionFunc circling center in the XZ plane at a fixed height,
// keeping a constant distance from center.
//
// Parameters:
//   - center: the orbit center
//   - radius: distance from center in the XZ plane
//   - speed: angular speed in radians per second
//   - height: Y offset above center
//
// Returns:
//   - MotionFunc: the motion function
func HorizontalOrbitMotion(center common.Vec3, radius, speed, height float32) MotionFunc {
	return func(elapsed float64) common.Vec3 {
		angle := float64(speed) * elapsed
		return common.Vec3{
			X: center.X + radius*float32(math.Sin(angle)),
			Y: center.Y + height,
			Z: center.Z + radius*float32(math.Cos(angle)),
		}
	}
}
