package camera

import "github.com/Carmen-Shannon/oxy-sketch/common"

// CameraController defines the union interface for camera control systems.
// Controllers own positional state (position, target). Camera reads from controller
// and computes view/projection matrices. Embeds orbitCameraController,
// planarCameraController and dampedCameraController, so orbit and pan input can be
// mixed on a single controller instance and smoothed by the same damping step.
//
// Every input method moves the goal pose. With damping disabled the current pose
// jumps to the goal immediately; with damping enabled Update moves the current pose
// toward the goal by a fixed fraction per call.
type CameraController interface {
	orbitCameraController
	planarCameraController
	dampedCameraController

	// Position returns the camera's current world-space position.
	//
	// Returns:
	//   - common.Vec3: world-space camera position
	Position() common.Vec3

	// Target returns the current look-at point.
	//
	// Returns:
	//   - common.Vec3: world-space target position
	Target() common.Vec3

	// GoalPosition returns the position the controller is converging to.
	// Equal to Position when damping is disabled or has settled.
	//
	// Returns:
	//   - common.Vec3: world-space goal position
	GoalPosition() common.Vec3

	// GoalTarget returns the look-at point the controller is converging to.
	//
	// Returns:
	//   - common.Vec3: world-space goal target
	GoalTarget() common.Vec3

	// SetTarget sets the look-at/pivot point, keeping the orbit angles and radius.
	//
	// Parameters:
	//   - target: world-space coordinates
	SetTarget(target common.Vec3)

	// SetPosition moves the camera by deriving radius, azimuth and elevation from
	// position - target. The derived values are clamped like any other orbit input.
	//
	// Parameters:
	//   - position: world-space coordinates
	SetPosition(position common.Vec3)

	// Zoom scales the orbit radius by 0.95^(delta*ZoomSpeed).
	// Positive delta zooms in (closer to target).
	//
	// Parameters:
	//   - delta: zoom amount, typically wheel notches
	Zoom(delta float32)

	// ZoomSpeed returns the zoom speed multiplier.
	//
	// Returns:
	//   - float32: multiplier for zoom input
	ZoomSpeed() float32
}

// orbitCameraController defines orbit-specific control methods.
// Provides third-person orbit controls using spherical coordinates (radius, azimuth, elevation)
// relative to the target/pivot point. Azimuth 0 places the camera on the +Z side of the target.
type orbitCameraController interface {
	// Rotate adds to the goal azimuth and elevation. Elevation is clamped to its bounds.
	//
	// Parameters:
	//   - dAzimuth: azimuth change in radians
	//   - dElevation: elevation change in radians
	Rotate(dAzimuth, dElevation float32)

	// RotateByPixels converts a pointer drag into a rotation. A drag across the full
	// viewport height turns the camera by 2*pi*RotateSpeed. Dragging right orbits the
	// camera to the left around the target, dragging down raises it.
	// Ignored when viewportHeight is not positive.
	//
	// Parameters:
	//   - dx, dy: pointer movement in pixels since the previous move event
	//   - viewportHeight: viewport height in pixels
	RotateByPixels(dx, dy, viewportHeight float32)

	// OrbitLeft rotates the camera left around the target by one orbit speed step.
	OrbitLeft()

	// OrbitRight rotates the camera right around the target by one orbit speed step.
	OrbitRight()

	// OrbitUp tilts the camera upward by one orbit speed step, clamped to max elevation.
	OrbitUp()

	// OrbitDown tilts the camera downward by one orbit speed step, clamped to min elevation.
	OrbitDown()

	// Radius returns the current orbit radius (distance from target).
	//
	// Returns:
	//   - float32: current distance from target
	Radius() float32

	// SetRadius sets the goal orbit radius, clamped to min/max bounds.
	//
	// Parameters:
	//   - radius: new distance from target
	SetRadius(radius float32)

	// MinRadius returns the minimum allowed orbit radius.
	//
	// Returns:
	//   - float32: minimum zoom distance
	MinRadius() float32

	// MaxRadius returns the maximum allowed orbit radius.
	//
	// Returns:
	//   - float32: maximum zoom distance
	MaxRadius() float32

	// Azimuth returns the current horizontal angle around the Y axis.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// SetAzimuth sets the goal horizontal angle.
	//
	// Parameters:
	//   - azimuth: new horizontal angle in radians
	SetAzimuth(azimuth float32)

	// Elevation returns the current vertical angle from the horizontal plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// SetElevation sets the goal vertical angle, clamped to min/max bounds.
	//
	// Parameters:
	//   - elevation: new vertical angle in radians
	SetElevation(elevation float32)

	// MinElevation returns the minimum allowed elevation angle.
	//
	// Returns:
	//   - float32: minimum elevation in radians
	MinElevation() float32

	// MaxElevation returns the maximum allowed elevation angle.
	//
	// Returns:
	//   - float32: maximum elevation in radians
	MaxElevation() float32

	// OrbitSpeed returns the keyboard orbit speed in radians per step.
	//
	// Returns:
	//   - float32: radians per orbit call
	OrbitSpeed() float32

	// RotateSpeed returns the pointer drag rotation multiplier.
	//
	// Returns:
	//   - float32: multiplier for pointer rotation
	RotateSpeed() float32
}

// planarCameraController defines planar translation control methods.
// Provides first-person-style panning along the camera's local axes without
// changing orbit angles. Panning shifts the goal target, and with it the goal
// position, by the same offset, preserving the orbit relationship.
type planarCameraController interface {
	// PanRight translates the camera along its local right axis.
	// Positive delta moves right, negative moves left.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanRight(delta float32)

	// PanUp translates the camera along its local up axis.
	// Positive delta moves up, negative moves down.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanUp(delta float32)

	// PanForward translates the camera along its local forward axis (dolly).
	// Positive delta moves toward the target, negative moves away.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanForward(delta float32)

	// PanByPixels converts a pointer drag into a pan so that the target follows the
	// pointer at the target's depth. Ignored when viewportHeight is not positive.
	//
	// Parameters:
	//   - dx, dy: pointer movement in pixels
	//   - viewportHeight: viewport height in pixels
	//   - fov: the camera's vertical field of view in radians
	PanByPixels(dx, dy, viewportHeight, fov float32)

	// PanSpeed returns the pan speed multiplier.
	//
	// Returns:
	//   - float32: multiplier for pan input
	PanSpeed() float32
}

// dampedCameraController defines the damping step and its configuration.
type dampedCameraController interface {
	// Update integrates one damping step: two sub-steps of current += (goal - current) * DampingFactor
	// on radius, azimuth, elevation and target, so the remaining error shrinks by
	// (1 - DampingFactor)^2 per call. The step is not scaled by frame time. With damping
	// disabled the current pose already equals the goal and Update only reports that.
	//
	// Returns:
	//   - bool: true when the current pose moved during this call
	Update() bool

	// DampingEnabled reports whether Update smooths toward the goal.
	//
	// Returns:
	//   - bool: true when damping is enabled
	DampingEnabled() bool

	// EnableDamping turns damping on or off. Turning it off snaps the current pose to the goal.
	//
	// Parameters:
	//   - enabled: the new damping state
	EnableDamping(enabled bool)

	// DampingFactor returns the per-sub-step fraction of the error removed by Update.
	//
	// Returns:
	//   - float32: factor in (0, 1]
	DampingFactor() float32

	// SetDampingFactor sets the damping factor, clamped to (0, 1]. Non-positive values are ignored.
	//
	// Parameters:
	//   - factor: fraction of the error removed per sub-step
	SetDampingFactor(factor float32)
}
