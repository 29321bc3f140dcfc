package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-sketch/common"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	position common.Vec3
	target   common.Vec3
	up       common.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix              mgl32.Mat4
	projectionMatrix        mgl32.Mat4
	viewProjectionMatrix    mgl32.Mat4
	inverseProjectionMatrix mgl32.Mat4

	drive Drive
}

// Camera defines the interface for the camera system.
// The camera holds its pose and perspective settings and recomputes view/projection
// matrices after every pose or projection change. The pose is written either by a
// scripted motion (ApplyMotion) or by the attached orbit controller (Update), as
// selected by the camera's Drive.
//
// Cameras are owned by a single frame loop thread and are not safe for concurrent use.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - common.Vec3: the camera position
	Position() common.Vec3

	// Target returns the world-space point the camera looks at.
	//
	// Returns:
	//   - common.Vec3: the look-at point
	Target() common.Vec3

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - common.Vec3: the up vector
	Up() common.Vec3

	// Forward returns the unit view direction (target - position).
	// Returns the zero vector when position and target coincide.
	//
	// Returns:
	//   - common.Vec3: the normalised view direction
	Forward() common.Vec3

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ViewMatrix returns the current column-major view matrix.
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current column-major projection matrix.
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	ViewProjectionMatrix() mgl32.Mat4

	// InverseProjectionMatrix returns the inverse of the projection matrix.
	InverseProjectionMatrix() mgl32.Mat4

	// Drive returns the camera's drive.
	//
	// Returns:
	//   - Drive: the active drive (static when none was configured)
	Drive() Drive

	// SetDrive replaces the camera's drive. A user-controlled drive immediately
	// syncs the camera pose from its controller.
	//
	// Parameters:
	//   - d: the new drive
	SetDrive(d Drive)

	// Controller returns the orbit controller when the drive is user-controlled, nil otherwise.
	//
	// Returns:
	//   - CameraController: the attached controller or nil
	Controller() CameraController

	// ApplyMotion positions the camera from the scripted drive's motion function at the
	// given elapsed time and re-aims it at the drive's fixed target. Does nothing unless
	// the drive is scripted.
	//
	// Parameters:
	//   - elapsed: seconds since the session clock started
	ApplyMotion(elapsed float64)

	// Update copies position and target from the user-controlled drive's controller and
	// recomputes the matrices. It does not integrate damping; the frame loop calls the
	// controller's Update exactly once per frame before calling this.
	Update()

	// SetPosition moves the camera and recomputes matrices.
	//
	// Parameters:
	//   - p: world-space position
	SetPosition(p common.Vec3)

	// LookAt aims the camera at a world-space point and recomputes matrices.
	//
	// Parameters:
	//   - target: the point to look at
	LookAt(target common.Vec3)

	// SetUp sets the camera's up vector.
	//
	// Parameters:
	//   - up: the up vector
	SetUp(up common.Vec3)

	// SetFov sets the field of view in radians and recomputes matrices.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	// Non-positive or non-finite values are ignored.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings: 45 degree fov,
// aspect 1, near 0.1, far 100, positioned at (0, 0, 5) looking at the origin.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		position: common.Vec3{Z: 5},
		up:       common.Vec3{Y: 1},
		fov:      45.0 * (math.Pi / 180.0), // radians
		aspect:   1.0,
		near:     0.1,
		far:      100.0,
	}
	for _, option := range options {
		option(c)
	}
	c.syncFromController()
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() common.Vec3 {
	return c.position
}

func (c *cameraImpl) Target() common.Vec3 {
	return c.target
}

func (c *cameraImpl) Up() common.Vec3 {
	return c.up
}

func (c *cameraImpl) Forward() common.Vec3 {
	f := c.target.Sub(c.position)
	f.Normalize()
	return f
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	return c.viewProjectionMatrix
}

func (c *cameraImpl) InverseProjectionMatrix() mgl32.Mat4 {
	return c.inverseProjectionMatrix
}

func (c *cameraImpl) Drive() Drive {
	return c.drive
}

func (c *cameraImpl) SetDrive(d Drive) {
	c.drive = d
	c.syncFromController()
	c.updateMatrices()
}

func (c *cameraImpl) Controller() CameraController {
	return c.drive.Controller()
}

func (c *cameraImpl) ApplyMotion(elapsed float64) {
	if c.drive.Mode() != DriveScripted {
		return
	}
	c.position = c.drive.Motion()(elapsed)
	c.target = c.drive.Aim()
	c.updateMatrices()
}

func (c *cameraImpl) Update() {
	if c.drive.Mode() != DriveUserControlled {
		return
	}
	c.syncFromController()
	c.updateMatrices()
}

func (c *cameraImpl) SetPosition(p common.Vec3) {
	c.position = p
	c.updateMatrices()
}

func (c *cameraImpl) LookAt(target common.Vec3) {
	c.target = target
	c.updateMatrices()
}

func (c *cameraImpl) SetUp(up common.Vec3) {
	c.up = up
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 || math.IsInf(float64(aspect), 0) || math.IsNaN(float64(aspect)) {
		return
	}
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.far = far
	c.updateMatrices()
}

// syncFromController copies the controller pose when the drive is user-controlled.
func (c *cameraImpl) syncFromController() {
	ctrl := c.drive.Controller()
	if ctrl == nil {
		return
	}
	c.position = ctrl.Position()
	c.target = ctrl.Target()
}

// updateMatrices recalculates the view, projection, view-projection, and inverse projection matrices
// from the current pose and perspective settings.
func (c *cameraImpl) updateMatrices() {
	c.viewMatrix = common.LookAt(c.position, c.target, c.up)
	c.projectionMatrix = common.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
	c.inverseProjectionMatrix, _ = common.Invert4(c.projectionMatrix)
}
