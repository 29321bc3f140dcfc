package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-sketch/common"
	"github.com/go-gl/mathgl/mgl32"
)

// dampingSubsteps is the number of goal-approach steps applied per Update call.
const dampingSubsteps = 2

// settleEpsilon is the residual below which the current pose snaps onto the goal.
const settleEpsilon = 1e-6

// orbitState is a pose in spherical coordinates around a target.
type orbitState struct {
	radius    float32
	azimuth   float32 // Horizontal angle around Y axis
	elevation float32 // Vertical angle from horizontal plane
	target    common.Vec3
}

// position converts the spherical pose into a world-space position.
func (s orbitState) position() common.Vec3 {
	cosElev := float32(math.Cos(float64(s.elevation)))
	sinElev := float32(math.Sin(float64(s.elevation)))
	cosAzim := float32(math.Cos(float64(s.azimuth)))
	sinAzim := float32(math.Sin(float64(s.azimuth)))

	return common.Vec3{
		X: s.target.X + s.radius*cosElev*sinAzim,
		Y: s.target.Y + s.radius*sinElev,
		Z: s.target.Z + s.radius*cosElev*cosAzim,
	}
}

// approach moves every component a fraction f of the way toward goal.
func (s *orbitState) approach(goal orbitState, f float32) {
	s.radius += (goal.radius - s.radius) * f
	s.azimuth += (goal.azimuth - s.azimuth) * f
	s.elevation += (goal.elevation - s.elevation) * f
	s.target = s.target.Add(goal.target.Sub(s.target).Scale(f))
}

// residual returns the largest absolute component difference to goal.
func (s orbitState) residual(goal orbitState) float32 {
	d := goal.target.Sub(s.target)
	r := float32(0)
	for _, v := range []float32{
		goal.radius - s.radius,
		goal.azimuth - s.azimuth,
		goal.elevation - s.elevation,
		d.X, d.Y, d.Z,
	} {
		r = max(r, float32(math.Abs(float64(v))))
	}
	return r
}

// cameraControllerImpl is the single implementation of CameraController.
// Input methods write the goal pose; Update walks the current pose toward it.
// Owned by the frame loop thread, no locking.
type cameraControllerImpl struct {
	current orbitState
	goal    orbitState

	// Orbit constraints
	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	// Speed settings
	orbitSpeed  float32
	rotateSpeed float32
	zoomSpeed   float32
	panSpeed    float32

	// Damping
	dampingEnabled bool
	dampingFactor  float32

	// startPosition, when set by an option, overrides the initial spherical coordinates.
	startPosition *common.Vec3
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new camera controller with defaults matching a small
// tutorial scene: radius 3 on the +Z side of the origin, damping disabled with a
// factor of 0.05 ready for EnableDamping.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		goal: orbitState{
			radius: 3.0,
		},

		minRadius:    0.01,
		maxRadius:    1000.0,
		minElevation: float32(-math.Pi/2 + 0.01),
		maxElevation: float32(math.Pi/2 - 0.01),

		orbitSpeed:  0.03,
		rotateSpeed: 1.0,
		zoomSpeed:   1.0,
		panSpeed:    1.0,

		dampingFactor: 0.05,
	}

	for _, option := range options {
		option(cc)
	}

	if cc.minRadius > cc.maxRadius {
		cc.minRadius, cc.maxRadius = cc.maxRadius, cc.minRadius
	}
	if cc.minElevation > cc.maxElevation {
		cc.minElevation, cc.maxElevation = cc.maxElevation, cc.minElevation
	}
	if cc.startPosition != nil {
		cc.setGoalFromPosition(*cc.startPosition)
	}
	cc.clampGoal()
	cc.current = cc.goal
	return cc
}

// NewOrbitController creates a new camera controller configured for orbit-style control.
// Shorthand for NewCameraController.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewOrbitController(options ...CameraControllerOption) CameraController {
	return NewCameraController(options...)
}

// --- internal helpers ---

// clampGoal keeps the goal radius and elevation inside their bounds.
func (cc *cameraControllerImpl) clampGoal() {
	cc.goal.radius = common.Clamp(cc.goal.radius, cc.minRadius, cc.maxRadius)
	cc.goal.elevation = common.Clamp(cc.goal.elevation, cc.minElevation, cc.maxElevation)
}

// commit clamps the goal and, without damping, applies it immediately.
// Every input method ends with commit.
func (cc *cameraControllerImpl) commit() {
	cc.clampGoal()
	if !cc.dampingEnabled {
		cc.current = cc.goal
	}
}

// setGoalFromPosition derives goal spherical coordinates from a world position.
// Positions coinciding with the target are ignored.
func (cc *cameraControllerImpl) setGoalFromPosition(p common.Vec3) {
	offset := p.Sub(cc.goal.target)
	r := offset.Length()
	if r < 1e-8 {
		return
	}
	cc.goal.radius = r
	cc.goal.elevation = float32(math.Asin(float64(common.Clamp(offset.Y/r, -1, 1))))
	cc.goal.azimuth = float32(math.Atan2(float64(offset.X), float64(offset.Z)))
}

// localAxes computes the goal pose's local axes consistent with the LookAt matrix.
// Returns right, up, and forward unit vectors.
func (cc *cameraControllerImpl) localAxes() (right, up, forward mgl32.Vec3) {
	// backward = normalize(position - target), matching LookAt's z-axis
	backward := cc.goal.position().Sub(cc.goal.target).Vec()
	if backward.Len() < 1e-8 {
		return
	}
	backward = backward.Normalize()

	// right = normalize(cross(worldUp, backward)); elevation bounds keep this non-degenerate
	right = mgl32.Vec3{0, 1, 0}.Cross(backward)
	if right.Len() < 1e-8 {
		return mgl32.Vec3{}, mgl32.Vec3{}, backward.Mul(-1)
	}
	right = right.Normalize()

	up = backward.Cross(right)
	forward = backward.Mul(-1)
	return
}

// pan shifts the goal target along axis by amount.
func (cc *cameraControllerImpl) pan(axis mgl32.Vec3, amount float32) {
	cc.goal.target = cc.goal.target.Add(common.Vec3FromMgl(axis.Mul(amount)))
	cc.commit()
}

// --- CameraController shared methods ---

func (cc *cameraControllerImpl) Position() common.Vec3 {
	return cc.current.position()
}

func (cc *cameraControllerImpl) Target() common.Vec3 {
	return cc.current.target
}

func (cc *cameraControllerImpl) GoalPosition() common.Vec3 {
	return cc.goal.position()
}

func (cc *cameraControllerImpl) GoalTarget() common.Vec3 {
	return cc.goal.target
}

func (cc *cameraControllerImpl) SetTarget(target common.Vec3) {
	cc.goal.target = target
	cc.commit()
}

func (cc *cameraControllerImpl) SetPosition(position common.Vec3) {
	cc.setGoalFromPosition(position)
	cc.commit()
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.goal.radius *= float32(math.Pow(0.95, float64(delta*cc.zoomSpeed)))
	cc.commit()
}

func (cc *cameraControllerImpl) ZoomSpeed() float32 {
	return cc.zoomSpeed
}

// --- orbitCameraController implementation ---

func (cc *cameraControllerImpl) Rotate(dAzimuth, dElevation float32) {
	cc.goal.azimuth += dAzimuth
	cc.goal.elevation += dElevation
	cc.commit()
}

func (cc *cameraControllerImpl) RotateByPixels(dx, dy, viewportHeight float32) {
	if viewportHeight <= 0 {
		return
	}
	turn := 2 * math.Pi / viewportHeight * cc.rotateSpeed
	cc.Rotate(-dx*turn, dy*turn)
}

func (cc *cameraControllerImpl) OrbitLeft() {
	cc.Rotate(-cc.orbitSpeed, 0)
}

func (cc *cameraControllerImpl) OrbitRight() {
	cc.Rotate(cc.orbitSpeed, 0)
}

func (cc *cameraControllerImpl) OrbitUp() {
	cc.Rotate(0, cc.orbitSpeed)
}

func (cc *cameraControllerImpl) OrbitDown() {
	cc.Rotate(0, -cc.orbitSpeed)
}

func (cc *cameraControllerImpl) Radius() float32 {
	return cc.current.radius
}

func (cc *cameraControllerImpl) SetRadius(radius float32) {
	cc.goal.radius = radius
	cc.commit()
}

func (cc *cameraControllerImpl) MinRadius() float32 {
	return cc.minRadius
}

func (cc *cameraControllerImpl) MaxRadius() float32 {
	return cc.maxRadius
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	return cc.current.azimuth
}

func (cc *cameraControllerImpl) SetAzimuth(azimuth float32) {
	cc.goal.azimuth = azimuth
	cc.commit()
}

func (cc *cameraControllerImpl) Elevation() float32 {
	return cc.current.elevation
}

func (cc *cameraControllerImpl) SetElevation(elevation float32) {
	cc.goal.elevation = elevation
	cc.commit()
}

func (cc *cameraControllerImpl) MinElevation() float32 {
	return cc.minElevation
}

func (cc *cameraControllerImpl) MaxElevation() float32 {
	return cc.maxElevation
}

func (cc *cameraControllerImpl) OrbitSpeed() float32 {
	return cc.orbitSpeed
}

func (cc *cameraControllerImpl) RotateSpeed() float32 {
	return cc.rotateSpeed
}

// --- planarCameraController implementation ---

func (cc *cameraControllerImpl) PanRight(delta float32) {
	right, _, _ := cc.localAxes()
	cc.pan(right, delta*cc.panSpeed)
}

func (cc *cameraControllerImpl) PanUp(delta float32) {
	_, up, _ := cc.localAxes()
	cc.pan(up, delta*cc.panSpeed)
}

func (cc *cameraControllerImpl) PanForward(delta float32) {
	_, _, forward := cc.localAxes()
	cc.pan(forward, delta*cc.panSpeed)
}

func (cc *cameraControllerImpl) PanByPixels(dx, dy, viewportHeight, fov float32) {
	if viewportHeight <= 0 {
		return
	}
	// world units covered by one pixel at the target's depth
	perPixel := 2 * cc.goal.radius * float32(math.Tan(float64(fov)/2)) / viewportHeight
	right, up, _ := cc.localAxes()
	offset := right.Mul(-dx * perPixel).Add(up.Mul(dy * perPixel))
	cc.pan(offset, cc.panSpeed)
}

func (cc *cameraControllerImpl) PanSpeed() float32 {
	return cc.panSpeed
}

// --- dampedCameraController implementation ---

func (cc *cameraControllerImpl) Update() bool {
	before := cc.current.position()
	beforeTarget := cc.current.target
	if cc.dampingEnabled {
		for range dampingSubsteps {
			cc.current.approach(cc.goal, cc.dampingFactor)
		}
		if cc.current.residual(cc.goal) < settleEpsilon {
			cc.current = cc.goal
		}
	} else {
		cc.current = cc.goal
	}
	return before != cc.current.position() || beforeTarget != cc.current.target
}

func (cc *cameraControllerImpl) DampingEnabled() bool {
	return cc.dampingEnabled
}

func (cc *cameraControllerImpl) EnableDamping(enabled bool) {
	cc.dampingEnabled = enabled
	if !enabled {
		cc.current = cc.goal
	}
}

func (cc *cameraControllerImpl) DampingFactor() float32 {
	return cc.dampingFactor
}

func (cc *cameraControllerImpl) SetDampingFactor(factor float32) {
	if factor <= 0 || math.IsNaN(float64(factor)) {
		return
	}
	cc.dampingFactor = min(factor, 1)
}
