package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-sketch/common"
)

func near(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func TestScriptedMotionKeepsRadiusAndAim(t *testing.T) {
	center := common.Vec3{}
	cam := NewCamera(WithDrive(Scripted(HorizontalOrbitMotion(center, 4, 1.5, 0), center)))

	for _, elapsed := range []float64{0, 0.25, 1, 2.5, 10} {
		cam.ApplyMotion(elapsed)
		if got := cam.Position().DistanceTo(center); !near(got, 4, 1e-5) {
			t.Fatalf("distance at t=%v = %v, want 4", elapsed, got)
		}
		// The forward vector must point from the camera straight at the object.
		toObject := center.Sub(cam.Position())
		toObject.Normalize()
		fwd := cam.Forward()
		if dot := fwd.Vec().Dot(toObject.Vec()); !near(dot, 1, 1e-5) {
			t.Fatalf("forward . toObject at t=%v = %v, want 1", elapsed, dot)
		}
	}
}

func TestCircularMotionFormula(t *testing.T) {
	m := CircularMotion(common.Vec3{}, 1, 1, 3)
	p := m(math.Pi / 2)
	if !near(p.X, 0, 1e-6) || !near(p.Y, 1, 1e-6) || p.Z != 3 {
		t.Fatalf("CircularMotion(pi/2) = %v, want (0, 1, 3)", p)
	}
}

func TestApplyMotionIgnoredWhenNotScripted(t *testing.T) {
	ctrl := NewCameraController(WithStartPosition(0, 0, 3))
	cam := NewCamera(WithController(ctrl))
	before := cam.Position()
	cam.ApplyMotion(5)
	if cam.Position() != before {
		t.Fatalf("ApplyMotion moved a user-controlled camera: %v -> %v", before, cam.Position())
	}
}

func TestDriveVariants(t *testing.T) {
	if d := Scripted(nil, common.Vec3{}); d.Mode() != DriveStatic {
		t.Fatalf("Scripted(nil).Mode() = %v, want static", d.Mode())
	}
	if d := UserControlled(nil); d.Mode() != DriveStatic {
		t.Fatalf("UserControlled(nil).Mode() = %v, want static", d.Mode())
	}
	ctrl := NewCameraController()
	cam := NewCamera(WithController(ctrl))
	if cam.Controller() != ctrl {
		t.Fatalf("Controller() did not return the attached controller")
	}
	cam.SetDrive(Scripted(CircularMotion(common.Vec3{}, 1, 1, 0), common.Vec3{}))
	if cam.Controller() != nil {
		t.Fatalf("Controller() after switching to scripted = %v, want nil", cam.Controller())
	}
	if got := DriveUserControlled.String(); got != "user-controlled" {
		t.Fatalf("String() = %q", got)
	}
}

func TestDampedUpdateConvergesMonotonically(t *testing.T) {
	ctrl := NewCameraController(WithDamping(true), WithDampingFactor(0.05), WithRadius(5))
	ctrl.Rotate(1.2, 0)

	initial := ctrl.Position().DistanceTo(ctrl.GoalPosition())
	if initial == 0 {
		t.Fatalf("damped Rotate moved the camera immediately")
	}
	prev := initial
	for i := 1; i <= 100; i++ {
		ctrl.Update()
		errNow := ctrl.Position().DistanceTo(ctrl.GoalPosition())
		if errNow > prev {
			t.Fatalf("error increased at call %d: %v > %v", i, errNow, prev)
		}
		prev = errNow
	}
	if prev > initial*0.01 {
		t.Fatalf("error after 100 updates = %v, want <= 1%% of %v", prev, initial)
	}
}

func TestDampedUpdateAfterTargetChange(t *testing.T) {
	ctrl := NewCameraController(WithDamping(true), WithDampingFactor(0.1), WithRadius(3))
	for range 10 {
		ctrl.Update()
	}
	ctrl.SetTarget(common.Vec3{X: 1, Y: 0.5, Z: -1})
	for range 50 {
		ctrl.Update()
	}
	if got := ctrl.Position().DistanceTo(ctrl.GoalPosition()); got >= 1e-3 {
		t.Fatalf("position error after 50 updates = %v, want < 1e-3", got)
	}
	if got := ctrl.Target().DistanceTo(ctrl.GoalTarget()); got >= 1e-3 {
		t.Fatalf("target error after 50 updates = %v, want < 1e-3", got)
	}
}

func TestUndampedInputAppliesImmediately(t *testing.T) {
	ctrl := NewCameraController(WithRadius(5))
	ctrl.SetAzimuth(float32(math.Pi / 2))
	if p := ctrl.Position(); !near(p.X, 5, 1e-5) || !near(p.Z, 0, 1e-5) {
		t.Fatalf("Position() after SetAzimuth(pi/2) = %v, want (5, 0, 0)", p)
	}
	if ctrl.Update() {
		t.Fatalf("Update() on settled undamped controller reported movement")
	}
}

func TestDisablingDampingSnapsToGoal(t *testing.T) {
	ctrl := NewCameraController(WithDamping(true))
	ctrl.Zoom(10)
	if ctrl.Position() == ctrl.GoalPosition() {
		t.Fatalf("damped Zoom applied immediately")
	}
	ctrl.EnableDamping(false)
	if ctrl.Position() != ctrl.GoalPosition() {
		t.Fatalf("EnableDamping(false) left pose %v, goal %v", ctrl.Position(), ctrl.GoalPosition())
	}
}

func TestZoomAndClamping(t *testing.T) {
	ctrl := NewCameraController(WithRadius(4), WithRadiusBounds(1, 10), WithElevationBounds(-0.5, 0.5))
	ctrl.Zoom(1)
	if got := ctrl.Radius(); !near(got, 3.8, 1e-5) {
		t.Fatalf("Radius() after Zoom(1) = %v, want 3.8", got)
	}
	ctrl.SetRadius(100)
	if got := ctrl.Radius(); got != 10 {
		t.Fatalf("Radius() after SetRadius(100) = %v, want 10", got)
	}
	ctrl.SetElevation(2)
	if got := ctrl.Elevation(); got != 0.5 {
		t.Fatalf("Elevation() after SetElevation(2) = %v, want 0.5", got)
	}
	ctrl.Rotate(0, -5)
	if got := ctrl.Elevation(); got != -0.5 {
		t.Fatalf("Elevation() after Rotate(0, -5) = %v, want -0.5", got)
	}
}

func TestRotateByPixels(t *testing.T) {
	ctrl := NewCameraController()
	ctrl.RotateByPixels(100, 0, 800)
	want := float32(-2 * math.Pi * 100 / 800)
	if got := ctrl.Azimuth(); !near(got, want, 1e-5) {
		t.Fatalf("Azimuth() after drag = %v, want %v", got, want)
	}
	ctrl.RotateByPixels(100, 0, 0)
	if got := ctrl.Azimuth(); !near(got, want, 1e-5) {
		t.Fatalf("zero-height drag changed azimuth to %v", got)
	}
}

func TestPanPreservesOrbit(t *testing.T) {
	ctrl := NewCameraController(WithRadius(3))
	ctrl.PanRight(2)
	if tg := ctrl.Target(); !near(tg.X, 2, 1e-5) || !near(tg.Z, 0, 1e-5) {
		t.Fatalf("Target() after PanRight(2) = %v, want (2, 0, 0)", tg)
	}
	if got := ctrl.Position().DistanceTo(ctrl.Target()); !near(got, 3, 1e-5) {
		t.Fatalf("orbit radius after pan = %v, want 3", got)
	}
}

func TestSetPositionDerivesSpherical(t *testing.T) {
	ctrl := NewCameraController(WithStartPosition(3, 0, 0))
	if got := ctrl.Radius(); !near(got, 3, 1e-5) {
		t.Fatalf("Radius() = %v, want 3", got)
	}
	if got := ctrl.Azimuth(); !near(got, float32(math.Pi/2), 1e-5) {
		t.Fatalf("Azimuth() = %v, want pi/2", got)
	}
	if p := ctrl.Position(); !near(p.X, 3, 1e-5) || !near(p.Y, 0, 1e-5) || !near(p.Z, 0, 1e-5) {
		t.Fatalf("Position() = %v, want (3, 0, 0)", p)
	}
}

func TestCameraFollowsControllerOnUpdate(t *testing.T) {
	ctrl := NewCameraController(WithDamping(true), WithRadius(3))
	cam := NewCamera(WithController(ctrl))
	ctrl.Rotate(1, 0)
	ctrl.Update()
	cam.Update()
	if cam.Position() != ctrl.Position() {
		t.Fatalf("camera position %v, controller %v", cam.Position(), ctrl.Position())
	}
}

func TestSetAspectUpdatesProjection(t *testing.T) {
	cam := NewCamera()
	before := cam.ProjectionMatrix()
	cam.SetAspect(1024.0 / 768.0)
	if cam.Aspect() != float32(1024.0/768.0) {
		t.Fatalf("Aspect() = %v", cam.Aspect())
	}
	if cam.ProjectionMatrix() == before {
		t.Fatalf("ProjectionMatrix() unchanged after SetAspect")
	}
	cam.SetAspect(0)
	if cam.Aspect() != float32(1024.0/768.0) {
		t.Fatalf("SetAspect(0) changed aspect to %v", cam.Aspect())
	}
}

func TestGPUCameraUniformMarshal(t *testing.T) {
	u := NewGPUCameraUniform(NewCamera())
	if got := len(u.Marshal()); got != 80 {
		t.Fatalf("len(Marshal()) = %d, want 80", got)
	}
	if u.CameraPosition != [3]float32{0, 0, 5} {
		t.Fatalf("CameraPosition = %v, want (0, 0, 5)", u.CameraPosition)
	}
}
