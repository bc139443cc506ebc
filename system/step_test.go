package system

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/component"
)

const dt = float32(1.0 / 60.0)

func step(cfg component.ControllerConfig, st *component.MotionState, in component.FrameInput, onFloor bool) component.Report {
	return Step(&cfg, st, in, component.GroundContact{OnFloor: onFloor}, dt, nil)
}

func TestStepScenarioFromRest(t *testing.T) {
	cfg := component.DefaultControllerConfig()
	var st component.MotionState

	step(cfg, &st, component.FrameInput{Movement: mgl32.Vec2{1, 0}}, false)

	want := mgl32.Vec3{14, -1.25, 0}
	if !st.Velocity.ApproxEqualThreshold(want, 1e-5) {
		t.Fatalf("velocity = %v, want %v", st.Velocity, want)
	}
}

func TestStepDecayInOneTick(t *testing.T) {
	cfg := component.DefaultControllerConfig()
	st := component.MotionState{Velocity: mgl32.Vec3{14, 0, 0}}

	step(cfg, &st, component.FrameInput{}, true)

	if st.Velocity.X() != 0 || st.Velocity.Z() != 0 {
		t.Fatalf("horizontal velocity = (%v, %v), want 0", st.Velocity.X(), st.Velocity.Z())
	}
}

func TestStepDecayReachesZeroWithoutSignChange(t *testing.T) {
	cfg := component.DefaultControllerConfig()
	cases := []mgl32.Vec3{
		{30, 0, -20},
		{-47.5, 0, 0.5},
		{0.1, 0, 13.99},
	}
	for _, v0 := range cases {
		st := component.MotionState{Velocity: v0}
		limit := int(math32.Ceil(math32.Max(math32.Abs(v0.X()), math32.Abs(v0.Z())) / cfg.Speed))
		for i := 0; i < limit; i++ {
			prev := st.Velocity
			step(cfg, &st, component.FrameInput{}, true)
			for _, axis := range []int{0, 2} {
				if prev[axis]*st.Velocity[axis] < 0 {
					t.Fatalf("v0 %v: axis %d changed sign %v -> %v", v0, axis, prev[axis], st.Velocity[axis])
				}
			}
		}
		if st.Velocity.X() != 0 || st.Velocity.Z() != 0 {
			t.Fatalf("v0 %v: not at rest after %d ticks: %v", v0, limit, st.Velocity)
		}
	}
}

func TestStepDiagonalSpeed(t *testing.T) {
	cfg := component.DefaultControllerConfig()
	for _, yaw := range []float32{0, 0.7, -2.1, math32.Pi} {
		st := component.MotionState{CameraYaw: yaw}
		in := component.FrameInput{Movement: common.LimitLength(mgl32.Vec2{1, -1})}
		step(cfg, &st, in, true)
		if got := common.HorizontalLen(st.Velocity); math32.Abs(got-cfg.Speed) > 1e-4 {
			t.Fatalf("yaw %v: horizontal speed = %v, want %v", yaw, got, cfg.Speed)
		}
	}
}

func TestStepAnalogSpeedNotScaledUp(t *testing.T) {
	cfg := component.DefaultControllerConfig()
	var st component.MotionState
	step(cfg, &st, component.FrameInput{Movement: mgl32.Vec2{0.5, 0}}, true)
	if got := common.HorizontalLen(st.Velocity); math32.Abs(got-7) > 1e-5 {
		t.Fatalf("half stick speed = %v, want 7", got)
	}
}

func TestStepCameraRelative(t *testing.T) {
	cfg := component.DefaultControllerConfig()
	st := component.MotionState{CameraYaw: math32.Pi / 2}

	step(cfg, &st, component.FrameInput{Movement: mgl32.Vec2{0, -1}}, true)

	if math32.Abs(st.Velocity.X()+14) > 1e-4 || math32.Abs(st.Velocity.Z()) > 1e-4 {
		t.Fatalf("forward at yaw pi/2 = %v, want (-14, _, 0)", st.Velocity)
	}
}

func TestStepJump(t *testing.T) {
	cfg := component.DefaultControllerConfig()
	cases := []struct {
		name    string
		vy      float32
		onFloor bool
		jump    bool
		want    float32
		jumped  bool
	}{
		{"grounded_jump", 0, true, true, 20 - 1.25, true},
		{"stacks_on_falling", -3, true, true, -3 + 20 - 1.25, true},
		{"stacks_on_rising", 5, true, true, 5 + 20 - 1.25, true},
		{"airborne_ignored", 0, false, true, -1.25, false},
		{"no_request", 0, true, false, -1.25, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			st := component.MotionState{Velocity: mgl32.Vec3{0, c.vy, 0}}
			rep := step(cfg, &st, component.FrameInput{JumpRequested: c.jump}, c.onFloor)
			if math32.Abs(st.Velocity.Y()-c.want) > 1e-5 {
				t.Fatalf("vy = %v, want %v", st.Velocity.Y(), c.want)
			}
			if rep.Jumped != c.jumped {
				t.Fatalf("Jumped = %v, want %v", rep.Jumped, c.jumped)
			}
		})
	}
}

func TestStepPitchClamp(t *testing.T) {
	cfg := component.DefaultControllerConfig()
	cases := []struct {
		name  string
		start float32
		look  float32
		want  float32
	}{
		{"above_max", 0.5, 1000, cfg.PitchMax},
		{"below_min", 0, -5000, cfg.PitchMin},
		{"inside", 0, 100, 0.1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			st := component.MotionState{CameraPitch: c.start}
			in := component.FrameInput{Look: mgl32.Vec2{0, c.look}, LookSource: component.LookMouse}
			step(cfg, &st, in, true)
			if math32.Abs(st.CameraPitch-c.want) > 1e-6 {
				t.Fatalf("pitch = %v, want %v", st.CameraPitch, c.want)
			}
			if st.CameraPitch < cfg.PitchMin || st.CameraPitch > cfg.PitchMax {
				t.Fatalf("pitch %v escaped [%v, %v]", st.CameraPitch, cfg.PitchMin, cfg.PitchMax)
			}
		})
	}
}

func TestStepLookSensitivityBySource(t *testing.T) {
	cfg := component.DefaultControllerConfig()
	cases := []struct {
		name   string
		source component.LookSource
		want   float32
	}{
		{"controller", component.LookController, -cfg.ControllerLookSensitivity},
		{"mouse", component.LookMouse, -cfg.MouseLookSensitivity},
		{"none", component.LookNone, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var st component.MotionState
			step(cfg, &st, component.FrameInput{Look: mgl32.Vec2{1, 0}, LookSource: c.source}, true)
			if st.CameraYaw != c.want {
				t.Fatalf("yaw = %v, want %v", st.CameraYaw, c.want)
			}
		})
	}
}

func TestStepBodyYaw(t *testing.T) {
	cfg := component.DefaultControllerConfig()

	t.Run("turns_toward_velocity", func(t *testing.T) {
		var st component.MotionState
		step(cfg, &st, component.FrameInput{Movement: mgl32.Vec2{1, 0}}, true)
		want := cfg.OrientationSmoothing * -math32.Pi / 2
		if math32.Abs(st.BodyYaw-want) > 1e-5 {
			t.Fatalf("body yaw = %v, want %v", st.BodyYaw, want)
		}
	})

	t.Run("idle_keeps_heading", func(t *testing.T) {
		st := component.MotionState{BodyYaw: 0.3, Velocity: mgl32.Vec3{5, 0, 5}}
		step(cfg, &st, component.FrameInput{}, true)
		if st.BodyYaw != 0.3 {
			t.Fatalf("body yaw = %v, want 0.3", st.BodyYaw)
		}
	})

	t.Run("blocked_keeps_heading", func(t *testing.T) {
		st := component.MotionState{BodyYaw: 0.3}
		Step(&cfg, &st, component.FrameInput{Movement: mgl32.Vec2{1, 0}}, component.GroundContact{OnFloor: true}, dt,
			func(v mgl32.Vec3) mgl32.Vec3 { return mgl32.Vec3{0, v.Y(), 0} })
		if st.BodyYaw != 0.3 {
			t.Fatalf("body yaw = %v, want 0.3", st.BodyYaw)
		}
	})

	t.Run("converges", func(t *testing.T) {
		var st component.MotionState
		for i := 0; i < 200; i++ {
			step(cfg, &st, component.FrameInput{Movement: mgl32.Vec2{0, 1}}, true)
		}
		// moving back (+Z) faces atan2(0, -14) = pi
		if math32.Abs(math32.Abs(st.BodyYaw)-math32.Pi) > 1e-3 {
			t.Fatalf("body yaw = %v, want +-pi", st.BodyYaw)
		}
	})
}

func TestStepStoresResolvedVelocity(t *testing.T) {
	cfg := component.DefaultControllerConfig()
	var st component.MotionState
	var desired mgl32.Vec3

	rep := Step(&cfg, &st, component.FrameInput{Movement: mgl32.Vec2{1, 0}}, component.GroundContact{}, dt,
		func(v mgl32.Vec3) mgl32.Vec3 {
			desired = v
			return mgl32.Vec3{5, 0, 0}
		})

	if st.Velocity != (mgl32.Vec3{5, 0, 0}) {
		t.Fatalf("stored velocity = %v, want resolver result", st.Velocity)
	}
	if rep.Desired != desired || rep.Actual != st.Velocity {
		t.Fatalf("report %+v does not match desired %v", rep, desired)
	}
}
