package system

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/component"
)

// directionEpsilon is the movement direction length below which the body
// keeps its last heading.
const directionEpsilon = 1e-4

// ResolveFunc takes the desired velocity of a tick and returns the velocity
// actually achieved after collisions.
type ResolveFunc func(desired mgl32.Vec3) mgl32.Vec3

// Step advances st by one tick. It reads nothing but its arguments, so a
// recorded sequence of inputs, contacts and resolver results replays to the
// same state. A nil resolve honors the desired velocity as is.
func Step(cfg *component.ControllerConfig, st *component.MotionState, in component.FrameInput, contact component.GroundContact, dt float32, resolve ResolveFunc) component.Report {
	rotateCamera(cfg, st, in)

	dir := moveDirection(in.Movement, st.CameraYaw)
	rep := component.Report{Direction: dir, OnFloor: contact.OnFloor}

	v := st.Velocity
	if dir.Len() > 0 {
		v[0] = dir.X() * cfg.Speed
		v[2] = dir.Z() * cfg.Speed
	} else {
		v[0] = common.MoveToward(v[0], 0, cfg.Speed)
		v[2] = common.MoveToward(v[2], 0, cfg.Speed)
	}

	v[1] -= cfg.FallAcceleration * dt
	if contact.OnFloor && in.JumpRequested {
		v[1] += cfg.JumpImpulse
		rep.Jumped = true
	}
	rep.Desired = v

	actual := v
	if resolve != nil {
		actual = resolve(v)
	}
	st.Velocity = actual
	rep.Actual = actual

	if dir.Len() > directionEpsilon && common.HorizontalLen(actual) > directionEpsilon {
		target := math32.Atan2(-actual.X(), -actual.Z())
		st.BodyYaw = common.LerpAngle(st.BodyYaw, target, cfg.OrientationSmoothing)
	}
	return rep
}

func rotateCamera(cfg *component.ControllerConfig, st *component.MotionState, in component.FrameInput) {
	look := in.Look.Mul(cfg.Sensitivity(in.LookSource))
	if look.X() != 0 {
		st.CameraYaw -= look.X()
	}
	st.CameraPitch = common.Clamp(st.CameraPitch+look.Y(), cfg.PitchMin, cfg.PitchMax)
}

// moveDirection maps a movement intent onto the horizontal plane relative to
// the camera yaw. Lengths up to 1 pass through so analog input can feather.
func moveDirection(intent mgl32.Vec2, yaw float32) mgl32.Vec3 {
	local := mgl32.Vec3{intent.X(), 0, intent.Y()}
	dir := mgl32.Rotate3DY(yaw).Mul3x1(local)
	if dir.Len() > 1 {
		dir = dir.Normalize()
	}
	return dir
}
