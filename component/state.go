package component

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MotionState is the per-session mutable state of a controller. Only the
// controller that owns it writes to it, once per tick.
type MotionState struct {
	// Velocity is world-space, in units per second.
	Velocity mgl32.Vec3 `yaml:"velocity"`
	// CameraPitch is kept within [PitchMin, PitchMax] on every write.
	CameraPitch float32 `yaml:"camera_pitch"`
	// BodyYaw is the smoothed heading of the body pivot.
	BodyYaw float32 `yaml:"body_yaw"`
	// CameraYaw is driven directly by look input.
	CameraYaw float32 `yaml:"camera_yaw"`
}

// Report describes what a single tick did. It is diagnostic output only.
type Report struct {
	Desired   mgl32.Vec3
	Actual    mgl32.Vec3
	Direction mgl32.Vec3
	OnFloor   bool
	Jumped    bool
}
