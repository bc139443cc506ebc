package component

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Action names a polled input.
type Action uint8

const (
	ActionMoveLeft Action = iota
	ActionMoveRight
	ActionMoveForward
	ActionMoveBack
	ActionLookLeft
	ActionLookRight
	ActionLookUp
	ActionLookDown
	ActionJump
)

var actionNames = [...]string{
	ActionMoveLeft:    "move_left",
	ActionMoveRight:   "move_right",
	ActionMoveForward: "move_forward",
	ActionMoveBack:    "move_back",
	ActionLookLeft:    "look_left",
	ActionLookRight:   "look_right",
	ActionLookUp:      "look_up",
	ActionLookDown:    "look_down",
	ActionJump:        "jump",
}

// Actions lists every action in declaration order.
func Actions() []Action {
	out := make([]Action, len(actionNames))
	for i := range actionNames {
		out[i] = Action(i)
	}
	return out
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// LookSource tags which device produced a look intent so that exactly one
// sensitivity is applied to it.
type LookSource uint8

const (
	LookNone LookSource = iota
	LookMouse
	LookController
)

func (s LookSource) String() string {
	switch s {
	case LookMouse:
		return "mouse"
	case LookController:
		return "controller"
	default:
		return "none"
	}
}

func (s LookSource) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *LookSource) UnmarshalText(b []byte) error {
	switch string(b) {
	case "mouse":
		*s = LookMouse
	case "controller":
		*s = LookController
	default:
		*s = LookNone
	}
	return nil
}

// FrameInput is the sampled input of one tick.
type FrameInput struct {
	// Movement is x = strafe right, y = back. Its length never exceeds 1.
	Movement mgl32.Vec2 `yaml:"movement"`
	// Look is the raw look delta: +x looks right, +y looks down.
	Look          mgl32.Vec2 `yaml:"look"`
	LookSource    LookSource `yaml:"look_source"`
	JumpRequested bool       `yaml:"jump_requested,omitempty"`
}

// GroundContact is read from the resolver once per tick and not kept.
type GroundContact struct {
	OnFloor bool
}
