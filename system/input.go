package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/component"
)

// InputSource is the polled input device state of the host.
type InputSource interface {
	// Strength returns how far an action is pressed, in [0, 1].
	Strength(a component.Action) float32
	// Pressed reports whether a digital action is currently held.
	Pressed(a component.Action) bool
	// DrainMotion returns the relative pointer motion buffered since the
	// previous call and clears the buffer.
	DrainMotion() mgl32.Vec2
}

// InputSampler turns an InputSource into one FrameInput per tick. Its only
// state is the previous jump button state used for edge detection.
type InputSampler struct {
	jumpHeld bool
}

func NewInputSampler() *InputSampler {
	return &InputSampler{}
}

// Sample polls src once. Buffered pointer motion is always drained, even on
// ticks where controller look wins, so stale deltas never leak into a later
// tick.
func (s *InputSampler) Sample(src InputSource) component.FrameInput {
	if src == nil {
		return component.FrameInput{}
	}

	in := component.FrameInput{
		Movement: axisPair(src,
			component.ActionMoveLeft, component.ActionMoveRight,
			component.ActionMoveForward, component.ActionMoveBack),
	}

	m := src.DrainMotion()
	mouse := mgl32.Vec2{common.Finite(m.X()), common.Finite(m.Y())}
	stick := axisPair(src,
		component.ActionLookLeft, component.ActionLookRight,
		component.ActionLookUp, component.ActionLookDown)

	switch {
	case stick != (mgl32.Vec2{}):
		in.Look = stick
		in.LookSource = component.LookController
	case mouse != (mgl32.Vec2{}):
		in.Look = mouse
		in.LookSource = component.LookMouse
	}

	held := src.Pressed(component.ActionJump)
	in.JumpRequested = held && !s.jumpHeld
	s.jumpHeld = held

	return in
}

// axisPair builds (pos - neg) on each axis and caps the result at unit
// length without scaling shorter vectors up.
func axisPair(src InputSource, negX, posX, negY, posY component.Action) mgl32.Vec2 {
	v := mgl32.Vec2{
		strength(src, posX) - strength(src, negX),
		strength(src, posY) - strength(src, negY),
	}
	return common.LimitLength(v)
}

// strength reads one action as a value in [0, 1]. Non-finite readings from
// a misbehaving device count as released.
func strength(src InputSource, a component.Action) float32 {
	return common.Clamp(common.Finite(src.Strength(a)), 0, 1)
}
