package obj

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/thirdperson/component"
)

const stickDeadzone = 0.2

type stickAxis struct {
	axis ebiten.StandardGamepadAxis
	sign float64
}

var keyBindings = map[component.Action][]ebiten.Key{
	component.ActionMoveLeft:    {ebiten.KeyA},
	component.ActionMoveRight:   {ebiten.KeyD},
	component.ActionMoveForward: {ebiten.KeyW},
	component.ActionMoveBack:    {ebiten.KeyS},
	component.ActionLookLeft:    {ebiten.KeyArrowLeft},
	component.ActionLookRight:   {ebiten.KeyArrowRight},
	component.ActionLookUp:      {ebiten.KeyArrowUp},
	component.ActionLookDown:    {ebiten.KeyArrowDown},
	component.ActionJump:        {ebiten.KeySpace},
}

// Stick up reports negative values on the standard layout.
var stickBindings = map[component.Action]stickAxis{
	component.ActionMoveLeft:    {ebiten.StandardGamepadAxisLeftStickHorizontal, -1},
	component.ActionMoveRight:   {ebiten.StandardGamepadAxisLeftStickHorizontal, 1},
	component.ActionMoveForward: {ebiten.StandardGamepadAxisLeftStickVertical, -1},
	component.ActionMoveBack:    {ebiten.StandardGamepadAxisLeftStickVertical, 1},
	component.ActionLookLeft:    {ebiten.StandardGamepadAxisRightStickHorizontal, -1},
	component.ActionLookRight:   {ebiten.StandardGamepadAxisRightStickHorizontal, 1},
	component.ActionLookUp:      {ebiten.StandardGamepadAxisRightStickVertical, -1},
	component.ActionLookDown:    {ebiten.StandardGamepadAxisRightStickVertical, 1},
}

// EbitenSource polls keyboard, the first standard gamepad and the captured
// mouse. Call Update once per ebiten Update before sampling.
type EbitenSource struct {
	gamepad    ebiten.GamepadID
	hasGamepad bool

	pointer pointerTracker
}

func NewEbitenSource() *EbitenSource {
	return &EbitenSource{}
}

func (s *EbitenSource) Update() {
	ids := ebiten.GamepadIDs()
	s.hasGamepad = len(ids) > 0
	if s.hasGamepad {
		s.gamepad = ids[0]
	}

	x, y := ebiten.CursorPosition()
	s.pointer.observe(x, y, ebiten.CursorMode() == ebiten.CursorModeCaptured)
}

// Reset forgets the last cursor position and any buffered motion. Call it
// whenever Update stops being called for a while, e.g. around a pause.
func (s *EbitenSource) Reset() {
	s.pointer.reset()
}

func (s *EbitenSource) Strength(a component.Action) float32 {
	var v float64
	for _, k := range keyBindings[a] {
		if ebiten.IsKeyPressed(k) {
			v = 1
		}
	}
	if b, ok := stickBindings[a]; ok && s.hasGamepad {
		raw := ebiten.StandardGamepadAxisValue(s.gamepad, b.axis) * b.sign
		if raw > stickDeadzone {
			v = math.Max(v, raw)
		}
	}
	return float32(math.Min(v, 1))
}

func (s *EbitenSource) Pressed(a component.Action) bool {
	if a == component.ActionJump && s.hasGamepad &&
		ebiten.IsStandardGamepadButtonPressed(s.gamepad, ebiten.StandardGamepadButtonRightBottom) {
		return true
	}
	return s.Strength(a) >= 0.5
}

func (s *EbitenSource) DrainMotion() mgl32.Vec2 {
	return s.pointer.drain()
}

// pointerTracker turns absolute cursor positions into relative motion. It
// only accumulates while the cursor is captured, and the first position
// after a capture (or reset) only primes it.
type pointerTracker struct {
	x, y   int
	primed bool
	motion mgl32.Vec2
}

func (p *pointerTracker) observe(x, y int, captured bool) {
	if !captured {
		p.primed = false
		return
	}
	if p.primed {
		p.motion = p.motion.Add(mgl32.Vec2{float32(x - p.x), float32(y - p.y)})
	}
	p.x, p.y = x, y
	p.primed = true
}

func (p *pointerTracker) drain() mgl32.Vec2 {
	m := p.motion
	p.motion = mgl32.Vec2{}
	return m
}

func (p *pointerTracker) reset() {
	p.primed = false
	p.motion = mgl32.Vec2{}
}
