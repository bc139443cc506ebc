package system

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/component"
	"github.com/sirupsen/logrus"
)

// Up is the world up axis handed to the resolver.
var Up = mgl32.Vec3{0, 1, 0}

// ResolveParams are the per-call arguments of Resolver.Resolve.
type ResolveParams struct {
	Up            mgl32.Vec3
	MaxSlopeAngle float32
	MaxSlides     int
	FloorSnap     bool
	// Delta is the tick length in seconds.
	Delta float32
}

// Resolver moves the body by a desired velocity against the world and
// returns the velocity that was actually achieved.
type Resolver interface {
	Resolve(desired mgl32.Vec3, p ResolveParams) mgl32.Vec3
}

// GroundQuery reports whether the body rested on the floor after the last
// resolve.
type GroundQuery interface {
	IsOnFloor() bool
}

// MotionController owns the MotionState of one character and advances it
// once per tick.
type MotionController struct {
	cfg   component.ControllerConfig
	state component.MotionState

	rig   component.Ref[component.Rig]
	pivot component.Ref[component.Pivot]

	resolver Resolver
	ground   GroundQuery
	log      logrus.FieldLogger

	seeded bool
	ticks  uint64
}

type Option func(*MotionController)

// WithBindings attaches the camera rig and body pivot.
func WithBindings(b Bindings) Option {
	return func(m *MotionController) {
		m.rig = b.Rig
		m.pivot = b.Pivot
	}
}

// WithState seeds the controller from an existing state instead of the rig
// pose. The pitch is clamped into the new config's range.
func WithState(st component.MotionState) Option {
	return func(m *MotionController) {
		m.state = st
		m.seeded = true
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(m *MotionController) {
		if log != nil {
			m.log = log
		}
	}
}

// NewMotionController validates cfg and builds a controller. A nil resolver
// honors every desired velocity; a nil ground query never reports floor
// contact.
func NewMotionController(cfg component.ControllerConfig, resolver Resolver, ground GroundQuery, opts ...Option) (*MotionController, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("motion controller: %w", err)
	}

	m := &MotionController{
		cfg:      cfg,
		resolver: resolver,
		ground:   ground,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if !m.seeded {
		m.state = m.initialState()
	}
	m.state.CameraPitch = common.Clamp(m.state.CameraPitch, cfg.PitchMin, cfg.PitchMax)

	m.log.WithFields(logrus.Fields{
		"rig":   m.rig.Present(),
		"pivot": m.pivot.Present(),
		"speed": cfg.Speed,
	}).Debug("motion controller ready")
	return m, nil
}

// initialState derives yaw and pitch from the rig and pivot poses. The rig's
// pitch node carries the negated accumulated pitch.
func (m *MotionController) initialState() component.MotionState {
	var st component.MotionState
	if rig, ok := m.rig.Get(); ok {
		st.CameraYaw = rig.Yaw()
		st.CameraPitch = -rig.Pitch()
	}
	if pivot, ok := m.pivot.Get(); ok {
		st.BodyYaw = pivot.Yaw()
	}
	return st
}

// Tick advances the controller by dt seconds.
func (m *MotionController) Tick(in component.FrameInput, dt float32) component.Report {
	in = MaskLook(in, m.rig.Present())

	var contact component.GroundContact
	if m.ground != nil {
		contact.OnFloor = m.ground.IsOnFloor()
	}

	params := m.ResolveParams(dt)
	rep := Step(&m.cfg, &m.state, in, contact, dt, func(desired mgl32.Vec3) mgl32.Vec3 {
		if m.resolver == nil {
			return desired
		}
		return m.resolver.Resolve(desired, params)
	})

	if rig, ok := m.rig.Get(); ok {
		rig.SetYaw(m.state.CameraYaw)
		rig.SetPitch(-m.state.CameraPitch)
	}
	if pivot, ok := m.pivot.Get(); ok {
		pivot.SetYaw(m.state.BodyYaw)
	}

	m.ticks++
	if rep.Jumped {
		m.log.WithField("tick", m.ticks).Debugf("jump: vy=%.3f", rep.Desired.Y())
	}
	return rep
}

// MaskLook drops look input when there is no camera rig to apply it to.
func MaskLook(in component.FrameInput, rigPresent bool) component.FrameInput {
	if !rigPresent {
		in.Look = mgl32.Vec2{}
		in.LookSource = component.LookNone
	}
	return in
}

// ResolveParams returns the resolver arguments for a tick of length dt.
func (m *MotionController) ResolveParams(dt float32) ResolveParams {
	return ResolveParams{
		Up:            Up,
		MaxSlopeAngle: m.cfg.MaxSlopeAngle,
		MaxSlides:     m.cfg.MaxSlides,
		FloorSnap:     m.cfg.FloorSnap,
		Delta:         dt,
	}
}

// State returns a copy of the current state.
func (m *MotionController) State() component.MotionState {
	return m.state
}

func (m *MotionController) Config() component.ControllerConfig {
	return m.cfg
}

func (m *MotionController) Bindings() Bindings {
	return Bindings{Rig: m.rig, Pivot: m.pivot}
}

// Ticks returns how many ticks have run.
func (m *MotionController) Ticks() uint64 {
	return m.ticks
}
