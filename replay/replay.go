package replay

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/thirdperson/component"
	"github.com/milk9111/thirdperson/prefabs"
	"github.com/milk9111/thirdperson/system"
)

// Recorder drives a MotionController and keeps every tick's external inputs.
type Recorder struct {
	ctrl *system.MotionController
	rec  Recording
}

func NewRecorder(ctrl *system.MotionController) *Recorder {
	return &Recorder{
		ctrl: ctrl,
		rec: Recording{
			Controller: prefabs.ControllerSpecFrom(ctrl.Config()),
			RigPresent: ctrl.Bindings().Rig.Present(),
			Initial:    ctrl.State(),
		},
	}
}

// Tick runs one controller tick and records it.
func (r *Recorder) Tick(in component.FrameInput, dt float32) component.Report {
	rep := r.ctrl.Tick(in, dt)
	r.rec.Frames = append(r.rec.Frames, Frame{
		Dt:      dt,
		Input:   in,
		OnFloor: rep.OnFloor,
		Actual:  rep.Actual,
	})
	return rep
}

func (r *Recorder) Controller() *system.MotionController {
	return r.ctrl
}

func (r *Recorder) Len() int {
	return len(r.rec.Frames)
}

// Recording returns a snapshot of everything recorded so far.
func (r *Recorder) Recording() *Recording {
	out := r.rec
	out.Frames = append([]Frame(nil), r.rec.Frames...)
	out.Final = r.ctrl.State()
	return &out
}

// Replay re-runs the recorded ticks with the recorded contacts and resolver
// results and returns the resulting state.
func Replay(rec *Recording) (component.MotionState, error) {
	cfg := rec.Controller.Config()
	if err := cfg.Validate(); err != nil {
		return component.MotionState{}, fmt.Errorf("replay: %w", err)
	}

	st := rec.Initial
	for _, f := range rec.Frames {
		actual := f.Actual
		in := system.MaskLook(f.Input, rec.RigPresent)
		system.Step(&cfg, &st, in, component.GroundContact{OnFloor: f.OnFloor}, f.Dt, func(mgl32.Vec3) mgl32.Vec3 {
			return actual
		})
	}
	return st, nil
}

// Verify replays rec and checks the result against rec.Final.
func Verify(rec *Recording) error {
	got, err := Replay(rec)
	if err != nil {
		return err
	}
	if got != rec.Final {
		return fmt.Errorf("%w after %d frames: got %+v, want %+v", ErrDiverged, len(rec.Frames), got, rec.Final)
	}
	return nil
}
