package replay

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/thirdperson/component"
	"github.com/milk9111/thirdperson/prefabs"
	"gopkg.in/yaml.v3"
)

// ErrDiverged is returned by Verify when a replay does not reproduce the
// recorded final state.
var ErrDiverged = errors.New("replay diverged")

// Frame is everything a tick consumed from outside the controller.
type Frame struct {
	Dt      float32              `yaml:"dt"`
	Input   component.FrameInput `yaml:"input"`
	OnFloor bool                 `yaml:"on_floor"`
	// Actual is the velocity the resolver returned.
	Actual mgl32.Vec3 `yaml:"actual"`
}

type Recording struct {
	Controller prefabs.ControllerSpec `yaml:"controller"`
	RigPresent bool                   `yaml:"rig_present"`
	Initial    component.MotionState  `yaml:"initial"`
	Final      component.MotionState  `yaml:"final"`
	Frames     []Frame                `yaml:"frames"`
}

func Marshal(rec *Recording) ([]byte, error) {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("replay: marshal: %w", err)
	}
	return data, nil
}

func Unmarshal(data []byte) (*Recording, error) {
	var rec Recording
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("replay: unmarshal: %w", err)
	}
	return &rec, nil
}

func WriteFile(path string, rec *Recording) error {
	data, err := Marshal(rec)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("replay: write %s: %w", path, err)
	}
	return nil
}

func ReadFile(path string) (*Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replay: read %s: %w", path, err)
	}
	return Unmarshal(data)
}
