package prefabs

import (
	"fmt"

	"github.com/milk9111/thirdperson/component"
	"gopkg.in/yaml.v3"
)

const (
	ControllerFile = "controller.yaml"
	PlayerFile     = "player.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// ControllerSpec is the YAML form of component.ControllerConfig.
type ControllerSpec struct {
	Speed                     float32 `yaml:"speed"`
	FallAcceleration          float32 `yaml:"fall_acceleration"`
	JumpImpulse               float32 `yaml:"jump_impulse"`
	MouseLookSensitivity      float32 `yaml:"mouse_look_sensitivity"`
	ControllerLookSensitivity float32 `yaml:"controller_look_sensitivity"`
	PitchMin                  float32 `yaml:"pitch_min"`
	PitchMax                  float32 `yaml:"pitch_max"`
	OrientationSmoothing      float32 `yaml:"orientation_smoothing"`
	MaxSlopeAngle             float32 `yaml:"max_slope_angle"`
	MaxSlides                 int     `yaml:"max_slides"`
	FloorSnap                 bool    `yaml:"floor_snap"`
}

func ControllerSpecFrom(c component.ControllerConfig) ControllerSpec {
	return ControllerSpec{
		Speed:                     c.Speed,
		FallAcceleration:          c.FallAcceleration,
		JumpImpulse:               c.JumpImpulse,
		MouseLookSensitivity:      c.MouseLookSensitivity,
		ControllerLookSensitivity: c.ControllerLookSensitivity,
		PitchMin:                  c.PitchMin,
		PitchMax:                  c.PitchMax,
		OrientationSmoothing:      c.OrientationSmoothing,
		MaxSlopeAngle:             c.MaxSlopeAngle,
		MaxSlides:                 c.MaxSlides,
		FloorSnap:                 c.FloorSnap,
	}
}

func (s ControllerSpec) Config() component.ControllerConfig {
	return component.ControllerConfig{
		Speed:                     s.Speed,
		FallAcceleration:          s.FallAcceleration,
		JumpImpulse:               s.JumpImpulse,
		MouseLookSensitivity:      s.MouseLookSensitivity,
		ControllerLookSensitivity: s.ControllerLookSensitivity,
		PitchMin:                  s.PitchMin,
		PitchMax:                  s.PitchMax,
		OrientationSmoothing:      s.OrientationSmoothing,
		MaxSlopeAngle:             s.MaxSlopeAngle,
		MaxSlides:                 s.MaxSlides,
		FloorSnap:                 s.FloorSnap,
	}
}

// ParseControllerSpec decodes data over the default tuning, so keys left
// out of the file keep their defaults.
func ParseControllerSpec(data []byte) (ControllerSpec, error) {
	spec := ControllerSpecFrom(component.DefaultControllerConfig())
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return ControllerSpec{}, fmt.Errorf("prefabs: unmarshal controller spec: %w", err)
	}
	return spec, nil
}

func LoadControllerSpec() (ControllerSpec, error) {
	data, err := Load(ControllerFile)
	if err != nil {
		return ControllerSpec{}, fmt.Errorf("prefabs: load %s: %w", ControllerFile, err)
	}
	return ParseControllerSpec(data)
}

// NodeSpec describes one node of a scene tree. Position is relative to the
// parent, yaw and pitch are in radians.
type NodeSpec struct {
	Name     string     `yaml:"name"`
	Position [3]float32 `yaml:"position"`
	Yaw      float32    `yaml:"yaw"`
	Pitch    float32    `yaml:"pitch"`
	Children []NodeSpec `yaml:"children"`
}

type ScenePathsSpec struct {
	CameraRig string `yaml:"camera_rig"`
	BodyPivot string `yaml:"body_pivot"`
	// Camera is the node the view is rendered from, normally the tip of
	// the spring arm.
	Camera string `yaml:"camera"`
}

type PlayerSpec struct {
	Name   string         `yaml:"name"`
	Radius float32        `yaml:"radius"`
	Paths  ScenePathsSpec `yaml:"paths"`
	Root   NodeSpec       `yaml:"root"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](PlayerFile)
	if err != nil {
		return nil, err
	}
	if spec.Radius <= 0 {
		spec.Radius = 0.5
	}
	return &spec, nil
}
