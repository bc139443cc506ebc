package component

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// ErrInvalidConfig is wrapped by every configuration contract violation.
var ErrInvalidConfig = errors.New("invalid controller config")

// ControllerConfig holds the tuning of a controller session. It is read-only
// once a controller has been built from it.
type ControllerConfig struct {
	// Speed is the horizontal speed in units per second. It is also the
	// per-tick decay rate when there is no movement intent.
	Speed float32
	// FallAcceleration is subtracted from vertical velocity every second.
	FallAcceleration float32
	// JumpImpulse is added to vertical velocity on a grounded jump.
	JumpImpulse float32

	MouseLookSensitivity      float32
	ControllerLookSensitivity float32

	// PitchMin and PitchMax bound the accumulated camera pitch in radians.
	PitchMin float32
	PitchMax float32

	// OrientationSmoothing is the fixed per-tick lerp weight applied to the
	// body heading.
	OrientationSmoothing float32

	// Resolver tuning, passed through untouched.
	MaxSlopeAngle float32
	MaxSlides     int
	FloorSnap     bool
}

func DefaultControllerConfig() ControllerConfig {
	return ControllerConfig{
		Speed:                     14,
		FallAcceleration:          75,
		JumpImpulse:               20,
		MouseLookSensitivity:      0.001,
		ControllerLookSensitivity: 0.1,
		PitchMin:                  -1.2,
		PitchMax:                  0.6,
		OrientationSmoothing:      0.15,
		MaxSlopeAngle:             0.785398,
		MaxSlides:                 4,
		FloorSnap:                 true,
	}
}

// Validate reports the first contract violation in c.
func (c ControllerConfig) Validate() error {
	finite := []struct {
		name string
		v    float32
	}{
		{"speed", c.Speed},
		{"fall_acceleration", c.FallAcceleration},
		{"jump_impulse", c.JumpImpulse},
		{"mouse_look_sensitivity", c.MouseLookSensitivity},
		{"controller_look_sensitivity", c.ControllerLookSensitivity},
		{"pitch_min", c.PitchMin},
		{"pitch_max", c.PitchMax},
		{"orientation_smoothing", c.OrientationSmoothing},
		{"max_slope_angle", c.MaxSlopeAngle},
	}
	for _, f := range finite {
		if math32.IsNaN(f.v) || math32.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidConfig, f.name, f.v)
		}
	}

	switch {
	case c.Speed <= 0:
		return fmt.Errorf("%w: speed must be positive, got %v", ErrInvalidConfig, c.Speed)
	case c.FallAcceleration < 0:
		return fmt.Errorf("%w: fall_acceleration must not be negative, got %v", ErrInvalidConfig, c.FallAcceleration)
	case c.JumpImpulse < 0:
		return fmt.Errorf("%w: jump_impulse must not be negative, got %v", ErrInvalidConfig, c.JumpImpulse)
	case c.MouseLookSensitivity <= 0:
		return fmt.Errorf("%w: mouse_look_sensitivity must be positive, got %v", ErrInvalidConfig, c.MouseLookSensitivity)
	case c.ControllerLookSensitivity <= 0:
		return fmt.Errorf("%w: controller_look_sensitivity must be positive, got %v", ErrInvalidConfig, c.ControllerLookSensitivity)
	case c.PitchMin >= c.PitchMax:
		return fmt.Errorf("%w: pitch_min (%v) must be below pitch_max (%v)", ErrInvalidConfig, c.PitchMin, c.PitchMax)
	case c.OrientationSmoothing < 0 || c.OrientationSmoothing > 1:
		return fmt.Errorf("%w: orientation_smoothing must be within [0, 1], got %v", ErrInvalidConfig, c.OrientationSmoothing)
	case c.MaxSlopeAngle < 0:
		return fmt.Errorf("%w: max_slope_angle must not be negative, got %v", ErrInvalidConfig, c.MaxSlopeAngle)
	case c.MaxSlides < 1:
		return fmt.Errorf("%w: max_slides must be at least 1, got %d", ErrInvalidConfig, c.MaxSlides)
	}
	return nil
}

// Sensitivity returns the look scale for the given source.
func (c ControllerConfig) Sensitivity(src LookSource) float32 {
	switch src {
	case LookMouse:
		return c.MouseLookSensitivity
	case LookController:
		return c.ControllerLookSensitivity
	default:
		return 0
	}
}
