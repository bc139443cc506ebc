package obj

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/thirdperson/component"
	"github.com/milk9111/thirdperson/prefabs"
)

// ScriptSource is an input source driven by a tengo script. The script runs
// once per Advance with the global `tick` set and publishes one float global
// per action name (move_left, look_down, ...), a `jump` bool and the pointer
// motion in `mouse_x` / `mouse_y`. Undefined globals read as released.
type ScriptSource struct {
	name     string
	compiled *tengo.Compiled
	tick     int64

	strengths map[component.Action]float32
	jump      bool
	motion    mgl32.Vec2
}

func NewScriptSource(name string, src []byte) (*ScriptSource, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := script.Add("tick", 0); err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script %s: compile: %w", name, err)
	}
	return &ScriptSource{
		name:      name,
		compiled:  compiled,
		strengths: make(map[component.Action]float32),
	}, nil
}

// LoadScriptSource compiles a script from prefabs/scripts.
func LoadScriptSource(name string) (*ScriptSource, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script %s: load: %w", name, err)
	}
	return NewScriptSource(name, src)
}

// Advance runs the script for the next tick.
func (s *ScriptSource) Advance() error {
	if err := s.compiled.Set("tick", s.tick); err != nil {
		return fmt.Errorf("script %s: set tick: %w", s.name, err)
	}
	if err := s.compiled.Run(); err != nil {
		return fmt.Errorf("script %s: tick %d: %w", s.name, s.tick, err)
	}

	for _, a := range component.Actions() {
		if a == component.ActionJump {
			continue
		}
		s.strengths[a] = float32(s.float(a.String()))
	}
	s.jump = s.compiled.IsDefined("jump") && s.compiled.Get("jump").Bool()
	s.motion = s.motion.Add(mgl32.Vec2{float32(s.float("mouse_x")), float32(s.float("mouse_y"))})
	s.tick++
	return nil
}

func (s *ScriptSource) float(name string) float64 {
	if !s.compiled.IsDefined(name) {
		return 0
	}
	return s.compiled.Get(name).Float()
}

func (s *ScriptSource) Tick() int64 {
	return s.tick
}

func (s *ScriptSource) Strength(a component.Action) float32 {
	if a == component.ActionJump {
		if s.jump {
			return 1
		}
		return 0
	}
	return s.strengths[a]
}

func (s *ScriptSource) Pressed(a component.Action) bool {
	if a == component.ActionJump {
		return s.jump
	}
	return s.strengths[a] >= 0.5
}

func (s *ScriptSource) DrainMotion() mgl32.Vec2 {
	m := s.motion
	s.motion = mgl32.Vec2{}
	return m
}
