package obj

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/thirdperson/component"
	"github.com/milk9111/thirdperson/system"
)

const hopScript = `
move_right := 0.0
if tick < 2 {
	move_right = 1.0
}
look_down := 0.5
mouse_x := 2.5
jump := tick == 1
`

func TestScriptSourceAdvance(t *testing.T) {
	src, err := NewScriptSource("hop", []byte(hopScript))
	if err != nil {
		t.Fatalf("NewScriptSource: %v", err)
	}

	if err := src.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if got := src.Strength(component.ActionMoveRight); got != 1 {
		t.Fatalf("move_right = %v, want 1", got)
	}
	if got := src.Strength(component.ActionMoveLeft); got != 0 {
		t.Fatalf("undefined move_left = %v, want 0", got)
	}
	if src.Pressed(component.ActionJump) {
		t.Fatalf("jump should be released on tick 0")
	}

	if err := src.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if !src.Pressed(component.ActionJump) || src.Strength(component.ActionJump) != 1 {
		t.Fatalf("jump should be held on tick 1")
	}
	if got := src.DrainMotion(); got != (mgl32.Vec2{5, 0}) {
		t.Fatalf("motion = %v, want buffered (5, 0)", got)
	}
	if got := src.DrainMotion(); got != (mgl32.Vec2{}) {
		t.Fatalf("second drain = %v, want zero", got)
	}

	if err := src.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if got := src.Strength(component.ActionMoveRight); got != 0 {
		t.Fatalf("move_right on tick 2 = %v, want 0", got)
	}
	if src.Tick() != 3 {
		t.Fatalf("tick = %d, want 3", src.Tick())
	}
}

func TestScriptSourceThroughSampler(t *testing.T) {
	src, err := NewScriptSource("hop", []byte(hopScript))
	if err != nil {
		t.Fatalf("NewScriptSource: %v", err)
	}
	s := system.NewInputSampler()

	var jumps int
	for i := 0; i < 4; i++ {
		if err := src.Advance(); err != nil {
			t.Fatalf("Advance: %v", err)
		}
		in := s.Sample(src)
		if in.LookSource != component.LookController {
			t.Fatalf("stick look_down should win over mouse_x, got %v", in.LookSource)
		}
		if in.JumpRequested {
			jumps++
		}
	}
	if jumps != 1 {
		t.Fatalf("jumps = %d, want 1", jumps)
	}
}

func TestScriptSourceErrors(t *testing.T) {
	if _, err := NewScriptSource("broken", []byte("x := ")); err == nil {
		t.Fatalf("expected compile error")
	}

	src, err := NewScriptSource("div_zero", []byte("x := 1 / (tick - tick)"))
	if err != nil {
		t.Fatalf("NewScriptSource: %v", err)
	}
	if err := src.Advance(); err == nil {
		t.Fatalf("expected runtime error")
	}
}

func TestEmbeddedScriptsCompile(t *testing.T) {
	for _, name := range []string{"strafe_circle", "wall_slide"} {
		t.Run(name, func(t *testing.T) {
			src, err := LoadScriptSource(name)
			if err != nil {
				t.Fatalf("LoadScriptSource: %v", err)
			}
			for i := 0; i < 300; i++ {
				if err := src.Advance(); err != nil {
					t.Fatalf("Advance: %v", err)
				}
			}
		})
	}
}
