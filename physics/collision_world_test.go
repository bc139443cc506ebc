package physics

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/thirdperson/levels"
	"github.com/milk9111/thirdperson/system"
)

func testArena() *levels.Arena {
	return &levels.Arena{
		Name:  "test",
		Width: 40,
		Depth: 40,
		Spawn: [3]float32{20, 0, 20},
		Walls: []levels.Wall{{X: 10, Z: 4, W: 20, D: 3}},
	}
}

func params() system.ResolveParams {
	return system.ResolveParams{
		Up:            system.Up,
		MaxSlopeAngle: 0.785398,
		MaxSlides:     4,
		FloorSnap:     true,
		Delta:         1.0 / 60.0,
	}
}

func TestCollisionWorldSpawn(t *testing.T) {
	cw := NewCollisionWorld(testArena(), 0.5)
	if got := cw.Position(); !got.ApproxEqualThreshold(mgl32.Vec3{20, 0, 20}, 1e-6) {
		t.Fatalf("spawn = %v", got)
	}
	if !cw.IsOnFloor() {
		t.Fatalf("body spawned on the floor should be grounded")
	}
}

func TestCollisionWorldFreeMove(t *testing.T) {
	cw := NewCollisionWorld(testArena(), 0.5)
	var actual mgl32.Vec3
	for i := 0; i < 30; i++ {
		actual = cw.Resolve(mgl32.Vec3{6, -1.25, 0}, params())
	}
	if math32.Abs(actual.X()-6) > 1e-3 || math32.Abs(actual.Z()) > 1e-3 {
		t.Fatalf("unobstructed velocity = %v, want (6, 0, 0)", actual)
	}
	if x := cw.Position().X(); math32.Abs(x-23) > 0.05 {
		t.Fatalf("x after half a second = %v, want ~23", x)
	}
	if actual.Y() != 0 || !cw.IsOnFloor() {
		t.Fatalf("grounded body should stay on the floor: vy %v", actual.Y())
	}
}

func TestCollisionWorldStopsAtWall(t *testing.T) {
	cases := []struct {
		name  string
		ticks int
	}{
		{"short_press", 90},
		{"long_press", 600},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cw := NewCollisionWorld(testArena(), 0.5)
			cw.Teleport(mgl32.Vec3{20, 0, 10})

			var actual mgl32.Vec3
			for i := 0; i < c.ticks; i++ {
				actual = cw.Resolve(mgl32.Vec3{0, 0, -14}, params())
				// wall face at z=7 plus the body radius
				if z := cw.Position().Z(); z < 7.5-1e-3 {
					t.Fatalf("tick %d: body sank into the wall, z = %v", i, z)
				}
			}
			if z := cw.Position().Z(); z > 7.5+1e-2 {
				t.Fatalf("z pressed against wall = %v, want 7.5", z)
			}
			if math32.Abs(actual.Z()) > 1e-3 {
				t.Fatalf("velocity into the wall = %v, want 0", actual.Z())
			}
			if !cw.TouchingWall() {
				t.Fatalf("TouchingWall should report the contact")
			}
		})
	}
}

func TestCollisionWorldStopsAtArenaEdge(t *testing.T) {
	arena, err := levels.LoadArena("courtyard")
	if err != nil {
		t.Fatalf("LoadArena: %v", err)
	}
	const radius = 0.6
	cw := NewCollisionWorld(arena, radius)
	// x=40 has no wall between the spawn row and the north edge
	cw.Teleport(mgl32.Vec3{40, 0, 3})

	for i := 0; i < 600; i++ {
		cw.Resolve(mgl32.Vec3{0, 0, -14}, params())
	}
	// edge segment at z=0 with a radius of 1
	if z := cw.Position().Z(); z < 1+radius-1e-3 {
		t.Fatalf("body pushed into the arena edge, z = %v, want >= %v", z, 1+radius)
	}
}

func TestCollisionWorldCourtyardWall(t *testing.T) {
	arena, err := levels.LoadArena("courtyard")
	if err != nil {
		t.Fatalf("LoadArena: %v", err)
	}
	cw := NewCollisionWorld(arena, 0.6)
	// wall {x: 24, z: 4, w: 12, d: 3} faces south at z=7
	for i := 0; i < 600; i++ {
		cw.Resolve(mgl32.Vec3{0, 0, -14}, params())
		if z := cw.Position().Z(); z < 7.6-1e-3 {
			t.Fatalf("tick %d: z = %v, center inside the wall", i, z)
		}
	}
}

func TestCollisionWorldSlidesAlongWall(t *testing.T) {
	cw := NewCollisionWorld(testArena(), 0.5)
	cw.Teleport(mgl32.Vec3{14, 0, 8.5})

	var actual mgl32.Vec3
	for i := 0; i < 30; i++ {
		actual = cw.Resolve(mgl32.Vec3{10, 0, -10}, params())
	}
	if actual.X() < 8 {
		t.Fatalf("tangential velocity = %v, want ~10", actual.X())
	}
	if x := cw.Position().X(); x < 17 {
		t.Fatalf("body should slide along the wall, x = %v", x)
	}
}

func TestCollisionWorldStaysInBounds(t *testing.T) {
	cw := NewCollisionWorld(testArena(), 0.5)
	for i := 0; i < 240; i++ {
		cw.Resolve(mgl32.Vec3{-14, 0, 0}, params())
	}
	if x := cw.Position().X(); x < 0 {
		t.Fatalf("body escaped the arena: x = %v", x)
	}
}

func TestCollisionWorldFallAndJump(t *testing.T) {
	cw := NewCollisionWorld(testArena(), 0.5)
	cw.Teleport(mgl32.Vec3{20, 3, 20})
	if cw.IsOnFloor() {
		t.Fatalf("raised body should be airborne")
	}

	vy := float32(0)
	for i := 0; i < 120 && !cw.IsOnFloor(); i++ {
		vy -= 75.0 / 60.0
		vy = cw.Resolve(mgl32.Vec3{0, vy, 0}, params()).Y()
	}
	if !cw.IsOnFloor() || cw.Position().Y() != 0 || vy != 0 {
		t.Fatalf("body should land: y %v vy %v", cw.Position().Y(), vy)
	}

	actual := cw.Resolve(mgl32.Vec3{0, 20, 0}, params())
	if cw.IsOnFloor() || actual.Y() != 20 || cw.Position().Y() <= 0 {
		t.Fatalf("jump should leave the floor: %v y %v", actual, cw.Position().Y())
	}
}

func TestCollisionWorldSteepUpIsNotFloor(t *testing.T) {
	cw := NewCollisionWorld(testArena(), 0.5)
	p := params()
	p.Up = mgl32.Vec3{1, 0, 0}
	cw.Resolve(mgl32.Vec3{0, -1, 0}, p)
	if cw.IsOnFloor() {
		t.Fatalf("floor beyond the slope limit should not count")
	}
}

func TestCollisionWorldZeroDelta(t *testing.T) {
	cw := NewCollisionWorld(testArena(), 0.5)
	p := params()
	p.Delta = 0
	in := mgl32.Vec3{1, 2, 3}
	if got := cw.Resolve(in, p); got != in {
		t.Fatalf("zero delta should pass through, got %v", got)
	}
}
