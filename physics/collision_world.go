package physics

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/levels"
	"github.com/milk9111/thirdperson/system"
)

const (
	collisionTypeBody cp.CollisionType = iota + 1
	collisionTypeSolid
)

// floorSnapDistance is how far above the floor a grounded body that stops
// rising is pulled back down.
const floorSnapDistance = 0.25

// maxPushIterations bounds the overlap passes per substep; corners need two.
const maxPushIterations = 3

// CollisionWorld resolves body movement against an arena. The horizontal
// XZ plane is a Chipmunk space, arena X maps to cp X and arena Z to cp Y.
// The vertical axis is a flat floor.
type CollisionWorld struct {
	arena *levels.Arena
	space *cp.Space

	body  *cp.Body
	shape *cp.Shape

	height    float32
	onFloor   bool
	wallTouch bool

	handlersReady bool
}

func NewCollisionWorld(arena *levels.Arena, radius float32) *CollisionWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	cw := &CollisionWorld{arena: arena, space: space}
	cw.buildStaticShapes()
	cw.attachBody(radius)
	cw.setupHandlers()
	return cw
}

func (cw *CollisionWorld) buildStaticShapes() {
	if cw == nil || cw.space == nil || cw.arena == nil {
		return
	}

	for _, w := range cw.arena.Walls {
		bb := cp.BB{L: float64(w.X), B: float64(w.Z), R: float64(w.X + w.W), T: float64(w.Z + w.D)}
		shape := cp.NewBox2(cw.space.StaticBody, bb, 0)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeSolid)
		cw.space.AddShape(shape)
	}

	worldW := float64(cw.arena.Width)
	worldD := float64(cw.arena.Depth)
	thickness := 1.0
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},           // north
		{a: cp.Vector{X: 0, Y: worldD}, b: cp.Vector{X: worldW, Y: worldD}}, // south
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldD}},           // west
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldD}}, // east
	}
	for _, seg := range segments {
		shape := cp.NewSegment(cw.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeSolid)
		cw.space.AddShape(shape)
	}
}

func (cw *CollisionWorld) attachBody(radius float32) {
	// Infinite moment keeps the body from spinning against corners.
	body := cp.NewBody(1, math.Inf(1))
	shape := cp.NewCircle(body, float64(radius), cp.Vector{})
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeBody)

	cw.space.AddBody(body)
	cw.space.AddShape(shape)
	cw.body = body
	cw.shape = shape

	if cw.arena != nil {
		cw.Teleport(mgl32.Vec3(cw.arena.Spawn))
	}
}

func (cw *CollisionWorld) setupHandlers() {
	if cw.handlersReady || cw.space == nil {
		return
	}
	handler := cw.space.NewCollisionHandler(collisionTypeBody, collisionTypeSolid)
	handler.UserData = cw
	handler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		if world, ok := userData.(*CollisionWorld); ok && world != nil {
			world.wallTouch = true
		}
		return true
	}
	cw.handlersReady = true
}

// Teleport places the body and clears its motion.
func (cw *CollisionWorld) Teleport(pos mgl32.Vec3) {
	cw.body.SetPosition(cp.Vector{X: float64(pos.X()), Y: float64(pos.Z())})
	cw.body.SetVelocity(0, 0)
	cw.height = pos.Y()
	cw.onFloor = cw.height <= cw.floorY()
}

func (cw *CollisionWorld) floorY() float32 {
	if cw.arena == nil {
		return 0
	}
	return cw.arena.FloorY
}

// floorWalkable reports whether the flat floor counts as floor for the given
// up axis and slope limit.
func (cw *CollisionWorld) floorWalkable(up mgl32.Vec3, maxSlope float32) bool {
	if up.Len() == 0 {
		return false
	}
	cos := common.Clamp(up.Normalize().Dot(mgl32.Vec3{0, 1, 0}), -1, 1)
	return math32.Acos(cos) <= maxSlope+1e-5
}

// Resolve moves the body by desired for p.Delta seconds and returns the
// velocity it ended up with. Horizontal motion slides along walls; the
// vertical axis stops on the floor.
func (cw *CollisionWorld) Resolve(desired mgl32.Vec3, p system.ResolveParams) mgl32.Vec3 {
	if cw == nil || cw.space == nil || p.Delta <= 0 {
		return desired
	}

	cw.wallTouch = false
	slides := p.MaxSlides
	if slides < 1 {
		slides = 1
	}
	sub := float64(p.Delta) / float64(slides)
	cw.body.SetVelocity(float64(desired.X()), float64(desired.Z()))
	cw.depenetrate()
	for i := 0; i < slides; i++ {
		cw.space.Step(sub)
		cw.depenetrate()
	}
	hv := cw.body.Velocity()

	vy := desired.Y()
	y := cw.height + vy*p.Delta
	floor := cw.floorY()
	walkable := cw.floorWalkable(p.Up, p.MaxSlopeAngle)
	wasOnFloor := cw.onFloor
	cw.onFloor = false

	switch {
	case y <= floor:
		y = floor
		if vy < 0 {
			vy = 0
		}
		cw.onFloor = walkable
	case p.FloorSnap && wasOnFloor && vy <= 0 && y-floor <= floorSnapDistance:
		y = floor
		vy = 0
		cw.onFloor = walkable
	}
	cw.height = y

	return mgl32.Vec3{float32(hv.X), vy, float32(hv.Y)}
}

// depenetrate moves the body out of every solid it overlaps and drops the
// velocity still pointing into them. Contact normals point from the body
// toward the solid.
func (cw *CollisionWorld) depenetrate() {
	for iter := 0; iter < maxPushIterations; iter++ {
		var push cp.Vector
		var normals []cp.Vector
		cw.space.ShapeQuery(cw.shape, func(other *cp.Shape, set *cp.ContactPointSet) {
			if other.Body() == cw.body {
				return
			}
			deepest := 0.0
			for i := 0; i < set.Count; i++ {
				deepest = math.Min(deepest, set.Points[i].Distance)
			}
			if deepest >= 0 {
				return
			}
			push = push.Add(set.Normal.Mult(deepest))
			normals = append(normals, set.Normal)
		})
		if len(normals) == 0 {
			return
		}

		cw.wallTouch = true
		cw.body.SetPosition(cw.body.Position().Add(push))
		v := cw.body.Velocity()
		for _, n := range normals {
			if into := v.Dot(n); into > 0 {
				v = v.Sub(n.Mult(into))
			}
		}
		cw.body.SetVelocity(v.X, v.Y)
	}
}

// Space exposes the chipmunk space for debug drawing.
func (cw *CollisionWorld) Space() *cp.Space {
	return cw.space
}

// IsOnFloor reports floor contact after the last Resolve.
func (cw *CollisionWorld) IsOnFloor() bool {
	if cw == nil {
		return false
	}
	return cw.onFloor
}

// TouchingWall reports whether the last Resolve pressed against a wall.
func (cw *CollisionWorld) TouchingWall() bool {
	if cw == nil {
		return false
	}
	return cw.wallTouch
}

// Position returns the body's feet position in world space.
func (cw *CollisionWorld) Position() mgl32.Vec3 {
	pos := cw.body.Position()
	return mgl32.Vec3{float32(pos.X), cw.height, float32(pos.Y)}
}

func (cw *CollisionWorld) Arena() *levels.Arena {
	return cw.arena
}
