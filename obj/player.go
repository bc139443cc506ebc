package obj

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/thirdperson/component"
	"github.com/milk9111/thirdperson/levels"
	"github.com/milk9111/thirdperson/physics"
	"github.com/milk9111/thirdperson/prefabs"
	"github.com/milk9111/thirdperson/replay"
	"github.com/milk9111/thirdperson/system"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"
)

// Player wires a scene tree, a collision world and a recorded motion
// controller into one character.
type Player struct {
	Root  *Node
	World *physics.CollisionWorld

	spec     *prefabs.PlayerSpec
	bindings system.Bindings
	sampler  *system.InputSampler
	rec      *replay.Recorder
	log      logrus.FieldLogger

	last component.Report
}

func NewPlayer(ctrl prefabs.ControllerSpec, spec *prefabs.PlayerSpec, arena *levels.Arena, log logrus.FieldLogger) (*Player, error) {
	if spec == nil {
		return nil, fmt.Errorf("player: nil spec")
	}
	if arena == nil {
		return nil, fmt.Errorf("player %s: nil arena", spec.Name)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("player", spec.Name)

	p := &Player{
		Root:    BuildScene(spec.Root),
		World:   physics.NewCollisionWorld(arena, spec.Radius),
		spec:    spec,
		sampler: system.NewInputSampler(),
		log:     log,
	}
	p.Root.Position = p.World.Position()
	p.bindings = system.Bind(p.Root, system.ScenePaths{
		CameraRig: spec.Paths.CameraRig,
		BodyPivot: spec.Paths.BodyPivot,
	}, log)

	mc, err := system.NewMotionController(ctrl.Config(), p.World, p.World,
		system.WithBindings(p.bindings),
		system.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("player %s: %w", spec.Name, err)
	}
	p.rec = replay.NewRecorder(mc)
	return p, nil
}

// Update samples src and runs one controller tick.
func (p *Player) Update(src system.InputSource, dt float32) component.Report {
	in := p.sampler.Sample(src)
	p.last = p.rec.Tick(in, dt)
	p.Root.Position = p.World.Position()
	return p.last
}

// Reload swaps in new tuning. The running state carries over into a new
// recording session; on error the old controller stays.
func (p *Player) Reload(ctrl prefabs.ControllerSpec) error {
	mc, err := system.NewMotionController(ctrl.Config(), p.World, p.World,
		system.WithBindings(p.bindings),
		system.WithState(p.State()),
		system.WithLogger(p.log),
	)
	if err != nil {
		return fmt.Errorf("player %s: reload: %w", p.spec.Name, err)
	}
	p.log.WithField("ticks", p.rec.Len()).Info("controller reloaded, new recording session")
	p.rec = replay.NewRecorder(mc)
	return nil
}

func (p *Player) State() component.MotionState {
	return p.rec.Controller().State()
}

func (p *Player) Config() component.ControllerConfig {
	return p.rec.Controller().Config()
}

// Ticks counts ticks recorded in the current session.
func (p *Player) Ticks() int {
	return p.rec.Len()
}

func (p *Player) LastReport() component.Report {
	return p.last
}

// Recording returns the current session's recording.
func (p *Player) Recording() *replay.Recording {
	return p.rec.Recording()
}

// CameraPosition is the world position of the view node, or the body
// position when the scene has none.
func (p *Player) CameraPosition() mgl32.Vec3 {
	if n := p.Root.Find(p.spec.Paths.Camera); n != nil && p.spec.Paths.Camera != "" {
		return n.WorldPosition()
	}
	return p.Root.WorldPosition()
}

// Draw renders the body, its heading and the camera boom from above.
func (p *Player) Draw(screen *ebiten.Image, cam *Camera) {
	pos := p.Root.WorldPosition()
	x, y := cam.WorldToScreen(pos)
	r := cam.Scale(p.spec.Radius)

	var body color.Color = colornames.Steelblue
	if !p.World.IsOnFloor() {
		body = colornames.Lightskyblue
	}
	// lift the disc with height so jumps are visible from above
	vector.FillCircle(screen, x, y, r*(1+pos.Y()*0.05), body, true)

	st := p.State()
	heading := mgl32.Rotate3DY(st.BodyYaw).Mul3x1(mgl32.Vec3{0, 0, -1})
	hx, hy := cam.WorldToScreen(pos.Add(heading.Mul(p.spec.Radius * 1.5)))
	vector.StrokeLine(screen, x, y, hx, hy, 2, colornames.White, true)

	cx, cy := cam.WorldToScreen(p.CameraPosition())
	vector.StrokeLine(screen, x, y, cx, cy, 1, colornames.Gray, true)
	vector.FillRect(screen, cx-3, cy-3, 6, 6, colornames.Orange, false)
}
