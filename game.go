package main

import (
	"fmt"
	"math"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/levels"
	"github.com/milk9111/thirdperson/obj"
	"github.com/milk9111/thirdperson/prefabs"
	"github.com/milk9111/thirdperson/replay"
	"github.com/sirupsen/logrus"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
)

const (
	pixelsPerUnit = 16

	zoomStep = 1.25
	minZoom  = 4
	maxZoom  = 64
)

type Game struct {
	frames int
	paused bool
	quit   bool
	debug  bool

	source *obj.EbitenSource
	player *obj.Player
	arena  *levels.Arena
	camera *obj.Camera

	watcher *prefabs.Watcher
	ui      *ebitenui.UI
	readout *widget.Text

	clipboardOK bool
	status      string

	log *logrus.Logger
}

func NewGame(levelName string, watch, debug bool, log *logrus.Logger) (*Game, error) {
	arena, err := levels.LoadArena(levelName)
	if err != nil {
		return nil, err
	}
	ctrl, err := prefabs.LoadControllerSpec()
	if err != nil {
		return nil, err
	}
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	player, err := obj.NewPlayer(ctrl, spec, arena, log)
	if err != nil {
		return nil, err
	}

	cam := obj.NewCamera(common.BaseWidth, common.BaseHeight, pixelsPerUnit)
	cam.SetWorldBounds(arena.Width, arena.Depth)
	cam.SnapTo(player.Root.WorldPosition())

	g := &Game{
		source: obj.NewEbitenSource(),
		player: player,
		arena:  arena,
		camera: cam,
		debug:  debug,
		log:    log,
	}

	if watch {
		w, err := prefabs.NewWatcher("prefabs")
		if err != nil {
			log.WithError(err).Warn("prefab hot reload disabled")
		} else {
			g.watcher = w
		}
	}

	if err := clipboard.Init(); err != nil {
		log.WithError(err).Warn("clipboard unavailable, F9 export disabled")
	} else {
		g.clipboardOK = true
	}

	g.ui, g.readout = NewPauseUI(g)
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.ui.Update()
		return nil
	}

	g.pollPrefabs()
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.camera.SetZoom(math.Min(g.camera.Zoom()*zoomStep, maxZoom))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.camera.SetZoom(math.Max(g.camera.Zoom()/zoomStep, minZoom))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		g.exportRecording()
	}

	g.source.Update()
	g.player.Update(g.source, common.TimeStep)
	g.camera.Update(g.player.Root.WorldPosition())
	return nil
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
	// the source is not polled while paused
	g.source.Reset()
	if paused {
		g.readout.Label = tuningReadout(g.player)
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
}

func (g *Game) pollPrefabs() {
	if g.watcher == nil {
		return
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok {
			g.log.WithError(err).Warn("prefab watcher")
		}
	default:
	}

	for _, name := range g.watcher.Poll() {
		if name != prefabs.ControllerFile {
			continue
		}
		spec, err := prefabs.LoadControllerSpec()
		if err == nil {
			err = g.player.Reload(spec)
		}
		if err != nil {
			g.log.WithError(err).Warn("controller reload rejected")
			g.status = "reload rejected: " + err.Error()
			continue
		}
		g.status = "controller reloaded"
	}
}

func (g *Game) exportRecording() {
	rec := g.player.Recording()
	if err := replay.Verify(rec); err != nil {
		g.log.WithError(err).Error("recording does not replay")
	}
	data, err := replay.Marshal(rec)
	if err != nil {
		g.log.WithError(err).Error("marshal recording")
		return
	}
	if !g.clipboardOK {
		g.status = "clipboard unavailable"
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.status = fmt.Sprintf("copied %d frames", len(rec.Frames))
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)
	g.drawArena(screen)
	g.player.Draw(screen, g.camera)
	if g.debug {
		obj.DebugDraw(screen, g.camera, g.player.World)
	}

	st := g.player.State()
	rep := g.player.LastReport()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.2f  ticks: %d\nvel: (%.2f, %.2f, %.2f)  floor: %v\nyaw: %.3f  pitch: %.3f  body: %.3f\n%s",
		ebiten.ActualFPS(), g.player.Ticks(),
		st.Velocity.X(), st.Velocity.Y(), st.Velocity.Z(), rep.OnFloor,
		st.CameraYaw, st.CameraPitch, st.BodyYaw,
		g.status,
	))

	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) drawArena(screen *ebiten.Image) {
	x0, y0 := g.camera.WorldToScreen(mgl32.Vec3{})
	w, d := g.camera.Scale(g.arena.Width), g.camera.Scale(g.arena.Depth)
	vector.FillRect(screen, x0, y0, w, d, colornames.Dimgray, false)
	vector.StrokeRect(screen, x0, y0, w, d, 2, colornames.Lightgrey, false)

	for _, wall := range g.arena.Walls {
		x, y := g.camera.WorldToScreen(mgl32.Vec3{wall.X, 0, wall.Z})
		vector.FillRect(screen, x, y, g.camera.Scale(wall.W), g.camera.Scale(wall.D), colornames.Slategray, false)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
