package obj

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/thirdperson/common"
)

// Camera is the sandbox's overhead view. It follows a point on the X/Z
// plane and maps world units to screen pixels; +X is right and +Z is down
// the screen.
type Camera struct {
	PosX float64
	PosZ float64

	screenW int
	screenH int
	// pixels per world unit
	zoom float64

	// smoothing factor (0..1). higher -> faster follow. e.g. 0.15
	smooth float64
	// world bounds in world units (0 means unbounded)
	worldW float64
	worldD float64
}

// NewCamera creates a camera with the given logical screen size and zoom.
func NewCamera(screenW, screenH int, zoom float64) *Camera {
	return &Camera{screenW: screenW, screenH: screenH, zoom: zoom, smooth: 0.15}
}

// SetZoom changes the pixels per world unit. Non-positive values are
// ignored.
func (c *Camera) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	c.zoom = z
	c.constrain()
}

func (c *Camera) Zoom() float64 {
	return c.zoom
}

// SetWorldBounds sets the world size used to clamp the view.
func (c *Camera) SetWorldBounds(w, d float32) {
	c.worldW = float64(w)
	c.worldD = float64(d)
}

func (c *Camera) SetSmooth(f float64) {
	c.smooth = common.Clamp(f, 0, 1)
}

// Update moves the camera toward target. Call from the fixed-rate Update
// loop to get consistent smoothing.
func (c *Camera) Update(target mgl32.Vec3) {
	tx, tz := float64(target.X()), float64(target.Z())
	if c.smooth <= 0 {
		c.PosX, c.PosZ = tx, tz
	} else {
		c.PosX = common.Lerp(c.PosX, tx, c.smooth)
		c.PosZ = common.Lerp(c.PosZ, tz, c.smooth)
	}
	c.constrain()
}

// SnapTo places the camera on target without smoothing, e.g. after a
// level load.
func (c *Camera) SnapTo(target mgl32.Vec3) {
	c.PosX, c.PosZ = float64(target.X()), float64(target.Z())
	c.constrain()
}

func (c *Camera) constrain() {
	if c.zoom <= 0 {
		return
	}
	// align to whole screen pixels
	c.PosX = math.Round(c.PosX*c.zoom) / c.zoom
	c.PosZ = math.Round(c.PosZ*c.zoom) / c.zoom

	halfW := float64(c.screenW) / c.zoom / 2.0
	halfD := float64(c.screenH) / c.zoom / 2.0
	c.PosX = clampAxis(c.PosX, halfW, c.worldW)
	c.PosZ = clampAxis(c.PosZ, halfD, c.worldD)
}

func clampAxis(v, half, world float64) float64 {
	if world <= 0 {
		return v
	}
	if world-half < half {
		// world smaller than view: center on world
		return world / 2.0
	}
	return common.Clamp(v, half, world-half)
}

// WorldToScreen projects a world point onto the screen.
func (c *Camera) WorldToScreen(p mgl32.Vec3) (float32, float32) {
	sx := (float64(p.X())-c.PosX)*c.zoom + float64(c.screenW)/2.0
	sy := (float64(p.Z())-c.PosZ)*c.zoom + float64(c.screenH)/2.0
	return float32(sx), float32(sy)
}

// Scale converts a world length to pixels.
func (c *Camera) Scale(l float32) float32 {
	return l * float32(c.zoom)
}
