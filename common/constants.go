package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TicksPerSecond is the rate ebiten calls Update at.
	TicksPerSecond = 60
	TimeStep       = float32(1.0 / TicksPerSecond)
)
