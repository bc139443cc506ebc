package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const Tau = 2 * math32.Pi

// Lerp interpolates linearly from a to b by t.
func Lerp[T ~float32 | ~float64](a, b, t T) T {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi]. It assumes lo <= hi.
func Clamp[T ~float32 | ~float64](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Finite returns v, or 0 when v is NaN or infinite.
func Finite(v float32) float32 {
	if math32.IsNaN(v) || math32.IsInf(v, 0) {
		return 0
	}
	return v
}

// MoveToward steps from toward to by at most delta, never overshooting.
func MoveToward(from, to, delta float32) float32 {
	diff := to - from
	if math32.Abs(diff) <= delta {
		return to
	}
	if diff < 0 {
		return from - delta
	}
	return from + delta
}

// LerpAngle interpolates between two angles in radians along the shortest arc.
func LerpAngle(from, to, weight float32) float32 {
	diff := math32.Mod(to-from, Tau)
	dist := math32.Mod(2*diff, Tau) - diff
	return from + dist*weight
}

// HorizontalLen returns the length of v projected onto the XZ plane.
func HorizontalLen(v mgl32.Vec3) float32 {
	return math32.Sqrt(v.X()*v.X() + v.Z()*v.Z())
}

// LimitLength rescales v to unit length only when it is longer than 1.
func LimitLength(v mgl32.Vec2) mgl32.Vec2 {
	if v.Len() > 1 {
		return v.Normalize()
	}
	return v
}
