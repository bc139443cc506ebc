package component

// Rig is the camera rig. Yaw rotates the whole rig about the up axis and
// Pitch tilts the spring arm.
type Rig interface {
	Yaw() float32
	Pitch() float32
	SetYaw(yaw float32)
	SetPitch(pitch float32)
}

// Pivot is the visual pivot of the body.
type Pivot interface {
	Yaw() float32
	SetYaw(yaw float32)
}

// Ref is an optional reference to a scene object that may not exist.
type Ref[T any] struct {
	v  T
	ok bool
}

func Some[T any](v T) Ref[T] {
	return Ref[T]{v: v, ok: true}
}

func None[T any]() Ref[T] {
	return Ref[T]{}
}

func (r Ref[T]) Present() bool {
	return r.ok
}

// Get returns the referenced value and whether it is present.
func (r Ref[T]) Get() (T, bool) {
	return r.v, r.ok
}
