package fpsim

import "github.com/go-gl/mathgl/mgl32"

// Transform is the world placement of a body. Translation is the centre of its collider.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
}

// NewTransform returns an unrotated transform at the position passed.
func NewTransform(pos mgl32.Vec3) Transform {
	return Transform{Translation: pos, Rotation: mgl32.QuatIdent()}
}

// rotation returns the rotation of the transform, treating the zero quaternion as identity.
func (t *Transform) rotation() mgl32.Quat {
	if t.Rotation.W == 0 && t.Rotation.V == (mgl32.Vec3{}) {
		return mgl32.QuatIdent()
	}
	return t.Rotation
}

// Body bundles the state of one logical body for a tick. The simulator has exclusive access to
// everything it points to while it runs, so bodies may be ticked concurrently as long as no two
// goroutines share a Body.
type Body struct {
	State     *State
	Input     *Input
	Velocity  *mgl32.Vec3
	Transform *Transform
	Collider  *Collider
	// Hits are the ground sweep results of the previous physics step.
	Hits Sweep
}
