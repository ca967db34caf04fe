package fpsim

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/game"
)

// Accelerate returns the velocity to add to vel so that its projection onto wishDir approaches
// wishSpeed. It never pushes the projection past wishSpeed and returns zero once it is reached.
func Accelerate(wishDir mgl32.Vec3, wishSpeed, accel float32, vel mgl32.Vec3, dt float32) mgl32.Vec3 {
	addSpeed := wishSpeed - vel.Dot(wishDir)
	if addSpeed <= 0 {
		return mgl32.Vec3{}
	}
	return wishDir.Mul(math32.Min(accel*wishSpeed*dt, addSpeed))
}

// ApplyFriction returns vel with ground friction applied to its horizontal part. Slow bodies come
// to a stop below FrictionSpeedCutoff, and StopSpeed keeps friction from fading out as the body
// slows. The vertical component is returned unchanged.
func (t Tunables) ApplyFriction(vel mgl32.Vec3, dt float32) mgl32.Vec3 {
	lateral := game.Vec3HzLen(vel)
	if lateral <= t.FrictionSpeedCutoff {
		return mgl32.Vec3{0, vel.Y(), 0}
	}
	drop := math32.Max(lateral, t.StopSpeed) * t.Friction * dt
	scale := math32.Max(lateral-drop, 0) / lateral
	return mgl32.Vec3{vel.X() * scale, vel.Y(), vel.Z() * scale}
}
