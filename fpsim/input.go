package fpsim

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/game"
)

// Input is the normalised input of a single tick. The simulator only reads it.
type Input struct {
	// Movement is the body-local (right, up, forward) axis vector, each axis in [-1, 1].
	Movement mgl32.Vec3
	// Pitch and Yaw are the absolute look angles in radians.
	Pitch, Yaw float32

	Jump   bool
	Sprint bool
	Crouch bool
	// Fly is true only on the tick the fly action was pressed.
	Fly bool
}

// Actions is the pressed state of every bound action for a tick, plus the raw mouse delta.
type Actions struct {
	Forward, Backward bool
	Left, Right       bool

	Jump   bool
	Sprint bool
	Crouch bool
	Fly    bool

	MouseDelta mgl32.Vec2
}

// InputBuilder turns the pressed actions of consecutive ticks into Input. It remembers the fly
// action of the previous tick so that Input.Fly is edge triggered.
type InputBuilder struct {
	flyHeld bool
}

// Apply updates in from the actions of this tick. Nothing is updated while the controller has its
// input disabled.
func (b *InputBuilder) Apply(state *State, in *Input, actions Actions) {
	if !state.EnableInput {
		return
	}

	delta := actions.MouseDelta.Mul(state.Sensitivity)
	in.Pitch = game.ClampPitch(in.Pitch - delta.Y())
	in.Yaw = game.WrapYaw(in.Yaw - delta.X())

	in.Movement = mgl32.Vec3{
		axis(actions.Right, actions.Left),
		axis(actions.Jump, actions.Sprint),
		axis(actions.Forward, actions.Backward),
	}

	in.Fly = actions.Fly && !b.flyHeld
	b.flyHeld = actions.Fly
	in.Sprint = actions.Sprint
	in.Jump = actions.Jump
	in.Crouch = actions.Crouch
}

func axis(positive, negative bool) float32 {
	var v float32
	if positive {
		v++
	}
	if negative {
		v--
	}
	return v
}
