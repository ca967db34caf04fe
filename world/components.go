package world

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/fpsim"
	"github.com/oomph-ac/strafe/probe"
)

// Motion is the linear velocity of a body and the axes it was stopped on when last integrated.
type Motion struct {
	Velocity mgl32.Vec3
	Blocked  probe.Collision
}

// Ground holds the result of the last downward sweep of a body.
type Ground struct {
	Hits fpsim.Sweep
}

// View is the camera placement derived from a body after each tick.
type View struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// Controls holds the pressed actions queued for a body, the input built from them and the result
// of the last controller tick.
type Controls struct {
	Actions fpsim.Actions
	Input   fpsim.Input
	Result  fpsim.TickResult

	builder fpsim.InputBuilder
}
