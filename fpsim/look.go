package fpsim

import "github.com/oomph-ac/strafe/game"

// SyncLook copies the look angles of the input into the state, clamping pitch and wrapping yaw.
func (s *Simulator) SyncLook(body *Body) {
	body.State.Pitch = game.ClampPitch(body.Input.Pitch)
	body.State.Yaw = game.WrapYaw(body.Input.Yaw)
}
