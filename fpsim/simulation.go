package fpsim

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/game"
)

// Move runs the movement step of a tick: the fly toggle, then either free flight or ground
// movement depending on the active mode. It expects EvaluateGround to have run for this tick.
func (s *Simulator) Move(body *Body, dt float32) TickResult {
	state, input := body.State, body.Input
	if input.Fly {
		state.MoveMode = state.MoveMode.Toggle()
		s.debugf("Move(): mode toggled to %s", state.MoveMode)
	}

	pitch, yaw := game.ClampPitch(input.Pitch), game.WrapYaw(input.Yaw)
	result := TickResult{Mode: state.MoveMode}
	switch state.MoveMode {
	case ModeNoclip:
		s.moveNoclip(body, pitch, yaw)
		result.Outcome = TickOutcomeNoclip
	case ModeGround:
		s.moveGround(body, yaw, dt, &result)
	}
	result.Grounded = state.Grounded
	s.debugf("Move(): outcome=%s grounded=%t groundTick=%d vel=%v", result.Outcome, state.Grounded, state.GroundTick, *body.Velocity)
	return result
}

// moveNoclip sets the velocity straight from the input, along the full look orientation. Up
// always means world up regardless of pitch.
func (s *Simulator) moveNoclip(body *Body, pitch, yaw float32) {
	movement := body.Input.Movement
	if movement == (mgl32.Vec3{}) {
		*body.Velocity = mgl32.Vec3{}
		return
	}

	speed := body.State.FlySpeed
	if body.Input.Sprint {
		speed = body.State.FastFlySpeed
	}
	right, forward := game.LookBasis(yaw, pitch)
	vel := right.Mul(movement.X()).Add(worldUp.Mul(movement.Y())).Add(forward.Mul(movement.Z()))
	*body.Velocity = vel.Mul(speed)
}

func (s *Simulator) moveGround(body *Body, yaw, dt float32, result *TickResult) {
	capsule, ok := body.Collider.Capsule()
	if !ok {
		result.Outcome = TickOutcomeShapeSkipped
		s.debugf("moveGround(): collider is not a capsule, skipping")
		return
	}
	state, input := body.State, body.Input
	wishDir, wishSpeed := s.wish(state, input, yaw)

	if !state.Grounded {
		s.moveAir(body, wishDir, wishSpeed, dt)
	}
	for _, hit := range body.Hits {
		friction, jumped := s.contact(body, hit, wishDir, wishSpeed, dt)
		result.FrictionApplied = result.FrictionApplied || friction
		if jumped {
			result.Jumped = true
			break
		}
	}

	if state.StepOffset > game.Epsilon && state.GroundTick >= 1 {
		result.StepHeight, result.Stepped = s.stepUp(body)
	}
	result.ColliderResized = s.crouch(state, capsule, input.Crouch, dt)
}

// wish returns the horizontal direction the input asks to move in and the speed to reach along it,
// capped by the crouch, sprint or walk speed.
func (s *Simulator) wish(state *State, input *Input, yaw float32) (mgl32.Vec3, float32) {
	right, forward := game.YawBasis(yaw)
	wishVel := right.Mul(input.Movement.X() * state.SideSpeed).Add(forward.Mul(input.Movement.Z() * state.ForwardSpeed))

	wishSpeed := wishVel.Len()
	wishDir := game.NormalizeOrZero(wishVel)

	speedCap := state.WalkSpeed
	switch {
	case input.Crouch:
		speedCap = state.CrouchedSpeed
	case input.Sprint:
		speedCap = state.RunSpeed
	}
	return wishDir, math32.Min(wishSpeed, speedCap)
}

// moveAir applies air control and gravity. Horizontal speed is capped at MaxAirSpeed afterwards.
func (s *Simulator) moveAir(body *Body, wishDir mgl32.Vec3, wishSpeed, dt float32) {
	state := body.State
	state.GroundTick = 0

	add := Accelerate(wishDir, math32.Min(wishSpeed, state.AirSpeedCap), state.AirAcceleration, *body.Velocity, dt)
	add[1] = -state.Gravity * dt
	vel := body.Velocity.Add(add)

	if lateral := game.Vec3HzLen(vel); lateral > state.MaxAirSpeed {
		ratio := state.MaxAirSpeed / lateral
		vel[0] *= ratio
		vel[2] *= ratio
	}
	*body.Velocity = vel
}

// contact runs the ground movement for a single sweep hit. It reports whether friction was applied
// and whether the body jumped off the surface, which ends contact processing for the tick.
func (s *Simulator) contact(body *Body, hit Contact, wishDir mgl32.Vec3, wishSpeed, dt float32) (friction, jumped bool) {
	state, vel := body.State, body.Velocity
	traction := hit.Normal.Y() > state.TractionNormalCutoff

	if traction && state.GroundTick >= 1 {
		*vel = state.ApplyFriction(*vel, dt)
		friction = true
	}

	add := Accelerate(wishDir, wishSpeed, state.Acceleration, *vel, dt)
	if !traction {
		add[1] -= state.Gravity * dt
	}
	*vel = vel.Add(add)

	if traction {
		*vel = vel.Sub(hit.Normal.Mul(vel.Dot(hit.Normal)))
		if body.Input.Jump && state.GroundTick > 0 {
			vel[1] = state.JumpSpeed
			state.GroundTick = 0
			state.Grounded = false
			jumped = true
			s.debugf("contact(): jumped with vel=%v", *vel)
		}
		if body.Transform != nil {
			body.Transform.Translation[1] += game.GroundBias
		}
	}

	if !jumped {
		state.incrementGroundTick()
	}
	return friction, jumped
}

// stepUp lifts the body onto a ledge of at most StepOffset in front of it. The probe origin sits
// slightly ahead of the body along the yaw of the previous tick and slightly above the step
// height. Only the first hit within reach is considered.
func (s *Simulator) stepUp(body *Body) (float32, bool) {
	if body.Transform == nil {
		return 0, false
	}
	state := body.State
	_, forward := game.YawBasis(state.Yaw)
	origin := body.Transform.Translation.
		Add(forward.Mul(state.Radius * game.StepCastScale)).
		Add(worldUp.Mul(state.StepOffset * game.StepCastScale))

	for _, hit := range body.Hits {
		distance := origin.Y() - hit.Point.Y()
		if distance > state.StepOffset {
			continue
		}
		height := state.StepOffset - distance
		if height <= 0 {
			return 0, false
		}
		body.Transform.Translation[1] += height
		body.Velocity[1] = math32.Max(body.Velocity.Y(), 0)
		s.debugf("stepUp(): lifted by %v", height)
		return height, true
	}
	return 0, false
}

// crouch blends the controller height toward the crouch or upright height and resizes the capsule
// when the height changed.
func (s *Simulator) crouch(state *State, capsule *Capsule, crouching bool, dt float32) bool {
	if crouching {
		state.Height -= dt * state.CrouchSpeed
	} else {
		state.Height += dt * state.UncrouchSpeed
	}
	state.Height = game.ClampFloat(state.Height, state.CrouchHeight, state.UprightHeight)

	if capsule.Height == state.Height {
		return false
	}
	capsule.Height = state.Height
	return true
}
