package fpsim

import "github.com/oomph-ac/strafe/assert"

// Options define simulator behaviour that is not part of a controller's tuning.
type Options struct {
	// Debugf receives internal simulation trace logs for callers that need deep diagnostics.
	Debugf func(format string, args ...any)
}

// Simulator advances first person controllers. It holds no per-body state, so a single simulator
// may tick any number of bodies, including concurrently.
type Simulator struct {
	Options Options
}

// Tick runs one full controller tick for the body: ground evaluation, movement and orientation
// sync, in that order. The ground sweep results in body.Hits are expected to be from the previous
// physics step.
func (s *Simulator) Tick(body *Body, dt float32) TickResult {
	assert.IsTrue(body != nil && body.State != nil && body.Input != nil, "fpsim: tick of incomplete body")
	assert.IsTrue(dt >= 0, "fpsim: negative tick duration %v", dt)
	if !body.State.EnableInput {
		return TickResult{Outcome: TickOutcomeDisabled, Mode: body.State.MoveMode, Grounded: body.State.Grounded}
	}

	s.EvaluateGround(body)
	result := s.Move(body, dt)
	s.SyncLook(body)
	return result
}

func (s *Simulator) debugf(format string, args ...any) {
	if s.Options.Debugf != nil {
		s.Options.Debugf(format, args...)
	}
}
