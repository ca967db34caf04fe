package fpsim

// TickOutcome describes which path the simulator took for the current tick.
type TickOutcome uint8

const (
	TickOutcomeNormal TickOutcome = iota
	TickOutcomeNoclip
	// TickOutcomeShapeSkipped is returned in ground mode when the collider is not a capsule. Velocity
	// is left untouched.
	TickOutcomeShapeSkipped
	// TickOutcomeDisabled is returned when the controller has its input disabled.
	TickOutcomeDisabled
)

func (o TickOutcome) String() string {
	switch o {
	case TickOutcomeNormal:
		return "normal"
	case TickOutcomeNoclip:
		return "noclip"
	case TickOutcomeShapeSkipped:
		return "shape_skipped"
	case TickOutcomeDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// TickResult captures what happened to a body during a single tick.
type TickResult struct {
	Outcome TickOutcome
	Mode    MoveMode

	Grounded bool
	Jumped   bool
	Stepped  bool
	// StepHeight is how far the body was lifted by the step offset.
	StepHeight float32

	FrictionApplied bool
	ColliderResized bool
}
