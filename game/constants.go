package game

const (
	// AngleEpsilon keeps the pitch away from the poles.
	AngleEpsilon = float32(0.001953125)
	// Epsilon guards normalisation and other divisions by small lengths (f32::EPSILON).
	Epsilon = float32(1.1920929e-07)

	// GroundAngleThreshold is the largest angle (radians) between a contact's normal and world
	// up that still counts as standing on the ground.
	GroundAngleThreshold = float32(0.3)
	// GroundBias is how far a body is nudged up after touching a surface with traction.
	GroundBias = float32(0.01)
	// StepCastScale scales the forward offset and the height of the step probe origin.
	StepCastScale = float32(1.1)

	// SweepScale and SweepMaxHits describe the downward ground sweep. SweepMaxDistance bounds how
	// far it may reach, GroundReach is how far it reaches by default.
	SweepScale       = float32(0.99)
	SweepMaxDistance = float32(6)
	SweepMaxHits     = 10
	GroundReach      = float32(0.05)
)
