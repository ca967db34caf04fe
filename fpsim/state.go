package fpsim

// MoveMode is the movement mode of a controller. Exactly one mode is active at a time.
type MoveMode uint8

const (
	ModeGround MoveMode = iota
	ModeNoclip
)

// Toggle returns the other mode.
func (m MoveMode) Toggle() MoveMode {
	if m == ModeNoclip {
		return ModeGround
	}
	return ModeNoclip
}

func (m MoveMode) String() string {
	switch m {
	case ModeGround:
		return "ground"
	case ModeNoclip:
		return "noclip"
	default:
		return "unknown"
	}
}

// Tunables are the designer supplied parameters of a controller. Speeds are in units per second,
// accelerations are multipliers of the wish speed per second.
type Tunables struct {
	WalkSpeed     float32 `yaml:"walk_speed"`
	RunSpeed      float32 `yaml:"run_speed"`
	CrouchedSpeed float32 `yaml:"crouched_speed"`
	ForwardSpeed  float32 `yaml:"forward_speed"`
	SideSpeed     float32 `yaml:"side_speed"`

	Acceleration    float32 `yaml:"acceleration"`
	AirAcceleration float32 `yaml:"air_acceleration"`
	AirSpeedCap     float32 `yaml:"air_speed_cap"`
	MaxAirSpeed     float32 `yaml:"max_air_speed"`

	Friction            float32 `yaml:"friction"`
	StopSpeed           float32 `yaml:"stop_speed"`
	FrictionSpeedCutoff float32 `yaml:"friction_speed_cutoff"`

	Gravity              float32 `yaml:"gravity"`
	JumpSpeed            float32 `yaml:"jump_speed"`
	StepOffset           float32 `yaml:"step_offset"`
	TractionNormalCutoff float32 `yaml:"traction_normal_cutoff"`

	FlySpeed     float32 `yaml:"fly_speed"`
	FastFlySpeed float32 `yaml:"fast_fly_speed"`

	CrouchHeight  float32 `yaml:"crouch_height"`
	UprightHeight float32 `yaml:"upright_height"`
	CrouchSpeed   float32 `yaml:"crouch_speed"`
	UncrouchSpeed float32 `yaml:"uncrouch_speed"`
	Radius        float32 `yaml:"radius"`

	// Sensitivity converts raw mouse deltas into radians.
	Sensitivity float32 `yaml:"sensitivity"`
}

// DefaultTunables returns the classic tuning of the controller.
func DefaultTunables() Tunables {
	return Tunables{
		WalkSpeed:     9,
		RunSpeed:      14,
		CrouchedSpeed: 5,
		ForwardSpeed:  30,
		SideSpeed:     30,

		Acceleration:    10,
		AirAcceleration: 80,
		AirSpeedCap:     2,
		MaxAirSpeed:     15,

		Friction:            10,
		StopSpeed:           1,
		FrictionSpeedCutoff: 0.1,

		Gravity:              23,
		JumpSpeed:            8.5,
		StepOffset:           0.25,
		TractionNormalCutoff: 0.7,

		FlySpeed:     10,
		FastFlySpeed: 30,

		CrouchHeight:  1,
		UprightHeight: 2,
		CrouchSpeed:   6,
		UncrouchSpeed: 8,
		Radius:        0.5,

		Sensitivity: 0.001,
	}
}

// State is the per-body controller state: its tunables and the transient movement state. It is
// owned by a single body and only mutated by the Simulator.
type State struct {
	Tunables

	MoveMode MoveMode
	// Height is the current capsule height, blended between CrouchHeight and UprightHeight.
	Height float32
	// GroundTick counts consecutive ticks with ground contact. It saturates instead of wrapping.
	GroundTick uint8
	// Pitch and Yaw mirror the look angles of the last input, in radians.
	Pitch, Yaw float32
	// EnableInput gates the whole controller. A disabled controller keeps its state untouched.
	EnableInput bool
	// Grounded is the classification of the last ground evaluation.
	Grounded bool
}

// NewState returns the spawn state of a controller using the tunables passed: airborne, standing
// upright, in ground mode, with input enabled.
func NewState(t Tunables) *State {
	return &State{
		Tunables:    t,
		MoveMode:    ModeGround,
		Height:      t.UprightHeight,
		EnableInput: true,
	}
}

func (s *State) incrementGroundTick() {
	if s.GroundTick < ^uint8(0) {
		s.GroundTick++
	}
}
