// Package telemetry samples bodies every tick, writes the samples as CSV and summarises how the
// bodies moved over a run.
package telemetry

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/oomph-ac/strafe/game"
	"github.com/oomph-ac/strafe/world"
)

// Sample is the state of one body after a tick.
type Sample struct {
	Tick uint64 `csv:"tick"`
	Body int    `csv:"body"`

	X float32 `csv:"x"`
	Y float32 `csv:"y"`
	Z float32 `csv:"z"`

	VelX float32 `csv:"vel_x"`
	VelY float32 `csv:"vel_y"`
	VelZ float32 `csv:"vel_z"`
	// HzSpeed is the length of the horizontal velocity.
	HzSpeed float32 `csv:"hz_speed"`

	Grounded   bool    `csv:"grounded"`
	GroundTick uint8   `csv:"ground_tick"`
	Jumped     bool    `csv:"jumped"`
	Stepped    bool    `csv:"stepped"`
	// HitWall is set when the body was stopped horizontally while moving.
	HitWall    bool    `csv:"hit_wall"`
	Height     float32 `csv:"height"`
	Yaw        float32 `csv:"yaw"`
	Pitch      float32 `csv:"pitch"`
	Mode       string  `csv:"mode"`
	Outcome    string  `csv:"outcome"`
}

// NewSample samples a body.
func NewSample(tick uint64, body int, snap world.Snapshot) Sample {
	pos, vel := snap.Transform.Translation, snap.Velocity
	return Sample{
		Tick:       tick,
		Body:       body,
		X:          pos.X(),
		Y:          pos.Y(),
		Z:          pos.Z(),
		VelX:       vel.X(),
		VelY:       vel.Y(),
		VelZ:       vel.Z(),
		HzSpeed:    game.Vec3HzLen(vel),
		Grounded:   snap.State.Grounded,
		GroundTick: snap.State.GroundTick,
		Jumped:     snap.Result.Jumped,
		Stepped:    snap.Result.Stepped,
		HitWall:    snap.Blocked.X || snap.Blocked.Z,
		Height:     snap.State.Height,
		Yaw:        snap.State.Yaw,
		Pitch:      snap.State.Pitch,
		Mode:       snap.State.MoveMode.String(),
		Outcome:    snap.Result.Outcome.String(),
	}
}

// Writer writes samples as CSV. The header is written with the first samples.
type Writer struct {
	w             io.Writer
	headerWritten bool
}

// NewWriter returns a Writer writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes the samples of one tick.
func (w *Writer) Write(samples []Sample) error {
	if len(samples) == 0 {
		return nil
	}
	if !w.headerWritten {
		if err := gocsv.Marshal(samples, w.w); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		w.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(samples, w.w); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}
