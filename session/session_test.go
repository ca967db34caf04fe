package session

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/fpsim"
	"github.com/oomph-ac/strafe/world"
)

func snapshot() world.Snapshot {
	return world.Snapshot{
		State:     *fpsim.NewState(fpsim.DefaultTunables()),
		Velocity:  mgl32.Vec3{1, -2, 3},
		Transform: fpsim.NewTransform(mgl32.Vec3{4, 5, 6}),
	}
}

func TestChecksumStable(t *testing.T) {
	if Checksum(snapshot()) != Checksum(snapshot()) {
		t.Fatal("checksum differs between identical snapshots")
	}
}

func TestChecksumSensitive(t *testing.T) {
	base := Checksum(snapshot())
	mutations := map[string]func(s *world.Snapshot){
		"velocity":    func(s *world.Snapshot) { s.Velocity[1] += 1e-6 },
		"translation": func(s *world.Snapshot) { s.Transform.Translation[0] = 4.0001 },
		"yaw":         func(s *world.Snapshot) { s.State.Yaw = 0.25 },
		"ground tick": func(s *world.Snapshot) { s.State.GroundTick = 1 },
		"mode":        func(s *world.Snapshot) { s.State.MoveMode = fpsim.ModeNoclip },
		"grounded":    func(s *world.Snapshot) { s.State.Grounded = true },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			snap := snapshot()
			mutate(&snap)
			if Checksum(snap) == base {
				t.Fatal("checksum did not change")
			}
		})
	}

	// The view is derived from the rest of the body and is not part of the checksum.
	snap := snapshot()
	snap.View.Position = mgl32.Vec3{9, 9, 9}
	if Checksum(snap) != base {
		t.Fatal("checksum changed with the view")
	}
}

func TestRecordAndRead(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf)
	actions := fpsim.Actions{Forward: true, Jump: true, MouseDelta: mgl32.Vec2{0.5, -2}}

	if err := rec.Record(NewFrame(0, 0, actions, true, 0xdeadbeef), NewFrame(0, 1, fpsim.Actions{}, false, 1)); err != nil {
		t.Fatalf("record tick 0: %v", err)
	}
	if err := rec.Record(NewFrame(1, 0, fpsim.Actions{Fly: true}, true, 2), NewFrame(1, 1, fpsim.Actions{}, true, 3)); err != nil {
		t.Fatalf("record tick 1: %v", err)
	}
	if err := rec.Record(); err != nil {
		t.Fatalf("record nothing: %v", err)
	}
	if rec.Frames() != 4 {
		t.Fatalf("frames = %d, want 4", rec.Frames())
	}
	if n := strings.Count(buf.String(), "checksum"); n != 1 {
		t.Fatalf("header written %d times", n)
	}

	frames, err := Read(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(frames) != 4 {
		t.Fatalf("read %d frames, want 4", len(frames))
	}
	if got := frames[0].Actions(); got != actions {
		t.Fatalf("actions = %+v, want %+v", got, actions)
	}
	if frames[1].Enabled {
		t.Fatal("frame 1 should be disabled")
	}
	sum, err := frames[0].Sum()
	if err != nil || sum != 0xdeadbeef {
		t.Fatalf("sum = %x, %v", sum, err)
	}
}

func TestMalformedSum(t *testing.T) {
	if _, err := (Frame{Checksum: "xyz"}).Sum(); err == nil {
		t.Fatal("expected an error for a malformed checksum")
	}
}

func TestTicks(t *testing.T) {
	frames := []Frame{
		{Tick: 0, Body: 0}, {Tick: 0, Body: 1},
		{Tick: 1, Body: 0}, {Tick: 1, Body: 1},
	}
	ticks, err := Ticks(frames)
	if err != nil {
		t.Fatalf("ticks: %v", err)
	}
	if len(ticks) != 2 || len(ticks[1]) != 2 {
		t.Fatalf("ticks = %v", ticks)
	}

	invalid := map[string][]Frame{
		"gap":           {{Tick: 0}, {Tick: 2}},
		"body order":    {{Tick: 0, Body: 1}},
		"missing body":  {{Tick: 0, Body: 0}, {Tick: 0, Body: 1}, {Tick: 1, Body: 0}},
		"repeated body": {{Tick: 0, Body: 0}, {Tick: 0, Body: 0}},
	}
	for name, frames := range invalid {
		if _, err := Ticks(frames); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
