package world

import (
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/fpsim"
	"github.com/oomph-ac/strafe/game"
	"github.com/oomph-ac/strafe/probe"
)

func newTestWorld(t *testing.T, workers int) *World {
	t.Helper()
	w := New(Config{
		TickRate: 60,
		Workers:  workers,
		Camera:   Camera{RadiusScale: 0.75},
	}, probe.NewPlayground(probe.DefaultOptions()), slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(w.Close)
	return w
}

func tickN(w *World, n int) {
	for i := 0; i < n; i++ {
		w.Tick()
	}
}

func TestSpawnFallsAndLands(t *testing.T) {
	w := newTestWorld(t, 1)
	e := w.Spawn(fpsim.DefaultTunables(), probe.SpawnPoint)

	w.Tick()
	snap, err := w.Snapshot(e)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.Result.Grounded || snap.Velocity.Y() >= 0 {
		t.Fatalf("freshly spawned body should fall, got %+v", snap)
	}

	tickN(w, 120)
	snap, _ = w.Snapshot(e)
	// The body rests on the floor, hovering at most the ground reach above it.
	y := snap.Transform.Translation.Y()
	if y < 1.5-1e-3 || y > 1.5+0.1 {
		t.Fatalf("body rests at y=%v, want about 1.5", y)
	}
	if game.Vec3HzLen(snap.Velocity) != 0 {
		t.Fatalf("idle body drifts with velocity %v", snap.Velocity)
	}
}

func TestWalkForward(t *testing.T) {
	w := newTestWorld(t, 1)
	e := w.Spawn(fpsim.DefaultTunables(), probe.SpawnPoint)
	tickN(w, 60)

	if err := w.SetActions(e, fpsim.Actions{Forward: true}); err != nil {
		t.Fatalf("set actions: %v", err)
	}
	tickN(w, 60)

	snap, _ := w.Snapshot(e)
	if snap.Transform.Translation.Z() > -1 {
		t.Fatalf("body did not walk forward, at %v", snap.Transform.Translation)
	}
	if speed := game.Vec3HzLen(snap.Velocity); speed > snap.State.WalkSpeed+1e-3 {
		t.Fatalf("walking speed %v exceeds walk speed %v", speed, snap.State.WalkSpeed)
	}
}

func TestFlyToggle(t *testing.T) {
	w := newTestWorld(t, 1)
	e := w.Spawn(fpsim.DefaultTunables(), probe.SpawnPoint)

	_ = w.SetActions(e, fpsim.Actions{Fly: true, Forward: true})
	w.Tick()
	snap, _ := w.Snapshot(e)
	if snap.State.MoveMode != fpsim.ModeNoclip || snap.Result.Outcome != fpsim.TickOutcomeNoclip {
		t.Fatalf("mode %v outcome %v, want noclip", snap.State.MoveMode, snap.Result.Outcome)
	}

	// Holding the key does not toggle again, releasing every key stops the body.
	_ = w.SetActions(e, fpsim.Actions{Fly: true})
	w.Tick()
	snap, _ = w.Snapshot(e)
	if snap.State.MoveMode != fpsim.ModeNoclip {
		t.Fatalf("held fly key toggled the mode back")
	}
	if snap.Velocity != (mgl32.Vec3{}) {
		t.Fatalf("noclip body without input moves with %v", snap.Velocity)
	}
}

func TestDisabledBody(t *testing.T) {
	w := newTestWorld(t, 1)
	e := w.Spawn(fpsim.DefaultTunables(), probe.SpawnPoint)
	if err := w.SetEnabled(e, false); err != nil {
		t.Fatalf("set enabled: %v", err)
	}
	_ = w.SetActions(e, fpsim.Actions{Forward: true, Fly: true})
	w.Tick()

	snap, _ := w.Snapshot(e)
	if snap.Result.Outcome != fpsim.TickOutcomeDisabled {
		t.Fatalf("outcome %v, want disabled", snap.Result.Outcome)
	}
	if snap.State.MoveMode != fpsim.ModeGround || snap.Input.Movement != (mgl32.Vec3{}) {
		t.Fatalf("disabled body consumed input: %+v", snap)
	}
}

func TestWorkersMatchSingleGoroutine(t *testing.T) {
	single, parallel := newTestWorld(t, 1), newTestWorld(t, 4)
	var a, b []Body
	for i := 0; i < 8; i++ {
		pos := probe.SpawnPoint.Add(mgl32.Vec3{float32(i) * 2, 0, 0})
		a = append(a, single.Spawn(fpsim.DefaultTunables(), pos))
		b = append(b, parallel.Spawn(fpsim.DefaultTunables(), pos))
	}
	for tick := 0; tick < 90; tick++ {
		for i := range a {
			actions := fpsim.Actions{
				Forward:    tick%3 != 0,
				Left:       i%2 == 0,
				Jump:       tick%20 == 0,
				Crouch:     tick > 60,
				MouseDelta: mgl32.Vec2{float32(i * 10), 3},
			}
			_ = single.SetActions(a[i], actions)
			_ = parallel.SetActions(b[i], actions)
		}
		single.Tick()
		parallel.Tick()
	}
	for i := range a {
		sa, _ := single.Snapshot(a[i])
		sb, _ := parallel.Snapshot(b[i])
		if sa != sb {
			t.Fatalf("body %d diverged:\n%+v\n%+v", i, sa, sb)
		}
	}
}

func TestSystems(t *testing.T) {
	w := newTestWorld(t, 1)
	want := []string{SystemInput, SystemController, SystemPhysics, SystemCamera}
	if got := w.Systems(); !slices.Equal(got, want) {
		t.Fatalf("systems = %v, want %v", got, want)
	}

	var runs int
	if err := w.AddSystem("count", SystemFunc(func(*World, float32) error {
		runs++
		return nil
	})); err != nil {
		t.Fatalf("add system: %v", err)
	}
	if err := w.AddSystem("count", SystemFunc(nil)); err == nil {
		t.Fatalf("duplicate system was accepted")
	}
	tickN(w, 3)
	if runs != 3 {
		t.Fatalf("custom system ran %d times, want 3", runs)
	}

	if err := w.RemoveSystem("count"); err != nil {
		t.Fatalf("remove system: %v", err)
	}
	if err := w.RemoveSystem("count"); err == nil {
		t.Fatalf("removing an unknown system succeeded")
	}
	if w.CurrentTick() != 3 {
		t.Fatalf("tick = %d, want 3", w.CurrentTick())
	}
}

func TestDespawn(t *testing.T) {
	w := newTestWorld(t, 1)
	first := w.Spawn(fpsim.DefaultTunables(), probe.SpawnPoint)
	second := w.Spawn(fpsim.DefaultTunables(), probe.SpawnPoint.Add(mgl32.Vec3{3, 0, 0}))

	if err := w.Despawn(first); err != nil {
		t.Fatalf("despawn: %v", err)
	}
	if err := w.Despawn(first); err == nil {
		t.Fatalf("despawning twice succeeded")
	}
	if _, err := w.Snapshot(first); err == nil {
		t.Fatalf("snapshot of a despawned body succeeded")
	}
	if got := w.Bodies(); len(got) != 1 || got[0] != second {
		t.Fatalf("bodies = %v, want only the second body", got)
	}
	w.Tick()
}

func TestCameraPlacement(t *testing.T) {
	w := New(Config{TickRate: 60, Camera: Camera{HeightOffset: 0.2, RadiusScale: 0.75}},
		probe.NewPlayground(probe.DefaultOptions()), slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer w.Close()

	e := w.Spawn(fpsim.DefaultTunables(), probe.SpawnPoint)
	_ = w.SetActions(e, fpsim.Actions{MouseDelta: mgl32.Vec2{-300, -200}})
	w.Tick()

	snap, _ := w.Snapshot(e)
	height := snap.State.Height/2 + snap.State.Radius*0.75 + 0.2
	want := snap.Transform.Translation.Add(mgl32.Vec3{0, height, 0})
	if !snap.View.Position.ApproxEqualThreshold(want, 1e-5) {
		t.Fatalf("view at %v, want %v", snap.View.Position, want)
	}
	rot := game.LookRotation(snap.State.Yaw, snap.State.Pitch)
	if !snap.View.Rotation.ApproxEqualThreshold(rot, 1e-5) {
		t.Fatalf("view rotation %v, want %v", snap.View.Rotation, rot)
	}
}

func TestWallBlocksBody(t *testing.T) {
	w := newTestWorld(t, 1)
	tunables := fpsim.DefaultTunables()
	e := w.Spawn(tunables, mgl32.Vec3{-7, 3, 0})
	tickN(w, 60)

	// Turn a quarter to the left to face the wall at x=-9, then walk into it.
	_ = w.SetActions(e, fpsim.Actions{Forward: true, MouseDelta: mgl32.Vec2{-(math32.Pi / 2) / tunables.Sensitivity, 0}})
	w.Tick()
	_ = w.SetActions(e, fpsim.Actions{Forward: true})
	tickN(w, 60)

	snap, _ := w.Snapshot(e)
	if !snap.Blocked.X || !snap.Blocked.Any() {
		t.Fatalf("body pushing into the wall was not blocked: %+v", snap.Blocked)
	}
	if x := snap.Transform.Translation.X(); x < -8.5-1e-3 {
		t.Fatalf("body went through the wall, at x=%v", x)
	}
}
