package fpsim

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestEvaluateGround(t *testing.T) {
	sim := &Simulator{}
	tests := []struct {
		name     string
		normal   mgl32.Vec3
		grounded bool
	}{
		{"flat", mgl32.Vec3{0, 1, 0}, true},
		{"gentle slope", mgl32.Vec3{math32.Sin(0.2), math32.Cos(0.2), 0}, true},
		{"steep slope", mgl32.Vec3{math32.Sin(0.5), math32.Cos(0.5), 0}, false},
		{"wall", mgl32.Vec3{1, 0, 0}, false},
	}
	for _, tt := range tests {
		body := newTestBody(NewContact(mgl32.Vec3{}, tt.normal, 0))
		if got := sim.EvaluateGround(body); got != tt.grounded || body.State.Grounded != tt.grounded {
			t.Errorf("%s: grounded = %v, want %v", tt.name, got, tt.grounded)
		}
	}
}

func TestEvaluateGroundEmptySweep(t *testing.T) {
	sim := &Simulator{}
	body := newTestBody()
	body.State.Grounded = true
	body.State.GroundTick = 4
	if sim.EvaluateGround(body) {
		t.Fatalf("empty sweep reported grounded")
	}
	if body.State.GroundTick != 4 {
		t.Fatalf("ground tick changed to %v without contacts", body.State.GroundTick)
	}
}

func TestEvaluateGroundUsesRotation(t *testing.T) {
	sim := &Simulator{}
	body := newTestBody(Contact{Normal: mgl32.Vec3{0, 1, 0}, ShapeNormal: mgl32.Vec3{0, -1, 0}})
	body.Transform.Rotation = mgl32.QuatRotate(math32.Pi/2, mgl32.Vec3{0, 0, 1})
	if sim.EvaluateGround(body) {
		t.Fatalf("rotated body reported grounded")
	}
}

func TestEvaluateGroundPrimesTraction(t *testing.T) {
	sim := &Simulator{}
	body := newTestBody(NewContact(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, 0))
	body.State.GroundTick = 9
	sim.EvaluateGround(body)
	if body.State.GroundTick != 1 {
		t.Fatalf("ground tick %v, want primed to 1", body.State.GroundTick)
	}
}
