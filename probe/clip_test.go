package probe

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/fpsim"
)

func fpsimTransform(pos mgl32.Vec3) fpsim.Transform {
	return fpsim.NewTransform(pos)
}

func TestClipAxis(t *testing.T) {
	stationary := cube.Box(0, 0, 0, 1, 1, 1)
	tests := []struct {
		name   string
		moving cube.BBox
		axis   int
		amount float32
		want   float32
	}{
		{"falling onto top", cube.Box(0, 1.5, 0, 1, 2.5, 1), axisY, -1, -0.5},
		{"falling short of top", cube.Box(0, 1.5, 0, 1, 2.5, 1), axisY, -0.25, -0.25},
		{"moving away", cube.Box(0, 1.5, 0, 1, 2.5, 1), axisY, 1, 1},
		{"sliding past", cube.Box(2, 1.5, 0, 3, 2.5, 1), axisY, -1, -1},
		{"resting on top", cube.Box(0, 1, 0, 1, 2, 1), axisY, -0.1, 0},
		{"into side", cube.Box(-2, 0, 0, -0.5, 1, 1), axisX, 1, 0.5},
		{"overlap pushed up", cube.Box(0, 0.9, 0, 1, 1.9, 1), axisY, 0, 0.1},
	}
	for _, tt := range tests {
		if got := clipAxis(stationary, tt.moving, tt.axis, tt.amount); !approxEqual(got, tt.want) {
			t.Errorf("%s: clipAxis = %v, want %v", tt.name, got, tt.want)
		}
	}
}
