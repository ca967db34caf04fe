package probe

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// SpawnPoint is where bodies enter the playground, a little above the floor.
var SpawnPoint = mgl32.Vec3{0, 3, 0}

// NewPlayground returns a small test course: a floor, a single low ledge, a flight of stairs, a
// raised platform and a wall.
func NewPlayground(opts Options) *Scene {
	s := NewScene(opts,
		// Floor.
		cube.Box(-32, -1, -32, 32, 0, 32),
		// Ledge low enough to step onto.
		cube.Box(2, 0, -6, 6, 0.2, -2),
		// Platform too tall to step onto.
		cube.Box(-6, 0, 6, -2, 3, 10),
		// Wall.
		cube.Box(-10, 0, -10, -9, 4, 10),
	)
	for i := 0; i < 6; i++ {
		x := 8 + float32(i)*0.5
		s.Add(cube.Box(x, 0, -4, x+0.5, float32(i+1)*0.2, 4))
	}
	return s
}
