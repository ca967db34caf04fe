package fpsim

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/game"
)

var worldUp = mgl32.Vec3{0, 1, 0}

// EvaluateGround classifies the body as grounded or airborne from its ground sweep and stores the
// result in State.Grounded. A contact counts as ground when the inverted shape normal, rotated into
// world space, is within game.GroundAngleThreshold of world up.
//
// Any contact whose surface normal clears the traction cutoff primes GroundTick to 1, so friction
// can apply on the same tick the surface is first touched.
func (s *Simulator) EvaluateGround(body *Body) bool {
	state := body.State
	rot := mgl32.QuatIdent()
	if body.Transform != nil {
		rot = body.Transform.rotation()
	}

	grounded := false
	for _, hit := range body.Hits {
		if hit.Normal.Y() > state.TractionNormalCutoff {
			state.GroundTick = 1
		}
		shapeNormal := hit.ShapeNormal
		if shapeNormal == (mgl32.Vec3{}) {
			shapeNormal = hit.Normal.Mul(-1)
		}
		if game.AngleBetween(rot.Rotate(shapeNormal.Mul(-1)), worldUp) <= game.GroundAngleThreshold {
			grounded = true
		}
	}
	state.Grounded = grounded
	return grounded
}
