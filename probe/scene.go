// Package probe is the collision collaborator of the controller: a static scene of axis aligned
// boxes, the downward ground sweep that feeds fpsim.Simulator.EvaluateGround and the kinematic
// integration that moves bodies by their velocity.
package probe

import (
	"slices"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/fpsim"
	"github.com/oomph-ac/strafe/game"
	"github.com/oomph-ac/strafe/internal"
)

// Options describe the ground sweep.
type Options struct {
	// Scale shrinks the swept box so walls right next to the body are not reported as ground.
	Scale float32 `yaml:"scale"`
	// MaxDistance is how far down the box is swept.
	MaxDistance float32 `yaml:"max_distance"`
	// MaxHits caps the number of contacts reported.
	MaxHits int `yaml:"max_hits"`
}

// DefaultOptions returns the sweep options used by the playground.
func DefaultOptions() Options {
	return Options{
		Scale:       game.SweepScale,
		MaxDistance: game.GroundReach,
		MaxHits:     game.SweepMaxHits,
	}
}

// Scene is a static set of solid boxes. It is not safe to add boxes while bodies are being swept
// or integrated, but sweeps and integrations may run concurrently with each other.
type Scene struct {
	opts  Options
	boxes []cube.BBox
}

// NewScene creates a scene holding the boxes passed.
func NewScene(opts Options, boxes ...cube.BBox) *Scene {
	return &Scene{opts: opts, boxes: slices.Clone(boxes)}
}

// Add adds solid boxes to the scene.
func (s *Scene) Add(boxes ...cube.BBox) {
	s.boxes = append(s.boxes, boxes...)
}

// nearby appends every box intersecting bb to dst.
func (s *Scene) nearby(bb cube.BBox, dst []cube.BBox) []cube.BBox {
	for _, box := range s.boxes {
		if box.IntersectsWith(bb) {
			dst = append(dst, box)
		}
	}
	return dst
}

// SweepDown sweeps a box with the half extents passed, shrunk by the scene's scale, straight down
// from pos. Contacts are appended to dst ordered by distance, nearest first, up to the scene's hit
// limit. A box the shrunk box already overlaps is reported at distance zero with the normal of its
// nearest face.
func (s *Scene) SweepDown(pos, half mgl32.Vec3, dst fpsim.Sweep) fpsim.Sweep {
	dst = dst[:0]
	swept := boxAround(pos, half.Mul(s.opts.Scale))
	column := swept.Extend(mgl32.Vec3{0, -s.opts.MaxDistance, 0})

	list := internal.GetBoxList()
	defer internal.PutBoxList(list)
	*list = s.nearby(column, *list)

	for _, box := range *list {
		point := mgl32.Vec3{
			game.ClampFloat(pos.X(), box.Min().X(), box.Max().X()),
			box.Max().Y(),
			game.ClampFloat(pos.Z(), box.Min().Z(), box.Max().Z()),
		}
		distance := swept.Min().Y() - box.Max().Y()
		if distance >= 0 {
			if distance <= s.opts.MaxDistance {
				dst = append(dst, fpsim.NewContact(point, mgl32.Vec3{0, 1, 0}, distance))
			}
			continue
		}
		if !swept.IntersectsWith(box) {
			continue
		}
		sep := separate(box, swept)
		axis := sep.shallowest()
		var normal mgl32.Vec3
		normal[axis] = sep.dir[axis]
		point[1] = math32.Min(box.Max().Y(), pos.Y())
		dst = append(dst, fpsim.NewContact(point, normal, 0))
	}

	slices.SortStableFunc(dst, func(a, b fpsim.Contact) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})
	if s.opts.MaxHits > 0 && len(dst) > s.opts.MaxHits {
		dst = dst[:s.opts.MaxHits]
	}
	return dst
}

// Collision reports the axes a body was stopped on during integration.
type Collision struct {
	X, Y, Z bool
}

// Any returns true if the body was stopped on any axis.
func (c Collision) Any() bool {
	return c.X || c.Y || c.Z
}

// Integrate moves a body with the half extents passed by vel*dt, resolving the vertical axis
// first and then the horizontal axes against the scene. The velocity component of a clipped axis
// is zeroed.
func (s *Scene) Integrate(transform *fpsim.Transform, vel *mgl32.Vec3, half mgl32.Vec3, dt float32) Collision {
	move := vel.Mul(dt)
	bb := boxAround(transform.Translation, half)

	list := internal.GetBoxList()
	defer internal.PutBoxList(list)
	*list = s.nearby(bb.Extend(move), *list)

	var (
		delta     mgl32.Vec3
		collision Collision
	)
	for _, axis := range [3]int{axisY, axisX, axisZ} {
		amount := move[axis]
		for i := len(*list) - 1; i >= 0; i-- {
			amount = clipAxis((*list)[i], bb, axis, amount)
		}
		var step mgl32.Vec3
		step[axis] = amount
		bb = bb.Translate(step)
		delta[axis] = amount

		if amount != move[axis] {
			vel[axis] = 0
			switch axis {
			case axisX:
				collision.X = true
			case axisY:
				collision.Y = true
			case axisZ:
				collision.Z = true
			}
		}
	}
	transform.Translation = transform.Translation.Add(delta)
	return collision
}

func boxAround(pos, half mgl32.Vec3) cube.BBox {
	lo, hi := pos.Sub(half), pos.Add(half)
	return cube.Box(lo.X(), lo.Y(), lo.Z(), hi.X(), hi.Y(), hi.Z())
}
