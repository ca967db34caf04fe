package probe

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
)

const (
	axisX = iota
	axisY
	axisZ
)

// separation describes how a moving box sits relative to a stationary one on each axis.
type separation struct {
	// depth is the overlap on an axis, or the non-positive gap when the boxes are apart on it.
	depth [3]float32
	// dir is the direction the moving box would have to go to leave the stationary one.
	dir [3]float32

	apart     int
	apartAxis int
}

func separate(stationary, moving cube.BBox) (s separation) {
	for i := 0; i < 3; i++ {
		below := snap(moving.Max()[i] - stationary.Min()[i])
		above := snap(stationary.Max()[i] - moving.Min()[i])
		switch {
		case below <= 0:
			s.depth[i], s.dir[i] = below, -1
			s.apart++
			s.apartAxis = i
		case above <= 0:
			s.depth[i], s.dir[i] = above, 1
			s.apart++
			s.apartAxis = i
		case below < above:
			s.depth[i], s.dir[i] = below, -1
		default:
			s.depth[i], s.dir[i] = above, 1
		}
	}
	return s
}

// shallowest returns the axis with the least overlap.
func (s separation) shallowest() int {
	best := axisX
	for i := axisY; i <= axisZ; i++ {
		if s.depth[i] < s.depth[best] {
			best = i
		}
	}
	return best
}

// clipAxis clips a movement of amount along axis so the moving box does not pass into the
// stationary one. A moving box that already overlaps the stationary box is pushed out when the
// shallowest way out is along axis.
func clipAxis(stationary, moving cube.BBox, axis int, amount float32) float32 {
	if stationary.Min() == stationary.Max() {
		return amount
	}

	s := separate(stationary, moving)
	switch s.apart {
	case 0:
		if s.shallowest() != axis {
			return amount
		}
		push := s.depth[axis] * s.dir[axis]
		if push > 0 {
			return math32.Max(push, amount)
		}
		return math32.Min(push, amount)
	case 1:
		if s.apartAxis != axis {
			return amount
		}
		if swept := s.depth[axis] - s.dir[axis]*amount; swept <= 0 {
			return amount
		}
		return s.depth[axis] * s.dir[axis]
	default:
		return amount
	}
}

func snap(v float32) float32 {
	if math32.Abs(v) <= 1e-7 {
		return 0
	}
	return v
}
