package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ClampFloat clamps the given value to the given range.
func ClampFloat(num, min, max float32) float32 {
	if num < min {
		return min
	}
	return math32.Min(num, max)
}

// ClampPitch keeps a pitch angle (radians) just short of straight up or straight down.
func ClampPitch(pitch float32) float32 {
	return ClampFloat(pitch, -math32.Pi/2+AngleEpsilon, math32.Pi/2-AngleEpsilon)
}

// WrapYaw wraps a yaw angle (radians) into (-π, π]. Angles already in range are returned
// untouched.
func WrapYaw(yaw float32) float32 {
	if yaw > -math32.Pi && yaw <= math32.Pi {
		return yaw
	}
	wrapped := remEuclid(yaw+math32.Pi, 2*math32.Pi) - math32.Pi
	if wrapped <= -math32.Pi {
		wrapped = math32.Pi
	}
	return wrapped
}

// remEuclid returns the non-negative remainder of a divided by b.
func remEuclid(a, b float32) float32 {
	r := math32.Mod(a, b)
	if r < 0 {
		r += math32.Abs(b)
	}
	return r
}

// Vec3HzDistSqr returns the squared horizontal distance in a vector.
func Vec3HzDistSqr(vec3 mgl32.Vec3) float32 {
	return vec3.X()*vec3.X() + vec3.Z()*vec3.Z()
}

// Vec3HzLen returns the length of the horizontal (XZ) part of a vector.
func Vec3HzLen(vec3 mgl32.Vec3) float32 {
	return math32.Sqrt(Vec3HzDistSqr(vec3))
}

// NormalizeOrZero returns the unit vector of v, or the zero vector when v is too short to normalize.
func NormalizeOrZero(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l <= Epsilon {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// YawBasis returns the right and forward vectors of a yaw-only rotation. Forward is -Z.
func YawBasis(yaw float32) (right, forward mgl32.Vec3) {
	rot := mgl32.Rotate3DY(yaw)
	return rot.Mul3x1(mgl32.Vec3{1, 0, 0}), rot.Mul3x1(mgl32.Vec3{0, 0, -1})
}

// LookBasis returns the right and forward vectors of a yaw then pitch rotation. Forward is -Z
// and follows the pitch, right stays horizontal.
func LookBasis(yaw, pitch float32) (right, forward mgl32.Vec3) {
	rot := mgl32.Rotate3DY(yaw).Mul3(mgl32.Rotate3DX(pitch))
	return rot.Mul3x1(mgl32.Vec3{1, 0, 0}), rot.Mul3x1(mgl32.Vec3{0, 0, -1})
}

// LookRotation returns the orientation for a yaw, pitch pair applied in yaw-pitch-roll order.
func LookRotation(yaw, pitch float32) mgl32.Quat {
	return mgl32.AnglesToQuat(yaw, pitch, 0, mgl32.YXZ)
}

// AngleBetween returns the unsigned angle between two vectors in radians. Zero-length input
// yields π/2.
func AngleBetween(a, b mgl32.Vec3) float32 {
	denom := a.Len() * b.Len()
	if denom <= Epsilon {
		return math32.Pi / 2
	}
	return math32.Acos(ClampFloat(a.Dot(b)/denom, -1, 1))
}
