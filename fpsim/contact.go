package fpsim

import "github.com/go-gl/mathgl/mgl32"

// Contact is a single result of the downward ground sweep.
type Contact struct {
	// Normal is the world space normal of the surface that was hit, pointing away from it.
	Normal mgl32.Vec3
	// ShapeNormal is the normal on the swept shape at the contact, in the shape's local space.
	ShapeNormal mgl32.Vec3
	// Point is the world space contact point on the surface.
	Point mgl32.Vec3
	// Distance is the time of impact along the sweep. Zero means the shapes already overlap.
	Distance float32
}

// NewContact returns a contact for an unrotated sweep shape, where the shape normal is the
// opposite of the surface normal.
func NewContact(point, normal mgl32.Vec3, distance float32) Contact {
	return Contact{
		Normal:      normal,
		ShapeNormal: normal.Mul(-1),
		Point:       point,
		Distance:    distance,
	}
}

// Sweep is the ordered list of contacts of one ground sweep. An empty sweep means there is no
// ground candidate this tick.
type Sweep []Contact
