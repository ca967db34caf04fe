package fpsim

import "github.com/go-gl/mathgl/mgl32"

// ShapeKind identifies the kind of a collider shape.
type ShapeKind uint8

const (
	ShapeCapsule ShapeKind = iota
	ShapeCuboid
)

// Shape is the geometry of a collider.
type Shape interface {
	Kind() ShapeKind
	// HalfExtents returns the half size of the axis aligned box enclosing the shape.
	HalfExtents() mgl32.Vec3
}

// Capsule is a vertical capsule. Height is the length of its inner segment, so the full height of
// the capsule is Height+2*Radius.
type Capsule struct {
	Radius float32
	Height float32
}

func (*Capsule) Kind() ShapeKind { return ShapeCapsule }

func (c *Capsule) HalfExtents() mgl32.Vec3 {
	return mgl32.Vec3{c.Radius, c.Height/2 + c.Radius, c.Radius}
}

// Cuboid is a box shape.
type Cuboid struct {
	Half mgl32.Vec3
}

func (*Cuboid) Kind() ShapeKind { return ShapeCuboid }

func (c *Cuboid) HalfExtents() mgl32.Vec3 {
	return c.Half
}

// Collider holds the shape of a body. The simulator resizes capsule shapes in place when the
// crouch height changes.
type Collider struct {
	Shape Shape
}

// NewCapsuleCollider returns a collider holding a capsule shape.
func NewCapsuleCollider(radius, height float32) Collider {
	return Collider{Shape: &Capsule{Radius: radius, Height: height}}
}

// Capsule returns the capsule shape of the collider, if it is one.
func (c *Collider) Capsule() (*Capsule, bool) {
	if c == nil || c.Shape == nil {
		return nil, false
	}
	capsule, ok := c.Shape.(*Capsule)
	return capsule, ok && capsule != nil
}

// HalfExtents returns the half extents of the collider's shape, or zero when it has none.
func (c *Collider) HalfExtents() mgl32.Vec3 {
	if c == nil || c.Shape == nil {
		return mgl32.Vec3{}
	}
	return c.Shape.HalfExtents()
}
