package actor

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeType represents the type of collision shape
type ShapeType int

const (
	ShapeTypeSphere ShapeType = iota
	ShapeTypeBox
)

func (t ShapeType) String() string {
	switch t {
	case ShapeTypeSphere:
		return "sphere"
	case ShapeTypeBox:
		return "box"
	default:
		return fmt.Sprintf("ShapeType(%d)", int(t))
	}
}

// ShapeInterface is the interface that all collision shapes must implement
type ShapeInterface interface {
	Type() ShapeType
	Center() mgl64.Vec3
	// AABB calculates the world axis-aligned bounding box of the shape
	AABB() AABB
}

// Sphere represents a spherical collision shape.
// The zero value is a point sphere at the origin.
type Sphere struct {
	center mgl64.Vec3
	radius float64
}

// NewSphere validates and builds a sphere
func NewSphere(center mgl64.Vec3, radius float64) (Sphere, error) {
	if !isFiniteVec(center) {
		return Sphere{}, fmt.Errorf("%w: sphere center %v is not finite", ErrInvalidGeometry, center)
	}
	if !isFinite(radius) || radius < 0 {
		return Sphere{}, fmt.Errorf("%w: sphere radius %v must be finite and >= 0", ErrInvalidGeometry, radius)
	}

	return Sphere{center: center, radius: radius}, nil
}

// MustSphere is like NewSphere but panics on invalid input
func MustSphere(center mgl64.Vec3, radius float64) Sphere {
	s, err := NewSphere(center, radius)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Sphere) Type() ShapeType { return ShapeTypeSphere }

func (s Sphere) Center() mgl64.Vec3 { return s.center }

func (s Sphere) Radius() float64 { return s.radius }

// WithCenter returns a copy of the sphere moved to center
func (s Sphere) WithCenter(center mgl64.Vec3) (Sphere, error) {
	return NewSphere(center, s.radius)
}

// AABB calculates the axis-aligned bounding box for the sphere
func (s Sphere) AABB() AABB {
	radiusVec := mgl64.Vec3{s.radius, s.radius, s.radius}

	return AABB{
		Min: s.center.Sub(radiusVec),
		Max: s.center.Add(radiusVec),
	}
}

// Box represents an axis-aligned box collision shape
// The box is defined by its center and half-extents (half-width, half-height, half-depth)
type Box struct {
	center      mgl64.Vec3
	halfExtents mgl64.Vec3
}

// NewBox validates and builds a box. A zero half-extent is allowed and collapses the
// box to a plane, line or point along that axis.
func NewBox(center, halfExtents mgl64.Vec3) (Box, error) {
	if !isFiniteVec(center) {
		return Box{}, fmt.Errorf("%w: box center %v is not finite", ErrInvalidGeometry, center)
	}
	for i := range 3 {
		if !isFinite(halfExtents[i]) || halfExtents[i] < 0 {
			return Box{}, fmt.Errorf("%w: box half-extents %v must be finite and >= 0", ErrInvalidGeometry, halfExtents)
		}
	}

	return Box{center: center, halfExtents: halfExtents}, nil
}

// NewBoxFromSize builds a box from its full breadth (x), length (y) and depth (z)
func NewBoxFromSize(center, size mgl64.Vec3) (Box, error) {
	return NewBox(center, size.Mul(0.5))
}

// MustBox is like NewBox but panics on invalid input
func MustBox(center, halfExtents mgl64.Vec3) Box {
	b, err := NewBox(center, halfExtents)
	if err != nil {
		panic(err)
	}
	return b
}

func (b Box) Type() ShapeType { return ShapeTypeBox }

func (b Box) Center() mgl64.Vec3 { return b.center }

func (b Box) HalfExtents() mgl64.Vec3 { return b.halfExtents }

// Size returns the full dimensions of the box
func (b Box) Size() mgl64.Vec3 { return b.halfExtents.Mul(2) }

// WithCenter returns a copy of the box moved to center
func (b Box) WithCenter(center mgl64.Vec3) (Box, error) {
	return NewBox(center, b.halfExtents)
}

func (b Box) AABB() AABB {
	return AABB{
		Min: b.center.Sub(b.halfExtents),
		Max: b.center.Add(b.halfExtents),
	}
}
