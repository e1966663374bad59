package actor

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// BodyType represents how a body may be moved
type BodyType int

const (
	// BodyTypeKinematic bodies are moved by the caller between steps
	BodyTypeKinematic BodyType = iota

	// BodyTypeStatic bodies never move (e.g. ground, walls)
	BodyTypeStatic
)

// Body is a named collision shape tracked by a world
type Body struct {
	ID       uuid.UUID
	Name     string
	BodyType BodyType

	// Collision shape, a Sphere or a Box value
	Shape ShapeInterface

	aabb AABB
}

// NewBody creates a body with a fresh ID and computes its AABB
func NewBody(name string, shape ShapeInterface, bodyType BodyType) *Body {
	b := &Body{
		ID:       uuid.New(),
		Name:     name,
		BodyType: bodyType,
		Shape:    shape,
	}
	b.ComputeAABB()

	return b
}

// ComputeAABB refreshes the cached bounding box from the current shape
func (b *Body) ComputeAABB() {
	b.aabb = b.Shape.AABB()
}

// AABB returns the bounding box cached by the last ComputeAABB
func (b *Body) AABB() AABB {
	return b.aabb
}

func (b *Body) Center() mgl64.Vec3 {
	return b.Shape.Center()
}

// MoveTo places the shape center at position. The cached AABB is refreshed on the next
// world step.
func (b *Body) MoveTo(position mgl64.Vec3) error {
	if b.BodyType == BodyTypeStatic {
		return fmt.Errorf("%w: %s", ErrStaticBody, b.Name)
	}

	switch s := b.Shape.(type) {
	case Sphere:
		moved, err := s.WithCenter(position)
		if err != nil {
			return err
		}
		b.Shape = moved
	case Box:
		moved, err := s.WithCenter(position)
		if err != nil {
			return err
		}
		b.Shape = moved
	default:
		return fmt.Errorf("%w: unsupported shape %T", ErrInvalidGeometry, b.Shape)
	}

	return nil
}

// Translate moves the body by offset
func (b *Body) Translate(offset mgl64.Vec3) error {
	return b.MoveTo(b.Center().Add(offset))
}

func (b *Body) String() string {
	if b.Name != "" {
		return b.Name
	}
	return b.ID.String()
}
