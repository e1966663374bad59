package actor

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrInvalidGeometry is returned when a shape is built from a negative radius or
	// half-extent, or from a NaN or infinite value
	ErrInvalidGeometry = errors.New("invalid geometry")
	// ErrStaticBody is returned when moving a static body
	ErrStaticBody = errors.New("static body cannot be moved")
)

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func isFiniteVec(v mgl64.Vec3) bool {
	return isFinite(v[0]) && isFinite(v[1]) && isFinite(v[2])
}
