// Package geometry implements closest-point intersection tests between spheres and
// axis-aligned boxes.
//
// The sphere/box test reduces to a single nearest-point query: the sphere center is
// clamped into the box on every axis independently, which gives the point of the box
// closest to the center. The sphere touches or overlaps the box when that point lies
// within the radius. No face-by-face case analysis is needed and the result is exact for
// finite inputs.
//
// Every function is pure: it reads only its arguments, allocates nothing and may be
// called from any number of goroutines.
//
// References:
//   - Ericson: "Real-Time Collision Detection" (2004), 5.1.3 and 5.2.5
package geometry

import (
	"math"

	"github.com/akmonengine/spherebox/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Contact is the outcome of a narrow-phase test between two shapes A and B.
type Contact struct {
	Colliding bool
	// ClosestPoint is the point of the solid shape B nearest to A's center
	ClosestPoint mgl64.Vec3
	// Distance between A's center and ClosestPoint
	Distance float64
	// Normal is the unit separation direction, pointing from B toward A
	Normal mgl64.Vec3
	// Penetration is the depth of overlap along Normal; negative when apart
	Penetration float64
}

// ClosestPointOnBox returns the point on or inside box nearest to p.
//
// Each coordinate of p is clamped into [center-halfExtent, center+halfExtent] on its
// axis. The result equals p when p is inside the box, and lies on the boundary
// otherwise. A point exactly on the boundary maps to itself: no epsilon is applied.
func ClosestPointOnBox(p mgl64.Vec3, box actor.Box) mgl64.Vec3 {
	return box.AABB().ClampPoint(p)
}

// IsColliding reports whether sphere touches or overlaps box.
// Touching counts: the comparison is distance <= radius.
func IsColliding(sphere actor.Sphere, box actor.Box) bool {
	closest := ClosestPointOnBox(sphere.Center(), box)

	return length(closest.Sub(sphere.Center())) <= sphere.Radius()
}

// length returns |v|. Hypot scales each step, so the squared terms of a finite vector
// neither overflow nor underflow.
func length(v mgl64.Vec3) float64 {
	return math.Hypot(math.Hypot(v[0], v[1]), v[2])
}

// normalize divides v by its length n, which must be > 0
func normalize(v mgl64.Vec3, n float64) mgl64.Vec3 {
	return mgl64.Vec3{v[0] / n, v[1] / n, v[2] / n}
}
