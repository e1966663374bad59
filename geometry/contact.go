package geometry

import (
	"math"

	"github.com/akmonengine/spherebox/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// SphereBox tests sphere (A) against box (B) and returns the full contact.
//
// Colliding is exactly IsColliding(sphere, box). When the sphere center lies outside the
// box, Normal points from ClosestPoint to the center and Penetration is
// radius - distance. When the center is inside (distance 0) the sphere is pushed out
// through the nearest face: Normal is that face's axis and Penetration is
// radius + the depth of the center below the face.
func SphereBox(sphere actor.Sphere, box actor.Box) Contact {
	bounds := box.AABB()
	center := sphere.Center()
	closest := bounds.ClampPoint(center)
	delta := center.Sub(closest)
	distance := length(delta)

	contact := Contact{
		Colliding:    distance <= sphere.Radius(),
		ClosestPoint: closest,
		Distance:     distance,
	}

	if !bounds.ContainsPoint(center) {
		contact.Normal = normalize(delta, distance)
		contact.Penetration = sphere.Radius() - distance
		return contact
	}

	normal, depth := nearestFace(center, box.Center(), box.HalfExtents())
	contact.Normal = normal
	contact.Penetration = sphere.Radius() + depth

	return contact
}

// SphereSphere tests sphere a against sphere b.
// ClosestPoint is the point of the solid sphere b nearest to a's center.
func SphereSphere(a, b actor.Sphere) Contact {
	delta := a.Center().Sub(b.Center())
	distance := length(delta)
	radii := a.Radius() + b.Radius()

	normal := mgl64.Vec3{1, 0, 0}
	if distance > 0 {
		normal = normalize(delta, distance)
	}

	closest := a.Center()
	if distance > b.Radius() {
		closest = b.Center().Add(normal.Mul(b.Radius()))
	}

	return Contact{
		Colliding:    distance <= radii,
		ClosestPoint: closest,
		Distance:     math.Max(0, distance-b.Radius()),
		Normal:       normal,
		Penetration:  radii - distance,
	}
}

// BoxBox tests box a against box b. Touching faces count as colliding.
// Normal is the axis of least overlap, Penetration the overlap along it.
func BoxBox(a, b actor.Box) Contact {
	boundsA, boundsB := a.AABB(), b.AABB()
	closest := boundsB.ClampPoint(a.Center())
	offset := a.Center().Sub(b.Center())

	axis := 0
	penetration := math.Inf(1)
	for i := range 3 {
		overlap := math.Min(boundsA.Max[i], boundsB.Max[i]) - math.Max(boundsA.Min[i], boundsB.Min[i])
		if overlap < penetration {
			penetration = overlap
			axis = i
		}
	}

	var normal mgl64.Vec3
	if offset[axis] < 0 {
		normal[axis] = -1
	} else {
		normal[axis] = 1
	}

	return Contact{
		Colliding:    boundsA.Overlaps(boundsB),
		ClosestPoint: closest,
		Distance:     length(a.Center().Sub(closest)),
		Normal:       normal,
		Penetration:  penetration,
	}
}

// nearestFace returns the outward normal of the box face nearest to p, and how deep p
// sits below it. p is expected inside the box. Ties resolve x, then y, then z.
func nearestFace(p, center, halfExtents mgl64.Vec3) (mgl64.Vec3, float64) {
	offset := p.Sub(center)

	axis := 0
	depth := math.Inf(1)
	for i := range 3 {
		d := halfExtents[i] - math.Abs(offset[i])
		if d < depth {
			depth = d
			axis = i
		}
	}

	var normal mgl64.Vec3
	if offset[axis] < 0 {
		normal[axis] = -1
	} else {
		normal[axis] = 1
	}

	return normal, math.Max(0, depth)
}
