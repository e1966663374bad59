package geometry

import (
	"fmt"

	"github.com/akmonengine/spherebox/actor"
)

// Collide dispatches a pair of shapes to the matching test. When a is a box and b a
// sphere the pair is swapped; the returned bool reports that swap so callers can keep
// A/B consistent with the Contact's normal.
func Collide(a, b actor.ShapeInterface) (Contact, bool, error) {
	switch sa := a.(type) {
	case actor.Sphere:
		switch sb := b.(type) {
		case actor.Sphere:
			return SphereSphere(sa, sb), false, nil
		case actor.Box:
			return SphereBox(sa, sb), false, nil
		}
	case actor.Box:
		switch sb := b.(type) {
		case actor.Sphere:
			return SphereBox(sb, sa), true, nil
		case actor.Box:
			return BoxBox(sa, sb), false, nil
		}
	}

	return Contact{}, false, fmt.Errorf("no collision test for %T against %T", a, b)
}
