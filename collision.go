package spherebox

import (
	"bytes"
	"slices"
	"sync"

	"github.com/akmonengine/spherebox/actor"
	"github.com/akmonengine/spherebox/geometry"
)

// Contact is a colliding pair found during a step.
// For sphere/box pairs BodyA is always the sphere, so Normal points from the box toward
// the sphere.
type Contact struct {
	BodyA *actor.Body
	BodyB *actor.Body
	geometry.Contact
}

// BroadPhase performs broad-phase collision detection using the spatial grid
// It returns pairs of bodies whose AABBs overlap and might be colliding
func BroadPhase(spatialGrid *SpatialGrid, bodies []*actor.Body, workersCount int) <-chan Pair {
	spatialGrid.Clear()
	for i, body := range bodies {
		spatialGrid.Insert(i, body)
	}
	spatialGrid.SortCells()

	return spatialGrid.FindPairsParallel(bodies, workersCount)
}

// NarrowPhase runs the exact shape tests on workersCount goroutines and collects the
// colliding pairs. Pairs of unsupported shapes are dropped.
func NarrowPhase(pairs <-chan Pair, workersCount int) []Contact {
	contactsChan := make(chan Contact, workersCount*2)

	go func() {
		var wg sync.WaitGroup
		defer close(contactsChan)

		for range workersCount {
			wg.Add(1)
			go func() {
				defer wg.Done()

				for pair := range pairs {
					contact, swapped, err := geometry.Collide(pair.BodyA.Shape, pair.BodyB.Shape)
					if err != nil || !contact.Colliding {
						continue
					}

					if swapped {
						pair.BodyA, pair.BodyB = pair.BodyB, pair.BodyA
					}
					contactsChan <- Contact{
						BodyA:   pair.BodyA,
						BodyB:   pair.BodyB,
						Contact: contact,
					}
				}
			}()
		}
		wg.Wait()
	}()

	contacts := make([]Contact, 0)
	for c := range contactsChan {
		contacts = append(contacts, c)
	}
	sortContacts(contacts)

	return contacts
}

// sortContacts orders contacts by body IDs so a step gives the same result whatever
// the number of workers
func sortContacts(contacts []Contact) {
	slices.SortFunc(contacts, func(a, b Contact) int {
		if c := bytes.Compare(a.BodyA.ID[:], b.BodyA.ID[:]); c != 0 {
			return c
		}
		return bytes.Compare(a.BodyB.ID[:], b.BodyB.ID[:])
	})
}
