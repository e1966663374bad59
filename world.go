package spherebox

import (
	"slices"

	"github.com/akmonengine/spherebox/actor"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const DEFAULT_WORKERS = 1

const (
	DEFAULT_CELL_SIZE = 1.0
	DEFAULT_CELLS     = 1024
)

// World tracks a set of bodies and finds the colliding pairs on every Step.
// A World is not safe for concurrent use: move bodies between steps, from one goroutine.
type World struct {
	// List of all bodies in the world
	Bodies      []*actor.Body
	SpatialGrid *SpatialGrid
	Workers     int
	Logger      *zap.Logger

	Events Events

	contacts []Contact
}

// NewWorld creates an empty world with the default grid, a single worker and a no-op
// logger
func NewWorld() *World {
	return &World{
		SpatialGrid: NewSpatialGrid(DEFAULT_CELL_SIZE, DEFAULT_CELLS),
		Workers:     DEFAULT_WORKERS,
		Logger:      zap.NewNop(),
		Events:      NewEvents(),
	}
}

// AddBody adds a body to the world
func (w *World) AddBody(body *actor.Body) {
	w.Bodies = append(w.Bodies, body)
	w.logger().Debug("body added",
		zap.Stringer("body", body),
		zap.Stringer("shape", body.Shape.Type()),
	)
}

// RemoveBody removes a body from the world. Its pairs are forgotten without an Exit event.
func (w *World) RemoveBody(body *actor.Body) {
	k := slices.Index(w.Bodies, body)
	if k == -1 {
		return
	}
	w.Bodies = slices.Delete(w.Bodies, k, k+1)

	w.Events.forget(body)
	w.contacts = slices.DeleteFunc(w.contacts, func(c Contact) bool {
		return c.BodyA == body || c.BodyB == body
	})
}

// BodyByName returns the first body with the given name, or nil
func (w *World) BodyByName(name string) *actor.Body {
	for _, b := range w.Bodies {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// Step runs one detection pass over the current body positions and flushes the
// collision events
func (w *World) Step() {
	w.Workers = max(DEFAULT_WORKERS, w.Workers)
	if w.SpatialGrid == nil {
		w.SpatialGrid = NewSpatialGrid(DEFAULT_CELL_SIZE, DEFAULT_CELLS)
	}

	// Phase 1: refresh bounds of moved bodies
	w.computeBounds()

	// Phase 2.0: Collision pair finding - Broad phase
	// Phase 2.1: Collision pair finding - narrow phase
	w.contacts = w.detectCollision()

	// Phase 3: Enter/Stay/Exit
	w.Events.recordCollisions(w.contacts)
	w.logTransitions()
	w.Events.flush()
}

// Contacts returns the colliding pairs found by the last Step
func (w *World) Contacts() []Contact {
	return slices.Clone(w.contacts)
}

// IsColliding reports whether body was part of any contact during the last Step
func (w *World) IsColliding(body *actor.Body) bool {
	for _, c := range w.contacts {
		if c.BodyA == body || c.BodyB == body {
			return true
		}
	}
	return false
}

// IsCollidingWith reports whether the two bodies collided during the last Step
func (w *World) IsCollidingWith(bodyA, bodyB *actor.Body) bool {
	return w.Events.isActive(bodyA, bodyB)
}

func (w *World) computeBounds() {
	task(w.Workers, w.Bodies, func(body *actor.Body) {
		body.ComputeAABB()
	})
}

func (w *World) detectCollision() []Contact {
	return NarrowPhase(BroadPhase(w.SpatialGrid, w.Bodies, w.Workers), w.Workers)
}

// logTransitions must run between recordCollisions and flush
func (w *World) logTransitions() {
	logger := w.logger()
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		return
	}

	for _, c := range w.Events.current {
		if !w.Events.isActive(c.BodyA, c.BodyB) {
			logger.Debug("collision enter",
				zap.Stringer("bodyA", c.BodyA),
				zap.Stringer("bodyB", c.BodyB),
				zap.Float64("distance", c.Distance),
				zap.Float64("penetration", c.Penetration),
			)
		}
	}
	for _, c := range w.Events.previous {
		if !w.Events.currentActivePairs[makePairKey(c.BodyA, c.BodyB)] {
			logger.Debug("collision exit",
				zap.Stringer("bodyA", c.BodyA),
				zap.Stringer("bodyB", c.BodyB),
			)
		}
	}
}

func (w *World) logger() *zap.Logger {
	if w.Logger == nil {
		w.Logger = zap.NewNop()
	}
	return w.Logger
}
