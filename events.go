package spherebox

import (
	"bytes"

	"github.com/akmonengine/spherebox/actor"
)

const (
	COLLISION_ENTER EventType = iota
	COLLISION_STAY
	COLLISION_EXIT
)

type pairKey struct {
	bodyA *actor.Body
	bodyB *actor.Body
}

// makePairKey creates a normalized pair key with consistent ordering
func makePairKey(bodyA, bodyB *actor.Body) pairKey {
	if bytes.Compare(bodyB.ID[:], bodyA.ID[:]) < 0 {
		bodyA, bodyB = bodyB, bodyA
	}

	return pairKey{bodyA: bodyA, bodyB: bodyB}
}

type EventType uint8

func (t EventType) String() string {
	switch t {
	case COLLISION_ENTER:
		return "enter"
	case COLLISION_STAY:
		return "stay"
	case COLLISION_EXIT:
		return "exit"
	default:
		return "unknown"
	}
}

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// CollisionEnterEvent is sent on the first step a pair collides
type CollisionEnterEvent struct {
	Contact Contact
}

func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }

// CollisionStayEvent is sent on every following step the pair still collides
type CollisionStayEvent struct {
	Contact Contact
}

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }

// CollisionExitEvent is sent on the first step a pair no longer collides
type CollisionExitEvent struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

func (e CollisionExitEvent) Type() EventType { return COLLISION_EXIT }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Collision tracking for Enter/Stay/Exit detection, slices keep step order
	previous            []Contact
	previousActivePairs map[pairKey]bool
	current             []Contact
	currentActivePairs  map[pairKey]bool
}

func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 64),
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]bool),
	}
}

// init makes the zero value usable
func (e *Events) init() {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	if e.previousActivePairs == nil {
		e.previousActivePairs = make(map[pairKey]bool)
	}
	if e.currentActivePairs == nil {
		e.currentActivePairs = make(map[pairKey]bool)
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.init()
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordCollisions stores the contacts found during the current step
func (e *Events) recordCollisions(contacts []Contact) {
	e.init()
	for _, c := range contacts {
		pair := makePairKey(c.BodyA, c.BodyB)
		if e.currentActivePairs[pair] {
			continue
		}
		e.currentActivePairs[pair] = true
		e.current = append(e.current, c)
	}
}

// isActive reports whether the pair collided during the last flushed step
func (e *Events) isActive(bodyA, bodyB *actor.Body) bool {
	return e.previousActivePairs[makePairKey(bodyA, bodyB)]
}

// forget drops every tracked pair involving body, without emitting Exit
func (e *Events) forget(body *actor.Body) {
	n := 0
	for _, c := range e.previous {
		if c.BodyA == body || c.BodyB == body {
			delete(e.previousActivePairs, makePairKey(c.BodyA, c.BodyB))
			continue
		}
		e.previous[n] = c
		n++
	}
	e.previous = e.previous[:n]
}

// processCollisionEvents compares current and previous pairs to detect Enter/Stay/Exit
func (e *Events) processCollisionEvents() {
	for _, c := range e.current {
		if e.previousActivePairs[makePairKey(c.BodyA, c.BodyB)] {
			e.buffer = append(e.buffer, CollisionStayEvent{Contact: c})
		} else {
			e.buffer = append(e.buffer, CollisionEnterEvent{Contact: c})
		}
	}

	for _, c := range e.previous {
		if !e.currentActivePairs[makePairKey(c.BodyA, c.BodyB)] {
			e.buffer = append(e.buffer, CollisionExitEvent{BodyA: c.BodyA, BodyB: c.BodyB})
		}
	}

	// Swap for next step and clear current
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	clear(e.currentActivePairs)
	e.previous, e.current = e.current, e.previous[:0]
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.processCollisionEvents()

	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
	clear(e.buffer)
	e.buffer = e.buffer[:0]
}
