package ecs

// CollisionEventKind identifies collision event types.
type CollisionEventKind string

const (
	CollisionEventLanded    CollisionEventKind = "landed"
	CollisionEventHitHazard CollisionEventKind = "hazard"
)

// CollisionEvent is emitted by physics when contact state changes.
type CollisionEvent struct {
	Entity Entity
	Other  Entity
	Kind   CollisionEventKind
}

// EventQueue is a simple FIFO queue drained once per frame.
type EventQueue struct {
	items []CollisionEvent
}

// Push adds an event.
func (q *EventQueue) Push(evt CollisionEvent) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []CollisionEvent {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
