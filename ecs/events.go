package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// MotorEventKind identifies character motor transitions.
type MotorEventKind string

const (
	MotorEventJumped       MotorEventKind = "jumped"
	MotorEventLanded       MotorEventKind = "landed"
	MotorEventLeftGround   MotorEventKind = "left_ground"
	MotorEventReconfigured MotorEventKind = "reconfigured"
)

// MotorEvent is pushed with Type "motor" when a motor changes state.
type MotorEvent struct {
	Entity Entity
	Kind   MotorEventKind
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
