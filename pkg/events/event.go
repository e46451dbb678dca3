package events

import "time"

// TypeUseCaseCreated is emitted once per stored use case.
const TypeUseCaseCreated = "USE_CASE_CREATED"

// Event defines the contract for all catalog events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "USE_CASE_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// UseCaseCreated builds the event announcing a new catalog entry.
func UseCaseCreated(id uint64, name string, createdAt time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeUseCaseCreated,
		Data: map[string]interface{}{
			"id":          id,
			"use_case":    name,
			"entity_type": "use_case",
			"occurred_at": createdAt,
		},
		OccurredAt: createdAt,
	}
}
