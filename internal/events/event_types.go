package events

import (
	"time"

	"github.com/bharatmovers/booking-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventBookingCreated   EventType = "booking_created"
	EventRequestSubmitted EventType = "request_submitted"
	EventStatusChanged    EventType = "status_changed"
	EventMessageSent      EventType = "message_sent"
)

// Actor encapsulates actor metadata for an event. A nil ActorID denotes an
// anonymous or system actor.
type Actor struct {
	ActorID *string     `json:"actor_id,omitempty"`
	Role    domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string            `json:"id"`
	Type       EventType         `json:"type"`
	EntityKind domain.EntityKind `json:"entity_kind,omitempty"`
	EntityID   string            `json:"entity_id,omitempty"`
	Actor      Actor             `json:"actor"`
	Timestamp  time.Time         `json:"timestamp"`
	Payload    interface{}       `json:"payload"`
}

// BookingCreatedPayload payload.
type BookingCreatedPayload struct {
	ServiceID        string `json:"service_id"`
	PickupLocation   string `json:"pickup_location"`
	DeliveryLocation string `json:"delivery_location"`
}

// RequestSubmittedPayload payload.
type RequestSubmittedPayload struct {
	Kind      domain.EntityKind `json:"kind"`
	Anonymous bool              `json:"anonymous"`
}

// StatusChangedPayload payload.
type StatusChangedPayload struct {
	OldStatus domain.Status `json:"old_status"`
	NewStatus domain.Status `json:"new_status"`
	Action    string        `json:"action"`
}

// MessageSentPayload payload.
type MessageSentPayload struct {
	MessageID   string `json:"message_id"`
	RecipientID string `json:"recipient_id"`
	Subject     string `json:"subject"`
}
