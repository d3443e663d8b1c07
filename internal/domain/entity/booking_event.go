package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingEventType string

const (
	EventBookingRequested     BookingEventType = "booking.requested"
	EventBookingAccepted      BookingEventType = "booking.accepted"
	EventBookingDeclined      BookingEventType = "booking.declined"
	EventBookingCompleted     BookingEventType = "booking.completed"
	EventBookingCanceled      BookingEventType = "booking.canceled"
	EventBookingStatusChanged BookingEventType = "booking.status_changed"
	EventMessageReceived      BookingEventType = "message.received"
)

// BookingEvent carries enough context for templated delivery to the
// recipients without another lookup.
type BookingEvent struct {
	Type         BookingEventType `json:"type"`
	BookingID    uuid.UUID        `json:"booking_id"`
	Status       string           `json:"status"`
	CategoryName string           `json:"category_name"`
	ClientID     uuid.UUID        `json:"client_id"`
	ClientName   string           `json:"client_name"`
	ProviderID   *uuid.UUID       `json:"provider_id,omitempty"`
	ProviderName string           `json:"provider_name,omitempty"`
	ActorID      *uuid.UUID       `json:"actor_id,omitempty"`
	Reason       string           `json:"reason,omitempty"`
	Preview      string           `json:"preview,omitempty"`
	Recipients   []uuid.UUID      `json:"-"`
	OccurredAt   time.Time        `json:"occurred_at"`
}
