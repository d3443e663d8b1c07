package valueobject

import (
	"strings"

	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

type BookingStatus string

const (
	BookingStatusRequested  BookingStatus = "REQUESTED"
	BookingStatusAccepted   BookingStatus = "ACCEPTED"
	BookingStatusDeclined   BookingStatus = "DECLINED"
	BookingStatusInProgress BookingStatus = "IN_PROGRESS"
	BookingStatusCompleted  BookingStatus = "COMPLETED"
	BookingStatusCanceled   BookingStatus = "CANCELED"
)

// IN_PROGRESS has outgoing edges but nothing moves a booking into it yet.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusRequested:  {BookingStatusAccepted, BookingStatusDeclined, BookingStatusCanceled},
	BookingStatusDeclined:   {BookingStatusRequested, BookingStatusCanceled},
	BookingStatusAccepted:   {BookingStatusCompleted, BookingStatusCanceled},
	BookingStatusInProgress: {BookingStatusCompleted, BookingStatusCanceled},
	BookingStatusCompleted:  {},
	BookingStatusCanceled:   {},
}

func (s BookingStatus) IsValid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCanceled
}

func (s BookingStatus) CanTransitionTo(newStatus BookingStatus) bool {
	for _, status := range bookingTransitions[s] {
		if status == newStatus {
			return true
		}
	}
	return false
}

func NewBookingStatus(status string) (BookingStatus, error) {
	s := BookingStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !s.IsValid() {
		return "", apperror.Validation("unknown booking status: " + status)
	}
	return s, nil
}

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusAuthorized PaymentStatus = "AUTHORIZED"
	PaymentStatusCaptured   PaymentStatus = "CAPTURED"
	PaymentStatusRefunded   PaymentStatus = "REFUNDED"
	PaymentStatusFailed     PaymentStatus = "FAILED"
)

type Urgency string

const (
	UrgencyFlexible   Urgency = "flexible"
	UrgencyWithinWeek Urgency = "within_week"
	UrgencyUrgent     Urgency = "urgent"
)

// NewUrgency returns the flexible default for an empty value.
func NewUrgency(v string) (Urgency, error) {
	if v == "" {
		return UrgencyFlexible, nil
	}
	u := Urgency(strings.ToLower(v))
	switch u {
	case UrgencyFlexible, UrgencyWithinWeek, UrgencyUrgent:
		return u, nil
	}
	return "", apperror.Validation("unknown urgency: " + v)
}

type Role string

const (
	RoleClient   Role = "CLIENT"
	RoleProvider Role = "PROVIDER"
	RoleAdmin    Role = "ADMIN"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

type PricingType string

const (
	PricingTypeHourly PricingType = "HOURLY"
	PricingTypeFixed  PricingType = "FIXED"
)

func NewPricingType(v string) (PricingType, error) {
	p := PricingType(strings.ToUpper(v))
	switch p {
	case PricingTypeHourly, PricingTypeFixed:
		return p, nil
	}
	return "", apperror.Validation("unknown pricing type: " + v)
}
