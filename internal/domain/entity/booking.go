package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

type Booking struct {
	ID            uuid.UUID
	ClientID      uuid.UUID
	ProviderID    *uuid.UUID
	CategoryID    uuid.UUID
	Status        valueobject.BookingStatus
	Description   string
	PostalCode    string
	City          string
	AddressText   *string
	ScheduledAt   *time.Time
	Urgency       valueobject.Urgency
	Budget        *valueobject.Budget
	PaymentStatus valueobject.PaymentStatus
	CompletedAt   *time.Time
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type NewBookingParams struct {
	ClientID    uuid.UUID
	CategoryID  uuid.UUID
	ProviderID  *uuid.UUID
	Description string
	PostalCode  string
	City        string
	AddressText *string
	ScheduledAt *time.Time
	Urgency     string
	BudgetMin   *float64
	BudgetMax   *float64
}

func NewBooking(p NewBookingParams) (*Booking, error) {
	if p.ClientID == uuid.Nil {
		return nil, apperror.Validation("client is required")
	}
	if p.CategoryID == uuid.Nil {
		return nil, apperror.Validation("category is required")
	}
	postalCode := strings.TrimSpace(p.PostalCode)
	city := strings.TrimSpace(p.City)
	if postalCode == "" || city == "" {
		return nil, apperror.Validation("postal code and city are required")
	}
	if p.ProviderID != nil && *p.ProviderID == p.ClientID {
		return nil, apperror.Validation("you cannot book yourself")
	}

	urgency, err := valueobject.NewUrgency(p.Urgency)
	if err != nil {
		return nil, err
	}

	budget, err := valueobject.NewBudget(p.BudgetMin, p.BudgetMax)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Booking{
		ID:            uuid.New(),
		ClientID:      p.ClientID,
		ProviderID:    p.ProviderID,
		CategoryID:    p.CategoryID,
		Status:        valueobject.BookingStatusRequested,
		Description:   strings.TrimSpace(p.Description),
		PostalCode:    postalCode,
		City:          city,
		AddressText:   p.AddressText,
		ScheduledAt:   p.ScheduledAt,
		Urgency:       urgency,
		Budget:        budget,
		PaymentStatus: valueobject.PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (b *Booking) AssignedProvider() (uuid.UUID, bool) {
	if b.ProviderID == nil {
		return uuid.Nil, false
	}
	return *b.ProviderID, true
}

func (b *Booking) IsAssignedProvider(userID uuid.UUID) bool {
	providerID, ok := b.AssignedProvider()
	return ok && providerID == userID
}

func (b *Booking) IsClient(userID uuid.UUID) bool {
	return b.ClientID == userID
}

// IsParty reports whether userID may read or act on the booking.
func (b *Booking) IsParty(userID uuid.UUID) bool {
	return b.IsClient(userID) || b.IsAssignedProvider(userID)
}

func (b *Booking) ClearProvider() {
	b.ProviderID = nil
}

// Counterpart returns the other side of the booking for actor, if any.
func (b *Booking) Counterpart(actor uuid.UUID) (uuid.UUID, bool) {
	if b.IsClient(actor) {
		return b.AssignedProvider()
	}
	return b.ClientID, true
}

func (b *Booking) Accept(actor uuid.UUID) error {
	if !b.IsAssignedProvider(actor) {
		return apperror.ErrNotAssignedProvider
	}
	if b.Status != valueobject.BookingStatusRequested {
		return apperror.InvalidTransition("booking is not in REQUESTED status")
	}
	b.setStatus(valueobject.BookingStatusAccepted)
	return nil
}

func (b *Booking) Decline(actor uuid.UUID) error {
	if !b.IsAssignedProvider(actor) {
		return apperror.ErrNotAssignedProvider
	}
	if b.Status != valueobject.BookingStatusRequested {
		return apperror.InvalidTransition("booking is not in REQUESTED status")
	}
	b.setStatus(valueobject.BookingStatusDeclined)
	b.ClearProvider()
	return nil
}

func (b *Booking) Complete(actor uuid.UUID) error {
	if !b.IsAssignedProvider(actor) {
		return apperror.ErrNotAssignedProvider
	}
	if !b.Status.CanTransitionTo(valueobject.BookingStatusCompleted) {
		return apperror.InvalidTransition("booking must be ACCEPTED or IN_PROGRESS to be completed")
	}
	b.setStatus(valueobject.BookingStatusCompleted)
	return nil
}

func (b *Booking) Cancel(actor uuid.UUID) error {
	if !b.IsParty(actor) {
		return apperror.ErrNotBookingParty
	}
	if b.Status.IsTerminal() {
		if b.Status == valueobject.BookingStatusCanceled {
			return apperror.InvalidTransition("booking is already canceled")
		}
		return apperror.InvalidTransition("completed bookings cannot be canceled")
	}
	b.setStatus(valueobject.BookingStatusCanceled)
	return nil
}

// AssignProvider attaches a provider to a booking that has none and puts it
// back into REQUESTED.
func (b *Booking) AssignProvider(actor, providerID uuid.UUID) error {
	if !b.IsClient(actor) {
		return apperror.ErrNotBookingParty
	}
	if providerID == b.ClientID {
		return apperror.Validation("you cannot book yourself")
	}
	if b.ProviderID != nil {
		return apperror.InvalidTransition("booking already has an assigned provider")
	}
	if b.Status != valueobject.BookingStatusRequested && !b.Status.CanTransitionTo(valueobject.BookingStatusRequested) {
		return apperror.InvalidTransition("provider can only be assigned to REQUESTED or DECLINED bookings")
	}
	b.ProviderID = &providerID
	b.setStatus(valueobject.BookingStatusRequested)
	return nil
}

// ForceStatus skips every guard. Used by administrators only.
func (b *Booking) ForceStatus(status valueobject.BookingStatus) error {
	if !status.IsValid() {
		return apperror.Validation("unknown booking status: " + string(status))
	}
	b.setStatus(status)
	return nil
}

func (b *Booking) setStatus(status valueobject.BookingStatus) {
	now := time.Now()
	b.Status = status
	if status == valueobject.BookingStatusCompleted {
		b.CompletedAt = &now
	}
	b.UpdatedAt = now
}
