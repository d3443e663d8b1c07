package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/repository"
	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
	"github.com/ignatzorin/servantin-backend/internal/logger"
)

// transition loads the booking, applies mutate and writes it back under the
// optimistic version check. Nothing is written when mutate fails.
func transition(ctx context.Context, repo repository.BookingRepository, bookingID uuid.UUID, mutate func(*entity.Booking) error) (*entity.Booking, error) {
	booking, err := repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := mutate(booking); err != nil {
		return nil, err
	}

	if err := repo.Update(ctx, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

type AcceptBookingUseCase struct {
	bookingRepo repository.BookingRepository
	events      *EventPublisher
}

func NewAcceptBookingUseCase(bookingRepo repository.BookingRepository, events *EventPublisher) *AcceptBookingUseCase {
	return &AcceptBookingUseCase{bookingRepo: bookingRepo, events: events}
}

func (uc *AcceptBookingUseCase) Execute(ctx context.Context, bookingID, providerID uuid.UUID) (*entity.Booking, error) {
	booking, err := transition(ctx, uc.bookingRepo, bookingID, func(b *entity.Booking) error {
		return b.Accept(providerID)
	})
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"booking_id":  booking.ID,
		"provider_id": providerID,
	}).Info("booking accepted")

	uc.events.publish(ctx, booking, entity.EventBookingAccepted, eventOptions{
		actor:      &providerID,
		recipients: []uuid.UUID{booking.ClientID},
	})

	return booking, nil
}

type DeclineBookingUseCase struct {
	bookingRepo repository.BookingRepository
	events      *EventPublisher
}

func NewDeclineBookingUseCase(bookingRepo repository.BookingRepository, events *EventPublisher) *DeclineBookingUseCase {
	return &DeclineBookingUseCase{bookingRepo: bookingRepo, events: events}
}

// Execute declines the booking and detaches the provider. The reason is only
// logged and forwarded to the client.
func (uc *DeclineBookingUseCase) Execute(ctx context.Context, bookingID, providerID uuid.UUID, reason string) (*entity.Booking, error) {
	booking, err := transition(ctx, uc.bookingRepo, bookingID, func(b *entity.Booking) error {
		return b.Decline(providerID)
	})
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"booking_id":  booking.ID,
		"provider_id": providerID,
		"reason":      reason,
	}).Info("booking declined")

	uc.events.publish(ctx, booking, entity.EventBookingDeclined, eventOptions{
		actor:      &providerID,
		provider:   &providerID,
		reason:     reason,
		recipients: []uuid.UUID{booking.ClientID},
	})

	return booking, nil
}

type CompleteBookingUseCase struct {
	bookingRepo repository.BookingRepository
	events      *EventPublisher
}

func NewCompleteBookingUseCase(bookingRepo repository.BookingRepository, events *EventPublisher) *CompleteBookingUseCase {
	return &CompleteBookingUseCase{bookingRepo: bookingRepo, events: events}
}

func (uc *CompleteBookingUseCase) Execute(ctx context.Context, bookingID, providerID uuid.UUID) (*entity.Booking, error) {
	booking, err := transition(ctx, uc.bookingRepo, bookingID, func(b *entity.Booking) error {
		return b.Complete(providerID)
	})
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"booking_id":  booking.ID,
		"provider_id": providerID,
	}).Info("booking completed")

	uc.events.publish(ctx, booking, entity.EventBookingCompleted, eventOptions{
		actor:      &providerID,
		recipients: []uuid.UUID{booking.ClientID},
	})

	return booking, nil
}

type CancelBookingUseCase struct {
	bookingRepo repository.BookingRepository
	events      *EventPublisher
}

func NewCancelBookingUseCase(bookingRepo repository.BookingRepository, events *EventPublisher) *CancelBookingUseCase {
	return &CancelBookingUseCase{bookingRepo: bookingRepo, events: events}
}

func (uc *CancelBookingUseCase) Execute(ctx context.Context, bookingID, userID uuid.UUID) (*entity.Booking, error) {
	booking, err := transition(ctx, uc.bookingRepo, bookingID, func(b *entity.Booking) error {
		return b.Cancel(userID)
	})
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"user_id":    userID,
	}).Info("booking canceled")

	if other, ok := booking.Counterpart(userID); ok {
		uc.events.publish(ctx, booking, entity.EventBookingCanceled, eventOptions{
			actor:      &userID,
			recipients: []uuid.UUID{other},
		})
	}

	return booking, nil
}

type AssignProviderUseCase struct {
	bookingRepo  repository.BookingRepository
	userRepo     repository.UserRepository
	providerRepo repository.ProviderRepository
	events       *EventPublisher
}

func NewAssignProviderUseCase(
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
	providerRepo repository.ProviderRepository,
	events *EventPublisher,
) *AssignProviderUseCase {
	return &AssignProviderUseCase{
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		providerRepo: providerRepo,
		events:       events,
	}
}

// Execute lets the client pick a provider for a booking that has none, for
// example after the previous provider declined.
func (uc *AssignProviderUseCase) Execute(ctx context.Context, bookingID, clientID, providerID uuid.UUID) (*entity.Booking, error) {
	if err := ensureProvider(ctx, uc.userRepo, uc.providerRepo, providerID); err != nil {
		return nil, err
	}

	booking, err := transition(ctx, uc.bookingRepo, bookingID, func(b *entity.Booking) error {
		return b.AssignProvider(clientID, providerID)
	})
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"booking_id":  booking.ID,
		"provider_id": providerID,
	}).Info("provider assigned to booking")

	uc.events.publish(ctx, booking, entity.EventBookingRequested, eventOptions{
		actor:      &clientID,
		recipients: []uuid.UUID{providerID},
	})

	return booking, nil
}

type AdminSetStatusUseCase struct {
	bookingRepo repository.BookingRepository
	events      *EventPublisher
}

func NewAdminSetStatusUseCase(bookingRepo repository.BookingRepository, events *EventPublisher) *AdminSetStatusUseCase {
	return &AdminSetStatusUseCase{bookingRepo: bookingRepo, events: events}
}

// Execute force-sets the status without any state or actor guard.
func (uc *AdminSetStatusUseCase) Execute(ctx context.Context, bookingID uuid.UUID, status string) (*entity.Booking, error) {
	newStatus, err := valueobject.NewBookingStatus(status)
	if err != nil {
		return nil, err
	}

	var previous valueobject.BookingStatus
	booking, err := transition(ctx, uc.bookingRepo, bookingID, func(b *entity.Booking) error {
		previous = b.Status
		return b.ForceStatus(newStatus)
	})
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"from":       previous,
		"to":         newStatus,
	}).Warn("booking status overridden by admin")

	recipients := []uuid.UUID{booking.ClientID}
	if providerID, ok := booking.AssignedProvider(); ok {
		recipients = append(recipients, providerID)
	}
	uc.events.publish(ctx, booking, entity.EventBookingStatusChanged, eventOptions{
		recipients: recipients,
	})

	return booking, nil
}
