package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/repository"
	"github.com/ignatzorin/servantin-backend/internal/logger"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
	"github.com/ignatzorin/servantin-backend/internal/validation"
)

type CreateBookingInput struct {
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

type CreateBookingUseCase struct {
	bookingRepo  repository.BookingRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	providerRepo repository.ProviderRepository
	events       *EventPublisher
}

func NewCreateBookingUseCase(
	bookingRepo repository.BookingRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	providerRepo repository.ProviderRepository,
	events *EventPublisher,
) *CreateBookingUseCase {
	return &CreateBookingUseCase{
		bookingRepo:  bookingRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		providerRepo: providerRepo,
		events:       events,
	}
}

func (uc *CreateBookingUseCase) Execute(ctx context.Context, input CreateBookingInput) (*entity.Booking, error) {
	if err := validation.ValidateLength("description", input.Description, 0, validation.MaxDescriptionLength); err != nil {
		return nil, err
	}

	booking, err := entity.NewBooking(entity.NewBookingParams{
		ClientID:    input.ClientID,
		CategoryID:  input.CategoryID,
		ProviderID:  input.ProviderID,
		Description: input.Description,
		PostalCode:  input.PostalCode,
		City:        input.City,
		AddressText: input.AddressText,
		ScheduledAt: input.ScheduledAt,
		Urgency:     input.Urgency,
		BudgetMin:   input.BudgetMin,
		BudgetMax:   input.BudgetMax,
	})
	if err != nil {
		return nil, err
	}

	if _, err := uc.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		return nil, err
	}
	if _, err := uc.userRepo.FindByID(ctx, input.ClientID); err != nil {
		return nil, err
	}
	if input.ProviderID != nil {
		if err := ensureProvider(ctx, uc.userRepo, uc.providerRepo, *input.ProviderID); err != nil {
			return nil, err
		}
	}

	if err := uc.bookingRepo.Create(ctx, booking); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "failed to create booking")
	}

	logger.Log.WithFields(logrus.Fields{
		"booking_id":  booking.ID,
		"client_id":   booking.ClientID,
		"provider_id": booking.ProviderID,
	}).Info("booking created")

	if providerID, ok := booking.AssignedProvider(); ok {
		uc.events.publish(ctx, booking, entity.EventBookingRequested, eventOptions{
			actor:      &input.ClientID,
			recipients: []uuid.UUID{providerID},
		})
	}

	return booking, nil
}

// ensureProvider checks that the user exists, has the PROVIDER role and owns
// a provider profile.
func ensureProvider(ctx context.Context, users repository.UserRepository, providers repository.ProviderRepository, providerID uuid.UUID) error {
	user, err := users.FindByID(ctx, providerID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.ErrProviderNotFound
		}
		return err
	}
	if !user.IsProvider() {
		return apperror.ErrProviderNotFound
	}
	if _, err := providers.FindByUserID(ctx, providerID); err != nil {
		if apperror.IsNotFound(err) {
			return apperror.ErrProviderNotFound
		}
		return err
	}
	return nil
}
