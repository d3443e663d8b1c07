package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/repository"
	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
	"github.com/ignatzorin/servantin-backend/internal/logger"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

type RateBookingInput struct {
	BookingID uuid.UUID
	ClientID  uuid.UUID
	Score     int
	Comment   *string
}

type RateBookingUseCase struct {
	bookingRepo repository.BookingRepository
	ratingRepo  repository.RatingRepository
}

func NewRateBookingUseCase(bookingRepo repository.BookingRepository, ratingRepo repository.RatingRepository) *RateBookingUseCase {
	return &RateBookingUseCase{bookingRepo: bookingRepo, ratingRepo: ratingRepo}
}

// Execute attaches the client's rating to a completed booking. A booking can
// be rated once.
func (uc *RateBookingUseCase) Execute(ctx context.Context, input RateBookingInput) (*entity.Rating, error) {
	booking, err := uc.bookingRepo.FindByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}

	if !booking.IsClient(input.ClientID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "only the client can rate a booking")
	}
	if booking.Status != valueobject.BookingStatusCompleted {
		return nil, apperror.InvalidTransition("only completed bookings can be rated")
	}
	providerID, ok := booking.AssignedProvider()
	if !ok {
		return nil, apperror.InvalidTransition("booking has no provider to rate")
	}

	existing, err := uc.ratingRepo.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ErrAlreadyRated
	}

	rating, err := entity.NewRating(booking.ID, input.ClientID, providerID, input.Score, input.Comment)
	if err != nil {
		return nil, err
	}

	if err := uc.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"booking_id":  booking.ID,
		"provider_id": providerID,
		"score":       rating.Score,
	}).Info("booking rated")

	return rating, nil
}
