package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *entity.Rating) error
	// FindByBookingID returns nil without error when the booking has no rating.
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Rating, error)
	StatsForProviders(ctx context.Context, providerUserIDs []uuid.UUID) (map[uuid.UUID]entity.RatingStats, error)
}
