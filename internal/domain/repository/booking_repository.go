package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	// Update persists the booking only if its Version still matches the stored
	// row and bumps Version on success. A stale version yields
	// apperror.ErrConcurrentUpdate and leaves the row untouched.
	Update(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*entity.Booking, error)
	FindByProviderID(ctx context.Context, providerID uuid.UUID, status *valueobject.BookingStatus) ([]*entity.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]*entity.Booking, int, error)
}

type BookingFilter struct {
	Status string
	Limit  int
	Offset int
}
