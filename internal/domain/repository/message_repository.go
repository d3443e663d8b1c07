package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*entity.Message, error)
	// MarkReadFor marks every message in the booking not sent by readerID.
	MarkReadFor(ctx context.Context, bookingID, readerID uuid.UUID) (int, error)
	CountUnread(ctx context.Context, bookingID, viewerID uuid.UUID) (int, error)
}
