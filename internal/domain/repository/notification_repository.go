package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
)

// NotificationSink receives lifecycle events after the state change is
// committed. Callers log and drop its errors.
type NotificationSink interface {
	Notify(ctx context.Context, event entity.BookingEvent) error
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	List(ctx context.Context, userID uuid.UUID, limit, offset int, unreadOnly bool) ([]*entity.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
}
