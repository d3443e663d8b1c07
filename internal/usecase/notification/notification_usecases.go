package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ListNotificationsUseCase struct {
	repo repository.NotificationRepository
}

func NewListNotificationsUseCase(repo repository.NotificationRepository) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{repo: repo}
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, userID uuid.UUID, limit, offset int, unreadOnly bool) ([]*entity.Notification, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.List(ctx, userID, limit, offset, unreadOnly)
}

type CountUnreadUseCase struct {
	repo repository.NotificationRepository
}

func NewCountUnreadUseCase(repo repository.NotificationRepository) *CountUnreadUseCase {
	return &CountUnreadUseCase{repo: repo}
}

func (uc *CountUnreadUseCase) Execute(ctx context.Context, userID uuid.UUID) (int, error) {
	return uc.repo.CountUnread(ctx, userID)
}

type MarkAllReadUseCase struct {
	repo repository.NotificationRepository
}

func NewMarkAllReadUseCase(repo repository.NotificationRepository) *MarkAllReadUseCase {
	return &MarkAllReadUseCase{repo: repo}
}

func (uc *MarkAllReadUseCase) Execute(ctx context.Context, userID uuid.UUID) error {
	return uc.repo.MarkAllAsRead(ctx, userID)
}
