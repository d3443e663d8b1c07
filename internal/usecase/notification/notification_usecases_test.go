package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
)

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *mockNotificationRepo) List(ctx context.Context, userID uuid.UUID, limit, offset int, unreadOnly bool) ([]*entity.Notification, error) {
	args := m.Called(ctx, userID, limit, offset, unreadOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Notification), args.Error(1)
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockNotificationRepo) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestListNotifications_ClampsPage(t *testing.T) {
	repo := new(mockNotificationRepo)
	userID := uuid.New()
	items := []*entity.Notification{{ID: uuid.New(), UserID: userID}}

	repo.On("List", mock.Anything, userID, defaultPageSize, 0, false).Return(items, nil).Once()
	repo.On("List", mock.Anything, userID, maxPageSize, 40, true).Return([]*entity.Notification{}, nil).Once()

	uc := NewListNotificationsUseCase(repo)

	got, err := uc.Execute(context.Background(), userID, 0, -5, false)
	assert.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = uc.Execute(context.Background(), userID, 500, 40, true)
	assert.NoError(t, err)
	assert.Empty(t, got)

	repo.AssertExpectations(t)
}

func TestCountUnread(t *testing.T) {
	repo := new(mockNotificationRepo)
	userID := uuid.New()
	repo.On("CountUnread", mock.Anything, userID).Return(7, nil)

	n, err := NewCountUnreadUseCase(repo).Execute(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, 7, n)
	repo.AssertExpectations(t)
}

func TestMarkAllRead_PropagatesError(t *testing.T) {
	repo := new(mockNotificationRepo)
	userID := uuid.New()
	repo.On("MarkAllAsRead", mock.Anything, userID).Return(errors.New("db down"))

	err := NewMarkAllReadUseCase(repo).Execute(context.Background(), userID)
	assert.Error(t, err)
	repo.AssertExpectations(t)
}
