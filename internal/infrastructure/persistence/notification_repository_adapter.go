package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/models"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

type NotificationRepositoryAdapter struct {
	db *sqlx.DB
}

func NewNotificationRepositoryAdapter(db *sqlx.DB) *NotificationRepositoryAdapter {
	return &NotificationRepositoryAdapter{db: db}
}

func (r *NotificationRepositoryAdapter) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, payload, is_read)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if err := r.db.QueryRowxContext(ctx, query, n.ID, n.UserID, []byte(n.Payload), n.IsRead).Scan(&n.CreatedAt); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать уведомление")
	}
	return nil
}

func (r *NotificationRepositoryAdapter) List(ctx context.Context, userID uuid.UUID, limit, offset int, unreadOnly bool) ([]*entity.Notification, error) {
	query := `
		SELECT id, user_id, payload, is_read, created_at
		FROM notifications
		WHERE user_id = $1 AND (NOT $2 OR NOT is_read)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	var rows []models.Notification
	if err := r.db.SelectContext(ctx, &rows, query, userID, unreadOnly, limit, offset); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить уведомления")
	}

	out := make([]*entity.Notification, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.Notification{
			ID:        row.ID,
			UserID:    row.UserID,
			Payload:   row.Payload,
			IsRead:    row.IsRead,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

func (r *NotificationRepositoryAdapter) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read`, userID); err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать уведомления")
	}
	return count, nil
}

func (r *NotificationRepositoryAdapter) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read`, userID); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось отметить уведомления прочитанными")
	}
	return nil
}
