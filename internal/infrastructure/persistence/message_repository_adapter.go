package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/models"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

type MessageRepositoryAdapter struct {
	db *sqlx.DB
}

func NewMessageRepositoryAdapter(db *sqlx.DB) *MessageRepositoryAdapter {
	return &MessageRepositoryAdapter{db: db}
}

func (r *MessageRepositoryAdapter) Create(ctx context.Context, message *entity.Message) error {
	query := `
		INSERT INTO messages (id, booking_id, sender_id, content, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		message.ID, message.BookingID, message.SenderID, message.Content, message.IsRead, message.CreatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить сообщение")
	}
	return nil
}

func (r *MessageRepositoryAdapter) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*entity.Message, error) {
	var rows []models.Message
	query := `
		SELECT id, booking_id, sender_id, content, is_read, created_at
		FROM messages WHERE booking_id = $1
		ORDER BY created_at ASC
	`
	if err := r.db.SelectContext(ctx, &rows, query, bookingID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить сообщения")
	}

	messages := make([]*entity.Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, &entity.Message{
			ID:        row.ID,
			BookingID: row.BookingID,
			SenderID:  row.SenderID,
			Content:   row.Content,
			IsRead:    row.IsRead,
			CreatedAt: row.CreatedAt,
		})
	}
	return messages, nil
}

func (r *MessageRepositoryAdapter) MarkReadFor(ctx context.Context, bookingID, readerID uuid.UUID) (int, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE messages SET is_read = TRUE
		WHERE booking_id = $1 AND sender_id <> $2 AND NOT is_read
	`, bookingID, readerID)
	if err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось отметить сообщения прочитанными")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось проверить результат обновления")
	}
	return int(rows), nil
}

func (r *MessageRepositoryAdapter) CountUnread(ctx context.Context, bookingID, viewerID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM messages
		WHERE booking_id = $1 AND sender_id <> $2 AND NOT is_read
	`, bookingID, viewerID)
	if err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать непрочитанные сообщения")
	}
	return count, nil
}
