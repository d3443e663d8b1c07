package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/infrastructure/persistence/common"
	"github.com/ignatzorin/servantin-backend/internal/models"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

type RatingRepositoryAdapter struct {
	db *sqlx.DB
}

func NewRatingRepositoryAdapter(db *sqlx.DB) *RatingRepositoryAdapter {
	return &RatingRepositoryAdapter{db: db}
}

func (r *RatingRepositoryAdapter) Create(ctx context.Context, rating *entity.Rating) error {
	query := `
		INSERT INTO ratings (id, booking_id, client_id, provider_id, score, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		rating.ID, rating.BookingID, rating.ClientID, rating.ProviderID,
		rating.Score, rating.Comment, rating.CreatedAt,
	)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return apperror.ErrAlreadyRated
		}
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить оценку")
	}
	return nil
}

func (r *RatingRepositoryAdapter) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Rating, error) {
	row, err := common.GetOne[models.Rating](ctx, r.db, nil, `
		SELECT id, booking_id, client_id, provider_id, score, comment, created_at
		FROM ratings WHERE booking_id = $1
	`, bookingID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить оценку")
	}
	if row == nil {
		return nil, nil
	}

	return &entity.Rating{
		ID:         row.ID,
		BookingID:  row.BookingID,
		ClientID:   row.ClientID,
		ProviderID: row.ProviderID,
		Score:      row.Score,
		Comment:    row.Comment,
		CreatedAt:  row.CreatedAt,
	}, nil
}

// StatsForProviders считает среднюю оценку и число оценок одним запросом.
// Исполнители без оценок в результат не попадают.
func (r *RatingRepositoryAdapter) StatsForProviders(ctx context.Context, providerUserIDs []uuid.UUID) (map[uuid.UUID]entity.RatingStats, error) {
	result := make(map[uuid.UUID]entity.RatingStats, len(providerUserIDs))
	if len(providerUserIDs) == 0 {
		return result, nil
	}

	var rows []models.RatingStats
	query := `
		SELECT provider_id, AVG(score)::float8 AS average, COUNT(*) AS count
		FROM ratings
		WHERE provider_id = ANY($1)
		GROUP BY provider_id
	`
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(uuidStrings(providerUserIDs))); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать рейтинги")
	}

	for _, row := range rows {
		avg := row.Average
		result[row.ProviderID] = entity.RatingStats{Average: &avg, Count: row.Count}
	}
	return result, nil
}
