package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/repository"
	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
	"github.com/ignatzorin/servantin-backend/internal/infrastructure/persistence/common"
	"github.com/ignatzorin/servantin-backend/internal/models"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

const (
	bookingInsertColumns = `id, client_id, provider_id, category_id, status, description, postal_code, city,
	address_text, scheduled_at, urgency, budget_min, budget_max, payment_status, completed_at,
	version, created_at, updated_at`

	// NUMERIC приводится к float8, иначе lib/pq отдаёт его строкой.
	bookingColumns = `id, client_id, provider_id, category_id, status, description, postal_code, city,
	address_text, scheduled_at, urgency, budget_min::float8 AS budget_min, budget_max::float8 AS budget_max,
	payment_status, completed_at, version, created_at, updated_at`
)

type BookingRepositoryAdapter struct {
	db *sqlx.DB
}

func NewBookingRepositoryAdapter(db *sqlx.DB) *BookingRepositoryAdapter {
	return &BookingRepositoryAdapter{db: db}
}

func (r *BookingRepositoryAdapter) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingInsertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	row := bookingToRow(booking)
	_, err := r.db.ExecContext(ctx, query,
		row.ID, row.ClientID, row.ProviderID, row.CategoryID, row.Status, row.Description,
		row.PostalCode, row.City, row.AddressText, row.ScheduledAt, row.Urgency,
		row.BudgetMin, row.BudgetMax, row.PaymentStatus, row.CompletedAt,
		row.Version, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать бронирование")
	}
	return nil
}

// Update записывает изменённые поля, только если версия строки совпадает
// с версией загруженной сущности.
func (r *BookingRepositoryAdapter) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET provider_id = $3, status = $4, payment_status = $5, completed_at = $6,
		    updated_at = $7, version = version + 1
		WHERE id = $1 AND version = $2
	`
	booking.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.Version,
		booking.ProviderID,
		string(booking.Status),
		string(booking.PaymentStatus),
		booking.CompletedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить бронирование")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось проверить результат обновления")
	}
	if rows == 0 {
		// Строки нет либо её уже изменил другой запрос.
		if _, err := r.FindByID(ctx, booking.ID); err != nil {
			return err
		}
		return apperror.ErrConcurrentUpdate
	}

	booking.Version++
	return nil
}

func (r *BookingRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	row, err := common.GetOne[models.Booking](ctx, r.db, apperror.ErrBookingNotFound,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить бронирование")
	}
	return rowToBooking(row)
}

func (r *BookingRepositoryAdapter) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*entity.Booking, error) {
	return r.selectBookings(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE client_id = $1 ORDER BY created_at DESC`, clientID)
}

func (r *BookingRepositoryAdapter) FindByProviderID(ctx context.Context, providerID uuid.UUID, status *valueobject.BookingStatus) ([]*entity.Booking, error) {
	if status == nil {
		return r.selectBookings(ctx,
			`SELECT `+bookingColumns+` FROM bookings WHERE provider_id = $1 ORDER BY created_at DESC`, providerID)
	}
	return r.selectBookings(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE provider_id = $1 AND status = $2 ORDER BY created_at DESC`,
		providerID, string(*status))
}

func (r *BookingRepositoryAdapter) List(ctx context.Context, filter repository.BookingFilter) ([]*entity.Booking, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM bookings WHERE ($1 = '' OR status = $1)`, filter.Status); err != nil {
		return nil, 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать бронирования")
	}

	bookings, err := r.selectBookings(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, filter.Status, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *BookingRepositoryAdapter) selectBookings(ctx context.Context, query string, args ...interface{}) ([]*entity.Booking, error) {
	var rows []models.Booking
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить список бронирований")
	}

	bookings := make([]*entity.Booking, 0, len(rows))
	for i := range rows {
		b, err := rowToBooking(&rows[i])
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func bookingToRow(b *entity.Booking) models.Booking {
	row := models.Booking{
		ID:            b.ID,
		ClientID:      b.ClientID,
		ProviderID:    b.ProviderID,
		CategoryID:    b.CategoryID,
		Status:        string(b.Status),
		Description:   b.Description,
		PostalCode:    b.PostalCode,
		City:          b.City,
		AddressText:   b.AddressText,
		ScheduledAt:   b.ScheduledAt,
		Urgency:       string(b.Urgency),
		PaymentStatus: string(b.PaymentStatus),
		CompletedAt:   b.CompletedAt,
		Version:       b.Version,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
	row.BudgetMin = b.Budget.MinAmount()
	row.BudgetMax = b.Budget.MaxAmount()
	return row
}

func rowToBooking(row *models.Booking) (*entity.Booking, error) {
	budget, err := valueobject.NewBudget(row.BudgetMin, row.BudgetMax)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "некорректный бюджет в базе")
	}

	return &entity.Booking{
		ID:            row.ID,
		ClientID:      row.ClientID,
		ProviderID:    row.ProviderID,
		CategoryID:    row.CategoryID,
		Status:        valueobject.BookingStatus(row.Status),
		Description:   row.Description,
		PostalCode:    row.PostalCode,
		City:          row.City,
		AddressText:   row.AddressText,
		ScheduledAt:   row.ScheduledAt,
		Urgency:       valueobject.Urgency(row.Urgency),
		Budget:        budget,
		PaymentStatus: valueobject.PaymentStatus(row.PaymentStatus),
		CompletedAt:   row.CompletedAt,
		Version:       row.Version,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}
