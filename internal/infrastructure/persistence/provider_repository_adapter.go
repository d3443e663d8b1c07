package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
	"github.com/ignatzorin/servantin-backend/internal/infrastructure/persistence/common"
	"github.com/ignatzorin/servantin-backend/internal/models"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

const profileSelect = `
	SELECT p.id, p.user_id, p.bio, p.photo_url, p.languages, p.is_verified, p.verification_notes,
	       p.response_time_minutes, p.created_at, p.updated_at, u.name AS owner_name
	FROM provider_profiles p
	JOIN users u ON u.id = p.user_id
`

type ProviderRepositoryAdapter struct {
	db *sqlx.DB
}

func NewProviderRepositoryAdapter(db *sqlx.DB) *ProviderRepositoryAdapter {
	return &ProviderRepositoryAdapter{db: db}
}

// Save записывает профиль и заменяет все дочерние наборы в одной транзакции.
// Флаг верификации при обновлении не трогается.
func (r *ProviderRepositoryAdapter) Save(ctx context.Context, profile *entity.ProviderProfile) error {
	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO provider_profiles (id, user_id, bio, photo_url, languages, response_time_minutes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE
			SET bio = EXCLUDED.bio, photo_url = EXCLUDED.photo_url, languages = EXCLUDED.languages,
			    response_time_minutes = EXCLUDED.response_time_minutes, updated_at = EXCLUDED.updated_at
		`, profile.ID, profile.UserID, profile.Bio, profile.PhotoURL, pq.Array(profile.Languages),
			profile.ResponseTimeMinutes, profile.CreatedAt, profile.UpdatedAt)
		if err != nil {
			return err
		}

		for _, table := range []string{"provider_categories", "provider_locations", "provider_availabilities", "provider_pricings"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE profile_id = $1`, profile.ID); err != nil {
				return err
			}
		}

		categories := common.NewBatchInserter(tx, `INSERT INTO provider_categories (profile_id, category_id)`, 2, 0)
		for _, id := range profile.CategoryIDs {
			if err := categories.Add(ctx, profile.ID, id); err != nil {
				return err
			}
		}
		if err := categories.Flush(ctx); err != nil {
			return err
		}

		locations := common.NewBatchInserter(tx, `INSERT INTO provider_locations (profile_id, position, postal_code, city, canton)`, 5, 0)
		for i, l := range profile.Locations {
			if err := locations.Add(ctx, profile.ID, i, l.PostalCode, l.City, l.Canton); err != nil {
				return err
			}
		}
		if err := locations.Flush(ctx); err != nil {
			return err
		}

		slots := common.NewBatchInserter(tx, `INSERT INTO provider_availabilities (profile_id, weekday, time_slot)`, 3, 0)
		for _, s := range profile.Availabilities {
			if err := slots.Add(ctx, profile.ID, s.Weekday, string(s.Slot)); err != nil {
				return err
			}
		}
		if err := slots.Flush(ctx); err != nil {
			return err
		}

		pricings := common.NewBatchInserter(tx, `INSERT INTO provider_pricings (profile_id, category_id, pricing_type, hourly_rate, min_hours, fixed_price, currency)`, 7, 0)
		for _, p := range profile.Pricings {
			if err := pricings.Add(ctx, profile.ID, p.CategoryID, string(p.PricingType), p.HourlyRate, p.MinHours, p.FixedPrice, p.Currency); err != nil {
				return err
			}
		}
		return pricings.Flush(ctx)
	})
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить профиль исполнителя")
	}
	return nil
}

func (r *ProviderRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.ProviderProfile, error) {
	return r.findOne(ctx, profileSelect+` WHERE p.id = $1`, id)
}

func (r *ProviderRepositoryAdapter) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.ProviderProfile, error) {
	return r.findOne(ctx, profileSelect+` WHERE p.user_id = $1`, userID)
}

// FindCandidates отбирает профили по категории и месту работы. Окончательная
// фильтрация и сортировка выполняются в сценарии подбора.
func (r *ProviderRepositoryAdapter) FindCandidates(ctx context.Context, categoryID uuid.UUID, postalCode, city string) ([]*entity.ProviderProfile, error) {
	query := profileSelect + `
		WHERE EXISTS (
			SELECT 1 FROM provider_categories pc
			WHERE pc.profile_id = p.id AND pc.category_id = $1
		)
		AND EXISTS (
			SELECT 1 FROM provider_locations pl
			WHERE pl.profile_id = p.id
			  AND (($2 <> '' AND pl.postal_code = $2) OR ($3 <> '' AND LOWER(pl.city) = LOWER($3)))
		)
		ORDER BY p.created_at ASC
	`
	return r.selectProfiles(ctx, query, categoryID, postalCode, city)
}

func (r *ProviderRepositoryAdapter) List(ctx context.Context) ([]*entity.ProviderProfile, error) {
	return r.selectProfiles(ctx, profileSelect+` ORDER BY p.created_at DESC`)
}

func (r *ProviderRepositoryAdapter) UpdateVerification(ctx context.Context, profile *entity.ProviderProfile) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE provider_profiles
		SET is_verified = $2, verification_notes = $3, updated_at = $4
		WHERE id = $1
	`, profile.ID, profile.IsVerified, profile.VerificationNotes, profile.UpdatedAt)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить верификацию")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return apperror.ErrProfileNotFound
	}
	return nil
}

func (r *ProviderRepositoryAdapter) UpdatePhoto(ctx context.Context, profileID uuid.UUID, photoURL string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE provider_profiles SET photo_url = $2, updated_at = $3 WHERE id = $1`,
		profileID, photoURL, time.Now())
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить фото профиля")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return apperror.ErrProfileNotFound
	}
	return nil
}

func (r *ProviderRepositoryAdapter) findOne(ctx context.Context, query string, arg interface{}) (*entity.ProviderProfile, error) {
	row, err := common.GetOne[models.ProviderProfile](ctx, r.db, apperror.ErrProfileNotFound, query, arg)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить профиль исполнителя")
	}

	profiles := []*entity.ProviderProfile{rowToProfile(row)}
	if err := r.loadChildren(ctx, profiles); err != nil {
		return nil, err
	}
	return profiles[0], nil
}

func (r *ProviderRepositoryAdapter) selectProfiles(ctx context.Context, query string, args ...interface{}) ([]*entity.ProviderProfile, error) {
	var rows []models.ProviderProfile
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить профили исполнителей")
	}

	profiles := make([]*entity.ProviderProfile, 0, len(rows))
	for i := range rows {
		profiles = append(profiles, rowToProfile(&rows[i]))
	}
	if err := r.loadChildren(ctx, profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// loadChildren подгружает категории, адреса, слоты и цены пачкой на каждый
// набор, без запроса на каждый профиль.
func (r *ProviderRepositoryAdapter) loadChildren(ctx context.Context, profiles []*entity.ProviderProfile) error {
	if len(profiles) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*entity.ProviderProfile, len(profiles))
	ids := make([]uuid.UUID, 0, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}
	idArray := pq.Array(uuidStrings(ids))

	var categories []models.ProviderCategory
	if err := r.db.SelectContext(ctx, &categories,
		`SELECT profile_id, category_id FROM provider_categories WHERE profile_id = ANY($1) ORDER BY category_id`, idArray); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить категории исполнителей")
	}
	for _, c := range categories {
		p := byID[c.ProfileID]
		p.CategoryIDs = append(p.CategoryIDs, c.CategoryID)
	}

	var locations []models.ProviderLocation
	if err := r.db.SelectContext(ctx, &locations,
		`SELECT profile_id, position, postal_code, city, canton FROM provider_locations WHERE profile_id = ANY($1) ORDER BY profile_id, position`, idArray); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить адреса исполнителей")
	}
	for _, l := range locations {
		p := byID[l.ProfileID]
		p.Locations = append(p.Locations, entity.ServiceLocation{PostalCode: l.PostalCode, City: l.City, Canton: l.Canton})
	}

	var slots []models.ProviderAvailability
	if err := r.db.SelectContext(ctx, &slots,
		`SELECT profile_id, weekday, time_slot FROM provider_availabilities WHERE profile_id = ANY($1) ORDER BY weekday, time_slot`, idArray); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить расписание исполнителей")
	}
	for _, s := range slots {
		p := byID[s.ProfileID]
		p.Availabilities = append(p.Availabilities, valueobject.WeeklySlot{Weekday: s.Weekday, Slot: valueobject.TimeSlot(s.TimeSlot)})
	}

	var pricings []models.ProviderPricing
	if err := r.db.SelectContext(ctx, &pricings, `
		SELECT profile_id, category_id, pricing_type, hourly_rate::float8 AS hourly_rate, min_hours,
		       fixed_price::float8 AS fixed_price, currency
		FROM provider_pricings WHERE profile_id = ANY($1)
	`, idArray); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить цены исполнителей")
	}
	for _, pr := range pricings {
		p := byID[pr.ProfileID]
		p.Pricings = append(p.Pricings, entity.Pricing{
			CategoryID:  pr.CategoryID,
			PricingType: valueobject.PricingType(pr.PricingType),
			HourlyRate:  pr.HourlyRate,
			MinHours:    pr.MinHours,
			FixedPrice:  pr.FixedPrice,
			Currency:    pr.Currency,
		})
	}

	return nil
}

func rowToProfile(row *models.ProviderProfile) *entity.ProviderProfile {
	return &entity.ProviderProfile{
		ID:                  row.ID,
		UserID:              row.UserID,
		Bio:                 row.Bio,
		PhotoURL:            row.PhotoURL,
		Languages:           []string(row.Languages),
		IsVerified:          row.IsVerified,
		VerificationNotes:   row.VerificationNotes,
		ResponseTimeMinutes: row.ResponseTimeMinutes,
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
		OwnerName:           row.OwnerName,
	}
}
