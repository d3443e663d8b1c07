package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
	"github.com/ignatzorin/servantin-backend/internal/infrastructure/persistence/common"
	"github.com/ignatzorin/servantin-backend/internal/models"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

const userColumns = `id, email, name, phone, password_hash, role, created_at, updated_at`

type UserRepositoryAdapter struct {
	db *sqlx.DB
}

func NewUserRepositoryAdapter(db *sqlx.DB) *UserRepositoryAdapter {
	return &UserRepositoryAdapter{db: db}
}

// Create вставляет пользователя; при совпадении email строка обновляется,
// чтобы повторный сид был идемпотентным.
func (r *UserRepositoryAdapter) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, name, phone, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, updated_at = NOW()
		RETURNING id, role, created_at, updated_at
	`
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	var role string
	err := r.db.QueryRowxContext(ctx, query,
		user.ID, user.Email, user.Name, user.Phone, user.PasswordHash, string(user.Role),
	).Scan(&user.ID, &role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать пользователя")
	}
	user.Role = valueobject.Role(role)
	return nil
}

func (r *UserRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	row, err := common.GetOne[models.User](ctx, r.db, apperror.ErrUserNotFound,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить пользователя")
	}
	return rowToUser(row), nil
}

func (r *UserRepositoryAdapter) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.User, error) {
	result := make(map[uuid.UUID]*entity.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []models.User
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, pq.Array(uuidStrings(ids))); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить пользователей")
	}

	for i := range rows {
		result[rows[i].ID] = rowToUser(&rows[i])
	}
	return result, nil
}

func (r *UserRepositoryAdapter) UpdateRole(ctx context.Context, user *entity.User) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1`, user.ID, string(user.Role))
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить роль пользователя")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return apperror.ErrUserNotFound
	}
	return nil
}

func rowToUser(row *models.User) *entity.User {
	return &entity.User{
		ID:           row.ID,
		Email:        row.Email,
		Name:         row.Name,
		Phone:        row.Phone,
		PasswordHash: row.PasswordHash,
		Role:         valueobject.Role(row.Role),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
