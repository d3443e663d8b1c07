package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/infrastructure/persistence/common"
	"github.com/ignatzorin/servantin-backend/internal/models"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

const categoryColumns = `id, slug, name, description, icon, sort_order, is_active, created_at`

type CategoryRepositoryAdapter struct {
	db *sqlx.DB
}

func NewCategoryRepositoryAdapter(db *sqlx.DB) *CategoryRepositoryAdapter {
	return &CategoryRepositoryAdapter{db: db}
}

// List возвращает активные категории в порядке отображения.
func (r *CategoryRepositoryAdapter) List(ctx context.Context) ([]*entity.Category, error) {
	var rows []models.Category
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE is_active ORDER BY sort_order, name`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить категории")
	}

	categories := make([]*entity.Category, 0, len(rows))
	for i := range rows {
		categories = append(categories, rowToCategory(&rows[i]))
	}
	return categories, nil
}

func (r *CategoryRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return r.findOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
}

func (r *CategoryRepositoryAdapter) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return r.findOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, strings.ToLower(slug))
}

// Upsert создаёт категорию или обновляет существующую с тем же slug.
func (r *CategoryRepositoryAdapter) Upsert(ctx context.Context, category *entity.Category) error {
	query := `
		INSERT INTO categories (id, slug, name, description, icon, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (slug) DO UPDATE
		SET name = EXCLUDED.name, description = EXCLUDED.description, icon = EXCLUDED.icon,
		    sort_order = EXCLUDED.sort_order, is_active = EXCLUDED.is_active
		RETURNING id, created_at
	`
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	err := r.db.QueryRowxContext(ctx, query,
		category.ID, category.Slug, category.Name, category.Description,
		category.Icon, category.SortOrder, category.IsActive,
	).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить категорию")
	}
	return nil
}

func (r *CategoryRepositoryAdapter) findOne(ctx context.Context, query string, arg interface{}) (*entity.Category, error) {
	row, err := common.GetOne[models.Category](ctx, r.db, apperror.ErrCategoryNotFound, query, arg)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить категорию")
	}
	return rowToCategory(row), nil
}

func rowToCategory(row *models.Category) *entity.Category {
	return &entity.Category{
		ID:          row.ID,
		Slug:        row.Slug,
		Name:        row.Name,
		Description: row.Description,
		Icon:        row.Icon,
		SortOrder:   row.SortOrder,
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
	}
}
