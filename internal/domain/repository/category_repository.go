package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]*entity.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Category, error)
	Upsert(ctx context.Context, category *entity.Category) error
}
