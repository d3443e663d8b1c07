package catalog

import (
	"context"
	"strings"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/repository"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

type ListCategoriesUseCase struct {
	categoryRepo repository.CategoryRepository
}

func NewListCategoriesUseCase(categoryRepo repository.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{categoryRepo: categoryRepo}
}

func (uc *ListCategoriesUseCase) Execute(ctx context.Context) ([]*entity.Category, error) {
	return uc.categoryRepo.List(ctx)
}

type GetCategoryUseCase struct {
	categoryRepo repository.CategoryRepository
}

func NewGetCategoryUseCase(categoryRepo repository.CategoryRepository) *GetCategoryUseCase {
	return &GetCategoryUseCase{categoryRepo: categoryRepo}
}

func (uc *GetCategoryUseCase) Execute(ctx context.Context, slug string) (*entity.Category, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, apperror.Validation("slug is required")
	}
	return uc.categoryRepo.FindBySlug(ctx, slug)
}
