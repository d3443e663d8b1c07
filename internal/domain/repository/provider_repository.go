package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
)

type ProviderRepository interface {
	// Save inserts or updates the profile and replaces all child collections.
	Save(ctx context.Context, profile *entity.ProviderProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ProviderProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.ProviderProfile, error)
	// FindCandidates returns fully loaded profiles that serve categoryID in the
	// given postal code or city.
	FindCandidates(ctx context.Context, categoryID uuid.UUID, postalCode, city string) ([]*entity.ProviderProfile, error)
	List(ctx context.Context) ([]*entity.ProviderProfile, error)
	UpdateVerification(ctx context.Context, profile *entity.ProviderProfile) error
	UpdatePhoto(ctx context.Context, profileID uuid.UUID, photoURL string) error
}
