package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.ProviderDocument) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ProviderDocument, error)
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.ProviderDocument, error)
	// ListByStatus returns the oldest submissions first.
	ListByStatus(ctx context.Context, status valueobject.VerificationStatus) ([]*entity.ProviderDocument, error)
	Update(ctx context.Context, doc *entity.ProviderDocument) error
	CountByStatus(ctx context.Context) (map[valueobject.VerificationStatus]int, error)
}
