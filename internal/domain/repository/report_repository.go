package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
)

// ReportFilter narrows the admin listing; an empty Status lists every report.
type ReportFilter struct {
	Status valueobject.ReportStatus
	Limit  int
	Offset int
}

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error)
	// ListForUser returns reports filed by or against the user, newest first.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Report, error)
	List(ctx context.Context, filter ReportFilter) ([]*entity.Report, int, error)
	Update(ctx context.Context, report *entity.Report) error
	CountByStatus(ctx context.Context) (map[valueobject.ReportStatus]int, error)
}
