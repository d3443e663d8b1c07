package report

import (
	"context"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/repository"
)

// DashboardStats is the moderation summary on the admin landing page.
type DashboardStats struct {
	Reports   entity.ReportStats
	Documents entity.DocumentStats
	// PendingActions counts items waiting for an admin.
	PendingActions int
}

type DashboardStatsUseCase struct {
	reportRepo   repository.ReportRepository
	documentRepo repository.DocumentRepository
}

func NewDashboardStatsUseCase(reportRepo repository.ReportRepository, documentRepo repository.DocumentRepository) *DashboardStatsUseCase {
	return &DashboardStatsUseCase{reportRepo: reportRepo, documentRepo: documentRepo}
}

func (uc *DashboardStatsUseCase) Execute(ctx context.Context) (*DashboardStats, error) {
	reportCounts, err := uc.reportRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	documentCounts, err := uc.documentRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Reports:   entity.NewReportStats(reportCounts),
		Documents: entity.NewDocumentStats(documentCounts),
	}
	stats.PendingActions = stats.Reports.Pending + stats.Documents.Pending
	return stats, nil
}
