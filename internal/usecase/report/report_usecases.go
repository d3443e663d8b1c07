package report

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/repository"
	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
	"github.com/ignatzorin/servantin-backend/internal/logger"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// BookingFinder is the part of the booking store reports need.
type BookingFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
}

// ReportView is a report with the people it mentions resolved.
type ReportView struct {
	Report       *entity.Report
	Reporter     *entity.User
	ReportedUser *entity.User
	ResolvedBy   *entity.User
}

// describe resolves every user referenced by the reports with one lookup.
func describe(ctx context.Context, users repository.UserRepository, reports []*entity.Report) ([]*ReportView, error) {
	ids := make([]uuid.UUID, 0, len(reports)*2)
	for _, r := range reports {
		ids = append(ids, r.ReporterID)
		if r.ReportedUserID != nil {
			ids = append(ids, *r.ReportedUserID)
		}
		if r.ResolvedBy != nil {
			ids = append(ids, *r.ResolvedBy)
		}
	}

	byID := map[uuid.UUID]*entity.User{}
	if len(ids) > 0 {
		var err error
		if byID, err = users.FindByIDs(ctx, ids); err != nil {
			return nil, err
		}
	}

	views := make([]*ReportView, 0, len(reports))
	for _, r := range reports {
		v := &ReportView{Report: r, Reporter: byID[r.ReporterID]}
		if r.ReportedUserID != nil {
			v.ReportedUser = byID[*r.ReportedUserID]
		}
		if r.ResolvedBy != nil {
			v.ResolvedBy = byID[*r.ResolvedBy]
		}
		views = append(views, v)
	}
	return views, nil
}

func describeOne(ctx context.Context, users repository.UserRepository, r *entity.Report) (*ReportView, error) {
	views, err := describe(ctx, users, []*entity.Report{r})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

type CreateReportInput struct {
	ReporterID        uuid.UUID
	ReportedUserID    *uuid.UUID
	ReportedBookingID *uuid.UUID
	Type              string
	Description       string
}

type CreateReportUseCase struct {
	reportRepo repository.ReportRepository
	userRepo   repository.UserRepository
	bookings   BookingFinder
}

func NewCreateReportUseCase(reportRepo repository.ReportRepository, userRepo repository.UserRepository, bookings BookingFinder) *CreateReportUseCase {
	return &CreateReportUseCase{reportRepo: reportRepo, userRepo: userRepo, bookings: bookings}
}

// Execute files a PENDING report. The reporter and every named target must exist.
func (uc *CreateReportUseCase) Execute(ctx context.Context, in CreateReportInput) (*ReportView, error) {
	reportType, err := valueobject.NewReportType(in.Type)
	if err != nil {
		return nil, err
	}
	report, err := entity.NewReport(in.ReporterID, in.ReportedUserID, in.ReportedBookingID, reportType, in.Description)
	if err != nil {
		return nil, err
	}

	if _, err := uc.userRepo.FindByID(ctx, in.ReporterID); err != nil {
		return nil, err
	}
	if in.ReportedUserID != nil {
		if _, err := uc.userRepo.FindByID(ctx, *in.ReportedUserID); err != nil {
			return nil, err
		}
	}
	if in.ReportedBookingID != nil {
		if _, err := uc.bookings.FindByID(ctx, *in.ReportedBookingID); err != nil {
			return nil, err
		}
	}

	if err := uc.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"report_id":   report.ID,
		"reporter_id": report.ReporterID,
		"type":        report.Type,
	}).Info("report filed")

	return describeOne(ctx, uc.userRepo, report)
}

type ListMyReportsUseCase struct {
	reportRepo repository.ReportRepository
	userRepo   repository.UserRepository
}

func NewListMyReportsUseCase(reportRepo repository.ReportRepository, userRepo repository.UserRepository) *ListMyReportsUseCase {
	return &ListMyReportsUseCase{reportRepo: reportRepo, userRepo: userRepo}
}

// Execute returns the reports the user filed and the ones filed against them.
func (uc *ListMyReportsUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*ReportView, error) {
	reports, err := uc.reportRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return describe(ctx, uc.userRepo, reports)
}

type ListReportsUseCase struct {
	reportRepo repository.ReportRepository
	userRepo   repository.UserRepository
}

func NewListReportsUseCase(reportRepo repository.ReportRepository, userRepo repository.UserRepository) *ListReportsUseCase {
	return &ListReportsUseCase{reportRepo: reportRepo, userRepo: userRepo}
}

// Execute pages through reports, newest first. An empty status lists all.
func (uc *ListReportsUseCase) Execute(ctx context.Context, status string, limit, offset int) ([]*ReportView, int, error) {
	filter := repository.ReportFilter{Limit: limit, Offset: offset}
	if status != "" {
		s, err := valueobject.NewReportStatus(status)
		if err != nil {
			return nil, 0, err
		}
		filter.Status = s
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultPageSize
	case filter.Limit > maxPageSize:
		filter.Limit = maxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	reports, total, err := uc.reportRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	views, err := describe(ctx, uc.userRepo, reports)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

type GetReportUseCase struct {
	reportRepo repository.ReportRepository
	userRepo   repository.UserRepository
}

func NewGetReportUseCase(reportRepo repository.ReportRepository, userRepo repository.UserRepository) *GetReportUseCase {
	return &GetReportUseCase{reportRepo: reportRepo, userRepo: userRepo}
}

func (uc *GetReportUseCase) Execute(ctx context.Context, id uuid.UUID) (*ReportView, error) {
	report, err := uc.reportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return describeOne(ctx, uc.userRepo, report)
}

type UpdateReportStatusUseCase struct {
	reportRepo repository.ReportRepository
	userRepo   repository.UserRepository
}

func NewUpdateReportStatusUseCase(reportRepo repository.ReportRepository, userRepo repository.UserRepository) *UpdateReportStatusUseCase {
	return &UpdateReportStatusUseCase{reportRepo: reportRepo, userRepo: userRepo}
}

func (uc *UpdateReportStatusUseCase) Execute(ctx context.Context, reportID, adminID uuid.UUID, status, notes string) (*ReportView, error) {
	newStatus, err := valueobject.NewReportStatus(status)
	if err != nil {
		return nil, err
	}
	report, err := uc.reportRepo.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.userRepo.FindByID(ctx, adminID); err != nil {
		return nil, err
	}

	if err := report.UpdateStatus(adminID, newStatus, notes); err != nil {
		return nil, err
	}
	if err := uc.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"report_id": report.ID,
		"admin_id":  adminID,
		"status":    report.Status,
	}).Info("report status updated")

	return describeOne(ctx, uc.userRepo, report)
}

type ReportStatisticsUseCase struct {
	reportRepo repository.ReportRepository
}

func NewReportStatisticsUseCase(reportRepo repository.ReportRepository) *ReportStatisticsUseCase {
	return &ReportStatisticsUseCase{reportRepo: reportRepo}
}

func (uc *ReportStatisticsUseCase) Execute(ctx context.Context) (entity.ReportStats, error) {
	counts, err := uc.reportRepo.CountByStatus(ctx)
	if err != nil {
		return entity.ReportStats{}, err
	}
	return entity.NewReportStats(counts), nil
}
