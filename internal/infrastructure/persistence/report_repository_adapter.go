package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/repository"
	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
	"github.com/ignatzorin/servantin-backend/internal/infrastructure/persistence/common"
	"github.com/ignatzorin/servantin-backend/internal/models"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

const reportColumns = `id, reporter_id, reported_user_id, reported_booking_id, report_type, description,
	status, admin_notes, resolved_by, resolved_at, created_at, updated_at`

type ReportRepositoryAdapter struct {
	db *sqlx.DB
}

func NewReportRepositoryAdapter(db *sqlx.DB) *ReportRepositoryAdapter {
	return &ReportRepositoryAdapter{db: db}
}

func (r *ReportRepositoryAdapter) Create(ctx context.Context, report *entity.Report) error {
	query := `
		INSERT INTO reports (` + reportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		report.ID, report.ReporterID, report.ReportedUserID, report.ReportedBookingID,
		string(report.Type), report.Description, string(report.Status), report.AdminNotes,
		report.ResolvedBy, report.ResolvedAt, report.CreatedAt, report.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить жалобу")
	}
	return nil
}

func (r *ReportRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	row, err := common.GetOne[models.Report](ctx, r.db, apperror.ErrReportNotFound,
		`SELECT `+reportColumns+` FROM reports WHERE id = $1`, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить жалобу")
	}
	return rowToReport(row), nil
}

func (r *ReportRepositoryAdapter) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Report, error) {
	return r.selectReports(ctx,
		`SELECT `+reportColumns+` FROM reports WHERE reporter_id = $1 OR reported_user_id = $1 ORDER BY created_at DESC`,
		userID)
}

func (r *ReportRepositoryAdapter) List(ctx context.Context, filter repository.ReportFilter) ([]*entity.Report, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM reports WHERE ($1 = '' OR status = $1)`, string(filter.Status)); err != nil {
		return nil, 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать жалобы")
	}

	reports, err := r.selectReports(ctx, `
		SELECT `+reportColumns+` FROM reports
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, string(filter.Status), filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *ReportRepositoryAdapter) Update(ctx context.Context, report *entity.Report) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reports
		SET status = $2, admin_notes = $3, resolved_by = $4, resolved_at = $5, updated_at = $6
		WHERE id = $1
	`, report.ID, string(report.Status), report.AdminNotes, report.ResolvedBy, report.ResolvedAt, report.UpdatedAt)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить жалобу")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperror.ErrReportNotFound
	}
	return nil
}

func (r *ReportRepositoryAdapter) CountByStatus(ctx context.Context) (map[valueobject.ReportStatus]int, error) {
	var rows []models.StatusCount
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT status, COUNT(*) AS count FROM reports GROUP BY status`); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать жалобы по статусам")
	}

	counts := make(map[valueobject.ReportStatus]int, len(rows))
	for _, row := range rows {
		counts[valueobject.ReportStatus(row.Status)] = row.Count
	}
	return counts, nil
}

func (r *ReportRepositoryAdapter) selectReports(ctx context.Context, query string, args ...interface{}) ([]*entity.Report, error) {
	var rows []models.Report
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить список жалоб")
	}

	reports := make([]*entity.Report, 0, len(rows))
	for i := range rows {
		reports = append(reports, rowToReport(&rows[i]))
	}
	return reports, nil
}

func rowToReport(row *models.Report) *entity.Report {
	return &entity.Report{
		ID:                row.ID,
		ReporterID:        row.ReporterID,
		ReportedUserID:    row.ReportedUserID,
		ReportedBookingID: row.ReportedBookingID,
		Type:              valueobject.ReportType(row.ReportType),
		Description:       row.Description,
		Status:            valueobject.ReportStatus(row.Status),
		AdminNotes:        row.AdminNotes,
		ResolvedBy:        row.ResolvedBy,
		ResolvedAt:        row.ResolvedAt,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}
