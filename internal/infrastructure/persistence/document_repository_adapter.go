package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
	"github.com/ignatzorin/servantin-backend/internal/infrastructure/persistence/common"
	"github.com/ignatzorin/servantin-backend/internal/models"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

const documentColumns = `id, profile_id, document_type, storage_path, file_name, file_size_bytes, mime_type,
	verification_status, verification_notes, verified_by, verified_at, created_at, updated_at`

type DocumentRepositoryAdapter struct {
	db *sqlx.DB
}

func NewDocumentRepositoryAdapter(db *sqlx.DB) *DocumentRepositoryAdapter {
	return &DocumentRepositoryAdapter{db: db}
}

func (r *DocumentRepositoryAdapter) Create(ctx context.Context, doc *entity.ProviderDocument) error {
	query := `
		INSERT INTO provider_documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.ProfileID, string(doc.DocumentType), doc.StoragePath, doc.FileName,
		doc.FileSizeBytes, doc.MimeType, string(doc.VerificationStatus), doc.VerificationNotes,
		doc.VerifiedBy, doc.VerifiedAt, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить документ")
	}
	return nil
}

func (r *DocumentRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.ProviderDocument, error) {
	row, err := common.GetOne[models.ProviderDocument](ctx, r.db, apperror.ErrDocumentNotFound,
		`SELECT `+documentColumns+` FROM provider_documents WHERE id = $1`, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить документ")
	}
	return rowToDocument(row), nil
}

func (r *DocumentRepositoryAdapter) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.ProviderDocument, error) {
	return r.selectDocuments(ctx,
		`SELECT `+documentColumns+` FROM provider_documents WHERE profile_id = $1 ORDER BY created_at DESC`,
		profileID)
}

func (r *DocumentRepositoryAdapter) ListByStatus(ctx context.Context, status valueobject.VerificationStatus) ([]*entity.ProviderDocument, error) {
	return r.selectDocuments(ctx,
		`SELECT `+documentColumns+` FROM provider_documents WHERE verification_status = $1 ORDER BY created_at ASC`,
		string(status))
}

func (r *DocumentRepositoryAdapter) Update(ctx context.Context, doc *entity.ProviderDocument) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE provider_documents
		SET verification_status = $2, verification_notes = $3, verified_by = $4, verified_at = $5, updated_at = $6
		WHERE id = $1
	`, doc.ID, string(doc.VerificationStatus), doc.VerificationNotes, doc.VerifiedBy, doc.VerifiedAt, doc.UpdatedAt)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить документ")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperror.ErrDocumentNotFound
	}
	return nil
}

func (r *DocumentRepositoryAdapter) CountByStatus(ctx context.Context) (map[valueobject.VerificationStatus]int, error) {
	var rows []models.StatusCount
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT verification_status AS status, COUNT(*) AS count FROM provider_documents GROUP BY verification_status`); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать документы по статусам")
	}

	counts := make(map[valueobject.VerificationStatus]int, len(rows))
	for _, row := range rows {
		counts[valueobject.VerificationStatus(row.Status)] = row.Count
	}
	return counts, nil
}

func (r *DocumentRepositoryAdapter) selectDocuments(ctx context.Context, query string, args ...interface{}) ([]*entity.ProviderDocument, error) {
	var rows []models.ProviderDocument
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить список документов")
	}

	docs := make([]*entity.ProviderDocument, 0, len(rows))
	for i := range rows {
		docs = append(docs, rowToDocument(&rows[i]))
	}
	return docs, nil
}

func rowToDocument(row *models.ProviderDocument) *entity.ProviderDocument {
	return &entity.ProviderDocument{
		ID:                 row.ID,
		ProfileID:          row.ProfileID,
		DocumentType:       valueobject.DocumentType(row.DocumentType),
		StoragePath:        row.StoragePath,
		FileName:           row.FileName,
		FileSizeBytes:      row.FileSizeBytes,
		MimeType:           row.MimeType,
		VerificationStatus: valueobject.VerificationStatus(row.VerificationStatus),
		VerificationNotes:  row.VerificationNotes,
		VerifiedBy:         row.VerifiedBy,
		VerifiedAt:         row.VerifiedAt,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}
