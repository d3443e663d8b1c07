package provider

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/repository"
	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
	"github.com/ignatzorin/servantin-backend/internal/logger"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
	"github.com/ignatzorin/servantin-backend/internal/storage"
)

// DocumentStore keeps verification documents outside the public media root.
type DocumentStore interface {
	Store(ctx context.Context, ownerID uuid.UUID, originalName string, r io.Reader) (*storage.StoredFile, error)
	Delete(ctx context.Context, relativePath string) error
}

type UploadDocumentUseCase struct {
	providerRepo repository.ProviderRepository
	documentRepo repository.DocumentRepository
	files        DocumentStore
}

func NewUploadDocumentUseCase(providerRepo repository.ProviderRepository, documentRepo repository.DocumentRepository, files DocumentStore) *UploadDocumentUseCase {
	return &UploadDocumentUseCase{providerRepo: providerRepo, documentRepo: documentRepo, files: files}
}

// Execute stores the file for the caller's profile and queues it for review.
func (uc *UploadDocumentUseCase) Execute(ctx context.Context, userID uuid.UUID, documentType, fileName string, r io.Reader) (*entity.ProviderDocument, error) {
	docType, err := valueobject.NewDocumentType(documentType)
	if err != nil {
		return nil, err
	}
	profile, err := uc.providerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	stored, err := uc.files.Store(ctx, profile.ID, fileName, r)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) || errors.Is(err, storage.ErrUnsupportedType) {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, "document must be a JPEG, PNG or PDF within the size limit")
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "failed to store document")
	}

	doc := entity.NewProviderDocument(profile.ID, docType, stored.Path, fileName, stored.Size, stored.MIME)
	if err := uc.documentRepo.Create(ctx, doc); err != nil {
		if delErr := uc.files.Delete(ctx, stored.Path); delErr != nil {
			logger.Log.WithError(delErr).Warn("failed to remove orphaned document")
		}
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"document_id": doc.ID,
		"profile_id":  profile.ID,
		"type":        doc.DocumentType,
	}).Info("provider document uploaded")

	return doc, nil
}

type ListDocumentsUseCase struct {
	providerRepo repository.ProviderRepository
	documentRepo repository.DocumentRepository
}

func NewListDocumentsUseCase(providerRepo repository.ProviderRepository, documentRepo repository.DocumentRepository) *ListDocumentsUseCase {
	return &ListDocumentsUseCase{providerRepo: providerRepo, documentRepo: documentRepo}
}

// Mine lists the documents of the caller's own profile.
func (uc *ListDocumentsUseCase) Mine(ctx context.Context, userID uuid.UUID) ([]*entity.ProviderDocument, error) {
	profile, err := uc.providerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.documentRepo.ListByProfile(ctx, profile.ID)
}

func (uc *ListDocumentsUseCase) ByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.ProviderDocument, error) {
	if _, err := uc.providerRepo.FindByID(ctx, profileID); err != nil {
		return nil, err
	}
	return uc.documentRepo.ListByProfile(ctx, profileID)
}

// ByStatus defaults to the PENDING review queue.
func (uc *ListDocumentsUseCase) ByStatus(ctx context.Context, status string) ([]*entity.ProviderDocument, error) {
	s := valueobject.VerificationPending
	if status != "" {
		var err error
		if s, err = valueobject.NewVerificationStatus(status); err != nil {
			return nil, err
		}
	}
	return uc.documentRepo.ListByStatus(ctx, s)
}

func (uc *ListDocumentsUseCase) ByID(ctx context.Context, id uuid.UUID) (*entity.ProviderDocument, error) {
	return uc.documentRepo.FindByID(ctx, id)
}

type VerifyDocumentUseCase struct {
	documentRepo repository.DocumentRepository
}

func NewVerifyDocumentUseCase(documentRepo repository.DocumentRepository) *VerifyDocumentUseCase {
	return &VerifyDocumentUseCase{documentRepo: documentRepo}
}

func (uc *VerifyDocumentUseCase) Execute(ctx context.Context, documentID, adminID uuid.UUID, status, notes string) (*entity.ProviderDocument, error) {
	newStatus, err := valueobject.NewVerificationStatus(status)
	if err != nil {
		return nil, err
	}
	doc, err := uc.documentRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if err := doc.Verify(adminID, newStatus, notes); err != nil {
		return nil, err
	}
	if err := uc.documentRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"document_id": doc.ID,
		"admin_id":    adminID,
		"status":      doc.VerificationStatus,
	}).Info("provider document reviewed")

	return doc, nil
}

type DocumentStatisticsUseCase struct {
	documentRepo repository.DocumentRepository
}

func NewDocumentStatisticsUseCase(documentRepo repository.DocumentRepository) *DocumentStatisticsUseCase {
	return &DocumentStatisticsUseCase{documentRepo: documentRepo}
}

func (uc *DocumentStatisticsUseCase) Execute(ctx context.Context) (entity.DocumentStats, error) {
	counts, err := uc.documentRepo.CountByStatus(ctx)
	if err != nil {
		return entity.DocumentStats{}, err
	}
	return entity.NewDocumentStats(counts), nil
}
