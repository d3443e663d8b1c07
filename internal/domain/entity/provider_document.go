package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

// ProviderDocument is a file a provider submits for identity or licence checks.
// StoragePath is relative to the private document store.
type ProviderDocument struct {
	ID                 uuid.UUID
	ProfileID          uuid.UUID
	DocumentType       valueobject.DocumentType
	StoragePath        string
	FileName           string
	FileSizeBytes      int64
	MimeType           string
	VerificationStatus valueobject.VerificationStatus
	VerificationNotes  *string
	VerifiedBy         *uuid.UUID
	VerifiedAt         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func NewProviderDocument(profileID uuid.UUID, docType valueobject.DocumentType, storagePath, fileName string, size int64, mimeType string) *ProviderDocument {
	now := time.Now()
	return &ProviderDocument{
		ID:                 uuid.New(),
		ProfileID:          profileID,
		DocumentType:       docType,
		StoragePath:        storagePath,
		FileName:           fileName,
		FileSizeBytes:      size,
		MimeType:           mimeType,
		VerificationStatus: valueobject.VerificationPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// Verify records an admin decision. A document cannot be put back to PENDING.
func (d *ProviderDocument) Verify(adminID uuid.UUID, status valueobject.VerificationStatus, notes string) error {
	if status == valueobject.VerificationPending {
		return apperror.Validation("cannot set status back to PENDING")
	}

	now := time.Now()
	d.VerificationStatus = status
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		d.VerificationNotes = &trimmed
	}
	d.VerifiedBy = &adminID
	d.VerifiedAt = &now
	d.UpdatedAt = now
	return nil
}

// DocumentStats counts documents per verification status.
type DocumentStats struct {
	Pending  int
	Approved int
	Rejected int
	Total    int
}

func NewDocumentStats(counts map[valueobject.VerificationStatus]int) DocumentStats {
	s := DocumentStats{
		Pending:  counts[valueobject.VerificationPending],
		Approved: counts[valueobject.VerificationApproved],
		Rejected: counts[valueobject.VerificationRejected],
	}
	s.Total = s.Pending + s.Approved + s.Rejected
	return s
}
