package models

import (
	"time"

	"github.com/google/uuid"
)

// Report строка таблицы reports.
type Report struct {
	ID                uuid.UUID  `db:"id"`
	ReporterID        uuid.UUID  `db:"reporter_id"`
	ReportedUserID    *uuid.UUID `db:"reported_user_id"`
	ReportedBookingID *uuid.UUID `db:"reported_booking_id"`
	ReportType        string     `db:"report_type"`
	Description       string     `db:"description"`
	Status            string     `db:"status"`
	AdminNotes        *string    `db:"admin_notes"`
	ResolvedBy        *uuid.UUID `db:"resolved_by"`
	ResolvedAt        *time.Time `db:"resolved_at"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}

// ProviderDocument строка таблицы provider_documents.
type ProviderDocument struct {
	ID                 uuid.UUID  `db:"id"`
	ProfileID          uuid.UUID  `db:"profile_id"`
	DocumentType       string     `db:"document_type"`
	StoragePath        string     `db:"storage_path"`
	FileName           string     `db:"file_name"`
	FileSizeBytes      int64      `db:"file_size_bytes"`
	MimeType           string     `db:"mime_type"`
	VerificationStatus string     `db:"verification_status"`
	VerificationNotes  *string    `db:"verification_notes"`
	VerifiedBy         *uuid.UUID `db:"verified_by"`
	VerifiedAt         *time.Time `db:"verified_at"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
}

// StatusCount результат группировки по статусу.
type StatusCount struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}
