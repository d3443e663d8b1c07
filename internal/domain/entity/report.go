package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

const (
	reportDescriptionMin = 10
	reportDescriptionMax = 2000
)

// Report is a user complaint about another user, a booking, or both.
type Report struct {
	ID                uuid.UUID
	ReporterID        uuid.UUID
	ReportedUserID    *uuid.UUID
	ReportedBookingID *uuid.UUID
	Type              valueobject.ReportType
	Description       string
	Status            valueobject.ReportStatus
	AdminNotes        *string
	ResolvedBy        *uuid.UUID
	ResolvedAt        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func NewReport(reporterID uuid.UUID, reportedUserID, reportedBookingID *uuid.UUID, reportType valueobject.ReportType, description string) (*Report, error) {
	if reportedUserID == nil && reportedBookingID == nil {
		return nil, apperror.Validation("a report must name a user or a booking")
	}
	if reportedUserID != nil && *reportedUserID == reporterID {
		return nil, apperror.Validation("you cannot report yourself")
	}
	description = strings.TrimSpace(description)
	if n := utf8.RuneCountInString(description); n < reportDescriptionMin || n > reportDescriptionMax {
		return nil, apperror.Validation("description must be between 10 and 2000 characters")
	}

	now := time.Now()
	return &Report{
		ID:                uuid.New(),
		ReporterID:        reporterID,
		ReportedUserID:    reportedUserID,
		ReportedBookingID: reportedBookingID,
		Type:              reportType,
		Description:       description,
		Status:            valueobject.ReportStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// UpdateStatus applies a moderator decision. Closed reports cannot go back
// to PENDING; closing stamps the deciding admin and time.
func (r *Report) UpdateStatus(adminID uuid.UUID, status valueobject.ReportStatus, notes string) error {
	if r.Status.IsClosed() && status == valueobject.ReportStatusPending {
		return apperror.New(apperror.ErrCodeBadRequest, "cannot reopen a resolved or dismissed report")
	}

	r.Status = status
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		r.AdminNotes = &trimmed
	}
	now := time.Now()
	if status.IsClosed() {
		r.ResolvedBy = &adminID
		r.ResolvedAt = &now
	}
	r.UpdatedAt = now
	return nil
}

// ReportStats counts reports per status.
type ReportStats struct {
	Pending       int
	Investigating int
	Resolved      int
	Dismissed     int
	Total         int
}

func NewReportStats(counts map[valueobject.ReportStatus]int) ReportStats {
	s := ReportStats{
		Pending:       counts[valueobject.ReportStatusPending],
		Investigating: counts[valueobject.ReportStatusInvestigating],
		Resolved:      counts[valueobject.ReportStatusResolved],
		Dismissed:     counts[valueobject.ReportStatusDismissed],
	}
	s.Total = s.Pending + s.Investigating + s.Resolved + s.Dismissed
	return s
}
