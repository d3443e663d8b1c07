package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/usecase/report"
)

type CreateReportRequest struct {
	ReportedUserID    *string `json:"reported_user_id"`
	ReportedBookingID *string `json:"reported_booking_id"`
	ReportType        string  `json:"report_type" binding:"required"`
	Description       string  `json:"description" binding:"required,min=10,max=2000"`
}

type UpdateReportStatusRequest struct {
	Status     string `json:"status" binding:"required"`
	AdminNotes string `json:"admin_notes" binding:"max=2000"`
}

type VerifyDocumentRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes" binding:"max=2000"`
}

type ReportPartyResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email,omitempty"`
}

type ReportResponse struct {
	ID                uuid.UUID            `json:"id"`
	Reporter          ReportPartyResponse  `json:"reporter"`
	ReportedUser      *ReportPartyResponse `json:"reported_user,omitempty"`
	ReportedBookingID *uuid.UUID           `json:"reported_booking_id,omitempty"`
	ReportType        string               `json:"report_type"`
	Description       string               `json:"description"`
	Status            string               `json:"status"`
	AdminNotes        *string              `json:"admin_notes,omitempty"`
	ResolvedBy        *ReportPartyResponse `json:"resolved_by,omitempty"`
	ResolvedAt        *time.Time           `json:"resolved_at,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// reportParty keeps the id even when the user row is gone.
func reportParty(id uuid.UUID, u *entity.User, withEmail bool) *ReportPartyResponse {
	p := &ReportPartyResponse{ID: id}
	if u != nil {
		p.Name = u.Name
		if withEmail {
			p.Email = u.Email
		}
	}
	return p
}

func ToReportResponse(v *report.ReportView) ReportResponse {
	r := v.Report
	resp := ReportResponse{
		ID:                r.ID,
		Reporter:          *reportParty(r.ReporterID, v.Reporter, true),
		ReportedBookingID: r.ReportedBookingID,
		ReportType:        string(r.Type),
		Description:       r.Description,
		Status:            string(r.Status),
		AdminNotes:        r.AdminNotes,
		ResolvedAt:        r.ResolvedAt,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
	if r.ReportedUserID != nil {
		resp.ReportedUser = reportParty(*r.ReportedUserID, v.ReportedUser, false)
	}
	if r.ResolvedBy != nil {
		resp.ResolvedBy = reportParty(*r.ResolvedBy, v.ResolvedBy, false)
	}
	return resp
}

func ToReportsResponse(views []*report.ReportView) []ReportResponse {
	out := make([]ReportResponse, 0, len(views))
	for _, v := range views {
		out = append(out, ToReportResponse(v))
	}
	return out
}

// DocumentResponse never exposes the storage path.
type DocumentResponse struct {
	ID                 uuid.UUID  `json:"id"`
	ProfileID          uuid.UUID  `json:"profile_id"`
	DocumentType       string     `json:"document_type"`
	FileName           string     `json:"file_name"`
	FileSizeBytes      int64      `json:"file_size_bytes"`
	MimeType           string     `json:"mime_type"`
	VerificationStatus string     `json:"verification_status"`
	VerificationNotes  *string    `json:"verification_notes,omitempty"`
	VerifiedBy         *uuid.UUID `json:"verified_by,omitempty"`
	VerifiedAt         *time.Time `json:"verified_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

func ToDocumentResponse(d *entity.ProviderDocument) DocumentResponse {
	return DocumentResponse{
		ID:                 d.ID,
		ProfileID:          d.ProfileID,
		DocumentType:       string(d.DocumentType),
		FileName:           d.FileName,
		FileSizeBytes:      d.FileSizeBytes,
		MimeType:           d.MimeType,
		VerificationStatus: string(d.VerificationStatus),
		VerificationNotes:  d.VerificationNotes,
		VerifiedBy:         d.VerifiedBy,
		VerifiedAt:         d.VerifiedAt,
		CreatedAt:          d.CreatedAt,
	}
}

func ToDocumentsResponse(docs []*entity.ProviderDocument) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, ToDocumentResponse(d))
	}
	return out
}

type ReportStatsResponse struct {
	Pending       int `json:"pending"`
	Investigating int `json:"investigating"`
	Resolved      int `json:"resolved"`
	Dismissed     int `json:"dismissed"`
	Total         int `json:"total"`
}

type DocumentStatsResponse struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Total    int `json:"total"`
}

type DashboardStatsResponse struct {
	Reports        ReportStatsResponse   `json:"reports"`
	Documents      DocumentStatsResponse `json:"documents"`
	PendingActions int                   `json:"pending_actions"`
}

func ToReportStatsResponse(s entity.ReportStats) ReportStatsResponse {
	return ReportStatsResponse{
		Pending:       s.Pending,
		Investigating: s.Investigating,
		Resolved:      s.Resolved,
		Dismissed:     s.Dismissed,
		Total:         s.Total,
	}
}

func ToDocumentStatsResponse(s entity.DocumentStats) DocumentStatsResponse {
	return DocumentStatsResponse{
		Pending:  s.Pending,
		Approved: s.Approved,
		Rejected: s.Rejected,
		Total:    s.Total,
	}
}

func ToDashboardStatsResponse(s *report.DashboardStats) DashboardStatsResponse {
	return DashboardStatsResponse{
		Reports:        ToReportStatsResponse(s.Reports),
		Documents:      ToDocumentStatsResponse(s.Documents),
		PendingActions: s.PendingActions,
	}
}

// AdminProviderResponse is the admin detail page of a provider.
type AdminProviderResponse struct {
	ProfileResponse
	Documents []DocumentResponse `json:"documents"`
}
