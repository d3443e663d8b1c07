package valueobject

import (
	"strings"

	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

type ReportType string

const (
	ReportTypeInappropriateContent ReportType = "INAPPROPRIATE_CONTENT"
	ReportTypeFraud                ReportType = "FRAUD"
	ReportTypeHarassment           ReportType = "HARASSMENT"
	ReportTypeSpam                 ReportType = "SPAM"
	ReportTypeSafetyConcern        ReportType = "SAFETY_CONCERN"
	ReportTypeOther                ReportType = "OTHER"
)

func NewReportType(v string) (ReportType, error) {
	t := ReportType(strings.ToUpper(strings.TrimSpace(v)))
	switch t {
	case ReportTypeInappropriateContent, ReportTypeFraud, ReportTypeHarassment,
		ReportTypeSpam, ReportTypeSafetyConcern, ReportTypeOther:
		return t, nil
	}
	return "", apperror.Validation("unknown report type: " + v)
}

type ReportStatus string

const (
	ReportStatusPending       ReportStatus = "PENDING"
	ReportStatusInvestigating ReportStatus = "INVESTIGATING"
	ReportStatusResolved      ReportStatus = "RESOLVED"
	ReportStatusDismissed     ReportStatus = "DISMISSED"
)

func NewReportStatus(v string) (ReportStatus, error) {
	s := ReportStatus(strings.ToUpper(strings.TrimSpace(v)))
	switch s {
	case ReportStatusPending, ReportStatusInvestigating, ReportStatusResolved, ReportStatusDismissed:
		return s, nil
	}
	return "", apperror.Validation("unknown report status: " + v)
}

// IsClosed reports whether a moderator has reached a final decision.
func (s ReportStatus) IsClosed() bool {
	return s == ReportStatusResolved || s == ReportStatusDismissed
}

type DocumentType string

const (
	DocumentTypeIDCard                    DocumentType = "ID_CARD"
	DocumentTypePassport                  DocumentType = "PASSPORT"
	DocumentTypeBusinessLicense           DocumentType = "BUSINESS_LICENSE"
	DocumentTypeProfessionalCertification DocumentType = "PROFESSIONAL_CERTIFICATION"
	DocumentTypeInsuranceCertificate      DocumentType = "INSURANCE_CERTIFICATE"
	DocumentTypeOther                     DocumentType = "OTHER"
)

func NewDocumentType(v string) (DocumentType, error) {
	t := DocumentType(strings.ToUpper(strings.TrimSpace(v)))
	switch t {
	case DocumentTypeIDCard, DocumentTypePassport, DocumentTypeBusinessLicense,
		DocumentTypeProfessionalCertification, DocumentTypeInsuranceCertificate, DocumentTypeOther:
		return t, nil
	}
	return "", apperror.Validation("unknown document type: " + v)
}

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationApproved VerificationStatus = "APPROVED"
	VerificationRejected VerificationStatus = "REJECTED"
)

func NewVerificationStatus(v string) (VerificationStatus, error) {
	s := VerificationStatus(strings.ToUpper(strings.TrimSpace(v)))
	switch s {
	case VerificationPending, VerificationApproved, VerificationRejected:
		return s, nil
	}
	return "", apperror.Validation("unknown verification status: " + v)
}
