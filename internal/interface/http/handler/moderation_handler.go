package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/servantin-backend/internal/interface/http/dto"
	"github.com/ignatzorin/servantin-backend/internal/interface/http/response"
	"github.com/ignatzorin/servantin-backend/internal/usecase/provider"
	"github.com/ignatzorin/servantin-backend/internal/usecase/report"
)

// ModerationUseCases собирает всё, что нужно админке для жалоб и документов.
type ModerationUseCases struct {
	ListReports    *report.ListReportsUseCase
	GetReport      *report.GetReportUseCase
	UpdateReport   *report.UpdateReportStatusUseCase
	ReportStats    *report.ReportStatisticsUseCase
	Dashboard      *report.DashboardStatsUseCase
	ListDocuments  *provider.ListDocumentsUseCase
	VerifyDocument *provider.VerifyDocumentUseCase
	DocumentStats  *provider.DocumentStatisticsUseCase
	GetProfile     *provider.GetProfileUseCase
}

type ModerationHandler struct {
	uc ModerationUseCases
}

func NewModerationHandler(uc ModerationUseCases) *ModerationHandler {
	return &ModerationHandler{uc: uc}
}

// ListReports обрабатывает GET /api/admin/reports?status=&limit=&offset=
// и GET /api/admin/reports/status/:status.
func (h *ModerationHandler) ListReports(c *gin.Context) {
	status := c.Param("status")
	if status == "" {
		status = c.Query("status")
	}
	limit := parseIntQuery(c, "limit", 20)
	offset := parseIntQuery(c, "offset", 0)

	views, total, err := h.uc.ListReports.Execute(c.Request.Context(), status, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, dto.ToReportsResponse(views), total, limit, offset)
}

func (h *ModerationHandler) GetReport(c *gin.Context) {
	reportID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid report id")
		return
	}

	view, err := h.uc.GetReport.Execute(c.Request.Context(), reportID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToReportResponse(view))
}

func (h *ModerationHandler) UpdateReportStatus(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "authentication required")
		return
	}
	reportID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid report id")
		return
	}

	var req dto.UpdateReportStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "status is required")
		return
	}

	view, err := h.uc.UpdateReport.Execute(c.Request.Context(), reportID, adminID, req.Status, req.AdminNotes)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToReportResponse(view))
}

func (h *ModerationHandler) ReportStatistics(c *gin.Context) {
	stats, err := h.uc.ReportStats.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToReportStatsResponse(stats))
}

// ListDocuments обрабатывает GET /api/admin/documents/pending
// и GET /api/admin/documents/status/:status.
func (h *ModerationHandler) ListDocuments(c *gin.Context) {
	docs, err := h.uc.ListDocuments.ByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToDocumentsResponse(docs))
}

func (h *ModerationHandler) ListProviderDocuments(c *gin.Context) {
	profileID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid provider id")
		return
	}

	docs, err := h.uc.ListDocuments.ByProfile(c.Request.Context(), profileID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToDocumentsResponse(docs))
}

func (h *ModerationHandler) GetDocument(c *gin.Context) {
	documentID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid document id")
		return
	}

	doc, err := h.uc.ListDocuments.ByID(c.Request.Context(), documentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToDocumentResponse(doc))
}

func (h *ModerationHandler) VerifyDocument(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "authentication required")
		return
	}
	documentID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid document id")
		return
	}

	var req dto.VerifyDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "status is required")
		return
	}

	doc, err := h.uc.VerifyDocument.Execute(c.Request.Context(), documentID, adminID, req.Status, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToDocumentResponse(doc))
}

func (h *ModerationHandler) DocumentStatistics(c *gin.Context) {
	stats, err := h.uc.DocumentStats.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToDocumentStatsResponse(stats))
}

func (h *ModerationHandler) Dashboard(c *gin.Context) {
	stats, err := h.uc.Dashboard.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToDashboardStatsResponse(stats))
}

// GetProvider отдаёт профиль вместе с загруженными документами.
func (h *ModerationHandler) GetProvider(c *gin.Context) {
	profileID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid provider id")
		return
	}

	profile, err := h.uc.GetProfile.ByID(c.Request.Context(), profileID)
	if err != nil {
		response.Error(c, err)
		return
	}
	docs, err := h.uc.ListDocuments.ByProfile(c.Request.Context(), profileID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.AdminProviderResponse{
		ProfileResponse: dto.ToProfileResponse(profile, true),
		Documents:       dto.ToDocumentsResponse(docs),
	})
}
