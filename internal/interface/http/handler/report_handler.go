package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/servantin-backend/internal/interface/http/dto"
	"github.com/ignatzorin/servantin-backend/internal/interface/http/response"
	"github.com/ignatzorin/servantin-backend/internal/usecase/report"
)

type ReportHandler struct {
	createUC *report.CreateReportUseCase
	mineUC   *report.ListMyReportsUseCase
}

func NewReportHandler(createUC *report.CreateReportUseCase, mineUC *report.ListMyReportsUseCase) *ReportHandler {
	return &ReportHandler{createUC: createUC, mineUC: mineUC}
}

func (h *ReportHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "report_type and a description of 10 to 2000 characters are required")
		return
	}
	reportedUserID, err := dto.ParseOptionalUUID(req.ReportedUserID)
	if err != nil {
		response.BadRequest(c, "invalid reported_user_id")
		return
	}
	reportedBookingID, err := dto.ParseOptionalUUID(req.ReportedBookingID)
	if err != nil {
		response.BadRequest(c, "invalid reported_booking_id")
		return
	}

	view, err := h.createUC.Execute(c.Request.Context(), report.CreateReportInput{
		ReporterID:        userID,
		ReportedUserID:    reportedUserID,
		ReportedBookingID: reportedBookingID,
		Type:              req.ReportType,
		Description:       req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToReportResponse(view))
}

// Mine отдаёт жалобы, поданные пользователем и на него.
func (h *ReportHandler) Mine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	views, err := h.mineUC.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToReportsResponse(views))
}
