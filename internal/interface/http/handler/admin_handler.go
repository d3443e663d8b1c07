package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/servantin-backend/internal/domain/repository"
	"github.com/ignatzorin/servantin-backend/internal/interface/http/dto"
	"github.com/ignatzorin/servantin-backend/internal/interface/http/response"
	"github.com/ignatzorin/servantin-backend/internal/usecase/booking"
	"github.com/ignatzorin/servantin-backend/internal/usecase/provider"
)

type AdminHandler struct {
	listBookingsUC  *booking.AdminListBookingsUseCase
	setStatusUC     *booking.AdminSetStatusUseCase
	listProvidersUC *provider.ListProvidersUseCase
	verifyUC        *provider.VerifyProviderUseCase
	views           *booking.ViewAssembler
}

func NewAdminHandler(
	listBookingsUC *booking.AdminListBookingsUseCase,
	setStatusUC *booking.AdminSetStatusUseCase,
	listProvidersUC *provider.ListProvidersUseCase,
	verifyUC *provider.VerifyProviderUseCase,
	views *booking.ViewAssembler,
) *AdminHandler {
	return &AdminHandler{
		listBookingsUC:  listBookingsUC,
		setStatusUC:     setStatusUC,
		listProvidersUC: listProvidersUC,
		verifyUC:        verifyUC,
		views:           views,
	}
}

// ListBookings обрабатывает GET /api/admin/bookings?status=&limit=&offset=.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	filter := repository.BookingFilter{
		Status: c.Query("status"),
		Limit:  parseIntQuery(c, "limit", 20),
		Offset: parseIntQuery(c, "offset", 0),
	}

	views, total, err := h.listBookingsUC.Execute(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, dto.ToBookingViewsResponse(views), total, filter.Limit, filter.Offset)
}

func (h *AdminHandler) SetStatus(c *gin.Context) {
	bookingID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}

	var req dto.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "status is required")
		return
	}

	b, err := h.setStatusUC.Execute(c.Request.Context(), bookingID, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondBooking(c, h.views, response.Success, b, nil)
}

func (h *AdminHandler) ListProviders(c *gin.Context) {
	profiles, err := h.listProvidersUC.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, dto.ToProfileResponse(p, true))
	}
	response.Success(c, out)
}

func (h *AdminHandler) VerifyProvider(c *gin.Context) {
	profileID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid provider id")
		return
	}

	var req dto.VerifyProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	profile, err := h.verifyUC.Execute(c.Request.Context(), profileID, req.Verified, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProfileResponse(profile, true))
}
