package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/servantin-backend/internal/interface/http/dto"
	"github.com/ignatzorin/servantin-backend/internal/interface/http/response"
	"github.com/ignatzorin/servantin-backend/internal/usecase/booking"
)

type BookingUseCases struct {
	Create         *booking.CreateBookingUseCase
	Get            *booking.GetBookingUseCase
	ListClient     *booking.ListClientBookingsUseCase
	ListProvider   *booking.ListProviderBookingsUseCase
	Accept         *booking.AcceptBookingUseCase
	Decline        *booking.DeclineBookingUseCase
	Complete       *booking.CompleteBookingUseCase
	Cancel         *booking.CancelBookingUseCase
	AssignProvider *booking.AssignProviderUseCase
	Rate           *booking.RateBookingUseCase
	SendMessage    *booking.SendMessageUseCase
	ListMessages   *booking.ListMessagesUseCase
	Views          *booking.ViewAssembler
}

type BookingHandler struct {
	uc BookingUseCases
}

func NewBookingHandler(uc BookingUseCases) *BookingHandler {
	return &BookingHandler{uc: uc}
}

func (h *BookingHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	categoryID, err := parseUUID(req.CategoryID)
	if err != nil {
		response.BadRequest(c, "invalid category_id")
		return
	}
	providerID, err := dto.ParseOptionalUUID(req.ProviderID)
	if err != nil {
		response.BadRequest(c, "invalid provider_id")
		return
	}
	scheduledAt, err := dto.ParseOptionalTime(req.ScheduledAt)
	if err != nil {
		response.BadRequest(c, "scheduled_at must be RFC3339")
		return
	}

	created, err := h.uc.Create.Execute(c.Request.Context(), booking.CreateBookingInput{
		ClientID:    userID,
		CategoryID:  categoryID,
		ProviderID:  providerID,
		Description: req.Description,
		PostalCode:  req.PostalCode,
		City:        req.City,
		AddressText: req.AddressText,
		ScheduledAt: scheduledAt,
		Urgency:     req.Urgency,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	respondBooking(c, h.uc.Views, response.Created, created, &userID)
}

func (h *BookingHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "authentication required")
		return
	}
	bookingID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}

	view, err := h.uc.Get.Execute(c.Request.Context(), bookingID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToBookingViewResponse(view))
}

func (h *BookingHandler) ListClient(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	views, err := h.uc.ListClient.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToBookingViewsResponse(views))
}

func (h *BookingHandler) ListProvider(c *gin.Context) {
	h.listProvider(c, false)
}

func (h *BookingHandler) ListPending(c *gin.Context) {
	h.listProvider(c, true)
}

func (h *BookingHandler) listProvider(c *gin.Context, pendingOnly bool) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	views, err := h.uc.ListProvider.Execute(c.Request.Context(), userID, pendingOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToBookingViewsResponse(views))
}

func (h *BookingHandler) Accept(c *gin.Context) {
	userID, bookingID, ok := actorAndBooking(c)
	if !ok {
		return
	}

	b, err := h.uc.Accept.Execute(c.Request.Context(), bookingID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondBooking(c, h.uc.Views, response.Success, b, &userID)
}

func (h *BookingHandler) Decline(c *gin.Context) {
	userID, bookingID, ok := actorAndBooking(c)
	if !ok {
		return
	}

	// Тело необязательно: причина отказа может отсутствовать.
	var req dto.DeclineBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "invalid request body")
			return
		}
	}

	b, err := h.uc.Decline.Execute(c.Request.Context(), bookingID, userID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondBooking(c, h.uc.Views, response.Success, b, &userID)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	userID, bookingID, ok := actorAndBooking(c)
	if !ok {
		return
	}

	b, err := h.uc.Complete.Execute(c.Request.Context(), bookingID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondBooking(c, h.uc.Views, response.Success, b, &userID)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID, bookingID, ok := actorAndBooking(c)
	if !ok {
		return
	}

	b, err := h.uc.Cancel.Execute(c.Request.Context(), bookingID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondBooking(c, h.uc.Views, response.Success, b, &userID)
}

func (h *BookingHandler) AssignProvider(c *gin.Context) {
	userID, bookingID, ok := actorAndBooking(c)
	if !ok {
		return
	}

	var req dto.AssignProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	providerID, err := parseUUID(req.ProviderID)
	if err != nil {
		response.BadRequest(c, "invalid provider_id")
		return
	}

	b, err := h.uc.AssignProvider.Execute(c.Request.Context(), bookingID, userID, providerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondBooking(c, h.uc.Views, response.Success, b, &userID)
}

func (h *BookingHandler) Rate(c *gin.Context) {
	userID, bookingID, ok := actorAndBooking(c)
	if !ok {
		return
	}

	var req dto.RateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "score must be between 1 and 5")
		return
	}

	rating, err := h.uc.Rate.Execute(c.Request.Context(), booking.RateBookingInput{
		BookingID: bookingID,
		ClientID:  userID,
		Score:     req.Score,
		Comment:   req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToRatingResponse(rating))
}

func (h *BookingHandler) SendMessage(c *gin.Context) {
	userID, bookingID, ok := actorAndBooking(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "message content is required")
		return
	}

	msg, err := h.uc.SendMessage.Execute(c.Request.Context(), bookingID, userID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToMessageResponse(msg))
}

func (h *BookingHandler) ListMessages(c *gin.Context) {
	userID, bookingID, ok := actorAndBooking(c)
	if !ok {
		return
	}

	messages, err := h.uc.ListMessages.Execute(c.Request.Context(), bookingID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToMessagesResponse(messages))
}
