package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
	"github.com/ignatzorin/servantin-backend/internal/http/middleware"
	"github.com/ignatzorin/servantin-backend/internal/interface/http/dto"
	"github.com/ignatzorin/servantin-backend/internal/interface/http/response"
	"github.com/ignatzorin/servantin-backend/internal/logger"
	"github.com/ignatzorin/servantin-backend/internal/usecase/booking"
)

var errNoUser = errors.New("userID not found in context")

func getUserID(c *gin.Context) (uuid.UUID, error) {
	value, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return uuid.Nil, errNoUser
	}
	userID, ok := value.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, errNoUser
	}
	return userID, nil
}

func isAdmin(c *gin.Context) bool {
	return strings.EqualFold(c.GetString(middleware.ContextRoleKey), string(valueobject.RoleAdmin))
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

func parseIntQuery(c *gin.Context, key string, defaultValue int) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func parseUUID(raw string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(raw))
}

// actorAndBooking достаёт пользователя и :id брони; при ошибке ответ уже
// записан.
func actorAndBooking(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "authentication required")
		return uuid.Nil, uuid.Nil, false
	}
	bookingID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, bookingID, true
}

// respondBooking отдаёт бронь в том виде, в каком её видит viewer (nil для
// администратора). Переход к этому моменту уже сохранён, поэтому сбой
// сборки представления только логируется.
func respondBooking(c *gin.Context, views *booking.ViewAssembler, send func(*gin.Context, interface{}), b *entity.Booking, viewer *uuid.UUID) {
	view, err := views.One(c.Request.Context(), b, viewer)
	if err != nil {
		logger.Log.WithError(err).WithField("booking_id", b.ID).Warn("не удалось собрать представление брони")
		view = &booking.BookingView{Booking: b}
	}
	send(c, dto.ToBookingViewResponse(view))
}
