package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/servantin-backend/internal/interface/http/dto"
	"github.com/ignatzorin/servantin-backend/internal/interface/http/response"
	"github.com/ignatzorin/servantin-backend/internal/usecase/notification"
)

type NotificationHandler struct {
	listUC    *notification.ListNotificationsUseCase
	countUC   *notification.CountUnreadUseCase
	readAllUC *notification.MarkAllReadUseCase
}

func NewNotificationHandler(listUC *notification.ListNotificationsUseCase, countUC *notification.CountUnreadUseCase, readAllUC *notification.MarkAllReadUseCase) *NotificationHandler {
	return &NotificationHandler{listUC: listUC, countUC: countUC, readAllUC: readAllUC}
}

// List обрабатывает GET /api/notifications?limit=&offset=&unread=true.
func (h *NotificationHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	limit := parseIntQuery(c, "limit", 20)
	offset := parseIntQuery(c, "offset", 0)
	items, err := h.listUC.Execute(c.Request.Context(), userID, limit, offset, c.Query("unread") == "true")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToNotificationsResponse(items))
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	count, err := h.countUC.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"count": count})
}

func (h *NotificationHandler) ReadAll(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	if err := h.readAllUC.Execute(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
