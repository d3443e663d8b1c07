package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ignatzorin/servantin-backend/internal/http/middleware"
	"github.com/ignatzorin/servantin-backend/internal/interface/http/response"
	"github.com/ignatzorin/servantin-backend/internal/logger"
	"github.com/ignatzorin/servantin-backend/internal/ws"
)

// WSHandler поднимает WebSocket для доставки уведомлений.
type WSHandler struct {
	hub      *ws.Hub
	tokens   middleware.AccessTokenParser
	upgrader websocket.Upgrader
}

func NewWSHandler(hub *ws.Hub, tokens middleware.AccessTokenParser, allowedOrigins []string) *WSHandler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	return &WSHandler{
		hub:    hub,
		tokens: tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[strings.TrimSpace(origin)]
				return ok
			},
		},
	}
}

// Handle обслуживает GET /api/ws?token=...; браузер не умеет ставить
// заголовок Authorization при открытии сокета.
func (h *WSHandler) Handle(c *gin.Context) {
	rawToken := c.Query("token")
	if rawToken == "" {
		response.Unauthorized(c, "access token is required")
		return
	}

	userID, _, err := h.tokens.ParseAccess(rawToken)
	if err != nil {
		response.Unauthorized(c, "invalid access token")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade уже записал ответ с ошибкой.
		logger.Log.WithError(err).Warn("ws: upgrade не удался")
		return
	}

	client := ws.NewClient(conn, h.hub, userID)
	if !h.hub.Register(client) {
		_ = conn.Close()
		return
	}
	client.Run(c.Request.Context())
}
