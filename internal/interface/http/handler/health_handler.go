package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger проверяет доступность базы.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler отвечает на GET /health.
type HealthHandler struct {
	db  Pinger
	hub interface{ ConnectedUsers() int }
}

func NewHealthHandler(db Pinger, hub interface{ ConnectedUsers() int }) *HealthHandler {
	return &HealthHandler{db: db, hub: hub}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
	WSUsers   int               `json:"ws_users"`
	Pool      *PoolStats        `json:"pool,omitempty"`
}

type PoolStats struct {
	Open      int   `json:"open"`
	InUse     int   `json:"in_use"`
	Idle      int   `json:"idle"`
	WaitCount int64 `json:"wait_count"`
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "healthy", Timestamp: time.Now(), Checks: map[string]string{}}
	if err := h.db.PingContext(ctx); err != nil {
		resp.Checks["database"] = "unhealthy"
		resp.Status = "unhealthy"
	} else {
		resp.Checks["database"] = "healthy"
	}
	if h.hub != nil {
		resp.WSUsers = h.hub.ConnectedUsers()
	}
	// *sqlx.DB отдаёт статистику пула через встроенный *sql.DB.
	if s, ok := h.db.(interface{ Stats() sql.DBStats }); ok {
		st := s.Stats()
		resp.Pool = &PoolStats{Open: st.OpenConnections, InUse: st.InUse, Idle: st.Idle, WaitCount: st.WaitCount}
	}

	status := http.StatusOK
	if resp.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
