package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/servantin-backend/internal/interface/http/response"
)

// UUIDValidator отклоняет запрос, если параметр пути не UUID.
// Пример: router.GET("/bookings/:id", UUIDValidator("id"), handler.Get)
func UUIDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := uuid.Parse(c.Param(paramName)); err != nil {
			response.BadRequest(c, "parameter "+paramName+" must be a valid UUID")
			return
		}
		c.Next()
	}
}
