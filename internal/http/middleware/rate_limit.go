package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/ignatzorin/servantin-backend/internal/interface/http/response"
	"github.com/ignatzorin/servantin-backend/internal/logger"
)

// RateLimitMiddleware ограничивает число запросов. Ключ: пользователь, если
// он авторизован, иначе IP.
func RateLimitMiddleware(limit int64, period time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		limit = 30
	}
	if period <= 0 {
		period = time.Minute
	}

	instance := limiter.New(memory.NewStore(), limiter.Rate{Period: period, Limit: limit})

	return func(c *gin.Context) {
		key := c.ClientIP()
		if userID, ok := c.Get(ContextUserIDKey); ok {
			if s, ok := userID.(interface{ String() string }); ok {
				key = "user:" + s.String()
			}
		}

		lctx, err := instance.Get(c.Request.Context(), key)
		if err != nil {
			// Лимитер в памяти не должен падать; если упал, не блокируем запрос.
			logger.Log.WithError(err).Error("rate limiter: не удалось получить счётчик")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			response.TooManyRequests(c, "too many requests, try again later")
			return
		}

		c.Next()
	}
}
