package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/soldesk/ticket-service/internal/config"
	"github.com/soldesk/ticket-service/internal/persistence"
	apperrors "github.com/soldesk/ticket-service/pkg/util/errorutil"
)

// Throttle is the admission-control gate applied before requests reach the
// ticket service: a fixed-window counter per client IP kept in Redis. When
// Redis is unreachable the gate fails open so the desk keeps working.
func Throttle(cfg config.ThrottleConfig, redis *persistence.Redis, logger *zap.Logger) fiber.Handler {
	window := cfg.Window()
	limit := int64(cfg.RequestsPerWindow)

	return func(c *fiber.Ctx) error {
		if !cfg.Enabled || redis == nil || redis.Client == nil {
			return c.Next()
		}

		bucket := time.Now().Unix() / int64(window.Seconds())
		key := fmt.Sprintf("throttle:%s:%d", c.IP(), bucket)

		count, err := redis.Client.Incr(c.Context(), key).Result()
		if err != nil {
			logger.Warn("throttle counter unavailable", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			redis.Client.Expire(c.Context(), key, window)
		}
		if count > limit {
			return apperrors.NewDomainError(apperrors.CodeRateLimited, "too many requests", http.StatusTooManyRequests, nil)
		}
		return c.Next()
	}
}
