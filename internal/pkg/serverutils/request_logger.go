package serverutils

import (
	"time"

	"usecase-catalog-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// RequestIDKey is where the requestid middleware stores the id in ctx.Locals.
const RequestIDKey = "requestid"

func RequestID(ctx *fiber.Ctx) string {
	if id, ok := ctx.Locals(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// RequestLogger writes one entry per request once the rest of the chain has
// produced a response.
func RequestLogger(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		details := map[string]interface{}{
			"method":     ctx.Method(),
			"path":       ctx.Path(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         ctx.IP(),
			"request_id": RequestID(ctx),
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error("HTTP", "Request completed", details)
		case status >= fiber.StatusBadRequest:
			log.Warn("HTTP", "Request completed", details)
		default:
			log.Info("HTTP", "Request completed", details)
		}
		return err
	}
}
