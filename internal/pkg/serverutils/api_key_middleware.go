package serverutils

import (
	"crypto/subtle"

	"usecase-catalog-be/internal/pkg/apperror"
	"usecase-catalog-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

const HeaderAPIKey = "X-API-Key"

// APIKeyMiddleware guards mutating routes with a shared secret sent in the
// X-API-Key header. An empty secret lets every request through with a
// warning; config validation refuses that combination in production.
func APIKeyMiddleware(secret string, log logger.ILogger) fiber.Handler {
	expected := []byte(secret)

	return func(ctx *fiber.Ctx) error {
		if len(expected) == 0 {
			log.Warn("AUTH", "API_SECRET_KEY is not set, accepting unauthenticated request", map[string]interface{}{
				"method":     ctx.Method(),
				"path":       ctx.Path(),
				"request_id": RequestID(ctx),
			})
			return ctx.Next()
		}

		provided := ctx.Get(HeaderAPIKey)
		if provided == "" {
			return apperror.Unauthorized("Missing API key")
		}
		if subtle.ConstantTimeCompare([]byte(provided), expected) != 1 {
			return apperror.Unauthorized("Invalid API key")
		}
		return ctx.Next()
	}
}
