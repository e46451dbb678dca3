package serverutils

import (
	"errors"

	"usecase-catalog-be/internal/pkg/apperror"
	"usecase-catalog-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

const internalErrorMessage = "Internal server error"

// ErrorHandlerMiddleware turns any error returned further down the chain into
// the JSON error envelope.
func ErrorHandlerMiddleware(log logger.ILogger, isProduction bool) fiber.Handler {
	handle := ErrorHandler(log, isProduction)
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return handle(ctx, err)
	}
}

// ErrorHandler is the fiber.Config.ErrorHandler counterpart of
// ErrorHandlerMiddleware, for errors raised outside it (recovered panics).
func ErrorHandler(log logger.ILogger, isProduction bool) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		status, body := classify(err)

		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"error":      err.Error(),
				"method":     ctx.Method(),
				"path":       ctx.Path(),
				"request_id": RequestID(ctx),
			})
			if isProduction {
				body.Error = internalErrorMessage
			}
		}

		return ctx.Status(status).JSON(body)
	}
}

func classify(err error) (int, *ErrorResponse) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		switch fiberErr.Code {
		case fiber.StatusNotFound:
			return fiberErr.Code, NewErrorResponse("Route not found", "NOT_FOUND", nil)
		case fiber.StatusUnauthorized:
			return fiberErr.Code, NewErrorResponse(fiberErr.Message, "UNAUTHORIZED", nil)
		case fiber.StatusRequestEntityTooLarge:
			return fiberErr.Code, NewErrorResponse("Request body too large", "VALIDATION_ERROR", nil)
		}
		if fiberErr.Code < fiber.StatusInternalServerError {
			return fiberErr.Code, NewErrorResponse(fiberErr.Message, "VALIDATION_ERROR", nil)
		}
		return fiberErr.Code, NewErrorResponse(fiberErr.Message, "INTERNAL_ERROR", nil)
	}

	appErr := apperror.From(err)
	message := appErr.Message
	if appErr.Kind == apperror.KindInternal {
		message = appErr.Error()
	}
	return appErr.Status(), NewErrorResponse(message, appErr.Code(), appErr.Details)
}
