package serverutils

import (
	"net/http"
	"time"

	"ai-tagging-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned by handlers into
// {"error": "..."} responses. Client errors are logged at warn, server errors
// at error with the real cause; the client only sees the masked message.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return writeError(ctx, log, err)
	}
}

// ErrorHandler is the app-level fallback for errors that never pass through
// ErrorHandlerMiddleware: recovered panics and body-limit rejections.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		return writeError(ctx, log, err)
	}
}

func writeError(ctx *fiber.Ctx, log logger.ILogger, err error) error {
	code, message := StatusFor(err)
	details := map[string]interface{}{
		"method":     ctx.Method(),
		"path":       ctx.Path(),
		"status":     code,
		"request_id": ctx.Locals("requestid"),
	}
	if code >= http.StatusInternalServerError {
		details["error"] = err.Error()
		log.Error("HTTP", "Request failed", details)
	} else {
		details["reason"] = message
		log.Warn("HTTP", "Request rejected", details)
	}

	return ctx.Status(code).JSON(ErrorResponse(message))
}

// AccessLogMiddleware logs one line per request through the structured logger.
func AccessLogMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		log.Info("HTTP", "Request handled", map[string]interface{}{
			"method":      ctx.Method(),
			"path":        ctx.Path(),
			"status":      ctx.Response().StatusCode(),
			"remote_ip":   ctx.IP(),
			"request_id":  ctx.Locals("requestid"),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return err
	}
}
