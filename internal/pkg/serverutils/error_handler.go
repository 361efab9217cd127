package serverutils

import (
	"errors"

	"site-gallery-be/internal/entity"
	"site-gallery-be/internal/pkg/logger"
	"site-gallery-be/pkg/gallery"
	"site-gallery-be/pkg/objectstore"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type errorMapping struct {
	err    error
	status int
}

var errorMappings = []errorMapping{
	{entity.ErrSiteNotFound, fiber.StatusNotFound},
	{entity.ErrSlotNotFound, fiber.StatusNotFound},
	{entity.ErrForbidden, fiber.StatusForbidden},
	{entity.ErrEmptyFile, fiber.StatusBadRequest},
	{entity.ErrFormNotAccepted, fiber.StatusBadRequest},
	{entity.ErrMalformedBody, fiber.StatusBadRequest},
	{entity.ErrFileTooLarge, fiber.StatusRequestEntityTooLarge},
	{entity.ErrUnsupportedMedia, fiber.StatusUnsupportedMediaType},
	{gallery.ErrUploadInProgress, fiber.StatusConflict},
	{entity.ErrSlotConflict, fiber.StatusConflict},
	{objectstore.ErrObjectExists, fiber.StatusConflict},
	{entity.ErrStorageUnavailable, fiber.StatusServiceUnavailable},
}

// publicError maps a domain error to an HTTP status and the public message.
// Mapped errors answer with the sentinel's own text, never the wrapped chain.
// Unknown errors are 500.
func publicError(err error) (int, string) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, fe.Message
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, m.err.Error()
		}
	}
	return fiber.StatusInternalServerError, ""
}

// ErrorHandlerMiddleware turns errors returned by handlers into the JSON
// envelope. Known errors report their sentinel message; anything else is
// logged and reported generically.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return ctx.Status(fiber.StatusBadRequest).
				JSON(ValidationErrorResponse(fiber.StatusBadRequest, "Validation failed", fieldErrors(verrs)))
		}

		status, message := publicError(err)
		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err.Error(),
			})
			message = "Internal server error"
			if status == fiber.StatusServiceUnavailable {
				message = "Service unavailable"
			}
		}

		return ctx.Status(status).JSON(ErrorResponse(status, message))
	}
}
