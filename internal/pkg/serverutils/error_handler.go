package serverutils

import (
	"errors"

	"ai-studymate-be/pkg/docstore"
	"ai-studymate-be/pkg/extract"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors bubbled up from controllers into the
// standard JSON envelope, mapping known error kinds to HTTP status codes.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		var validationErr *ValidationError

		switch {
		case errors.As(err, &fiberErr):
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		case errors.As(err, &validationErr):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(400, validationErr.Error()))
		case errors.Is(err, docstore.ErrEmptyInput):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(400, err.Error()))
		case errors.Is(err, extract.ErrUnsupportedType):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(400, err.Error()))
		case errors.Is(err, docstore.ErrNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(404, err.Error()))
		case errors.Is(err, docstore.ErrPersistence):
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, err.Error()))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, err.Error()))
		}
	}
}
