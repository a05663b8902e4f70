package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kollect/backend/internal/http/dto"
	"github.com/kollect/backend/internal/middleware"
	"github.com/kollect/backend/internal/services"
)

// writeError maps service errors to HTTP answers. Anything unknown is logged and
// hidden behind a 500.
func writeError(c *fiber.Ctx, log *zap.Logger, err error) error {
	status := fiber.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, services.ErrNotFound):
		status, msg = fiber.StatusNotFound, "not found"
	case errors.Is(err, services.ErrForbidden):
		status, msg = fiber.StatusForbidden, "forbidden"
	case errors.Is(err, services.ErrInvalidInput):
		// "invalid input: title is required" -> "title is required"
		status, msg = fiber.StatusBadRequest, strings.TrimPrefix(err.Error(), services.ErrInvalidInput.Error()+": ")
	case errors.Is(err, services.ErrEmailTaken):
		status, msg = fiber.StatusConflict, err.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error:     err.Error(),
			LoginURL:  middleware.LoginURL,
			RequestID: middleware.GetRequestID(c),
		})
	default:
		log.Error("request failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	return c.Status(status).JSON(dto.ErrorResponse{Error: msg, RequestID: middleware.GetRequestID(c)})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg, RequestID: middleware.GetRequestID(c)})
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	return id, err == nil
}
