package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/kollect/backend/internal/http/dto"
	"github.com/kollect/backend/internal/middleware"
	"github.com/kollect/backend/internal/models"
	"github.com/kollect/backend/internal/services"
)

type BookmarkHandler struct {
	bookmarkService *services.BookmarkService
	log             *zap.Logger
}

func NewBookmarkHandler(bookmarkService *services.BookmarkService, log *zap.Logger) *BookmarkHandler {
	return &BookmarkHandler{bookmarkService: bookmarkService, log: log}
}

// Bookmark answers 201 when the bookmark is new and 200 when it was already there.
func (h *BookmarkHandler) Bookmark(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "invalid campaign id")
	}

	out, err := h.bookmarkService.Add(c.UserContext(), middleware.GetUser(c), id)
	if err != nil {
		return writeError(c, h.log, err)
	}

	status := fiber.StatusOK
	if out.Status == models.BookmarkCreated {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(dto.SuccessResponse{OK: true, Data: out})
}

// Unbookmark answers 200 for both removed and not_found.
func (h *BookmarkHandler) Unbookmark(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "invalid campaign id")
	}

	out, err := h.bookmarkService.Remove(c.UserContext(), middleware.GetUser(c), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: out})
}

func (h *BookmarkHandler) Status(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "invalid campaign id")
	}

	st, err := h.bookmarkService.Status(c.UserContext(), middleware.GetUser(c), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: st})
}

func (h *BookmarkHandler) List(c *fiber.Ctx) error {
	entries, err := h.bookmarkService.List(c.UserContext(), middleware.GetUser(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if entries == nil {
		entries = []models.BookmarkEntry{}
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: entries})
}
