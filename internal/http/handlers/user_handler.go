package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/kollect/backend/internal/http/dto"
	"github.com/kollect/backend/internal/middleware"
	"github.com/kollect/backend/internal/models"
	"github.com/kollect/backend/internal/services"
)

type UserHandler struct {
	userService *services.UserService
	log         *zap.Logger
}

func NewUserHandler(userService *services.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{userService: userService, log: log}
}

func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: middleware.GetUser(c)})
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	var req dto.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, err := h.userService.UpdateProfile(c.UserContext(), middleware.GetUser(c), profileFromRequest(req))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: user})
}

func (h *UserHandler) DeleteMe(c *fiber.Ctx) error {
	if err := h.userService.DeleteAccount(c.UserContext(), middleware.GetUser(c)); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

func profileFromRequest(req dto.ProfileRequest) models.Profile {
	return models.Profile{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Province:    req.Province,
		City:        req.City,
		PostalCode:  req.PostalCode,
		Address:     req.Address,
	}
}
