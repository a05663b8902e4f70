package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/kollect/backend/internal/http/dto"
	"github.com/kollect/backend/internal/middleware"
	"github.com/kollect/backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
	log         *zap.Logger
}

func NewAuthHandler(authService *services.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// Register is signup step one.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, signupToken, err := h.authService.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return writeError(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{
		SignupToken: signupToken,
		User:        user,
	})
}

// CompleteSignup is signup step two; the route only accepts signup tokens.
func (h *AuthHandler) CompleteSignup(c *fiber.Ctx) error {
	var req dto.CompleteSignupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, err := h.authService.CompleteSignup(c.UserContext(), middleware.GetUserID(c), services.SignupDetails{
		Profile: profileFromRequest(req.ProfileRequest),
		IsBrand: req.IsBrand,
		IsKOL:   req.IsKOL,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: user})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, token, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return writeError(c, h.log, err)
	}

	return c.JSON(dto.AuthResponse{
		Token: token,
		User:  user,
	})
}
