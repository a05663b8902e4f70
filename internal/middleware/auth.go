package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kollect/backend/internal/auth"
	"github.com/kollect/backend/internal/config"
	"github.com/kollect/backend/internal/http/dto"
	"github.com/kollect/backend/internal/models"
	"github.com/kollect/backend/internal/services"
)

const (
	CtxUserID = "user_id"
	CtxUser   = "user"
)

// LoginURL is where unauthenticated clients are sent.
const LoginURL = "/api/v1/auth/login"

// AuthMiddleware accepts access tokens only.
func AuthMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return scopedAuth(cfg, log, auth.ScopeAccess)
}

// SignupTokenMiddleware guards the second registration step.
func SignupTokenMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return scopedAuth(cfg, log, auth.ScopeSignup)
}

func scopedAuth(cfg *config.Config, log *zap.Logger, scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return Unauthorized(c, "missing authorization header")
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return Unauthorized(c, "invalid authorization format")
		}

		claims, err := auth.ParseScopedJWT(cfg.JWTSecret, tokenStr, scope)
		if err != nil {
			log.Debug("jwt rejected", zap.String("scope", scope), zap.Error(err))
			if errors.Is(err, auth.ErrWrongScope) {
				return Unauthorized(c, "token not valid for this endpoint")
			}
			return Unauthorized(c, "invalid or expired token")
		}

		c.Locals(CtxUserID, claims.UserID)
		return c.Next()
	}
}

// UserLookup resolves a token subject to a stored user.
type UserLookup interface {
	CurrentUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// LoadUser puts the current user into the request. Must run after AuthMiddleware.
func LoadUser(users UserLookup, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := users.CurrentUser(c.UserContext(), GetUserID(c))
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return Unauthorized(c, "account no longer exists")
			}
			log.Error("load user failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
		}
		c.Locals(CtxUser, u)
		return c.Next()
	}
}

// Unauthorized answers 401 with a pointer to the login endpoint.
func Unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:     msg,
		LoginURL:  LoginURL,
		RequestID: GetRequestID(c),
	})
}

func GetUserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(CtxUserID).(uuid.UUID)
	return id
}

func GetUser(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(CtxUser).(*models.User)
	return u
}
