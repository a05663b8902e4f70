package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kollect/backend/internal/auth"
	"github.com/kollect/backend/internal/config"
	"github.com/kollect/backend/internal/models"
	"github.com/kollect/backend/internal/repositories"
)

const (
	minPasswordLength = 8
	// bcrypt refuses anything longer
	maxPasswordBytes = 72
)

// SignupDetails is what the second registration step collects.
type SignupDetails struct {
	Profile models.Profile
	IsBrand bool
	IsKOL   bool
}

type AuthService struct {
	users repositories.UserStore
	cfg   *config.Config
	log   *zap.Logger
}

func NewAuthService(users repositories.UserStore, cfg *config.Config, log *zap.Logger) *AuthService {
	return &AuthService{users: users, cfg: cfg, log: log}
}

// Register creates the account (first signup step) and returns a signup token
// that only the second step accepts.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, "", err
	}
	if len(strings.TrimSpace(password)) < minPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return nil, "", fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, maxPasswordBytes)
	}

	hash, err := auth.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	local, _, _ := strings.Cut(email, "@")
	u := &models.User{
		Email:        email,
		PasswordHash: hash,
		Username:     local,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := auth.GenerateJWT(s.cfg.JWTSecret, u.ID, u.Email, auth.ScopeSignup, s.cfg.SignupTokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("generate signup token: %w", err)
	}

	s.log.Info("user registered", zap.String("user_id", u.ID.String()))
	return u, token, nil
}

// CompleteSignup stores profile and roles. It runs once per account.
func (s *AuthService) CompleteSignup(ctx context.Context, userID uuid.UUID, d SignupDetails) (*models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if u.SignupCompleted {
		return nil, fmt.Errorf("%w: signup already completed", ErrInvalidInput)
	}
	if err := validateProfile(d.Profile); err != nil {
		return nil, err
	}

	d.Profile.Apply(u)
	u.IsBrand = d.IsBrand
	u.IsKOL = d.IsKOL
	u.SignupCompleted = true

	if err := s.users.Update(ctx, u); err != nil {
		return nil, mapNotFound(err)
	}
	return u, nil
}

// Login checks credentials and returns an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email, err := normalizeEmail(email)
	if err != nil || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(s.cfg.JWTSecret, u.ID, u.Email, auth.ScopeAccess, s.cfg.JWTExpiration)
	if err != nil {
		return nil, "", fmt.Errorf("generate access token: %w", err)
	}
	return u, token, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	return email, nil
}

func validateProfile(p models.Profile) error {
	limits := []struct {
		name  string
		value *string
		max   int
	}{
		{"phone_number", p.PhoneNumber, 20},
		{"province", p.Province, 100},
		{"city", p.City, 100},
		{"postal_code", p.PostalCode, 10},
	}
	for _, l := range limits {
		if l.value != nil && len(*l.value) > l.max {
			return fmt.Errorf("%w: %s is longer than %d characters", ErrInvalidInput, l.name, l.max)
		}
	}
	return nil
}
