package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/kollect/backend/internal/models"
	"github.com/kollect/backend/internal/rbac"
	"github.com/kollect/backend/internal/repositories"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrForbidden is returned when the access gate rejects the actor.
	ErrForbidden = rbac.ErrForbidden
)

func mapNotFound(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// writeAudit records an audit entry. Failures are logged, never returned.
func writeAudit(ctx context.Context, store repositories.AuditStore, log *zap.Logger, entry models.AuditLog) {
	if store == nil {
		return
	}
	if err := store.Log(ctx, entry); err != nil {
		log.Warn("audit log failed", zap.String("action", entry.Action), zap.Error(err))
	}
}
