package services

import (
	"context"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"go.uber.org/zap/zaptest"

	"github.com/kollect/backend/internal/auth"
	"github.com/kollect/backend/internal/config"
	"github.com/kollect/backend/internal/models"
	"github.com/kollect/backend/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "test-secret",
		JWTExpiration:  time.Hour,
		SignupTokenTTL: 10 * time.Minute,
		BcryptCost:     4,
	}
}

func newAuthService(c *qt.C) (*AuthService, *UserService) {
	c.Helper()
	log := zaptest.NewLogger(c)
	store := testutil.NewStore(c)
	return NewAuthService(store.Users, testConfig(), log), NewUserService(store.Users, log)
}

func strPtr(s string) *string { return &s }

func TestSignupFlow(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	svc, users := newAuthService(c)
	cfg := testConfig()

	u, signupToken, err := svc.Register(ctx, "  Rina@Example.com ", "correct-horse")
	c.Assert(err, qt.IsNil)
	c.Assert(u.Email, qt.Equals, "rina@example.com")
	c.Assert(u.Username, qt.Equals, "rina")
	c.Assert(u.SignupCompleted, qt.IsFalse)
	c.Assert(u.PasswordHash, qt.Not(qt.Equals), "correct-horse")

	claims, err := auth.ParseScopedJWT(cfg.JWTSecret, signupToken, auth.ScopeSignup)
	c.Assert(err, qt.IsNil)
	c.Assert(claims.UserID, qt.Equals, u.ID)
	_, err = auth.ParseScopedJWT(cfg.JWTSecret, signupToken, auth.ScopeAccess)
	c.Assert(err, qt.ErrorIs, auth.ErrWrongScope)

	done, err := svc.CompleteSignup(ctx, u.ID, SignupDetails{
		Profile: models.Profile{FirstName: strPtr("Rina"), City: strPtr("Jakarta")},
		IsKOL:   true,
	})
	c.Assert(err, qt.IsNil)
	c.Assert(done.SignupCompleted, qt.IsTrue)
	c.Assert(done.IsKOL, qt.IsTrue)
	c.Assert(done.IsBrand, qt.IsFalse)

	_, err = svc.CompleteSignup(ctx, u.ID, SignupDetails{IsBrand: true})
	c.Assert(err, qt.ErrorIs, ErrInvalidInput)

	logged, accessToken, err := svc.Login(ctx, "rina@example.com", "correct-horse")
	c.Assert(err, qt.IsNil)
	c.Assert(logged.ID, qt.Equals, u.ID)
	claims, err = auth.ParseScopedJWT(cfg.JWTSecret, accessToken, auth.ScopeAccess)
	c.Assert(err, qt.IsNil)
	c.Assert(claims.UserID, qt.Equals, u.ID)

	me, err := users.CurrentUser(ctx, u.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(*me.FirstName, qt.Equals, "Rina")
	c.Assert(me.IsKOL, qt.IsTrue)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	svc, _ := newAuthService(c)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "long-enough"},
		{"malformed email", "not-an-email", "long-enough"},
		{"display name", "Rina <rina@example.com>", "long-enough"},
		{"short password", "rina@example.com", "short"},
		{"long password", "rina@example.com", strings.Repeat("a", 73)},
	}
	for _, tt := range tests {
		c.Run(tt.name, func(c *qt.C) {
			_, _, err := svc.Register(ctx, tt.email, tt.password)
			c.Assert(err, qt.ErrorIs, ErrInvalidInput)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	svc, _ := newAuthService(c)

	_, _, err := svc.Register(ctx, "dup@example.com", "password-1")
	c.Assert(err, qt.IsNil)
	_, _, err = svc.Register(ctx, "DUP@example.com", "password-2")
	c.Assert(err, qt.ErrorIs, ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	svc, _ := newAuthService(c)

	_, _, err := svc.Register(ctx, "kol@example.com", "right-password")
	c.Assert(err, qt.IsNil)

	_, _, err = svc.Login(ctx, "kol@example.com", "wrong-password")
	c.Assert(err, qt.ErrorIs, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "ghost@example.com", "right-password")
	c.Assert(err, qt.ErrorIs, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "kol@example.com", "")
	c.Assert(err, qt.ErrorIs, ErrInvalidCredentials)
}

func TestCompleteSignupValidatesProfile(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	svc, _ := newAuthService(c)

	u, _, err := svc.Register(ctx, "brand@example.com", "password-1")
	c.Assert(err, qt.IsNil)

	_, err = svc.CompleteSignup(ctx, u.ID, SignupDetails{
		Profile: models.Profile{PostalCode: strPtr("12345678901")},
		IsBrand: true,
	})
	c.Assert(err, qt.ErrorIs, ErrInvalidInput)

	// a rejected attempt does not consume the step
	_, err = svc.CompleteSignup(ctx, u.ID, SignupDetails{IsBrand: true})
	c.Assert(err, qt.IsNil)
}

func TestUpdateProfileAndDeleteAccount(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	svc, users := newAuthService(c)

	u, _, err := svc.Register(ctx, "kol@example.com", "password-1")
	c.Assert(err, qt.IsNil)
	u, err = svc.CompleteSignup(ctx, u.ID, SignupDetails{IsKOL: true, Profile: models.Profile{City: strPtr("Bandung")}})
	c.Assert(err, qt.IsNil)

	updated, err := users.UpdateProfile(ctx, u, models.Profile{Province: strPtr("Jawa Barat")})
	c.Assert(err, qt.IsNil)
	c.Assert(*updated.Province, qt.Equals, "Jawa Barat")
	c.Assert(*updated.City, qt.Equals, "Bandung")
	c.Assert(updated.IsKOL, qt.IsTrue)

	_, err = users.UpdateProfile(ctx, u, models.Profile{PhoneNumber: strPtr("+62 812 3456 7890 1234")})
	c.Assert(err, qt.ErrorIs, ErrInvalidInput)

	c.Assert(users.DeleteAccount(ctx, u), qt.IsNil)
	_, err = users.CurrentUser(ctx, u.ID)
	c.Assert(err, qt.ErrorIs, ErrNotFound)
	c.Assert(users.DeleteAccount(ctx, u), qt.ErrorIs, ErrNotFound)
}
