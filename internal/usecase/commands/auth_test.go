//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"facility-booking/internal/domain/account"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/pkg/jwt"
	"facility-booking/internal/pkg/password"
	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLoginAccount(t *testing.T, e *env, email, plain string, active bool) uuid.UUID {
	t.Helper()
	hash, err := password.Hash(plain)
	require.NoError(t, err)
	id := uuid.New()
	e.store.AddAccount(&shared.AccountSnapshot{
		ID:           id,
		Email:        email,
		DisplayName:  "Login Tester",
		PasswordHash: hash,
		Role:         account.RoleMember,
		IsActive:     active,
	})
	return id
}

func TestAuthCommands_Login(t *testing.T) {
	ctx := context.Background()
	svc := jwt.NewService("test-secret-key-32-bytes-long!!!", time.Hour)

	t.Run("valid credentials yield a usable token", func(t *testing.T) {
		e := newEnv()
		id := seedLoginAccount(t, e, "alice@example.com", "correct horse", true)
		auth := commands.NewAuthCommands(e.uow, svc)

		result, err := auth.Login(ctx, "alice@example.com", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, id, result.AccountID)
		assert.Equal(t, account.RoleMember, result.Role)

		claims, err := svc.ValidateToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, id, claims.AccountID)
	})

	t.Run("unknown email", func(t *testing.T) {
		e := newEnv()
		auth := commands.NewAuthCommands(e.uow, svc)

		_, err := auth.Login(ctx, "nobody@example.com", "whatever pass")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		e := newEnv()
		seedLoginAccount(t, e, "alice@example.com", "correct horse", true)
		auth := commands.NewAuthCommands(e.uow, svc)

		_, err := auth.Login(ctx, "alice@example.com", "battery staple")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("deactivated account", func(t *testing.T) {
		e := newEnv()
		seedLoginAccount(t, e, "gone@example.com", "correct horse", false)
		auth := commands.NewAuthCommands(e.uow, svc)

		_, err := auth.Login(ctx, "gone@example.com", "correct horse")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})
}
