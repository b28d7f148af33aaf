package commands

import (
	"context"

	"facility-booking/internal/domain/account"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/pkg/jwt"
	"facility-booking/internal/pkg/password"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type LoginResult struct {
	AccountID uuid.UUID
	Role      account.Role
	Token     string
}

type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (LoginResult, error)
}

type authCommandsImpl struct {
	uow shared.UnitOfWork
	jwt *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, jwtSvc *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		uow: uow,
		jwt: jwtSvc,
	}
}

func (c *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (LoginResult, error) {
	snap, err := c.uow.Reads().AccountByEmail(ctx, email)
	if err != nil {
		// Do not reveal whether the email exists.
		return LoginResult{}, errs.Mark(err, errs.ErrInvalidCredentials)
	}
	if !snap.IsActive {
		return LoginResult{}, errs.ErrInvalidCredentials
	}
	if err := password.Compare(snap.PasswordHash, plainPassword); err != nil {
		return LoginResult{}, errs.Mark(err, errs.ErrInvalidCredentials)
	}

	token, err := c.jwt.GenerateToken(snap.ID, snap.Role)
	if err != nil {
		return LoginResult{}, errs.Wrap(err, "generate token")
	}
	return LoginResult{
		AccountID: snap.ID,
		Role:      snap.Role,
		Token:     token,
	}, nil
}
