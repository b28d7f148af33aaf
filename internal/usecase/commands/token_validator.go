package commands

import (
	"facility-booking/internal/domain/account"
	"facility-booking/internal/pkg/jwt"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type jwtTokenValidator struct {
	jwt *jwt.Service
}

func NewTokenValidator(svc *jwt.Service) shared.TokenValidator {
	return &jwtTokenValidator{jwt: svc}
}

func (v *jwtTokenValidator) ValidateToken(token string) (uuid.UUID, account.Role, error) {
	claims, err := v.jwt.ValidateToken(token)
	if err != nil {
		return uuid.Nil, "", err
	}
	role := account.Role(claims.Role)
	if !role.IsValid() {
		return uuid.Nil, "", jwt.ErrInvalidToken
	}
	return claims.AccountID, role, nil
}
