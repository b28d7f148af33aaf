package shared

import (
	"facility-booking/internal/domain/account"

	"github.com/google/uuid"
)

// TokenValidator decouples the HTTP middleware from the token mechanism.
type TokenValidator interface {
	ValidateToken(token string) (uuid.UUID, account.Role, error)
}
