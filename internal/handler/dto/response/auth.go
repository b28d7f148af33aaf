package response

import (
	"github.com/google/uuid"
)

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	AccountID   uuid.UUID `json:"account_id"`
	Role        string    `json:"role"`
}
