package request

import (
	"github.com/google/uuid"
)

type CreateInviteRequest struct {
	InviteeID uuid.UUID `json:"invitee_id" binding:"required"`
}

type RespondInviteRequest struct {
	Action string `json:"action" binding:"required,oneof=accept decline"`
}

func (r RespondInviteRequest) Accepts() bool {
	return r.Action == "accept"
}
