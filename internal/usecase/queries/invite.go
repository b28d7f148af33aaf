package queries

import (
	"context"

	"facility-booking/internal/usecase/commands"
)

type InviteQueries interface {
	// ListMine returns the invites addressed to the actor, newest first.
	ListMine(ctx context.Context, actor commands.Actor) ([]InviteView, error)
}

type inviteQueriesImpl struct {
	readStore InviteReadStore
}

func NewInviteQueries(readStore InviteReadStore) InviteQueries {
	return &inviteQueriesImpl{readStore: readStore}
}

func (q *inviteQueriesImpl) ListMine(ctx context.Context, actor commands.Actor) ([]InviteView, error) {
	return q.readStore.ListForInvitee(ctx, actor.ID)
}
