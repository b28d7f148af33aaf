package api

import (
	"net/http"

	reqdto "facility-booking/internal/handler/dto/request"
	resdto "facility-booking/internal/handler/dto/response"
	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type InviteHandler struct {
	commands commands.InviteCommands
	queries  queries.InviteQueries
}

func NewInviteHandler(cmds commands.InviteCommands, qrys queries.InviteQueries) *InviteHandler {
	return &InviteHandler{
		commands: cmds,
		queries:  qrys,
	}
}

// @Summary Invite co-booker
// @Description Invite another account to share a booking and its cost
// @Tags invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.CreateInviteRequest true "Invite request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/invites [post]
func (h *InviteHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c)
	if !ok {
		return
	}

	var req reqdto.CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	inviteID, err := h.commands.Invite(c.Request.Context(), actor, bookingID, req.InviteeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: inviteID})
}

// @Summary Respond to invite
// @Description Accept or decline a co-booking invite; acceptance rebalances the cost split
// @Tags invites
// @Accept json
// @Security BearerAuth
// @Param id path string true "Invite ID"
// @Param request body reqdto.RespondInviteRequest true "Response"
// @Success 204 "No Content"
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /invites/{id}/respond [post]
func (h *InviteHandler) Respond(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	inviteID, ok := pathID(c)
	if !ok {
		return
	}

	var req reqdto.RespondInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.commands.Respond(c.Request.Context(), actor, inviteID, req.Accepts()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List own invites
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.InviteResponse
// @Router /invites [get]
func (h *InviteHandler) ListMine(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	views, err := h.queries.ListMine(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromInviteViews(views))
}
