package api

import (
	"net/http"

	"facility-booking/internal/domain/booking"
	reqdto "facility-booking/internal/handler/dto/request"
	resdto "facility-booking/internal/handler/dto/response"
	"facility-booking/internal/handler/middleware"
	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	commands commands.BookingCommands
	queries  queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, qrys queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		commands: cmds,
		queries:  qrys,
	}
}

func actorFrom(c *gin.Context) (commands.Actor, bool) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return commands.Actor{}, false
	}
	role, ok := middleware.GetAccountRole(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return commands.Actor{}, false
	}
	return commands.Actor{ID: accountID, Role: role}, true
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id format"})
		return uuid.Nil, false
	}
	return id, true
}

// @Summary Create booking
// @Description Reserve a facility slot, optionally inviting co-bookers
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	id, err := h.commands.Create(c.Request.Context(), actor, commands.CreateBookingInput{
		FacilityID:  req.FacilityID,
		Start:       req.StartsAt,
		End:         req.EndsAt,
		Kind:        booking.Kind(req.Kind),
		CoBookerIDs: req.CoBookerIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	view, err := h.queries.FindByID(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List own bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingResponse
// @Router /bookings [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	views, err := h.queries.ListMine(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// @Summary Check in
// @Description Confirm physical arrival within the check-in window
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/checkin [post]
func (h *BookingHandler) CheckIn(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.commands.CheckIn(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Cancel booking
// @Description Cancel a booking; before start time a partial refund is issued
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 409 {object} map[string]string
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Cancel(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.commands.Cancel(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List claimable slots
// @Description Released bookings whose remaining time can still be claimed
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingResponse
// @Router /bookings/claimable [get]
func (h *BookingHandler) ListClaimable(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	views, err := h.queries.ListClaimable(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// @Summary Claim released slot
// @Description Book the remaining window of a released slot as an ad-hoc booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Released booking ID"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/claim [post]
func (h *BookingHandler) Claim(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	claimedID, err := h.commands.ClaimReleased(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: claimedID})
}
