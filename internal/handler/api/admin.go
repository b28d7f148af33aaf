package api

import (
	"net/http"
	"strconv"

	reqdto "facility-booking/internal/handler/dto/request"
	resdto "facility-booking/internal/handler/dto/response"
	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// AdminHandler groups the operator-only surface: credit adjustments,
// maintenance blocks, and the full booking list.
type AdminHandler struct {
	ledgerCommands      commands.LedgerCommands
	maintenanceCommands commands.MaintenanceCommands
	bookingQueries      queries.BookingQueries
}

func NewAdminHandler(ledgerCmds commands.LedgerCommands, maintCmds commands.MaintenanceCommands, bookingQrys queries.BookingQueries) *AdminHandler {
	return &AdminHandler{
		ledgerCommands:      ledgerCmds,
		maintenanceCommands: maintCmds,
		bookingQueries:      bookingQrys,
	}
}

// @Summary Adjust credits
// @Description Grant or withdraw credits on any account via a ledger entry
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Param request body reqdto.AdjustCreditsRequest true "Adjustment"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/credits [post]
func (h *AdminHandler) AdjustCredits(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req reqdto.AdjustCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	err := h.ledgerCommands.AdjustCredits(c.Request.Context(), actor, commands.AdjustCreditsInput{
		AccountID: req.AccountID,
		Amount:    req.Amount,
		Memo:      req.Memo,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Create maintenance block
// @Description Reserve a facility window for maintenance, rejecting conflicts with bookings
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateMaintenanceBlockRequest true "Block request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 409 {object} map[string]string
// @Router /admin/maintenance [post]
func (h *AdminHandler) CreateMaintenanceBlock(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req reqdto.CreateMaintenanceBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	id, err := h.maintenanceCommands.CreateBlock(c.Request.Context(), actor, commands.CreateMaintenanceBlockInput{
		FacilityID: req.FacilityID,
		Start:      req.StartsAt,
		End:        req.EndsAt,
		Reason:     req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Delete maintenance block
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Block ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Router /admin/maintenance/{id} [delete]
func (h *AdminHandler) DeleteMaintenanceBlock(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.maintenanceCommands.DeleteBlock(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List all bookings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} resdto.BookingResponse
// @Router /admin/bookings [get]
func (h *AdminHandler) ListBookings(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	views, err := h.bookingQueries.ListAll(c.Request.Context(), actor, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}
