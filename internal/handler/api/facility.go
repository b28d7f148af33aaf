package api

import (
	"net/http"
	"time"

	resdto "facility-booking/internal/handler/dto/response"
	"facility-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type FacilityHandler struct {
	queries queries.FacilityQueries
}

func NewFacilityHandler(qrys queries.FacilityQueries) *FacilityHandler {
	return &FacilityHandler{queries: qrys}
}

// @Summary List facilities
// @Tags facilities
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.FacilityResponse
// @Router /facilities [get]
func (h *FacilityHandler) List(c *gin.Context) {
	views, err := h.queries.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromFacilityViews(views))
}

// @Summary Get facility
// @Tags facilities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Facility ID"
// @Success 200 {object} resdto.FacilityResponse
// @Failure 404 {object} map[string]string
// @Router /facilities/{id} [get]
func (h *FacilityHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	view, err := h.queries.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromFacilityView(view))
}

// @Summary Facility availability
// @Description Free slots of a facility on a given day
// @Tags facilities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Facility ID"
// @Param day query string true "Day in YYYY-MM-DD"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /facilities/{id}/availability [get]
func (h *FacilityHandler) Availability(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	day, err := time.Parse("2006-01-02", c.Query("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day format, expected YYYY-MM-DD"})
		return
	}

	view, err := h.queries.AvailabilityOn(c.Request.Context(), id, day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}
