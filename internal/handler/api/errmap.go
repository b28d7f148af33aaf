package api

import (
	"net/http"

	"facility-booking/internal/handler/httperr"
	"facility-booking/internal/infra"
	"facility-booking/internal/pkg/errs"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

type errStatus struct {
	sentinel error
	status   int
	message  string
}

// Order matters for sentinels that wrap one another; more specific first.
var errTable = []errStatus{
	{errs.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{errs.ErrForbidden, http.StatusForbidden, "Operation not permitted"},
	{errs.ErrUnknownFacility, http.StatusNotFound, "Facility not found"},
	{errs.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{errs.ErrInviteNotFound, http.StatusNotFound, "Invite not found"},
	{errs.ErrAccountNotFound, http.StatusNotFound, "Account not found"},
	{errs.ErrMaintenanceBlockNotFound, http.StatusNotFound, "Maintenance block not found"},
	{errs.ErrSlotConflict, http.StatusConflict, "Requested slot conflicts with an existing booking"},
	{errs.ErrDuplicateInvite, http.StatusConflict, "Account is already invited or booked"},
	{errs.ErrInviteResolved, http.StatusConflict, "Invite has already been answered"},
	{errs.ErrInvalidStateTransition, http.StatusConflict, "Booking state does not allow this operation"},
	{errs.ErrCheckInTooEarly, http.StatusConflict, "Check-in window has not opened yet"},
	{errs.ErrCheckInExpired, http.StatusConflict, "Check-in deadline has passed"},
	{errs.ErrClaimWindowClosed, http.StatusConflict, "Slot can no longer be claimed"},
	{errs.ErrInvalidTimeRange, http.StatusBadRequest, "Invalid time range"},
	{errs.ErrOutsideOperatingHours, http.StatusUnprocessableEntity, "Requested range is outside operating hours"},
	{errs.ErrCapacityExceeded, http.StatusUnprocessableEntity, "Facility capacity exceeded"},
	{errs.ErrInsufficientCredits, http.StatusUnprocessableEntity, "Insufficient credit balance"},
	{errs.ErrNotBookingParticipant, http.StatusForbidden, "Not a participant of this booking"},
}

// respondError maps usecase errors onto HTTP statuses. Anything unmapped is
// a 500 with a generic body, the details stay in the logs.
func respondError(c *gin.Context, err error) {
	for _, e := range errTable {
		if errors.Is(err, e.sentinel) {
			httperr.Abort(c, e.status, err, e.message)
			return
		}
	}
	if infra.IsKind(err, infra.KindNotFound) {
		httperr.Abort(c, http.StatusNotFound, err, "Not found")
		return
	}
	httperr.Abort(c, http.StatusInternalServerError, err, "Internal server error")
}
