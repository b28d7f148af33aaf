//go:build unit

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"facility-booking/internal/pkg/errs"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid credentials", errs.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", errs.ErrForbidden, http.StatusForbidden},
		{"not a participant", errs.ErrNotBookingParticipant, http.StatusForbidden},
		{"unknown facility", errs.ErrUnknownFacility, http.StatusNotFound},
		{"booking not found", errs.ErrBookingNotFound, http.StatusNotFound},
		{"slot conflict", errs.ErrSlotConflict, http.StatusConflict},
		{"check-in expired", errs.ErrCheckInExpired, http.StatusConflict},
		{"claim window closed", errs.ErrClaimWindowClosed, http.StatusConflict},
		{"invalid time range", errs.ErrInvalidTimeRange, http.StatusBadRequest},
		{"outside hours", errs.ErrOutsideOperatingHours, http.StatusUnprocessableEntity},
		{"insufficient credits", errs.ErrInsufficientCredits, http.StatusUnprocessableEntity},
		{"wrapped sentinel", errors.Wrap(errs.ErrSlotConflict, "create booking"), http.StatusConflict},
		{"unmapped error", errors.New("pool exhausted"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			respondError(c, tc.err)
			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error":`)
		})
	}
}
