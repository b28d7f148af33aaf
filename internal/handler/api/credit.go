package api

import (
	"net/http"

	resdto "facility-booking/internal/handler/dto/response"
	"facility-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreditHandler struct {
	queries queries.LedgerQueries
}

func NewCreditHandler(qrys queries.LedgerQueries) *CreditHandler {
	return &CreditHandler{queries: qrys}
}

// @Summary Credit balance
// @Description Current balance, derived from the ledger
// @Tags credits
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.BalanceResponse
// @Router /credits/balance [get]
func (h *CreditHandler) Balance(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	accountID := actor.ID
	if raw := c.Query("account_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account id format"})
			return
		}
		accountID = parsed
	}

	view, err := h.queries.Balance(c.Request.Context(), actor, accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.BalanceResponse{AccountID: view.AccountID, Balance: view.Balance})
}

// @Summary Credit history
// @Description Full ledger history, newest first
// @Tags credits
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.LedgerEntryResponse
// @Router /credits/history [get]
func (h *CreditHandler) History(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	accountID := actor.ID
	if raw := c.Query("account_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account id format"})
			return
		}
		accountID = parsed
	}

	views, err := h.queries.History(c.Request.Context(), actor, accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromLedgerEntryViews(views))
}
