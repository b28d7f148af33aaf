package api

import (
	"net/http"

	reqdto "facility-booking/internal/handler/dto/request"
	resdto "facility-booking/internal/handler/dto/response"
	"facility-booking/internal/handler/middleware"
	"facility-booking/internal/pkg/config"
	"facility-booking/internal/pkg/cookie"
	"facility-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth commands.AuthCommands
	cfg  config.Config
}

func NewAuthHandler(auth commands.AuthCommands, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		auth: auth,
		cfg:  cfg,
	}
}

// @Summary Login
// @Description Login with email and password, returns a bearer token and sets it as a cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	cookie.SetAccessToken(c, h.cfg.Cookie, result.Token, h.cfg.JWT.Duration)
	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: result.Token,
		AccountID:   result.AccountID,
		Role:        result.Role.String(),
	})
}

// @Summary Logout
// @Description Clear the access token cookie
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearAccessToken(c, h.cfg.Cookie)
	c.Status(http.StatusNoContent)
}

// @Summary Current principal
// @Description Return the authenticated account id and role
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	role, _ := middleware.GetAccountRole(c)
	c.JSON(http.StatusOK, gin.H{
		"account_id": accountID.String(),
		"role":       role.String(),
	})
}
