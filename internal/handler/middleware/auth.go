package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"facility-booking/internal/domain/account"
	"facility-booking/internal/handler/httperr"
	"facility-booking/internal/pkg/cookie"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator shared.TokenValidator
}

const (
	ctxAccountIDKey   = "account_id"
	ctxAccountRoleKey = "account_role"
)

func NewAuthMiddleware(tokenValidator shared.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			httperr.Abort(c, http.StatusUnauthorized, errs.New("missing access token"), "Access token required")
			return
		}

		accountID, role, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.Abort(c, http.StatusUnauthorized, err, "Invalid or expired token")
			return
		}

		c.Set(ctxAccountIDKey, accountID)
		c.Set(ctxAccountRoleKey, role)
		c.Set("jwt_claims", map[string]any{
			"account_id": accountID.String(),
			"role":       role.String(),
		})
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetAccountRole(c)
		if !ok {
			httperr.Abort(c, http.StatusInternalServerError, errs.New("role missing from context"), "Internal server error")
			return
		}

		if role != account.RoleAdmin {
			httperr.Abort(c, http.StatusForbidden, errs.New("admin role required"), "Insufficient permissions")
			return
		}

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func GetAccountID(c *gin.Context) (uuid.UUID, bool) {
	accountID, exists := c.Get(ctxAccountIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := accountID.(uuid.UUID)
	return id, ok
}

func GetAccountRole(c *gin.Context) (account.Role, bool) {
	accountRole, exists := c.Get(ctxAccountRoleKey)
	if !exists {
		return "", false
	}

	role, ok := accountRole.(account.Role)
	return role, ok
}
