package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"comanda/internal/apperr"
	"comanda/internal/httpx"
	"comanda/internal/models"
	"comanda/internal/token"
)

// Context keys the Authenticate middleware fills in for handlers.
const (
	CtxAccountID = "account_id"
	CtxRole      = "role"
)

// Authenticate verifies the bearer token and exposes the embedded account
// identity to the route handler.
func Authenticate(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			httpx.AbortError(c, apperr.New(apperr.Auth, "missing bearer token"))
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			if err == token.ErrExpired {
				httpx.AbortError(c, apperr.New(apperr.Auth, "token expired"))
			} else {
				httpx.AbortError(c, apperr.New(apperr.Auth, "invalid token"))
			}
			return
		}

		c.Set(CtxAccountID, claims.Sub)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// RequireAdmin gates administrative routes. It must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRole) != string(models.RoleAdmin) {
			httpx.AbortError(c, apperr.New(apperr.Forbidden, "admin access required"))
			return
		}
		c.Next()
	}
}

// AccountID returns the authenticated account id for the current request.
func AccountID(c *gin.Context) string {
	return c.GetString(CtxAccountID)
}
