package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/hiremeo/job-board-api/internal/constants"
	apierrors "github.com/hiremeo/job-board-api/internal/errors"
	"github.com/hiremeo/job-board-api/internal/services"
)

// RequireAuth extracts the token from the auth header, verifies it and
// attaches the principal to the request context. Exactly one principal kind
// ends up in the context, never both.
func RequireAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(constants.AuthTokenHeader)
		if token == "" {
			apierrors.MissingToken(c)
			c.Abort()
			return
		}

		principal, err := tokens.Verify(token)
		if err != nil {
			apierrors.InvalidToken(c)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyPrincipal, principal)
		c.Next()
	}
}

// RequireUser rejects requests whose principal is not a user account.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, exists := GetPrincipal(c)
		if !exists || !principal.IsUser() {
			apierrors.Forbidden(c, "Only users may perform this action")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireCompany rejects requests whose principal is not a company account.
func RequireCompany() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, exists := GetPrincipal(c)
		if !exists || !principal.IsCompany() {
			apierrors.Forbidden(c, "Only companies may perform this action")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetPrincipal retrieves the authenticated principal from context
func GetPrincipal(c *gin.Context) (services.Principal, bool) {
	value, exists := c.Get(constants.ContextKeyPrincipal)
	if !exists {
		return services.Principal{}, false
	}

	principal, ok := value.(services.Principal)
	if !ok {
		return services.Principal{}, false
	}
	return principal, true
}

// GetUserID returns the principal's ID when it is a user account
func GetUserID(c *gin.Context) (uint64, bool) {
	principal, exists := GetPrincipal(c)
	if !exists || !principal.IsUser() {
		return 0, false
	}
	return principal.ID, true
}

// GetCompanyID returns the principal's ID when it is a company account
func GetCompanyID(c *gin.Context) (uint64, bool) {
	principal, exists := GetPrincipal(c)
	if !exists || !principal.IsCompany() {
		return 0, false
	}
	return principal.ID, true
}
