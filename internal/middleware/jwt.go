package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/coaching-center-api/internal/models"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
	"github.com/noah-isme/coaching-center-api/pkg/response"
)

const (
	// ContextUserKey is the gin context key storing JWT claims.
	ContextUserKey = "currentUser"
	// ContextAdminKey stores the admin record loaded for the token.
	ContextAdminKey = "currentAdmin"
)

var errNotAuthorized = appErrors.Clone(appErrors.ErrUnauthorized, "not authorized to access this route")

// Authenticator resolves a bearer token to an admin.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Admin, *models.JWTClaims, error)
}

// Protect requires a valid bearer token for an existing admin.
func Protect(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error(c, errNotAuthorized)
			c.Abort()
			return
		}

		admin, claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Set(ContextAdminKey, admin)
		c.Next()
	}
}

// OptionalAuth attaches the admin when a valid token is present but never
// blocks the request.
func OptionalAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if admin, claims, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(ContextUserKey, claims)
				c.Set(ContextAdminKey, admin)
			}
		}
		c.Next()
	}
}

// CurrentAdmin returns the authenticated admin, if any.
func CurrentAdmin(c *gin.Context) (*models.Admin, bool) {
	v, exists := c.Get(ContextAdminKey)
	if !exists {
		return nil, false
	}
	admin, ok := v.(*models.Admin)
	return admin, ok && admin != nil
}

// IsAdmin reports whether the request carries a valid admin token.
func IsAdmin(c *gin.Context) bool {
	_, ok := CurrentAdmin(c)
	return ok
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
