package middleware

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
	"github.com/noah-isme/coaching-center-api/pkg/response"
)

// Authorize gates a route on an authenticated admin. Admin accounts carry no
// role, so every authenticated admin passes; it must run after Protect.
func Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "not authorized to access this route"))
			c.Abort()
			return
		}
		c.Next()
	}
}
