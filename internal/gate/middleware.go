package gate

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/response"
)

// Authorize gates a route on a designation capability. The designation is
// placed on the gin context by the auth middleware.
func Authorize(service Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		designation := c.GetString("designation")
		if designation == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(designation, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "authorization check failed", nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
				"You do not have permission to access this resource",
				resource+":"+action)
			c.Abort()
			return
		}
		c.Next()
	}
}

// AuthorizeAdminPanel gates a route on admin panel access, which combines
// the department rule with the management capability.
func AuthorizeAdminPanel(service Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		designation := c.GetString("designation")
		department := c.GetString("department")
		if designation == "" && department == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "missing auth context", nil)
			c.Abort()
			return
		}

		if !service.CanAccessAdminPanel(designation, department) {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
				"You do not have permission to access this resource",
				ResourceAdminPanel+":"+ActionAccess)
			c.Abort()
			return
		}
		c.Next()
	}
}
