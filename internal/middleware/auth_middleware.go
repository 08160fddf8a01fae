package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-workforce/internal/auth"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/contextutil"
	"go-workforce/internal/shared/response"
)

// Authentication validates the bearer token and places the caller's
// identity on the gin context and the request context.
func Authentication(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "missing bearer token", nil)
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(jwtSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}

		c.Set("employee_id", claims.EmployeeID)
		c.Set("designation", claims.Designation)
		c.Set("department", claims.Department)

		ctx := contextutil.WithEmployeeID(c.Request.Context(), claims.EmployeeID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
