package auth

import (
	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes mounts the unauthenticated endpoints.
func RegisterPublicRoutes(rg *gin.RouterGroup, handler *Handler) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/login", handler.Login)
		authGroup.POST("/refresh", handler.Refresh)
	}
}

// RegisterProtectedRoutes mounts the endpoints that need an authenticated
// caller; the group carries the auth middleware.
func RegisterProtectedRoutes(rg *gin.RouterGroup, handler *Handler) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/logins", handler.CreateLogin)
		authGroup.POST("/password", handler.ChangePassword)
		authGroup.POST("/password/reset", handler.AdminResetPassword)
	}
}
