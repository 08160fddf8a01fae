package leave

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the leave workflow endpoints behind the group's
// auth middleware. Approver identity is enforced in the service, not here.
func RegisterRoutes(rg *gin.RouterGroup, handler *Handler) {
	leaves := rg.Group("/leaves")
	{
		leaves.POST("", handler.Apply)
		leaves.GET("", handler.ListMine)
		leaves.GET("/pending", handler.Pending)
		leaves.GET("/:id/history", handler.History)
		leaves.POST("/:id/action", handler.Act)
	}
}
