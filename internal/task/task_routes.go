package task

import (
	"github.com/gin-gonic/gin"

	"go-workforce/internal/gate"
)

// RegisterRoutes mounts the task endpoints. Workspace routes require the
// execution capability; assignment routes require the management one.
func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, gateSvc gate.Service) {
	tasks := rg.Group("/tasks")
	{
		workspace := gate.Authorize(gateSvc, gate.ResourceTask, gate.ActionWorkspace)
		tasks.GET("", workspace, handler.Workspace)
		tasks.POST("/:id/updates", workspace, handler.RecordUpdate)
		tasks.GET("/:id/history", workspace, handler.History)

		manage := gate.Authorize(gateSvc, gate.ResourceTask, gate.ActionManage)
		tasks.POST("", manage, handler.Create)
		tasks.GET("/created", manage, handler.CreatedBy)
		tasks.PATCH("/:id", manage, handler.UpdateDefinition)
	}
}
