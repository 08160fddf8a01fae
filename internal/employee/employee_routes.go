package employee

import (
	"github.com/gin-gonic/gin"

	"go-workforce/internal/gate"
)

// RegisterRoutes mounts the employee endpoints. The group is expected to
// carry the auth middleware already; capability checks are layered per
// route on top of the service-level policy.
func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, gateSvc gate.Service) {
	employees := rg.Group("/employees")
	{
		employees.GET("", handler.List)
		employees.GET("/options", handler.Options)
		employees.GET("/number/:number", handler.GetByNumber)
		employees.GET("/:id", handler.Get)

		employees.POST("", handler.Register)
		employees.PATCH("/:id", handler.AdminEdit)

		softDelete := gate.Authorize(gateSvc, gate.ResourceEmployee, gate.ActionSoftDelete)
		employees.DELETE("/:id", softDelete, handler.SoftDelete)
		employees.POST("/:id/restore", softDelete, handler.Restore)
	}
}
