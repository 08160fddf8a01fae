package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-workforce/internal/audit"
	"go-workforce/internal/auth"
	"go-workforce/internal/employee"
	"go-workforce/internal/gate"
	"go-workforce/internal/leave"
	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/middleware"
	"go-workforce/internal/notification"
	"go-workforce/internal/shared/counter"
	"go-workforce/internal/shared/response"
	"go-workforce/internal/task"
)

// registerModules builds every repository, service and handler and mounts
// the route tree.
func registerModules(a *App) error {
	gateSvc, err := gate.NewService(a.Logger)
	if err != nil {
		return err
	}

	counterRepo := counter.NewRepository(a.GormDB)
	outboxRepo := kafka.NewOutboxRepository(a.DB)

	auditRepo := audit.NewRepository(a.GormDB, a.DB)
	auditRecorder := audit.NewRecorder(auditRepo, a.Logger)
	auditHandler := audit.NewHandler(auditRecorder)

	employeeRepo := employee.NewRepository(a.GormDB, a.DB)
	employeeSvc := employee.NewService(
		a.DB, employeeRepo, counterRepo, gateSvc,
		auditRecorder, outboxRepo, a.Redis, a.Logger,
	)
	employeeHandler := employee.NewHandler(employeeSvc, a.Logger)

	authRepo := auth.NewRepository(a.GormDB, a.DB)
	authSvc := auth.NewService(a.DB, authRepo, employeeRepo, gateSvc, auth.TokenConfig{
		Secret:     a.Config.JWTSecret,
		AccessTTL:  a.Config.AccessTokenTTL,
		RefreshTTL: a.Config.RefreshTokenTTL,
	}, a.Logger)
	authHandler := auth.NewHandler(authSvc, a.Logger)

	leaveRepo := leave.NewRepository(a.GormDB, a.DB)
	leaveSvc := leave.NewService(a.DB, leaveRepo, employeeRepo, auditRecorder, outboxRepo, a.Logger)
	leaveHandler := leave.NewHandler(leaveSvc, a.Logger)

	taskRepo := task.NewRepository(a.GormDB, a.DB)
	taskSvc := task.NewService(a.DB, taskRepo, employeeRepo, gateSvc, a.Logger)
	taskHandler := task.NewHandler(taskSvc, a.Logger)

	notificationRepo := notification.NewRepository(a.GormDB)
	notificationHandler := notification.NewHandler(notificationRepo)

	a.Engine.GET("/healthz", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	})

	v1 := a.Engine.Group("/api/v1")

	auth.RegisterPublicRoutes(v1, authHandler)

	protected := v1.Group("")
	protected.Use(middleware.Authentication(a.Config.JWTSecret))
	protected.Use(middleware.Idempotency(a.Redis, 0))

	auth.RegisterProtectedRoutes(protected, authHandler)
	employee.RegisterRoutes(protected, employeeHandler, gateSvc)
	leave.RegisterRoutes(protected, leaveHandler)
	task.RegisterRoutes(protected, taskHandler, gateSvc)
	notification.RegisterRoutes(protected, notificationHandler)

	adminPanel := protected.Group("")
	adminPanel.Use(gate.AuthorizeAdminPanel(gateSvc))
	audit.RegisterRoutes(adminPanel, auditHandler)

	return nil
}
