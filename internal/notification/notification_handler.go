package notification

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/response"
)

type NotificationResponse struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) List(c *gin.Context) {
	employeeID, err := uuid.Parse(c.GetString("employee_id"))
	if err != nil {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "missing auth context", nil)
		return
	}

	unreadOnly := c.Query("unread") == "true"
	notifications, err := h.repo.ListByEmployee(c.Request.Context(), employeeID, unreadOnly)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	out := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, NotificationResponse{
			ID:        n.ID.String(),
			Kind:      n.Kind,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	response.Success(c, http.StatusOK, out, nil)
}

func (h *Handler) MarkRead(c *gin.Context) {
	employeeID, err := uuid.Parse(c.GetString("employee_id"))
	if err != nil {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "missing auth context", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid notification id", nil)
		return
	}

	if err := h.repo.MarkRead(c.Request.Context(), id, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, apperror.CodeNotFound, "notification not found", nil)
			return
		}
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"read": true}, nil)
}

// RegisterRoutes mounts the notification endpoints behind the group's
// auth middleware.
func RegisterRoutes(rg *gin.RouterGroup, handler *Handler) {
	notifications := rg.Group("/notifications")
	{
		notifications.GET("", handler.List)
		notifications.POST("/:id/read", handler.MarkRead)
	}
}
