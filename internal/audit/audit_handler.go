package audit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/response"
)

type SnapshotResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	ChangedByID *string         `json:"changed_by_id,omitempty"`
	Action      string          `json:"action"`
	BeforeData  json.RawMessage `json:"before_data"`
	AfterData   json.RawMessage `json:"after_data"`
	CreatedAt   string          `json:"created_at"`
}

type ActionLogResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Action     string `json:"action"`
	CreatedAt  string `json:"created_at"`
}

type Handler struct {
	recorder Recorder
}

func NewHandler(recorder Recorder) *Handler {
	return &Handler{recorder: recorder}
}

func (h *Handler) Snapshots(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid employee id", nil)
		return
	}

	snapshots, err := h.recorder.Snapshots(c.Request.Context(), employeeID.String())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	out := make([]SnapshotResponse, 0, len(snapshots))
	for _, s := range snapshots {
		resp := SnapshotResponse{
			ID:         s.ID.String(),
			EmployeeID: s.EmployeeID.String(),
			Action:     s.Action,
			BeforeData: s.BeforeData,
			AfterData:  s.AfterData,
			CreatedAt:  s.CreatedAt.UTC().Format(time.RFC3339),
		}
		if s.ChangedByID != nil {
			id := s.ChangedByID.String()
			resp.ChangedByID = &id
		}
		out = append(out, resp)
	}
	response.Success(c, http.StatusOK, out, nil)
}

func (h *Handler) ActionLog(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 1000 {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid limit", nil)
			return
		}
		limit = parsed
	}

	entries, err := h.recorder.LogEntries(c.Request.Context(), limit)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	out := make([]ActionLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ActionLogResponse{
			ID:         e.ID.String(),
			EmployeeID: e.EmployeeID.String(),
			Action:     e.Action,
			CreatedAt:  e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	response.Success(c, http.StatusOK, out, nil)
}

// RegisterRoutes mounts the audit endpoints. Callers gate the group on
// admin panel access.
func RegisterRoutes(rg *gin.RouterGroup, handler *Handler) {
	auditGroup := rg.Group("/audit")
	{
		auditGroup.GET("/employees/:id/snapshots", handler.Snapshots)
		auditGroup.GET("/actions", handler.ActionLog)
	}
}
