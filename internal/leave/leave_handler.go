package leave

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	leaveerrors "go-workforce/internal/leave/errors"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Apply(c *gin.Context) {
	actorID, ok := actingEmployeeID(c)
	if !ok {
		return
	}

	var req ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Apply(c.Request.Context(), actorID, req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Act(c *gin.Context) {
	actorID, ok := actingEmployeeID(c)
	if !ok {
		return
	}
	leaveID, ok := pathLeaveID(c)
	if !ok {
		return
	}

	var req LeaveActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.ProcessAction(c.Request.Context(), actorID, leaveID, req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListMine(c *gin.Context) {
	actorID, ok := actingEmployeeID(c)
	if !ok {
		return
	}

	requests, err := h.service.ListMine(c.Request.Context(), actorID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, requests, nil)
}

func (h *Handler) Pending(c *gin.Context) {
	actorID, ok := actingEmployeeID(c)
	if !ok {
		return
	}

	requests, err := h.service.PendingApprovals(c.Request.Context(), actorID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, requests, nil)
}

func (h *Handler) History(c *gin.Context) {
	leaveID, ok := pathLeaveID(c)
	if !ok {
		return
	}

	logs, err := h.service.ApprovalHistory(c.Request.Context(), leaveID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, logs, nil)
}

func actingEmployeeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("employee_id"))
	if err != nil {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "missing auth context", nil)
		return uuid.Nil, false
	}
	return id, true
}

func pathLeaveID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpErr := apperror.ToHTTP(leaveerrors.ErrInvalidLeaveID)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return uuid.Nil, false
	}
	return id, true
}
