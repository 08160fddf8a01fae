package task

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/response"
	taskerrors "go-workforce/internal/task/errors"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("task.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("task.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Create(c *gin.Context) {
	actorID, ok := actingEmployeeID(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actorID, req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) RecordUpdate(c *gin.Context) {
	actorID, ok := actingEmployeeID(c)
	if !ok {
		return
	}
	taskID, ok := pathTaskID(c)
	if !ok {
		return
	}

	var req TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.RecordUpdate(c.Request.Context(), actorID, taskID, req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateDefinition(c *gin.Context) {
	actorID, ok := actingEmployeeID(c)
	if !ok {
		return
	}
	taskID, ok := pathTaskID(c)
	if !ok {
		return
	}

	var req UpdateTaskDefinitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.UpdateDefinition(c.Request.Context(), actorID, taskID, req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Workspace(c *gin.Context) {
	actorID, ok := actingEmployeeID(c)
	if !ok {
		return
	}

	tasks, err := h.service.Workspace(c.Request.Context(), actorID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, tasks, nil)
}

func (h *Handler) CreatedBy(c *gin.Context) {
	actorID, ok := actingEmployeeID(c)
	if !ok {
		return
	}

	tasks, err := h.service.CreatedBy(c.Request.Context(), actorID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, tasks, nil)
}

func (h *Handler) History(c *gin.Context) {
	taskID, ok := pathTaskID(c)
	if !ok {
		return
	}

	logs, err := h.service.UpdateHistory(c.Request.Context(), taskID)
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

func pathTaskID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpErr := apperror.ToHTTP(taskerrors.ErrInvalidTaskID)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return uuid.Nil, false
	}
	return id, true
}
