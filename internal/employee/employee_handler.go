package employee

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	employeeerrors "go-workforce/internal/employee/errors"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Register(c *gin.Context) {
	actorID, ok := actingEmployeeID(c)
	if !ok {
		return
	}

	var req RegisterEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), actorID, req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) AdminEdit(c *gin.Context) {
	actorID, ok := actingEmployeeID(c)
	if !ok {
		return
	}
	targetID, ok := pathEmployeeID(c)
	if !ok {
		return
	}

	var req AdminEditEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.AdminEdit(c.Request.Context(), actorID, targetID, req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SoftDelete(c *gin.Context) {
	actorID, ok := actingEmployeeID(c)
	if !ok {
		return
	}
	targetID, ok := pathEmployeeID(c)
	if !ok {
		return
	}

	if err := h.service.SoftDelete(c.Request.Context(), actorID, targetID); err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) Restore(c *gin.Context) {
	actorID, ok := actingEmployeeID(c)
	if !ok {
		return
	}
	targetID, ok := pathEmployeeID(c)
	if !ok {
		return
	}

	if err := h.service.Restore(c.Request.Context(), actorID, targetID); err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"restored": true}, nil)
}

func (h *Handler) List(c *gin.Context) {
	actorID, ok := actingEmployeeID(c)
	if !ok {
		return
	}

	employees, err := h.service.GetAll(c.Request.Context(), actorID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, employees, nil)
}

func (h *Handler) Get(c *gin.Context) {
	actorID, ok := actingEmployeeID(c)
	if !ok {
		return
	}
	targetID, ok := pathEmployeeID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), actorID, targetID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByNumber(c *gin.Context) {
	actorID, ok := actingEmployeeID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByNumber(c.Request.Context(), actorID, c.Param("number"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Options(c *gin.Context) {
	options, err := h.service.GetOptions(c.Request.Context())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, options, nil)
}

// actingEmployeeID pulls the authenticated employee id placed on the gin
// context by the auth middleware.
func actingEmployeeID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString("employee_id")
	id, err := uuid.Parse(raw)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "missing auth context", nil)
		return uuid.Nil, false
	}
	return id, true
}

func pathEmployeeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpErr := apperror.ToHTTP(employeeerrors.ErrInvalidEmployeeID)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return uuid.Nil, false
	}
	return id, true
}
