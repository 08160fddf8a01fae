package leaveerrors

import (
	"net/http"

	"go-workforce/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrCEOCannotApply = apperror.New(
		apperror.CodeInvalidInput,
		"the CEO cannot submit leave requests",
		http.StatusBadRequest,
	)
	ErrNoApprover = apperror.New(
		apperror.CodeInvalidInput,
		"no reporting person to route the request to",
		http.StatusBadRequest,
	)
	ErrEndBeforeStart = apperror.New(
		apperror.CodeInvalidInput,
		"end date must not be before start date",
		http.StatusBadRequest,
	)
	ErrHoursRequired = apperror.New(
		apperror.CodeInvalidInput,
		"permission leave requires hours",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidAction = apperror.New(
		apperror.CodeInvalidState,
		"unknown workflow action",
		http.StatusBadRequest,
	)
	ErrNotApprover = apperror.New(
		apperror.CodeForbidden,
		"only the current approver can act on this request",
		http.StatusForbidden,
	)
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave request id",
		http.StatusBadRequest,
	)
)
