package employeeerrors

import (
	"net/http"

	"go-workforce/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrActorNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"acting employee not found",
		http.StatusUnauthorized,
	)
	ErrAdminPanelRequired = apperror.New(
		apperror.CodeForbidden,
		"admin panel access required",
		http.StatusForbidden,
	)
	ErrManagementOnly = apperror.New(
		apperror.CodeForbidden,
		"only management can perform this action",
		http.StatusForbidden,
	)
	ErrNoDesignation = apperror.New(
		apperror.CodeForbidden,
		"acting employee has no designation, edits are rejected",
		http.StatusForbidden,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrReportingPersonNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"reporting person not found",
		http.StatusBadRequest,
	)
	// Retryable: the caller may resubmit to obtain a fresh number.
	ErrEmployeeNumberConflict = apperror.New(
		apperror.CodeConflict,
		"employee number conflict detected, please retry",
		http.StatusConflict,
	)
	ErrAlreadyDeleted = apperror.New(
		apperror.CodeInvalidState,
		"employee is already deactivated",
		http.StatusBadRequest,
	)
	ErrNotDeleted = apperror.New(
		apperror.CodeInvalidState,
		"employee is not deactivated",
		http.StatusBadRequest,
	)
)
