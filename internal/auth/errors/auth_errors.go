package autherrors

import (
	"net/http"

	"go-workforce/internal/shared/apperror"
)

var (
	// One message for unknown usernames and wrong passwords, so a probe
	// cannot tell which one it hit.
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"invalid username or password",
		http.StatusUnauthorized,
	)
	ErrAccountLocked = apperror.New(
		apperror.CodeUnauthorized,
		"account is locked, contact an administrator",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"invalid or expired token",
		http.StatusUnauthorized,
	)
	ErrLoginExists = apperror.New(
		apperror.CodeConflict,
		"employee already has a login",
		http.StatusConflict,
	)
	ErrWeakPassword = apperror.New(
		apperror.CodeInvalidInput,
		"password must be 8-16 characters with an uppercase letter and a symbol",
		http.StatusBadRequest,
	)
	ErrNoLogin = apperror.New(
		apperror.CodeNotFound,
		"employee has no login",
		http.StatusNotFound,
	)
)
