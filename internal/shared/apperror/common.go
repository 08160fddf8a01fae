package apperror

import (
	"fmt"
	"net/http"
)

var ErrInternal = New(
	CodeInternalError,
	"An unexpected error occurred",
	http.StatusInternalServerError,
)

// RequiredField builds an INVALID_INPUT error for a missing field.
func RequiredField(field string) *AppError {
	return New(
		CodeInvalidInput,
		fmt.Sprintf("%s is required", field),
		http.StatusBadRequest,
	)
}

// InvalidField builds an INVALID_INPUT error for a malformed field.
func InvalidField(field string) *AppError {
	return New(
		CodeInvalidInput,
		fmt.Sprintf("%s is invalid", field),
		http.StatusBadRequest,
	)
}
