package taskerrors

import (
	"net/http"

	"go-workforce/internal/shared/apperror"
)

var (
	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"task not found",
		http.StatusNotFound,
	)
	ErrInvalidTaskID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid task id",
		http.StatusBadRequest,
	)
	ErrCannotManageTasks = apperror.New(
		apperror.CodeForbidden,
		"designation cannot assign tasks",
		http.StatusForbidden,
	)
	ErrNotDirectReportee = apperror.New(
		apperror.CodeInvalidInput,
		"tasks can only be assigned to direct reportees",
		http.StatusBadRequest,
	)
	ErrAssigneeNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"assignee not found",
		http.StatusBadRequest,
	)
	ErrNotAssignee = apperror.New(
		apperror.CodeForbidden,
		"only the assignee can record execution updates",
		http.StatusForbidden,
	)
	ErrNotAssignor = apperror.New(
		apperror.CodeForbidden,
		"only the assignor can change the task definition",
		http.StatusForbidden,
	)
	ErrTaskCompleted = apperror.New(
		apperror.CodeInvalidState,
		"completed tasks are immutable",
		http.StatusBadRequest,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"status transition not allowed",
		http.StatusBadRequest,
	)
	ErrCompletionNeedsFullProgress = apperror.New(
		apperror.CodeInvalidInput,
		"completion requires progress at 100",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
