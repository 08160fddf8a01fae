package employee

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	employeeerrors "go-workforce/internal/employee/errors"
	"go-workforce/internal/shared/apperror"
)

const uniqueViolationCode = "23505"

// mapRepositoryError translates driver-level failures into domain errors.
// A unique violation on the employee number is surfaced as a retryable
// conflict since the sequence counter hands out a fresh number per attempt.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		if pgErr.ConstraintName == "uq_employee_number" {
			return employeeerrors.ErrEmployeeNumberConflict
		}
		return apperror.Wrap(err, apperror.CodeConflict, "duplicate record", http.StatusConflict)
	}

	return apperror.Wrap(err, apperror.CodeInternalError, "employee storage failure", http.StatusInternalServerError)
}
