package employee

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mocks/employee_repo_mock.go -package=mocks

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Create(ctx context.Context, emp *Employee) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	MarkDeleted(ctx context.Context, id uuid.UUID, deletedBy uuid.UUID, at time.Time) error
	MarkRestored(ctx context.Context, id uuid.UUID) error
	SetCredential(ctx context.Context, id uuid.UUID, credentialID uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindByNumber(ctx context.Context, employeeNumber string) (*Employee, error)
	DesignationForUpdate(ctx context.Context, id uuid.UUID) (string, error)
	FindAll(ctx context.Context, includeDeleted bool) ([]Employee, error)
	FindOptions(ctx context.Context) ([]EmployeeOption, error)
}

// updatableColumns is the allowlist for dynamic partial updates. Anything
// outside it is a programming error, not caller input.
var updatableColumns = map[string]bool{
	"name":                     true,
	"date_of_birth":            true,
	"blood_group":              true,
	"marital_status":           true,
	"email":                    true,
	"residential_address":      true,
	"permanent_address":        true,
	"contact_number":           true,
	"emergency_contact_number": true,
	"designation":              true,
	"department":               true,
	"client":                   true,
	"reporting_role":           true,
	"reporting_person_id":      true,
	"joining_date":             true,
	"ending_date":              true,
	"employment_status":        true,
	"force_password_reset":     true,
}

type repository struct {
	gdb *gorm.DB
	db  *sql.DB
	tx  *sql.Tx
}

func NewRepository(gdb *gorm.DB, db *sql.DB) Repository {
	return &repository{gdb: gdb, db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{gdb: r.gdb, db: r.db, tx: tx}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *repository) execer() execer {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repository) Create(ctx context.Context, emp *Employee) error {
	now := time.Now().UTC()
	emp.CreatedAt = now
	emp.UpdatedAt = now

	_, err := r.execer().ExecContext(ctx, `
		INSERT INTO employees (
			id, employee_number, name,
			date_of_birth, blood_group, marital_status, email,
			residential_address, permanent_address,
			contact_number, emergency_contact_number,
			designation, department, client,
			reporting_role, reporting_person_id,
			joining_date, ending_date, employment_status,
			is_locked, failed_login_attempts, force_password_reset,
			is_deleted, created_at, updated_at
		) VALUES (
			$1, $2, $3,
			$4, $5, $6, $7,
			$8, $9,
			$10, $11,
			$12, $13, $14,
			$15, $16,
			$17, $18, $19,
			false, 0, true,
			false, $20, $20
		)`,
		emp.ID, emp.EmployeeNumber, emp.Name,
		emp.DateOfBirth, emp.BloodGroup, emp.MaritalStatus, emp.Email,
		emp.ResidentialAddress, emp.PermanentAddress,
		emp.ContactNumber, emp.EmergencyContactNumber,
		emp.Designation, emp.Department, emp.Client,
		emp.ReportingRole, emp.ReportingPersonID,
		emp.JoiningDate, emp.EndingDate, emp.EmploymentStatus,
		now,
	)
	return err
}

func (r *repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	cols := make([]string, 0, len(fields))
	for col := range fields {
		if !updatableColumns[col] {
			return fmt.Errorf("employee: column %q is not updatable", col)
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)

	sets := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+2)
	for i, col := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+1))
		args = append(args, fields[col])
	}
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(cols)+1))
	args = append(args, time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE employees SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(cols)+2,
	)

	result, err := r.execer().ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repository) MarkDeleted(ctx context.Context, id uuid.UUID, deletedBy uuid.UUID, at time.Time) error {
	result, err := r.execer().ExecContext(ctx, `
		UPDATE employees
		SET is_deleted = true, deleted_at = $1, deleted_by_id = $2, updated_at = $1
		WHERE id = $3 AND is_deleted = false`,
		at, deletedBy, id,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repository) MarkRestored(ctx context.Context, id uuid.UUID) error {
	result, err := r.execer().ExecContext(ctx, `
		UPDATE employees
		SET is_deleted = false, deleted_at = NULL, deleted_by_id = NULL, updated_at = $1
		WHERE id = $2 AND is_deleted = true`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repository) SetCredential(ctx context.Context, id uuid.UUID, credentialID uuid.UUID) error {
	_, err := r.execer().ExecContext(ctx, `
		UPDATE employees
		SET credential_id = $1, updated_at = $2
		WHERE id = $3`,
		credentialID, time.Now().UTC(), id,
	)
	return err
}

// DesignationForUpdate reads a live employee's designation and holds the
// row lock until the surrounding transaction ends, so a reporting edge
// validated against it still holds at commit.
func (r *repository) DesignationForUpdate(ctx context.Context, id uuid.UUID) (string, error) {
	var designation string
	err := r.execer().QueryRowContext(ctx, `
		SELECT designation FROM employees WHERE id = $1 AND is_deleted = false FOR UPDATE`,
		id,
	).Scan(&designation)
	if err != nil {
		return "", err
	}
	return designation, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var emp Employee
	err := r.gdb.WithContext(ctx).
		Where("id = ?", id).
		First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *repository) FindByNumber(ctx context.Context, employeeNumber string) (*Employee, error) {
	var emp Employee
	err := r.gdb.WithContext(ctx).
		Where("employee_number = ?", employeeNumber).
		First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *repository) FindAll(ctx context.Context, includeDeleted bool) ([]Employee, error) {
	query := r.gdb.WithContext(ctx).Order("employee_number ASC")
	if !includeDeleted {
		query = query.Where("is_deleted = ?", false)
	}

	var employees []Employee
	if err := query.Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *repository) FindOptions(ctx context.Context) ([]EmployeeOption, error) {
	var employees []Employee
	err := r.gdb.WithContext(ctx).
		Select("id", "employee_number", "name", "designation").
		Where("is_deleted = ?", false).
		Order("name ASC").
		Find(&employees).Error
	if err != nil {
		return nil, err
	}

	options := make([]EmployeeOption, 0, len(employees))
	for _, emp := range employees {
		options = append(options, EmployeeOption{
			ID:             emp.ID.String(),
			EmployeeNumber: emp.EmployeeNumber,
			Name:           emp.Name,
			Designation:    emp.Designation,
		})
	}
	return options, nil
}
