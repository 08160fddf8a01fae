package auth

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mocks/auth_repo_mock.go -package=mocks

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateCredential(ctx context.Context, cred *Credential) error
	FindByUsername(ctx context.Context, username string) (*Credential, error)
	FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) (*Credential, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdatePassword(ctx context.Context, credentialID uuid.UUID, passwordHash string) error

	// Account-control columns live on the employee row; failed-attempt
	// bookkeeping is done in SQL so concurrent logins count correctly.
	RecordFailedLogin(ctx context.Context, employeeID uuid.UUID, lockThreshold int) (attempts int, locked bool, err error)
	ResetLoginState(ctx context.Context, employeeID uuid.UUID) error
	SetForcePasswordReset(ctx context.Context, employeeID uuid.UUID, forced bool) error
	Unlock(ctx context.Context, employeeID uuid.UUID) error

	// BindCredential attaches a credential to the employee row and forces
	// a password change on first login.
	BindCredential(ctx context.Context, employeeID uuid.UUID, credentialID uuid.UUID) error
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

func (r *repository) CreateCredential(ctx context.Context, cred *Credential) error {
	now := time.Now().UTC()
	cred.CreatedAt = now
	cred.UpdatedAt = now

	_, err := r.execer().ExecContext(ctx, `
		INSERT INTO credentials (id, employee_id, username, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)`,
		cred.ID, cred.EmployeeID, cred.Username, cred.PasswordHash, now,
	)
	return err
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*Credential, error) {
	var cred Credential
	err := r.gdb.WithContext(ctx).
		Where("username = ?", username).
		First(&cred).Error
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *repository) FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) (*Credential, error) {
	var cred Credential
	err := r.gdb.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		First(&cred).Error
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *repository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.gdb.WithContext(ctx).
		Model(&Credential{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) UpdatePassword(ctx context.Context, credentialID uuid.UUID, passwordHash string) error {
	_, err := r.execer().ExecContext(ctx, `
		UPDATE credentials SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		passwordHash, time.Now().UTC(), credentialID,
	)
	return err
}

func (r *repository) RecordFailedLogin(ctx context.Context, employeeID uuid.UUID, lockThreshold int) (int, bool, error) {
	var attempts int
	var locked bool
	err := r.execer().QueryRowContext(ctx, `
		UPDATE employees
		SET failed_login_attempts = failed_login_attempts + 1,
		    is_locked = (failed_login_attempts + 1 >= $1),
		    updated_at = $2
		WHERE id = $3
		RETURNING failed_login_attempts, is_locked`,
		lockThreshold, time.Now().UTC(), employeeID,
	).Scan(&attempts, &locked)
	if err != nil {
		return 0, false, err
	}
	return attempts, locked, nil
}

func (r *repository) ResetLoginState(ctx context.Context, employeeID uuid.UUID) error {
	_, err := r.execer().ExecContext(ctx, `
		UPDATE employees SET failed_login_attempts = 0, updated_at = $1 WHERE id = $2`,
		time.Now().UTC(), employeeID,
	)
	return err
}

func (r *repository) SetForcePasswordReset(ctx context.Context, employeeID uuid.UUID, forced bool) error {
	_, err := r.execer().ExecContext(ctx, `
		UPDATE employees SET force_password_reset = $1, updated_at = $2 WHERE id = $3`,
		forced, time.Now().UTC(), employeeID,
	)
	return err
}

func (r *repository) BindCredential(ctx context.Context, employeeID uuid.UUID, credentialID uuid.UUID) error {
	_, err := r.execer().ExecContext(ctx, `
		UPDATE employees
		SET credential_id = $1, force_password_reset = true, updated_at = $2
		WHERE id = $3`,
		credentialID, time.Now().UTC(), employeeID,
	)
	return err
}

func (r *repository) Unlock(ctx context.Context, employeeID uuid.UUID) error {
	_, err := r.execer().ExecContext(ctx, `
		UPDATE employees SET is_locked = false, failed_login_attempts = 0, updated_at = $1 WHERE id = $2`,
		time.Now().UTC(), employeeID,
	)
	return err
}
