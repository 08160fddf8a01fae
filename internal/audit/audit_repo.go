package audit

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateSnapshot(ctx context.Context, s *EmployeeSnapshot) error
	CreateLogEntry(ctx context.Context, e *ActionLogEntry) error
	ListSnapshotsByEmployee(ctx context.Context, employeeID string) ([]EmployeeSnapshot, error)
	ListLogEntries(ctx context.Context, limit int) ([]ActionLogEntry, error)
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

// Writes go through the caller's transaction when one is bound so a
// snapshot or log row commits together with the mutation it records.
func (r *repository) CreateSnapshot(ctx context.Context, s *EmployeeSnapshot) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	query := `
        INSERT INTO employee_snapshots (
            id, employee_id, changed_by_id, action, before_data, after_data, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, now())
    `
	_, err := r.execer().ExecContext(
		ctx, query,
		s.ID, s.EmployeeID, s.ChangedByID, s.Action, []byte(s.BeforeData), []byte(s.AfterData),
	)
	return err
}

func (r *repository) CreateLogEntry(ctx context.Context, e *ActionLogEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	query := `
        INSERT INTO action_log_entries (id, employee_id, action, created_at)
        VALUES ($1, $2, $3, now())
    `
	_, err := r.execer().ExecContext(ctx, query, e.ID, e.EmployeeID, e.Action)
	return err
}

func (r *repository) ListSnapshotsByEmployee(ctx context.Context, employeeID string) ([]EmployeeSnapshot, error) {
	var snapshots []EmployeeSnapshot
	err := r.gdb.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&snapshots).Error
	return snapshots, err
}

func (r *repository) ListLogEntries(ctx context.Context, limit int) ([]ActionLogEntry, error) {
	var entries []ActionLogEntry
	err := r.gdb.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}
