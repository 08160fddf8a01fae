package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mocks/leave_repo_mock.go -package=mocks

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Create(ctx context.Context, req *LeaveRequest) error

	// ClaimAndTransition moves a submitted request to a terminal status
	// and clears the approver, but only when the acting employee is still
	// the current approver and the request is still pending. It reports
	// the number of rows changed; zero means the claim lost.
	ClaimAndTransition(ctx context.Context, leaveID uuid.UUID, approverID uuid.UUID, toStatus string) (int64, error)

	AppendApprovalLog(ctx context.Context, entry *LeaveApprovalLog) error

	FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]LeaveRequest, error)
	ListPendingForApprover(ctx context.Context, approverID uuid.UUID) ([]LeaveRequest, error)
	ListApprovalLogs(ctx context.Context, leaveID uuid.UUID) ([]LeaveApprovalLog, error)
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
}

func (r *repository) execer() execer {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repository) Create(ctx context.Context, req *LeaveRequest) error {
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now

	_, err := r.execer().ExecContext(ctx, `
		INSERT INTO leave_requests (
			id, employee_id, leave_type, start_date, end_date, total_days,
			reason, status, current_approver_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`,
		req.ID, req.EmployeeID, req.LeaveType, req.StartDate, req.EndDate,
		req.TotalDays, req.Reason, req.Status, req.CurrentApproverID, now,
	)
	return err
}

func (r *repository) ClaimAndTransition(ctx context.Context, leaveID uuid.UUID, approverID uuid.UUID, toStatus string) (int64, error) {
	result, err := r.execer().ExecContext(ctx, `
		UPDATE leave_requests
		SET status = $1, current_approver_id = NULL, updated_at = $2
		WHERE id = $3 AND current_approver_id = $4 AND status = $5`,
		toStatus, time.Now().UTC(), leaveID, approverID, StatusSubmitted,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *repository) AppendApprovalLog(ctx context.Context, entry *LeaveApprovalLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now().UTC()

	_, err := r.execer().ExecContext(ctx, `
		INSERT INTO leave_approval_logs (
			id, leave_request_id, actor_id, action, from_status, to_status, comment, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.LeaveRequestID, entry.ActorID, entry.Action,
		entry.FromStatus, entry.ToStatus, entry.Comment, entry.CreatedAt,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	var req LeaveRequest
	err := r.gdb.WithContext(ctx).
		Where("id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.gdb.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *repository) ListPendingForApprover(ctx context.Context, approverID uuid.UUID) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.gdb.WithContext(ctx).
		Where("current_approver_id = ? AND status = ?", approverID, StatusSubmitted).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *repository) ListApprovalLogs(ctx context.Context, leaveID uuid.UUID) ([]LeaveApprovalLog, error) {
	var logs []LeaveApprovalLog
	err := r.gdb.WithContext(ctx).
		Where("leave_request_id = ?", leaveID).
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
