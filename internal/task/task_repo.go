package task

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

//go:generate mockgen -source=task_repo.go -destination=mocks/task_repo_mock.go -package=mocks

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Create(ctx context.Context, t *Task) error

	// TransitionExecution advances status and progress, guarded on the
	// current status so a concurrent update cannot jump the state machine.
	// Zero rows means the task moved underneath the caller.
	TransitionExecution(ctx context.Context, taskID uuid.UUID, fromStatus, toStatus string, progress int) (int64, error)

	UpdateDefinition(ctx context.Context, taskID uuid.UUID, fields map[string]any) error
	AppendUpdateLog(ctx context.Context, entry *TaskUpdateLog) error

	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	ListAssignedTo(ctx context.Context, assigneeID uuid.UUID) ([]Task, error)
	ListCreatedBy(ctx context.Context, assignorID uuid.UUID) ([]Task, error)
	ListUpdateLogs(ctx context.Context, taskID uuid.UUID) ([]TaskUpdateLog, error)
}

var definitionColumns = map[string]bool{
	"title":       true,
	"description": true,
	"priority":    true,
	"due_date":    true,
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

func (r *repository) Create(ctx context.Context, t *Task) error {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := r.execer().ExecContext(ctx, `
		INSERT INTO tasks (
			id, title, description, priority, due_date,
			assignor_id, assignee_id, status, progress, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`,
		t.ID, t.Title, t.Description, t.Priority, t.DueDate,
		t.AssignorID, t.AssigneeID, t.Status, t.Progress, now,
	)
	return err
}

func (r *repository) TransitionExecution(ctx context.Context, taskID uuid.UUID, fromStatus, toStatus string, progress int) (int64, error) {
	result, err := r.execer().ExecContext(ctx, `
		UPDATE tasks
		SET status = $1, progress = $2, updated_at = $3
		WHERE id = $4 AND status = $5`,
		toStatus, progress, time.Now().UTC(), taskID, fromStatus,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *repository) UpdateDefinition(ctx context.Context, taskID uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	cols := make([]string, 0, len(fields))
	for col := range fields {
		if !definitionColumns[col] {
			return fmt.Errorf("task: column %q is not updatable", col)
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
	args = append(args, taskID)

	query := fmt.Sprintf(
		"UPDATE tasks SET %s WHERE id = $%d",
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

func (r *repository) AppendUpdateLog(ctx context.Context, entry *TaskUpdateLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now().UTC()

	_, err := r.execer().ExecContext(ctx, `
		INSERT INTO task_update_logs (
			id, task_id, actor_id, from_status, to_status, progress, note, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.TaskID, entry.ActorID, entry.FromStatus,
		entry.ToStatus, entry.Progress, entry.Note, entry.CreatedAt,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	var t Task
	err := r.gdb.WithContext(ctx).
		Where("id = ?", id).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) ListAssignedTo(ctx context.Context, assigneeID uuid.UUID) ([]Task, error) {
	var tasks []Task
	err := r.gdb.WithContext(ctx).
		Where("assignee_id = ?", assigneeID).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *repository) ListCreatedBy(ctx context.Context, assignorID uuid.UUID) ([]Task, error) {
	var tasks []Task
	err := r.gdb.WithContext(ctx).
		Where("assignor_id = ?", assignorID).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *repository) ListUpdateLogs(ctx context.Context, taskID uuid.UUID) ([]TaskUpdateLog, error) {
	var logs []TaskUpdateLog
	err := r.gdb.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
