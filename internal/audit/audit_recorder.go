package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Snapshotter is anything the recorder can snapshot. The subject serializes
// its own field values; the recorder owns rendering and persistence.
type Snapshotter interface {
	SnapshotSubjectID() uuid.UUID
	AuditState() map[string]any
}

//go:generate mockgen -source=audit_recorder.go -destination=mock/audit_recorder_mock.go -package=mock
type Recorder interface {
	// Snapshot writes one before/after record inside the caller's
	// transaction. The before state is captured by the caller prior to
	// mutating; the after state is serialized here from the subject's
	// current field values. No validation: a snapshot is always written.
	Snapshot(ctx context.Context, tx *sql.Tx, subject Snapshotter, actorID *uuid.UUID, action string, before map[string]any) error

	// Log appends one action-log line inside the caller's transaction.
	Log(ctx context.Context, tx *sql.Tx, employeeID uuid.UUID, action string) error

	Snapshots(ctx context.Context, employeeID string) ([]EmployeeSnapshot, error)
	LogEntries(ctx context.Context, limit int) ([]ActionLogEntry, error)
}

type recorder struct {
	repo   Repository
	logger *zap.Logger
}

func NewRecorder(repo Repository, logger ...*zap.Logger) Recorder {
	l := zap.L().Named("audit.recorder")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.recorder")
	}
	return &recorder{repo: repo, logger: l}
}

func (r *recorder) Snapshot(
	ctx context.Context,
	tx *sql.Tx,
	subject Snapshotter,
	actorID *uuid.UUID,
	action string,
	before map[string]any,
) error {
	beforeData, err := json.Marshal(renderState(before))
	if err != nil {
		return err
	}
	afterData, err := json.Marshal(renderState(subject.AuditState()))
	if err != nil {
		return err
	}

	snapshot := &EmployeeSnapshot{
		EmployeeID:  subject.SnapshotSubjectID(),
		ChangedByID: actorID,
		Action:      action,
		BeforeData:  beforeData,
		AfterData:   afterData,
	}

	qtx := r.repo.WithTx(tx)
	if err := qtx.CreateSnapshot(ctx, snapshot); err != nil {
		r.logger.Error("snapshot persist failed",
			zap.String("employee_id", subject.SnapshotSubjectID().String()),
			zap.String("action", action),
			zap.Error(err),
		)
		return err
	}

	r.logger.Debug("snapshot recorded",
		zap.String("employee_id", subject.SnapshotSubjectID().String()),
		zap.String("action", action),
	)
	return nil
}

func (r *recorder) Log(ctx context.Context, tx *sql.Tx, employeeID uuid.UUID, action string) error {
	entry := &ActionLogEntry{EmployeeID: employeeID, Action: action}

	qtx := r.repo.WithTx(tx)
	if err := qtx.CreateLogEntry(ctx, entry); err != nil {
		r.logger.Error("action log persist failed",
			zap.String("employee_id", employeeID.String()),
			zap.String("action", action),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (r *recorder) Snapshots(ctx context.Context, employeeID string) ([]EmployeeSnapshot, error) {
	return r.repo.ListSnapshotsByEmployee(ctx, employeeID)
}

func (r *recorder) LogEntries(ctx context.Context, limit int) ([]ActionLogEntry, error) {
	return r.repo.ListLogEntries(ctx, limit)
}

// renderState rewrites every date/time value into a fixed textual form so
// stored states compare stably across snapshots.
func renderState(state map[string]any) map[string]any {
	rendered := make(map[string]any, len(state))
	for key, value := range state {
		switch v := value.(type) {
		case time.Time:
			rendered[key] = v.UTC().Format(time.RFC3339)
		case *time.Time:
			if v == nil {
				rendered[key] = nil
			} else {
				rendered[key] = v.UTC().Format(time.RFC3339)
			}
		case uuid.UUID:
			rendered[key] = v.String()
		case *uuid.UUID:
			if v == nil {
				rendered[key] = nil
			} else {
				rendered[key] = v.String()
			}
		default:
			rendered[key] = value
		}
	}
	return rendered
}
