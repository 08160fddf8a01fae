package task

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-workforce/internal/employee"
	employeeerrors "go-workforce/internal/employee/errors"
	"go-workforce/internal/gate"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/contextutil"
	taskerrors "go-workforce/internal/task/errors"
)

const dateLayout = "2006-01-02"

// EmployeeDirectory is the slice of the employee store the task module needs.
type EmployeeDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error)
}

//go:generate mockgen -source=task_service.go -destination=mocks/task_service_mock.go -package=mocks

type Service interface {
	Create(ctx context.Context, actorID uuid.UUID, req CreateTaskRequest) (*TaskResponse, error)
	RecordUpdate(ctx context.Context, actorID uuid.UUID, taskID uuid.UUID, req TaskUpdateRequest) (*TaskResponse, error)
	UpdateDefinition(ctx context.Context, actorID uuid.UUID, taskID uuid.UUID, req UpdateTaskDefinitionRequest) (*TaskResponse, error)

	Workspace(ctx context.Context, actorID uuid.UUID) ([]TaskResponse, error)
	CreatedBy(ctx context.Context, actorID uuid.UUID) ([]TaskResponse, error)
	UpdateHistory(ctx context.Context, taskID uuid.UUID) ([]TaskUpdateLogResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees EmployeeDirectory
	gate      gate.Service
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees EmployeeDirectory,
	gateSvc gate.Service,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("task.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("task.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		gate:      gateSvc,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, req CreateTaskRequest) (*TaskResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create task", zap.String("actor_id", actorID.String()), zap.String("title", req.Title))

	actor, err := s.loadEmployee(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !s.gate.CanManageTasks(actor.Designation) {
		log.Warn("task create denied",
			zap.String("actor_id", actorID.String()),
			zap.String("designation", actor.Designation),
		)
		return nil, taskerrors.ErrCannotManageTasks
	}

	assigneeID, err := uuid.Parse(req.AssigneeID)
	if err != nil {
		return nil, taskerrors.ErrAssigneeNotFound
	}
	assignee, err := s.employees.FindByID(ctx, assigneeID)
	if err != nil {
		if isNotFound(err) {
			return nil, taskerrors.ErrAssigneeNotFound
		}
		return nil, wrapStorage(err)
	}
	if assignee.IsDeleted {
		return nil, taskerrors.ErrAssigneeNotFound
	}
	if assignee.ReportingPersonID == nil || *assignee.ReportingPersonID != actorID {
		return nil, taskerrors.ErrNotDirectReportee
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, parseErr := time.Parse(dateLayout, req.DueDate)
		if parseErr != nil {
			return nil, taskerrors.ErrInvalidDateFormat
		}
		dueDate = &parsed
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	t := &Task{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		DueDate:     dueDate,
		AssignorID:  actorID,
		AssigneeID:  assigneeID,
		Status:      StatusAssigned,
		Progress:    0,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		log.Error("task create failed", zap.Error(err))
		return nil, wrapStorage(err)
	}

	log.Info("task created",
		zap.String("task_id", t.ID.String()),
		zap.String("assignor_id", actorID.String()),
		zap.String("assignee_id", assigneeID.String()),
	)
	return toTaskResponse(t), nil
}

func (s *service) RecordUpdate(ctx context.Context, actorID uuid.UUID, taskID uuid.UUID, req TaskUpdateRequest) (*TaskResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	t, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, mapTaskLookup(err)
	}
	if t.AssigneeID != actorID {
		log.Warn("task update by non-assignee",
			zap.String("task_id", taskID.String()),
			zap.String("actor_id", actorID.String()),
		)
		return nil, taskerrors.ErrNotAssignee
	}
	if t.Status == StatusCompleted {
		return nil, taskerrors.ErrTaskCompleted
	}

	toStatus := req.Status
	if toStatus == "" {
		toStatus = t.Status
	}
	if !canTransition(t.Status, toStatus) {
		return nil, taskerrors.ErrInvalidTransition
	}

	progress := t.Progress
	if req.Progress != nil {
		progress = *req.Progress
	}
	if toStatus == StatusCompleted && progress != 100 {
		return nil, taskerrors.ErrCompletionNeedsFullProgress
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, wrapStorage(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	rows, err := qtx.TransitionExecution(ctx, t.ID, t.Status, toStatus, progress)
	if err != nil {
		log.Error("task transition failed", zap.String("task_id", taskID.String()), zap.Error(err))
		return nil, wrapStorage(err)
	}
	if rows == 0 {
		return nil, taskerrors.ErrInvalidTransition
	}

	if err := qtx.AppendUpdateLog(ctx, &TaskUpdateLog{
		TaskID:     t.ID,
		ActorID:    actorID,
		FromStatus: t.Status,
		ToStatus:   toStatus,
		Progress:   progress,
		Note:       req.Note,
	}); err != nil {
		return nil, wrapStorage(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, wrapStorage(err)
	}

	t.Status = toStatus
	t.Progress = progress

	log.Info("task updated",
		zap.String("task_id", t.ID.String()),
		zap.String("status", toStatus),
		zap.Int("progress", progress),
	)
	return toTaskResponse(t), nil
}

func (s *service) UpdateDefinition(ctx context.Context, actorID uuid.UUID, taskID uuid.UUID, req UpdateTaskDefinitionRequest) (*TaskResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	t, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, mapTaskLookup(err)
	}
	if t.AssignorID != actorID {
		return nil, taskerrors.ErrNotAssignor
	}
	if t.Status == StatusCompleted {
		return nil, taskerrors.ErrTaskCompleted
	}

	fields := make(map[string]any)
	if req.Title != nil {
		fields["title"] = *req.Title
		t.Title = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
		t.Description = *req.Description
	}
	if req.Priority != nil {
		fields["priority"] = *req.Priority
		t.Priority = *req.Priority
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			fields["due_date"] = nil
			t.DueDate = nil
		} else {
			parsed, parseErr := time.Parse(dateLayout, *req.DueDate)
			if parseErr != nil {
				return nil, taskerrors.ErrInvalidDateFormat
			}
			fields["due_date"] = parsed
			t.DueDate = &parsed
		}
	}

	if len(fields) > 0 {
		if err := s.repo.UpdateDefinition(ctx, t.ID, fields); err != nil {
			log.Error("task definition update failed", zap.String("task_id", taskID.String()), zap.Error(err))
			return nil, mapTaskLookup(err)
		}
	}

	log.Info("task definition updated",
		zap.String("task_id", t.ID.String()),
		zap.Int("fields", len(fields)),
	)
	return toTaskResponse(t), nil
}

func (s *service) Workspace(ctx context.Context, actorID uuid.UUID) ([]TaskResponse, error) {
	tasks, err := s.repo.ListAssignedTo(ctx, actorID)
	if err != nil {
		return nil, wrapStorage(err)
	}
	return toTaskResponses(tasks), nil
}

func (s *service) CreatedBy(ctx context.Context, actorID uuid.UUID) ([]TaskResponse, error) {
	tasks, err := s.repo.ListCreatedBy(ctx, actorID)
	if err != nil {
		return nil, wrapStorage(err)
	}
	return toTaskResponses(tasks), nil
}

func (s *service) UpdateHistory(ctx context.Context, taskID uuid.UUID) ([]TaskUpdateLogResponse, error) {
	if _, err := s.repo.FindByID(ctx, taskID); err != nil {
		return nil, mapTaskLookup(err)
	}

	logs, err := s.repo.ListUpdateLogs(ctx, taskID)
	if err != nil {
		return nil, wrapStorage(err)
	}

	responses := make([]TaskUpdateLogResponse, 0, len(logs))
	for _, entry := range logs {
		responses = append(responses, TaskUpdateLogResponse{
			ID:         entry.ID.String(),
			TaskID:     entry.TaskID.String(),
			ActorID:    entry.ActorID.String(),
			FromStatus: entry.FromStatus,
			ToStatus:   entry.ToStatus,
			Progress:   entry.Progress,
			Note:       entry.Note,
			CreatedAt:  entry.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return responses, nil
}

func (s *service) loadEmployee(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	emp, err := s.employees.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, employeeerrors.ErrActorNotFound
		}
		return nil, wrapStorage(err)
	}
	if emp.IsDeleted {
		return nil, employeeerrors.ErrActorNotFound
	}
	return emp, nil
}

func mapTaskLookup(err error) error {
	if isNotFound(err) {
		return taskerrors.ErrTaskNotFound
	}
	return wrapStorage(err)
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound)
}

func wrapStorage(err error) error {
	return apperror.Wrap(err, apperror.CodeInternalError, "task storage failure", http.StatusInternalServerError)
}

func toTaskResponse(t *Task) *TaskResponse {
	resp := &TaskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		AssignorID:  t.AssignorID.String(),
		AssigneeID:  t.AssigneeID.String(),
		Status:      t.Status,
		Progress:    t.Progress,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if t.DueDate != nil {
		due := t.DueDate.Format(dateLayout)
		resp.DueDate = &due
	}
	return resp
}

func toTaskResponses(tasks []Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, *toTaskResponse(&tasks[i]))
	}
	return responses
}
