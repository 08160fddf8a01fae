package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-workforce/internal/audit"
	"go-workforce/internal/employee"
	employeeerrors "go-workforce/internal/employee/errors"
	"go-workforce/internal/events"
	"go-workforce/internal/hierarchy"
	leaveerrors "go-workforce/internal/leave/errors"
	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/contextutil"
)

const dateLayout = "2006-01-02"

// terminalStatusFor maps a workflow action to the status it produces.
var terminalStatusFor = map[string]string{
	ActionApprove:  StatusApproved,
	ActionReject:   StatusRejected,
	ActionSendBack: StatusSentBack,
}

// EmployeeDirectory is the slice of the employee store the workflow needs.
type EmployeeDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error)
}

//go:generate mockgen -source=leave_service.go -destination=mocks/leave_service_mock.go -package=mocks

type Service interface {
	Apply(ctx context.Context, actorID uuid.UUID, req ApplyLeaveRequest) (*LeaveResponse, error)
	ProcessAction(ctx context.Context, actorID uuid.UUID, leaveID uuid.UUID, req LeaveActionRequest) (*LeaveResponse, error)

	ListMine(ctx context.Context, actorID uuid.UUID) ([]LeaveResponse, error)
	PendingApprovals(ctx context.Context, actorID uuid.UUID) ([]LeaveResponse, error)
	ApprovalHistory(ctx context.Context, leaveID uuid.UUID) ([]ApprovalLogResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees EmployeeDirectory
	auditor   audit.Recorder
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees EmployeeDirectory,
	auditor audit.Recorder,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		auditor:   auditor,
		outbox:    outbox,
		logger:    l,
	}
}

func (s *service) Apply(ctx context.Context, actorID uuid.UUID, req ApplyLeaveRequest) (*LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("apply leave",
		zap.String("actor_id", actorID.String()),
		zap.String("leave_type", req.LeaveType),
	)

	applicant, err := s.loadApplicant(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if applicant.Designation == hierarchy.DesignationCEO {
		return nil, leaveerrors.ErrCEOCannotApply
	}
	if applicant.ReportingPersonID == nil {
		log.Warn("leave application without approver",
			zap.String("actor_id", actorID.String()),
			zap.String("designation", applicant.Designation),
		)
		return nil, leaveerrors.ErrNoApprover
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}

	leave := &LeaveRequest{
		ID:                uuid.New(),
		EmployeeID:        applicant.ID,
		LeaveType:         req.LeaveType,
		StartDate:         startDate,
		Reason:            req.Reason,
		Status:            StatusSubmitted,
		CurrentApproverID: applicant.ReportingPersonID,
	}

	if req.LeaveType == TypePermission {
		// Permission is an hours-based absence recorded against a single
		// day; the hours travel inside the reason text.
		if req.Hours <= 0 {
			return nil, leaveerrors.ErrHoursRequired
		}
		leave.EndDate = startDate
		leave.TotalDays = 1
		leave.Reason = fmt.Sprintf("%s [%.1f hours]", req.Reason, req.Hours)
	} else {
		endDate := startDate
		if req.EndDate != "" {
			endDate, err = parseDate(req.EndDate)
			if err != nil {
				return nil, err
			}
		}
		if endDate.Before(startDate) {
			return nil, leaveerrors.ErrEndBeforeStart
		}
		leave.EndDate = endDate
		leave.TotalDays = int(endDate.Sub(startDate).Hours()/24) + 1
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, wrapStorage(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, leave); err != nil {
		log.Error("leave create failed", zap.Error(err))
		return nil, wrapStorage(err)
	}
	if err := qtx.AppendApprovalLog(ctx, &LeaveApprovalLog{
		LeaveRequestID: leave.ID,
		ActorID:        applicant.ID,
		Action:         ActionSubmit,
		FromStatus:     StatusSubmitted,
		ToStatus:       StatusSubmitted,
	}); err != nil {
		return nil, wrapStorage(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, wrapStorage(err)
	}

	log.Info("leave submitted",
		zap.String("leave_id", leave.ID.String()),
		zap.String("employee_id", applicant.ID.String()),
		zap.String("approver_id", applicant.ReportingPersonID.String()),
		zap.Int("total_days", leave.TotalDays),
	)
	return toLeaveResponse(leave), nil
}

func (s *service) ProcessAction(ctx context.Context, actorID uuid.UUID, leaveID uuid.UUID, req LeaveActionRequest) (*LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	toStatus, ok := terminalStatusFor[req.Action]
	if !ok {
		return nil, leaveerrors.ErrInvalidAction
	}

	leave, err := s.repo.FindByID(ctx, leaveID)
	if err != nil {
		return nil, mapLeaveLookup(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, wrapStorage(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// The conditional update is the authorization and the state check in
	// one statement. A decision clears the approver, so a non-approver, a
	// competing decision and a repeat action on a decided request all land
	// on zero rows and fail the same authorization check.
	rows, err := qtx.ClaimAndTransition(ctx, leave.ID, actorID, toStatus)
	if err != nil {
		log.Error("leave transition failed", zap.String("leave_id", leaveID.String()), zap.Error(err))
		return nil, wrapStorage(err)
	}
	if rows == 0 {
		log.Warn("leave action denied",
			zap.String("leave_id", leaveID.String()),
			zap.String("actor_id", actorID.String()),
		)
		return nil, leaveerrors.ErrNotApprover
	}

	if err := qtx.AppendApprovalLog(ctx, &LeaveApprovalLog{
		LeaveRequestID: leave.ID,
		ActorID:        actorID,
		Action:         req.Action,
		FromStatus:     StatusSubmitted,
		ToStatus:       toStatus,
		Comment:        req.Comment,
	}); err != nil {
		return nil, wrapStorage(err)
	}
	if err := s.auditor.Log(ctx, tx, leave.EmployeeID, "LEAVE_"+toStatus); err != nil {
		return nil, wrapStorage(err)
	}
	if err := s.enqueueDecisionEvent(ctx, tx, leave, actorID, toStatus); err != nil {
		return nil, wrapStorage(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, wrapStorage(err)
	}

	leave.Status = toStatus
	leave.CurrentApproverID = nil

	log.Info("leave decided",
		zap.String("leave_id", leave.ID.String()),
		zap.String("actor_id", actorID.String()),
		zap.String("status", toStatus),
	)
	return toLeaveResponse(leave), nil
}

func (s *service) ListMine(ctx context.Context, actorID uuid.UUID) ([]LeaveResponse, error) {
	requests, err := s.repo.ListByEmployee(ctx, actorID)
	if err != nil {
		return nil, wrapStorage(err)
	}
	return toLeaveResponses(requests), nil
}

func (s *service) PendingApprovals(ctx context.Context, actorID uuid.UUID) ([]LeaveResponse, error) {
	requests, err := s.repo.ListPendingForApprover(ctx, actorID)
	if err != nil {
		return nil, wrapStorage(err)
	}
	return toLeaveResponses(requests), nil
}

func (s *service) ApprovalHistory(ctx context.Context, leaveID uuid.UUID) ([]ApprovalLogResponse, error) {
	if _, err := s.repo.FindByID(ctx, leaveID); err != nil {
		return nil, mapLeaveLookup(err)
	}

	logs, err := s.repo.ListApprovalLogs(ctx, leaveID)
	if err != nil {
		return nil, wrapStorage(err)
	}

	responses := make([]ApprovalLogResponse, 0, len(logs))
	for _, entry := range logs {
		responses = append(responses, ApprovalLogResponse{
			ID:             entry.ID.String(),
			LeaveRequestID: entry.LeaveRequestID.String(),
			ActorID:        entry.ActorID.String(),
			Action:         entry.Action,
			FromStatus:     entry.FromStatus,
			ToStatus:       entry.ToStatus,
			Comment:        entry.Comment,
			CreatedAt:      entry.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return responses, nil
}

func (s *service) loadApplicant(ctx context.Context, actorID uuid.UUID) (*employee.Employee, error) {
	applicant, err := s.employees.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrActorNotFound
		}
		return nil, wrapStorage(err)
	}
	if applicant.IsDeleted {
		return nil, employeeerrors.ErrActorNotFound
	}
	return applicant, nil
}

func (s *service) enqueueDecisionEvent(ctx context.Context, tx *sql.Tx, leave *LeaveRequest, actorID uuid.UUID, status string) error {
	payload, err := json.Marshal(events.LeaveDecidedEvent{
		EventType:  events.LeaveDecided,
		RequestID:  contextutil.GetRequestID(ctx),
		LeaveID:    leave.ID.String(),
		EmployeeID: leave.EmployeeID.String(),
		ApproverID: actorID.String(),
		Status:     status,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   leave.ID.String(),
		EventType:     events.LeaveDecided,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapLeaveLookup(err error) error {
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	return wrapStorage(err)
}

func wrapStorage(err error) error {
	return apperror.Wrap(err, apperror.CodeInternalError, "leave storage failure", http.StatusInternalServerError)
}

func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return parsed, nil
}

func toLeaveResponse(leave *LeaveRequest) *LeaveResponse {
	resp := &LeaveResponse{
		ID:         leave.ID.String(),
		EmployeeID: leave.EmployeeID.String(),
		LeaveType:  leave.LeaveType,
		StartDate:  leave.StartDate.Format(dateLayout),
		EndDate:    leave.EndDate.Format(dateLayout),
		TotalDays:  leave.TotalDays,
		Reason:     leave.Reason,
		Status:     leave.Status,
		CreatedAt:  leave.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  leave.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if leave.CurrentApproverID != nil {
		id := leave.CurrentApproverID.String()
		resp.CurrentApproverID = &id
	}
	return resp
}

func toLeaveResponses(requests []LeaveRequest) []LeaveResponse {
	responses := make([]LeaveResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, *toLeaveResponse(&requests[i]))
	}
	return responses
}
