package leave

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-workforce/internal/audit"
	"go-workforce/internal/employee"
	"go-workforce/internal/hierarchy"
	leaveerrors "go-workforce/internal/leave/errors"
	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/shared/apperror"
)

type fakeLeaveRepo struct {
	requests map[uuid.UUID]*LeaveRequest
	logs     []LeaveApprovalLog
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{requests: make(map[uuid.UUID]*LeaveRequest)}
}

func (f *fakeLeaveRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeLeaveRepo) Create(ctx context.Context, req *LeaveRequest) error {
	f.requests[req.ID] = req
	return nil
}

func (f *fakeLeaveRepo) ClaimAndTransition(ctx context.Context, leaveID uuid.UUID, approverID uuid.UUID, toStatus string) (int64, error) {
	req, ok := f.requests[leaveID]
	if !ok || req.Status != StatusSubmitted {
		return 0, nil
	}
	if req.CurrentApproverID == nil || *req.CurrentApproverID != approverID {
		return 0, nil
	}
	req.Status = toStatus
	req.CurrentApproverID = nil
	return 1, nil
}

func (f *fakeLeaveRepo) AppendApprovalLog(ctx context.Context, entry *LeaveApprovalLog) error {
	f.logs = append(f.logs, *entry)
	return nil
}

func (f *fakeLeaveRepo) FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *req
	return &clone, nil
}

func (f *fakeLeaveRepo) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]LeaveRequest, error) {
	var out []LeaveRequest
	for _, req := range f.requests {
		if req.EmployeeID == employeeID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) ListPendingForApprover(ctx context.Context, approverID uuid.UUID) ([]LeaveRequest, error) {
	var out []LeaveRequest
	for _, req := range f.requests {
		if req.Status == StatusSubmitted && req.CurrentApproverID != nil && *req.CurrentApproverID == approverID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) ListApprovalLogs(ctx context.Context, leaveID uuid.UUID) ([]LeaveApprovalLog, error) {
	var out []LeaveApprovalLog
	for _, entry := range f.logs {
		if entry.LeaveRequestID == leaveID {
			out = append(out, entry)
		}
	}
	return out, nil
}

type fakeDirectory struct {
	employees map[uuid.UUID]*employee.Employee
}

func (f *fakeDirectory) FindByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return emp, nil
}

type fakeAuditor struct {
	logs []string
}

func (f *fakeAuditor) Snapshot(ctx context.Context, tx *sql.Tx, subject audit.Snapshotter, actorID *uuid.UUID, action string, before map[string]any) error {
	return nil
}

func (f *fakeAuditor) Log(ctx context.Context, tx *sql.Tx, employeeID uuid.UUID, action string) error {
	f.logs = append(f.logs, action)
	return nil
}

func (f *fakeAuditor) Snapshots(ctx context.Context, employeeID string) ([]audit.EmployeeSnapshot, error) {
	return nil, nil
}

func (f *fakeAuditor) LogEntries(ctx context.Context, limit int) ([]audit.ActionLogEntry, error) {
	return nil, nil
}

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutbox) MarkFailed(ctx context.Context, id, reason string) error { return nil }

type leaveFixture struct {
	svc       Service
	repo      *fakeLeaveRepo
	directory *fakeDirectory
	auditor   *fakeAuditor
	outbox    *fakeOutbox
	mock      sqlmock.Sqlmock

	approver  *employee.Employee
	applicant *employee.Employee
}

func newLeaveFixture(t *testing.T) *leaveFixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	approver := &employee.Employee{
		ID:          uuid.New(),
		Name:        "Manager",
		Designation: hierarchy.DesignationManager,
	}
	applicant := &employee.Employee{
		ID:                uuid.New(),
		Name:              "Associate",
		Designation:       hierarchy.DesignationAssociate,
		ReportingPersonID: &approver.ID,
	}

	directory := &fakeDirectory{employees: map[uuid.UUID]*employee.Employee{
		approver.ID:  approver,
		applicant.ID: applicant,
	}}

	repo := newFakeLeaveRepo()
	auditor := &fakeAuditor{}
	outbox := &fakeOutbox{}

	svc := NewService(db, repo, directory, auditor, outbox)
	return &leaveFixture{
		svc:       svc,
		repo:      repo,
		directory: directory,
		auditor:   auditor,
		outbox:    outbox,
		mock:      mock,
		approver:  approver,
		applicant: applicant,
	}
}

func (fx *leaveFixture) submit(t *testing.T, req ApplyLeaveRequest) *LeaveResponse {
	t.Helper()
	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()
	resp, err := fx.svc.Apply(context.Background(), fx.applicant.ID, req)
	assert.NoError(t, err)
	return resp
}

func TestApplyRoutesToReportingPerson(t *testing.T) {
	fx := newLeaveFixture(t)

	resp := fx.submit(t, ApplyLeaveRequest{
		LeaveType: TypeCasual,
		StartDate: "2026-09-07",
		EndDate:   "2026-09-09",
		Reason:    "family event",
	})

	assert.Equal(t, StatusSubmitted, resp.Status)
	assert.Equal(t, 3, resp.TotalDays)
	assert.Equal(t, fx.approver.ID.String(), *resp.CurrentApproverID)
	assert.Len(t, fx.repo.logs, 1)
	assert.Equal(t, ActionSubmit, fx.repo.logs[0].Action)
}

func TestApplySingleDayDefaultsEndDate(t *testing.T) {
	fx := newLeaveFixture(t)

	resp := fx.submit(t, ApplyLeaveRequest{
		LeaveType: TypeSick,
		StartDate: "2026-09-07",
		Reason:    "fever",
	})

	assert.Equal(t, "2026-09-07", resp.EndDate)
	assert.Equal(t, 1, resp.TotalDays)
}

func TestApplyPermissionCollapsesToOneDay(t *testing.T) {
	fx := newLeaveFixture(t)

	resp := fx.submit(t, ApplyLeaveRequest{
		LeaveType: TypePermission,
		StartDate: "2026-09-07",
		EndDate:   "2026-09-12",
		Hours:     2,
		Reason:    "appointment",
	})

	assert.Equal(t, "2026-09-07", resp.EndDate)
	assert.Equal(t, 1, resp.TotalDays)
	assert.Contains(t, resp.Reason, "[2.0 hours]")
}

func TestApplyPermissionRequiresHours(t *testing.T) {
	fx := newLeaveFixture(t)

	_, err := fx.svc.Apply(context.Background(), fx.applicant.ID, ApplyLeaveRequest{
		LeaveType: TypePermission,
		StartDate: "2026-09-07",
		Reason:    "appointment",
	})

	assert.ErrorIs(t, err, leaveerrors.ErrHoursRequired)
}

func TestApplyWithoutApproverFails(t *testing.T) {
	fx := newLeaveFixture(t)
	president := &employee.Employee{ID: uuid.New(), Designation: hierarchy.DesignationPresident}
	fx.directory.employees[president.ID] = president

	_, err := fx.svc.Apply(context.Background(), president.ID, ApplyLeaveRequest{
		LeaveType: TypeCasual,
		StartDate: "2026-09-07",
		Reason:    "out",
	})

	assert.ErrorIs(t, err, leaveerrors.ErrNoApprover)
}

func TestApplyByCEORejected(t *testing.T) {
	fx := newLeaveFixture(t)
	ceo := &employee.Employee{ID: uuid.New(), Designation: hierarchy.DesignationCEO}
	fx.directory.employees[ceo.ID] = ceo

	_, err := fx.svc.Apply(context.Background(), ceo.ID, ApplyLeaveRequest{
		LeaveType: TypeCasual,
		StartDate: "2026-09-07",
		Reason:    "out",
	})

	assert.ErrorIs(t, err, leaveerrors.ErrCEOCannotApply)
}

func TestApplyRejectsEndBeforeStart(t *testing.T) {
	fx := newLeaveFixture(t)

	_, err := fx.svc.Apply(context.Background(), fx.applicant.ID, ApplyLeaveRequest{
		LeaveType: TypeCasual,
		StartDate: "2026-09-09",
		EndDate:   "2026-09-07",
		Reason:    "out",
	})

	assert.ErrorIs(t, err, leaveerrors.ErrEndBeforeStart)
}

func TestApproveByCurrentApprover(t *testing.T) {
	fx := newLeaveFixture(t)
	submitted := fx.submit(t, ApplyLeaveRequest{
		LeaveType: TypeCasual,
		StartDate: "2026-09-07",
		Reason:    "out",
	})
	leaveID := uuid.MustParse(submitted.ID)

	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()
	resp, err := fx.svc.ProcessAction(context.Background(), fx.approver.ID, leaveID, LeaveActionRequest{
		Action:  ActionApprove,
		Comment: "enjoy",
	})

	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.Status)
	assert.Nil(t, resp.CurrentApproverID)
	assert.Nil(t, fx.repo.requests[leaveID].CurrentApproverID)
	assert.Equal(t, []string{"LEAVE_APPROVED"}, fx.auditor.logs)
	assert.Len(t, fx.outbox.events, 1)
	assert.Equal(t, "leave_decided", fx.outbox.events[0].EventType)

	history, err := fx.svc.ApprovalHistory(context.Background(), leaveID)
	assert.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestActionByNonApproverFails(t *testing.T) {
	fx := newLeaveFixture(t)
	submitted := fx.submit(t, ApplyLeaveRequest{
		LeaveType: TypeCasual,
		StartDate: "2026-09-07",
		Reason:    "out",
	})
	leaveID := uuid.MustParse(submitted.ID)

	fx.mock.ExpectBegin()
	fx.mock.ExpectRollback()
	_, err := fx.svc.ProcessAction(context.Background(), fx.applicant.ID, leaveID, LeaveActionRequest{
		Action: ActionApprove,
	})

	assert.ErrorIs(t, err, leaveerrors.ErrNotApprover)
	assert.Equal(t, StatusSubmitted, fx.repo.requests[leaveID].Status)
	assert.Empty(t, fx.outbox.events)
}

func TestSecondDecisionDeniedAsNotApprover(t *testing.T) {
	fx := newLeaveFixture(t)
	submitted := fx.submit(t, ApplyLeaveRequest{
		LeaveType: TypeCasual,
		StartDate: "2026-09-07",
		Reason:    "out",
	})
	leaveID := uuid.MustParse(submitted.ID)

	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()
	_, err := fx.svc.ProcessAction(context.Background(), fx.approver.ID, leaveID, LeaveActionRequest{Action: ActionReject})
	assert.NoError(t, err)

	// The decision cleared the approver; a repeat action fails the same
	// authorization check a stranger would, and no second log row appears.
	fx.mock.ExpectBegin()
	fx.mock.ExpectRollback()
	_, err = fx.svc.ProcessAction(context.Background(), fx.approver.ID, leaveID, LeaveActionRequest{Action: ActionApprove})
	assert.ErrorIs(t, err, leaveerrors.ErrNotApprover)
	assert.Len(t, fx.repo.logs, 2)
}

func TestSendBackIsTerminal(t *testing.T) {
	fx := newLeaveFixture(t)
	submitted := fx.submit(t, ApplyLeaveRequest{
		LeaveType: TypeCasual,
		StartDate: "2026-09-07",
		Reason:    "out",
	})
	leaveID := uuid.MustParse(submitted.ID)

	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()
	resp, err := fx.svc.ProcessAction(context.Background(), fx.approver.ID, leaveID, LeaveActionRequest{Action: ActionSendBack})
	assert.NoError(t, err)
	assert.Equal(t, StatusSentBack, resp.Status)

	fx.mock.ExpectBegin()
	fx.mock.ExpectRollback()
	_, err = fx.svc.ProcessAction(context.Background(), fx.approver.ID, leaveID, LeaveActionRequest{Action: ActionApprove})
	assert.ErrorIs(t, err, leaveerrors.ErrNotApprover)
}

func TestUnknownActionRejected(t *testing.T) {
	fx := newLeaveFixture(t)

	_, err := fx.svc.ProcessAction(context.Background(), fx.approver.ID, uuid.New(), LeaveActionRequest{Action: "ESCALATE"})

	assert.ErrorIs(t, err, leaveerrors.ErrInvalidAction)

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeInvalidState, appErr.Code)
}

func TestPendingApprovalsListsOnlySubmitted(t *testing.T) {
	fx := newLeaveFixture(t)
	first := fx.submit(t, ApplyLeaveRequest{LeaveType: TypeCasual, StartDate: "2026-09-07", Reason: "a"})
	fx.submit(t, ApplyLeaveRequest{LeaveType: TypeSick, StartDate: "2026-09-08", Reason: "b"})

	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()
	_, err := fx.svc.ProcessAction(context.Background(), fx.approver.ID, uuid.MustParse(first.ID), LeaveActionRequest{Action: ActionApprove})
	assert.NoError(t, err)

	pending, err := fx.svc.PendingApprovals(context.Background(), fx.approver.ID)
	assert.NoError(t, err)
	assert.Len(t, pending, 1)
	assert.Equal(t, StatusSubmitted, pending[0].Status)
}
