package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"go-workforce/internal/audit"
	employeeerrors "go-workforce/internal/employee/errors"
	"go-workforce/internal/gate"
	"go-workforce/internal/hierarchy"
	"go-workforce/internal/messaging/kafka"
)

type fakeEmployeeRepo struct {
	employees map[uuid.UUID]*Employee

	created []*Employee
	updated map[uuid.UUID]map[string]any

	// lockDesignationFn, when set, answers the locked in-transaction
	// designation read instead of the employees map.
	lockDesignationFn func(id uuid.UUID) (string, error)
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{
		employees: make(map[uuid.UUID]*Employee),
		updated:   make(map[uuid.UUID]map[string]any),
	}
}

func (f *fakeEmployeeRepo) add(emp *Employee) *Employee {
	f.employees[emp.ID] = emp
	return emp
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp *Employee) error {
	f.created = append(f.created, emp)
	f.employees[emp.ID] = emp
	return nil
}

func (f *fakeEmployeeRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if _, ok := f.employees[id]; !ok {
		return sql.ErrNoRows
	}
	f.updated[id] = fields
	return nil
}

func (f *fakeEmployeeRepo) MarkDeleted(ctx context.Context, id uuid.UUID, deletedBy uuid.UUID, at time.Time) error {
	emp, ok := f.employees[id]
	if !ok || emp.IsDeleted {
		return sql.ErrNoRows
	}
	emp.IsDeleted = true
	emp.DeletedAt = &at
	emp.DeletedByID = &deletedBy
	return nil
}

func (f *fakeEmployeeRepo) MarkRestored(ctx context.Context, id uuid.UUID) error {
	emp, ok := f.employees[id]
	if !ok || !emp.IsDeleted {
		return sql.ErrNoRows
	}
	emp.IsDeleted = false
	emp.DeletedAt = nil
	emp.DeletedByID = nil
	return nil
}

func (f *fakeEmployeeRepo) SetCredential(ctx context.Context, id uuid.UUID, credentialID uuid.UUID) error {
	return nil
}

func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *emp
	return &clone, nil
}

func (f *fakeEmployeeRepo) DesignationForUpdate(ctx context.Context, id uuid.UUID) (string, error) {
	if f.lockDesignationFn != nil {
		return f.lockDesignationFn(id)
	}
	emp, ok := f.employees[id]
	if !ok || emp.IsDeleted {
		return "", sql.ErrNoRows
	}
	return emp.Designation, nil
}

func (f *fakeEmployeeRepo) FindByNumber(ctx context.Context, employeeNumber string) (*Employee, error) {
	for _, emp := range f.employees {
		if emp.EmployeeNumber == employeeNumber {
			clone := *emp
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeEmployeeRepo) FindAll(ctx context.Context, includeDeleted bool) ([]Employee, error) {
	var out []Employee
	for _, emp := range f.employees {
		if emp.IsDeleted && !includeDeleted {
			continue
		}
		out = append(out, *emp)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) FindOptions(ctx context.Context) ([]EmployeeOption, error) {
	var out []EmployeeOption
	for _, emp := range f.employees {
		if emp.IsDeleted {
			continue
		}
		out = append(out, EmployeeOption{
			ID:             emp.ID.String(),
			EmployeeNumber: emp.EmployeeNumber,
			Name:           emp.Name,
			Designation:    emp.Designation,
		})
	}
	return out, nil
}

type snapshotCall struct {
	subjectID uuid.UUID
	action    string
	before    map[string]any
	after     map[string]any
}

type fakeAuditor struct {
	snapshots []snapshotCall
	logs      []string
}

func (f *fakeAuditor) Snapshot(ctx context.Context, tx *sql.Tx, subject audit.Snapshotter, actorID *uuid.UUID, action string, before map[string]any) error {
	f.snapshots = append(f.snapshots, snapshotCall{
		subjectID: subject.SnapshotSubjectID(),
		action:    action,
		before:    before,
		after:     subject.AuditState(),
	})
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

type fakeCounter struct {
	next int64
	err  error
}

func (f *fakeCounter) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.next++
	return f.next, nil
}

type serviceFixture struct {
	svc     Service
	repo    *fakeEmployeeRepo
	auditor *fakeAuditor
	outbox  *fakeOutbox
	counter *fakeCounter
	mock    sqlmock.Sqlmock
	redis   redismock.ClientMock
}

func newServiceFixture(t *testing.T) *serviceFixture {
	return buildServiceFixture(t, false)
}

func newCachedServiceFixture(t *testing.T) *serviceFixture {
	return buildServiceFixture(t, true)
}

func buildServiceFixture(t *testing.T, withRedis bool) *serviceFixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gateSvc, err := gate.NewService()
	assert.NoError(t, err)

	repo := newFakeEmployeeRepo()
	auditor := &fakeAuditor{}
	outbox := &fakeOutbox{}
	cnt := &fakeCounter{}

	fx := &serviceFixture{repo: repo, auditor: auditor, outbox: outbox, counter: cnt, mock: mock}

	var rdb *redis.Client
	if withRedis {
		rdb, fx.redis = redismock.NewClientMock()
	}

	fx.svc = NewService(db, repo, cnt, gateSvc, auditor, outbox, rdb)
	return fx
}

func (fx *serviceFixture) addEmployee(designation, department string) *Employee {
	return fx.repo.add(&Employee{
		ID:               uuid.New(),
		EmployeeNumber:   "MD90000",
		Name:             "Fixture " + designation,
		Designation:      designation,
		Department:       department,
		EmploymentStatus: EmploymentStatusActive,
	})
}

func (fx *serviceFixture) expectTxCommit() {
	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()
}

func TestRegisterAllocatesSequentialNumber(t *testing.T) {
	fx := newServiceFixture(t)
	actor := fx.addEmployee(hierarchy.DesignationHR, hierarchy.DepartmentAdmin)
	fx.expectTxCommit()

	resp, err := fx.svc.Register(context.Background(), actor.ID, RegisterEmployeeRequest{
		Name:        "New Joiner",
		Designation: hierarchy.DesignationAssociate,
		Department:  hierarchy.DepartmentIT,
	})

	assert.NoError(t, err)
	assert.Equal(t, "MD00001", resp.EmployeeNumber)
	assert.Len(t, fx.repo.created, 1)
	assert.Equal(t, []string{"REGISTERED"}, fx.auditor.logs)
	assert.Len(t, fx.outbox.events, 1)
	assert.Equal(t, "employee_registered", fx.outbox.events[0].EventType)
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestRegisterRequiresAdminPanelAccess(t *testing.T) {
	fx := newServiceFixture(t)
	actor := fx.addEmployee(hierarchy.DesignationManager, hierarchy.DepartmentIT)

	_, err := fx.svc.Register(context.Background(), actor.ID, RegisterEmployeeRequest{
		Name:        "New Joiner",
		Designation: hierarchy.DesignationAssociate,
	})

	assert.ErrorIs(t, err, employeeerrors.ErrAdminPanelRequired)
	assert.Empty(t, fx.repo.created)
}

func TestRegisterRejectsNonSeniorReportingPerson(t *testing.T) {
	fx := newServiceFixture(t)
	actor := fx.addEmployee(hierarchy.DesignationVicePresident, hierarchy.DepartmentManagement)
	reporting := fx.addEmployee(hierarchy.DesignationAssociate, hierarchy.DepartmentIT)

	_, err := fx.svc.Register(context.Background(), actor.ID, RegisterEmployeeRequest{
		Name:              "New Joiner",
		Designation:       hierarchy.DesignationManager,
		ReportingPersonID: reporting.ID.String(),
	})

	assert.ErrorIs(t, err, hierarchy.ErrReportingNotSenior)
	assert.Empty(t, fx.repo.created)
}

func TestRegisterRevalidatesEdgeAtCommit(t *testing.T) {
	fx := newServiceFixture(t)
	actor := fx.addEmployee(hierarchy.DesignationHR, hierarchy.DepartmentAdmin)
	reporting := fx.addEmployee(hierarchy.DesignationVicePresident, hierarchy.DepartmentManagement)

	// The reporting person is demoted between the pre-check and the
	// locked read inside the transaction.
	fx.repo.lockDesignationFn = func(id uuid.UUID) (string, error) {
		return hierarchy.DesignationAssociate, nil
	}
	fx.mock.ExpectBegin()
	fx.mock.ExpectRollback()

	_, err := fx.svc.Register(context.Background(), actor.ID, RegisterEmployeeRequest{
		Name:              "New Joiner",
		Designation:       hierarchy.DesignationManager,
		ReportingPersonID: reporting.ID.String(),
	})

	assert.ErrorIs(t, err, hierarchy.ErrReportingNotSenior)
	assert.Empty(t, fx.repo.created)
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestRegisterRejectsUnknownReportingPerson(t *testing.T) {
	fx := newServiceFixture(t)
	actor := fx.addEmployee(hierarchy.DesignationHR, hierarchy.DepartmentAdmin)

	_, err := fx.svc.Register(context.Background(), actor.ID, RegisterEmployeeRequest{
		Name:              "New Joiner",
		Designation:       hierarchy.DesignationAssociate,
		ReportingPersonID: uuid.NewString(),
	})

	assert.ErrorIs(t, err, employeeerrors.ErrReportingPersonNotFound)
}

func TestRegisterRejectsBadDate(t *testing.T) {
	fx := newServiceFixture(t)
	actor := fx.addEmployee(hierarchy.DesignationHR, hierarchy.DepartmentAdmin)

	_, err := fx.svc.Register(context.Background(), actor.ID, RegisterEmployeeRequest{
		Name:        "New Joiner",
		Designation: hierarchy.DesignationAssociate,
		JoiningDate: "01-02-2024",
	})

	assert.ErrorIs(t, err, employeeerrors.ErrInvalidDateFormat)
}

func TestAdminEditDropsFieldsOutsidePolicy(t *testing.T) {
	fx := newServiceFixture(t)
	actor := fx.addEmployee(hierarchy.DesignationTeamLeader, hierarchy.DepartmentAdmin)
	target := fx.addEmployee(hierarchy.DesignationAssociate, hierarchy.DepartmentIT)
	fx.expectTxCommit()

	contact := "9876543210"
	client := "Globex"
	_, err := fx.svc.AdminEdit(context.Background(), actor.ID, target.ID, AdminEditEmployeeRequest{
		ContactNumber: &contact,
		Client:        &client,
	})

	assert.NoError(t, err)
	fields := fx.repo.updated[target.ID]
	assert.Equal(t, "9876543210", fields["contact_number"])
	assert.NotContains(t, fields, "client")
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestAdminEditWritesExactlyOneSnapshot(t *testing.T) {
	fx := newServiceFixture(t)
	actor := fx.addEmployee(hierarchy.DesignationVicePresident, hierarchy.DepartmentManagement)
	target := fx.addEmployee(hierarchy.DesignationAssociate, hierarchy.DepartmentIT)
	fx.expectTxCommit()

	client := "Initech"
	_, err := fx.svc.AdminEdit(context.Background(), actor.ID, target.ID, AdminEditEmployeeRequest{
		Client: &client,
	})

	assert.NoError(t, err)
	assert.Len(t, fx.auditor.snapshots, 1)
	snap := fx.auditor.snapshots[0]
	assert.Equal(t, audit.ActionAdminEdit, snap.action)
	assert.Equal(t, target.ID, snap.subjectID)
	assert.Equal(t, "", snap.before["client"])
	assert.Equal(t, "Initech", snap.after["client"])
}

func TestAdminEditManagementBypassesFieldPolicy(t *testing.T) {
	fx := newServiceFixture(t)
	actor := fx.addEmployee(hierarchy.DesignationCEO, hierarchy.DepartmentManagement)
	target := fx.addEmployee(hierarchy.DesignationAssociate, hierarchy.DepartmentIT)
	fx.expectTxCommit()

	client := "Initech"
	department := hierarchy.DepartmentDeveloper
	_, err := fx.svc.AdminEdit(context.Background(), actor.ID, target.ID, AdminEditEmployeeRequest{
		Client:     &client,
		Department: &department,
	})

	assert.NoError(t, err)
	fields := fx.repo.updated[target.ID]
	assert.Equal(t, "Initech", fields["client"])
	assert.Equal(t, hierarchy.DepartmentDeveloper, fields["department"])
}

func TestAdminEditDesignationIsManagementOnly(t *testing.T) {
	fx := newServiceFixture(t)
	actor := fx.addEmployee(hierarchy.DesignationManager, hierarchy.DepartmentAdmin)
	target := fx.addEmployee(hierarchy.DesignationAssociate, hierarchy.DepartmentIT)

	designation := hierarchy.DesignationTeamLeader
	_, err := fx.svc.AdminEdit(context.Background(), actor.ID, target.ID, AdminEditEmployeeRequest{
		Designation: &designation,
	})

	assert.ErrorIs(t, err, employeeerrors.ErrManagementOnly)
	assert.Empty(t, fx.repo.updated)
}

func TestAdminEditRevalidatesEdgeAtCommit(t *testing.T) {
	fx := newServiceFixture(t)
	actor := fx.addEmployee(hierarchy.DesignationCEO, hierarchy.DepartmentManagement)
	reporting := fx.addEmployee(hierarchy.DesignationVicePresident, hierarchy.DepartmentManagement)
	target := fx.addEmployee(hierarchy.DesignationAssociate, hierarchy.DepartmentIT)
	target.ReportingPersonID = &reporting.ID
	target.ReportingRole = reporting.Designation

	fx.repo.lockDesignationFn = func(id uuid.UUID) (string, error) {
		return hierarchy.DesignationAssociate, nil
	}
	fx.mock.ExpectBegin()
	fx.mock.ExpectRollback()

	designation := hierarchy.DesignationTeamLeader
	_, err := fx.svc.AdminEdit(context.Background(), actor.ID, target.ID, AdminEditEmployeeRequest{
		Designation: &designation,
	})

	assert.ErrorIs(t, err, hierarchy.ErrReportingNotSenior)
	assert.Empty(t, fx.repo.updated)
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestSoftDeleteRequiresManagement(t *testing.T) {
	fx := newServiceFixture(t)
	actor := fx.addEmployee(hierarchy.DesignationSeniorManager, hierarchy.DepartmentAdmin)
	target := fx.addEmployee(hierarchy.DesignationAssociate, hierarchy.DepartmentIT)

	err := fx.svc.SoftDelete(context.Background(), actor.ID, target.ID)

	assert.ErrorIs(t, err, employeeerrors.ErrManagementOnly)
}

func TestSoftDeleteRecordsSnapshotAndEvent(t *testing.T) {
	fx := newServiceFixture(t)
	actor := fx.addEmployee(hierarchy.DesignationVicePresident, hierarchy.DepartmentManagement)
	target := fx.addEmployee(hierarchy.DesignationAssociate, hierarchy.DepartmentIT)
	fx.expectTxCommit()

	err := fx.svc.SoftDelete(context.Background(), actor.ID, target.ID)

	assert.NoError(t, err)
	assert.True(t, fx.repo.employees[target.ID].IsDeleted)
	assert.Len(t, fx.auditor.snapshots, 1)
	assert.Equal(t, audit.ActionSoftDelete, fx.auditor.snapshots[0].action)
	assert.Equal(t, false, fx.auditor.snapshots[0].before["is_deleted"])
	assert.Equal(t, true, fx.auditor.snapshots[0].after["is_deleted"])
	assert.Len(t, fx.outbox.events, 1)
	assert.Equal(t, "employee_deactivated", fx.outbox.events[0].EventType)
}

func TestSoftDeleteTwiceFails(t *testing.T) {
	fx := newServiceFixture(t)
	actor := fx.addEmployee(hierarchy.DesignationCEO, hierarchy.DepartmentManagement)
	target := fx.addEmployee(hierarchy.DesignationAssociate, hierarchy.DepartmentIT)
	fx.expectTxCommit()

	assert.NoError(t, fx.svc.SoftDelete(context.Background(), actor.ID, target.ID))
	err := fx.svc.SoftDelete(context.Background(), actor.ID, target.ID)

	assert.ErrorIs(t, err, employeeerrors.ErrAlreadyDeleted)
}

func TestRestoreRequiresDeletedTarget(t *testing.T) {
	fx := newServiceFixture(t)
	actor := fx.addEmployee(hierarchy.DesignationPresident, hierarchy.DepartmentManagement)
	target := fx.addEmployee(hierarchy.DesignationAssociate, hierarchy.DepartmentIT)

	err := fx.svc.Restore(context.Background(), actor.ID, target.ID)

	assert.ErrorIs(t, err, employeeerrors.ErrNotDeleted)
}

func TestRestoreReactivatesEmployee(t *testing.T) {
	fx := newServiceFixture(t)
	actor := fx.addEmployee(hierarchy.DesignationCEO, hierarchy.DepartmentManagement)
	target := fx.addEmployee(hierarchy.DesignationAssociate, hierarchy.DepartmentIT)
	now := time.Now().UTC()
	target.IsDeleted = true
	target.DeletedAt = &now
	fx.expectTxCommit()

	err := fx.svc.Restore(context.Background(), actor.ID, target.ID)

	assert.NoError(t, err)
	assert.False(t, fx.repo.employees[target.ID].IsDeleted)
	assert.Equal(t, audit.ActionRestore, fx.auditor.snapshots[0].action)
	assert.Equal(t, "employee_restored", fx.outbox.events[0].EventType)
}

func TestGetAllHidesDeletedFromNonManagement(t *testing.T) {
	fx := newServiceFixture(t)
	viewer := fx.addEmployee(hierarchy.DesignationAssociate, hierarchy.DepartmentIT)
	manager := fx.addEmployee(hierarchy.DesignationVicePresident, hierarchy.DepartmentManagement)
	deleted := fx.addEmployee(hierarchy.DesignationAssociate, hierarchy.DepartmentIT)
	deleted.IsDeleted = true

	forViewer, err := fx.svc.GetAll(context.Background(), viewer.ID)
	assert.NoError(t, err)
	forManager, err := fx.svc.GetAll(context.Background(), manager.ID)
	assert.NoError(t, err)

	assert.Len(t, forViewer, 2)
	assert.Len(t, forManager, 3)
}

func TestGetByIDHidesDeletedFromNonManagement(t *testing.T) {
	fx := newServiceFixture(t)
	viewer := fx.addEmployee(hierarchy.DesignationAssociate, hierarchy.DepartmentIT)
	deleted := fx.addEmployee(hierarchy.DesignationAssociate, hierarchy.DepartmentIT)
	deleted.IsDeleted = true

	_, err := fx.svc.GetByID(context.Background(), viewer.ID, deleted.ID)

	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestGetOptionsFallsBackToDatabase(t *testing.T) {
	fx := newServiceFixture(t)
	fx.addEmployee(hierarchy.DesignationAssociate, hierarchy.DepartmentIT)
	fx.addEmployee(hierarchy.DesignationManager, hierarchy.DepartmentIT)

	options, err := fx.svc.GetOptions(context.Background())

	assert.NoError(t, err)
	assert.Len(t, options, 2)
}

func TestGetOptionsServesFromCache(t *testing.T) {
	fx := newCachedServiceFixture(t)

	cached := []EmployeeOption{{
		ID:             uuid.NewString(),
		EmployeeNumber: "MD00042",
		Name:           "Cached Person",
		Designation:    hierarchy.DesignationManager,
	}}
	payload, err := json.Marshal(cached)
	assert.NoError(t, err)
	fx.redis.ExpectGet(optionsCacheKey).SetVal(string(payload))

	options, err := fx.svc.GetOptions(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, cached, options)
	assert.NoError(t, fx.redis.ExpectationsWereMet())
}

func TestGetOptionsCacheMissQueriesAndStores(t *testing.T) {
	fx := newCachedServiceFixture(t)
	emp := fx.addEmployee(hierarchy.DesignationAssociate, hierarchy.DepartmentIT)
	payload, err := json.Marshal([]EmployeeOption{{
		ID:             emp.ID.String(),
		EmployeeNumber: emp.EmployeeNumber,
		Name:           emp.Name,
		Designation:    emp.Designation,
	}})
	assert.NoError(t, err)

	fx.redis.ExpectGet(optionsCacheKey).RedisNil()
	fx.redis.ExpectSet(optionsCacheKey, payload, optionsCacheTTL).SetVal("OK")

	options, err := fx.svc.GetOptions(context.Background())

	assert.NoError(t, err)
	assert.Len(t, options, 1)
	assert.NoError(t, fx.redis.ExpectationsWereMet())
}

func TestRegisterInvalidatesOptionsCache(t *testing.T) {
	fx := newCachedServiceFixture(t)
	actor := fx.addEmployee(hierarchy.DesignationHR, hierarchy.DepartmentAdmin)
	fx.expectTxCommit()
	fx.redis.ExpectDel(optionsCacheKey).SetVal(1)

	_, err := fx.svc.Register(context.Background(), actor.ID, RegisterEmployeeRequest{
		Name:        "New Joiner",
		Designation: hierarchy.DesignationAssociate,
		Department:  hierarchy.DepartmentIT,
	})

	assert.NoError(t, err)
	assert.NoError(t, fx.redis.ExpectationsWereMet())
}

func TestRegisterCounterFailureSurfaces(t *testing.T) {
	fx := newServiceFixture(t)
	actor := fx.addEmployee(hierarchy.DesignationHR, hierarchy.DepartmentAdmin)
	fx.counter.err = errors.New("sequence unavailable")

	_, err := fx.svc.Register(context.Background(), actor.ID, RegisterEmployeeRequest{
		Name:        "New Joiner",
		Designation: hierarchy.DesignationAssociate,
	})

	assert.Error(t, err)
	assert.Empty(t, fx.repo.created)
}
