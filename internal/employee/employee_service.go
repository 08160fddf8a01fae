package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"go-workforce/internal/audit"
	employeeerrors "go-workforce/internal/employee/errors"
	"go-workforce/internal/events"
	"go-workforce/internal/gate"
	"go-workforce/internal/hierarchy"
	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/shared/contextutil"
	"go-workforce/internal/shared/counter"
)

const (
	employeeNumberCounter = "employee_number"
	employeeNumberFormat  = "MD%05d"

	optionsCacheKey = "workforce:employee:options"
	optionsCacheTTL = 5 * time.Minute

	dateLayout = "2006-01-02"
)

//go:generate mockgen -source=employee_service.go -destination=mocks/employee_service_mock.go -package=mocks

type Service interface {
	Register(ctx context.Context, actorID uuid.UUID, req RegisterEmployeeRequest) (*EmployeeResponse, error)
	AdminEdit(ctx context.Context, actorID uuid.UUID, targetID uuid.UUID, req AdminEditEmployeeRequest) (*EmployeeResponse, error)
	SoftDelete(ctx context.Context, actorID uuid.UUID, targetID uuid.UUID) error
	Restore(ctx context.Context, actorID uuid.UUID, targetID uuid.UUID) error

	GetAll(ctx context.Context, actorID uuid.UUID) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, actorID uuid.UUID, targetID uuid.UUID) (*EmployeeResponse, error)
	GetByNumber(ctx context.Context, actorID uuid.UUID, employeeNumber string) (*EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOption, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	gate    gate.Service
	auditor audit.Recorder
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	sf      singleflight.Group
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	gateSvc gate.Service,
	auditor audit.Recorder,
	outbox kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counterRepo,
		gate:    gateSvc,
		auditor: auditor,
		outbox:  outbox,
		rdb:     rdb,
		logger:  l,
	}
}

func (s *service) Register(ctx context.Context, actorID uuid.UUID, req RegisterEmployeeRequest) (*EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("register employee", zap.String("actor_id", actorID.String()), zap.String("name", req.Name))

	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !s.gate.CanAccessAdminPanel(actor.Designation, actor.Department) {
		log.Warn("register denied, no admin panel access",
			zap.String("actor_id", actorID.String()),
			zap.String("designation", actor.Designation),
		)
		return nil, employeeerrors.ErrAdminPanelRequired
	}

	dateOfBirth, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}
	joiningDate, err := parseDate(req.JoiningDate)
	if err != nil {
		return nil, err
	}
	endingDate, err := parseDate(req.EndingDate)
	if err != nil {
		return nil, err
	}

	emp := &Employee{
		ID:                     uuid.New(),
		Name:                   req.Name,
		DateOfBirth:            dateOfBirth,
		BloodGroup:             req.BloodGroup,
		MaritalStatus:          req.MaritalStatus,
		Email:                  req.Email,
		ResidentialAddress:     req.ResidentialAddress,
		PermanentAddress:       req.PermanentAddress,
		ContactNumber:          req.ContactNumber,
		EmergencyContactNumber: req.EmergencyContactNumber,
		Designation:            req.Designation,
		Department:             req.Department,
		Client:                 req.Client,
		JoiningDate:            joiningDate,
		EndingDate:             endingDate,
		EmploymentStatus:       req.EmploymentStatus,
	}
	if emp.EmploymentStatus == "" {
		emp.EmploymentStatus = EmploymentStatusActive
	}

	if req.ReportingPersonID != "" {
		reportingID, parseErr := uuid.Parse(req.ReportingPersonID)
		if parseErr != nil {
			return nil, employeeerrors.ErrInvalidEmployeeID
		}
		reportingPerson, findErr := s.repo.FindByID(ctx, reportingID)
		if findErr != nil {
			if isNotFound(findErr) {
				return nil, employeeerrors.ErrReportingPersonNotFound
			}
			return nil, mapRepositoryError(findErr)
		}
		if reportingPerson.IsDeleted {
			return nil, employeeerrors.ErrReportingPersonNotFound
		}
		if edgeErr := hierarchy.ValidateReportingEdge(emp.Designation, reportingPerson.Designation); edgeErr != nil {
			return nil, edgeErr
		}
		emp.ReportingPersonID = &reportingPerson.ID
		emp.ReportingRole = reportingPerson.Designation
	}

	next, err := s.counter.GetNextValue(ctx, employeeNumberCounter)
	if err != nil {
		log.Error("employee number allocation failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	emp.EmployeeNumber = fmt.Sprintf(employeeNumberFormat, next)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if emp.ReportingPersonID != nil {
		// The pre-check gave fast feedback; the edge must also hold at
		// commit. Locking the reporting person's row keeps a concurrent
		// demotion from landing between validation and insert.
		lockedDesignation, lockErr := qtx.DesignationForUpdate(ctx, *emp.ReportingPersonID)
		if lockErr != nil {
			if errors.Is(lockErr, sql.ErrNoRows) {
				return nil, employeeerrors.ErrReportingPersonNotFound
			}
			return nil, mapRepositoryError(lockErr)
		}
		if edgeErr := hierarchy.ValidateReportingEdge(emp.Designation, lockedDesignation); edgeErr != nil {
			return nil, edgeErr
		}
		emp.ReportingRole = lockedDesignation
	}
	if err := qtx.Create(ctx, emp); err != nil {
		log.Error("employee create failed", zap.String("employee_number", emp.EmployeeNumber), zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	if err := s.auditor.Log(ctx, tx, emp.ID, "REGISTERED"); err != nil {
		return nil, mapRepositoryError(err)
	}
	if err := s.enqueueLifecycleEvent(ctx, tx, emp, actorID, events.EmployeeRegistered); err != nil {
		return nil, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx)

	log.Info("employee registered",
		zap.String("employee_id", emp.ID.String()),
		zap.String("employee_number", emp.EmployeeNumber),
		zap.String("designation", emp.Designation),
	)
	return toResponse(emp), nil
}

func (s *service) AdminEdit(ctx context.Context, actorID uuid.UUID, targetID uuid.UUID, req AdminEditEmployeeRequest) (*EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("admin edit employee",
		zap.String("actor_id", actorID.String()),
		zap.String("target_id", targetID.String()),
	)

	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !s.gate.CanAccessAdminPanel(actor.Designation, actor.Department) {
		return nil, employeeerrors.ErrAdminPanelRequired
	}
	if actor.Designation == "" {
		return nil, employeeerrors.ErrNoDesignation
	}

	isManagement := s.gate.IsManagement(actor.Designation)

	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if target.IsDeleted {
		if !isManagement {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, employeeerrors.ErrAlreadyDeleted
	}

	patch := policyPatch(req)
	filtered := hierarchy.FilterUpdate(actor.Designation, patch)
	if dropped := len(patch) - len(filtered); dropped > 0 {
		log.Warn("edit fields dropped by policy",
			zap.String("actor_designation", actor.Designation),
			zap.Int("dropped", dropped),
		)
	}

	if (req.Designation != nil || req.ReportingPersonID != nil) && !isManagement {
		return nil, employeeerrors.ErrManagementOnly
	}

	before := target.AuditState()
	fields := make(map[string]any, len(filtered)+3)
	for col, val := range filtered {
		fields[col] = val
		applyPolicyField(target, col, val)
	}

	if req.Designation != nil {
		fields["designation"] = *req.Designation
		target.Designation = *req.Designation
	}
	if req.ReportingPersonID != nil {
		if *req.ReportingPersonID == "" {
			fields["reporting_person_id"] = nil
			fields["reporting_role"] = ""
			target.ReportingPersonID = nil
			target.ReportingRole = ""
		} else {
			reportingID, parseErr := uuid.Parse(*req.ReportingPersonID)
			if parseErr != nil {
				return nil, employeeerrors.ErrInvalidEmployeeID
			}
			reportingPerson, findErr := s.repo.FindByID(ctx, reportingID)
			if findErr != nil {
				if isNotFound(findErr) {
					return nil, employeeerrors.ErrReportingPersonNotFound
				}
				return nil, mapRepositoryError(findErr)
			}
			if reportingPerson.IsDeleted {
				return nil, employeeerrors.ErrReportingPersonNotFound
			}
			if edgeErr := hierarchy.ValidateReportingEdge(target.Designation, reportingPerson.Designation); edgeErr != nil {
				return nil, edgeErr
			}
			fields["reporting_person_id"] = reportingPerson.ID
			fields["reporting_role"] = reportingPerson.Designation
			target.ReportingPersonID = &reportingPerson.ID
			target.ReportingRole = reportingPerson.Designation
		}
	} else if req.Designation != nil && target.ReportingPersonID != nil {
		// Re-check the existing edge under the new designation.
		reportingPerson, findErr := s.repo.FindByID(ctx, *target.ReportingPersonID)
		if findErr != nil {
			return nil, mapRepositoryError(findErr)
		}
		if edgeErr := hierarchy.ValidateReportingEdge(target.Designation, reportingPerson.Designation); edgeErr != nil {
			return nil, edgeErr
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if target.ReportingPersonID != nil && (req.Designation != nil || req.ReportingPersonID != nil) {
		// Same commit-time rule as registration: the edge is re-checked
		// under a row lock on the reporting person.
		lockedDesignation, lockErr := qtx.DesignationForUpdate(ctx, *target.ReportingPersonID)
		if lockErr != nil {
			if errors.Is(lockErr, sql.ErrNoRows) {
				return nil, employeeerrors.ErrReportingPersonNotFound
			}
			return nil, mapRepositoryError(lockErr)
		}
		if edgeErr := hierarchy.ValidateReportingEdge(target.Designation, lockedDesignation); edgeErr != nil {
			return nil, edgeErr
		}
		fields["reporting_role"] = lockedDesignation
		target.ReportingRole = lockedDesignation
	}
	if len(fields) > 0 {
		if err := qtx.UpdateFields(ctx, target.ID, fields); err != nil {
			log.Error("employee update failed", zap.String("target_id", targetID.String()), zap.Error(err))
			return nil, mapRepositoryError(err)
		}
	}
	if err := s.auditor.Snapshot(ctx, tx, target, &actorID, audit.ActionAdminEdit, before); err != nil {
		return nil, mapRepositoryError(err)
	}
	if err := s.auditor.Log(ctx, tx, target.ID, audit.ActionAdminEdit); err != nil {
		return nil, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx)

	log.Info("employee edited",
		zap.String("target_id", targetID.String()),
		zap.String("actor_id", actorID.String()),
		zap.Int("fields_applied", len(fields)),
	)
	return toResponse(target), nil
}

func (s *service) SoftDelete(ctx context.Context, actorID uuid.UUID, targetID uuid.UUID) error {
	log := contextutil.GetLogger(ctx, s.logger)

	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return err
	}
	if !s.gate.IsManagement(actor.Designation) {
		log.Warn("soft delete denied",
			zap.String("actor_id", actorID.String()),
			zap.String("designation", actor.Designation),
		)
		return employeeerrors.ErrManagementOnly
	}

	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if target.IsDeleted {
		return employeeerrors.ErrAlreadyDeleted
	}

	before := target.AuditState()
	now := time.Now().UTC()
	target.IsDeleted = true
	target.DeletedAt = &now
	target.DeletedByID = &actorID

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.MarkDeleted(ctx, target.ID, actorID, now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return employeeerrors.ErrAlreadyDeleted
		}
		return mapRepositoryError(err)
	}
	if err := s.auditor.Snapshot(ctx, tx, target, &actorID, audit.ActionSoftDelete, before); err != nil {
		return mapRepositoryError(err)
	}
	if err := s.auditor.Log(ctx, tx, target.ID, audit.ActionSoftDelete); err != nil {
		return mapRepositoryError(err)
	}
	if err := s.enqueueLifecycleEvent(ctx, tx, target, actorID, events.EmployeeDeactivated); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return mapRepositoryError(err)
	}

	s.invalidateOptions(ctx)

	log.Info("employee soft deleted",
		zap.String("target_id", targetID.String()),
		zap.String("actor_id", actorID.String()),
	)
	return nil
}

func (s *service) Restore(ctx context.Context, actorID uuid.UUID, targetID uuid.UUID) error {
	log := contextutil.GetLogger(ctx, s.logger)

	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return err
	}
	if !s.gate.IsManagement(actor.Designation) {
		return employeeerrors.ErrManagementOnly
	}

	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if !target.IsDeleted {
		return employeeerrors.ErrNotDeleted
	}

	before := target.AuditState()
	target.IsDeleted = false
	target.DeletedAt = nil
	target.DeletedByID = nil

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.MarkRestored(ctx, target.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return employeeerrors.ErrNotDeleted
		}
		return mapRepositoryError(err)
	}
	if err := s.auditor.Snapshot(ctx, tx, target, &actorID, audit.ActionRestore, before); err != nil {
		return mapRepositoryError(err)
	}
	if err := s.auditor.Log(ctx, tx, target.ID, audit.ActionRestore); err != nil {
		return mapRepositoryError(err)
	}
	if err := s.enqueueLifecycleEvent(ctx, tx, target, actorID, events.EmployeeRestored); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return mapRepositoryError(err)
	}

	s.invalidateOptions(ctx)

	log.Info("employee restored",
		zap.String("target_id", targetID.String()),
		zap.String("actor_id", actorID.String()),
	)
	return nil
}

func (s *service) GetAll(ctx context.Context, actorID uuid.UUID) ([]EmployeeResponse, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	includeDeleted := s.gate.IsManagement(actor.Designation)
	employees, err := s.repo.FindAll(ctx, includeDeleted)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	responses := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		responses = append(responses, *toResponse(&employees[i]))
	}
	return responses, nil
}

func (s *service) GetByID(ctx context.Context, actorID uuid.UUID, targetID uuid.UUID) (*EmployeeResponse, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if target.IsDeleted && !s.gate.IsManagement(actor.Designation) {
		return nil, employeeerrors.ErrEmployeeNotFound
	}
	return toResponse(target), nil
}

func (s *service) GetByNumber(ctx context.Context, actorID uuid.UUID, employeeNumber string) (*EmployeeResponse, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	target, err := s.repo.FindByNumber(ctx, employeeNumber)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if target.IsDeleted && !s.gate.IsManagement(actor.Designation) {
		return nil, employeeerrors.ErrEmployeeNotFound
	}
	return toResponse(target), nil
}

// GetOptions serves the dropdown list through a short-lived cache. Cache
// failures fall through to the database; singleflight collapses concurrent
// misses into one query.
func (s *service) GetOptions(ctx context.Context) ([]EmployeeOption, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, optionsCacheKey).Bytes()
		if err == nil {
			var options []EmployeeOption
			if err := json.Unmarshal(cached, &options); err == nil {
				return options, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Warn("options cache read failed", zap.Error(err))
		}
	}

	result, err, _ := s.sf.Do(optionsCacheKey, func() (any, error) {
		options, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, err
		}
		if s.rdb != nil {
			if payload, err := json.Marshal(options); err == nil {
				if err := s.rdb.Set(ctx, optionsCacheKey, payload, optionsCacheTTL).Err(); err != nil {
					log.Warn("options cache write failed", zap.Error(err))
				}
			}
		}
		return options, nil
	})
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return result.([]EmployeeOption), nil
}

func (s *service) loadActor(ctx context.Context, actorID uuid.UUID) (*Employee, error) {
	actor, err := s.repo.FindByID(ctx, actorID)
	if err != nil {
		if isNotFound(err) {
			return nil, employeeerrors.ErrActorNotFound
		}
		return nil, mapRepositoryError(err)
	}
	if actor.IsDeleted {
		return nil, employeeerrors.ErrActorNotFound
	}
	return actor, nil
}

func (s *service) enqueueLifecycleEvent(ctx context.Context, tx *sql.Tx, emp *Employee, actorID uuid.UUID, eventType string) error {
	payload, err := json.Marshal(events.EmployeeLifecycleEvent{
		EventType:      eventType,
		RequestID:      contextutil.GetRequestID(ctx),
		EmployeeID:     emp.ID.String(),
		EmployeeNumber: emp.EmployeeNumber,
		ActorID:        actorID.String(),
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "employee",
		AggregateID:   emp.ID.String(),
		EventType:     eventType,
		Topic:         events.EmployeeLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, optionsCacheKey).Err(); err != nil {
		s.logger.Warn("options cache invalidation failed", zap.Error(err))
	}
}

// policyPatch collects the policy-governed fields from a partial update
// into the flat form the field policy filters on.
func policyPatch(req AdminEditEmployeeRequest) map[string]string {
	patch := make(map[string]string)
	if req.ContactNumber != nil {
		patch[hierarchy.FieldContactNumber] = *req.ContactNumber
	}
	if req.EmergencyContactNumber != nil {
		patch[hierarchy.FieldEmergencyContactNumber] = *req.EmergencyContactNumber
	}
	if req.ResidentialAddress != nil {
		patch[hierarchy.FieldResidentialAddress] = *req.ResidentialAddress
	}
	if req.PermanentAddress != nil {
		patch[hierarchy.FieldPermanentAddress] = *req.PermanentAddress
	}
	if req.Client != nil {
		patch[hierarchy.FieldClient] = *req.Client
	}
	if req.Department != nil {
		patch[hierarchy.FieldDepartment] = *req.Department
	}
	return patch
}

func applyPolicyField(emp *Employee, field, value string) {
	switch field {
	case hierarchy.FieldContactNumber:
		emp.ContactNumber = value
	case hierarchy.FieldEmergencyContactNumber:
		emp.EmergencyContactNumber = value
	case hierarchy.FieldResidentialAddress:
		emp.ResidentialAddress = value
	case hierarchy.FieldPermanentAddress:
		emp.PermanentAddress = value
	case hierarchy.FieldClient:
		emp.Client = value
	case hierarchy.FieldDepartment:
		emp.Department = value
	}
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, employeeerrors.ErrInvalidDateFormat
	}
	return &parsed, nil
}

func formatDate(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.Format(dateLayout)
	return &formatted
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound)
}

func toResponse(emp *Employee) *EmployeeResponse {
	resp := &EmployeeResponse{
		ID:                     emp.ID.String(),
		EmployeeNumber:         emp.EmployeeNumber,
		Name:                   emp.Name,
		DateOfBirth:            formatDate(emp.DateOfBirth),
		BloodGroup:             emp.BloodGroup,
		MaritalStatus:          emp.MaritalStatus,
		Email:                  emp.Email,
		ResidentialAddress:     emp.ResidentialAddress,
		PermanentAddress:       emp.PermanentAddress,
		ContactNumber:          emp.ContactNumber,
		EmergencyContactNumber: emp.EmergencyContactNumber,
		Designation:            emp.Designation,
		Department:             emp.Department,
		Client:                 emp.Client,
		ReportingRole:          emp.ReportingRole,
		JoiningDate:            formatDate(emp.JoiningDate),
		EndingDate:             formatDate(emp.EndingDate),
		EmploymentStatus:       emp.EmploymentStatus,
		ForcePasswordReset:     emp.ForcePasswordReset,
		HasLogin:               emp.CredentialID != nil,
		IsDeleted:              emp.IsDeleted,
	}
	if emp.ReportingPersonID != nil {
		id := emp.ReportingPersonID.String()
		resp.ReportingPersonID = &id
	}
	if emp.DeletedAt != nil {
		at := emp.DeletedAt.UTC().Format(time.RFC3339)
		resp.DeletedAt = &at
	}
	if emp.DeletedByID != nil {
		id := emp.DeletedByID.String()
		resp.DeletedByID = &id
	}
	return resp
}
