package gate

import (
	"sync"

	"go-workforce/internal/hierarchy"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/zap"
)

// Capability resources and actions enforced at the routes.
const (
	ResourceAdminPanel = "admin_panel"
	ResourceTask       = "task"
	ResourceEmployee   = "employee"

	ActionAccess     = "access"
	ActionManage     = "manage"
	ActionWorkspace  = "workspace"
	ActionSoftDelete = "soft_delete"
)

const tierManagement = "tier:management"
const tierTaskManagement = "tier:task_management"
const tierTaskExecution = "tier:task_execution"

const casbinModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Capability sets, keyed by designation. Changing who can do what is a
// table edit here, mirrored into casbin policy at construction.
var (
	managementDesignations = []string{
		hierarchy.DesignationVicePresident,
		hierarchy.DesignationPresident,
		hierarchy.DesignationCEO,
	}
	taskManagementDesignations = []string{
		hierarchy.DesignationTeamLeader,
		hierarchy.DesignationManager,
		hierarchy.DesignationVicePresident,
	}
	taskExecutionDesignations = []string{
		hierarchy.DesignationAssociate,
		hierarchy.DesignationSeniorAssociate,
		hierarchy.DesignationTeamLeader,
		hierarchy.DesignationManager,
		hierarchy.DesignationVicePresident,
	}
)

//go:generate mockgen -source=gate_service.go -destination=mock/gate_service_mock.go -package=mock
type Service interface {
	Enforce(designation, resource, action string) (bool, error)
	IsManagement(designation string) bool
	CanAccessAdminPanel(designation, department string) bool
	CanManageTasks(designation string) bool
	CanAccessTaskWorkspace(designation string) bool
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewService builds the enforcer and loads the static capability policy.
// Policy rows are derived from the designation sets above; the enforcer is
// read-only after construction.
func NewService(logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("gate.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("gate.service")
	}

	m, err := model.NewModelFromString(casbinModel)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	groupings := map[string][]string{
		tierManagement:     managementDesignations,
		tierTaskManagement: taskManagementDesignations,
		tierTaskExecution:  taskExecutionDesignations,
	}
	for tier, designations := range groupings {
		for _, d := range designations {
			if _, err := enforcer.AddGroupingPolicy(d, tier); err != nil {
				return nil, err
			}
		}
	}

	policies := [][]string{
		{tierManagement, ResourceAdminPanel, ActionAccess},
		{tierManagement, ResourceEmployee, ActionSoftDelete},
		{tierTaskManagement, ResourceTask, ActionManage},
		{tierTaskExecution, ResourceTask, ActionWorkspace},
	}
	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer, logger: l}, nil
}

func (s *service) Enforce(designation, resource, action string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(designation, resource, action)
	if err != nil {
		s.logger.Error("enforce failed",
			zap.String("designation", designation),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return false, err
	}
	return allowed, nil
}

func (s *service) IsManagement(designation string) bool {
	allowed, _ := s.Enforce(designation, ResourceEmployee, ActionSoftDelete)
	return allowed
}

// CanAccessAdminPanel admits the administrative department (excluding the
// CEO, who is routed through the management rule) and the management tier.
func (s *service) CanAccessAdminPanel(designation, department string) bool {
	if department == hierarchy.DepartmentAdmin && designation != hierarchy.DesignationCEO {
		return true
	}
	allowed, _ := s.Enforce(designation, ResourceAdminPanel, ActionAccess)
	return allowed
}

func (s *service) CanManageTasks(designation string) bool {
	allowed, _ := s.Enforce(designation, ResourceTask, ActionManage)
	return allowed
}

func (s *service) CanAccessTaskWorkspace(designation string) bool {
	allowed, _ := s.Enforce(designation, ResourceTask, ActionWorkspace)
	return allowed
}
