package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	autherrors "go-workforce/internal/auth/errors"
	"go-workforce/internal/employee"
	employeeerrors "go-workforce/internal/employee/errors"
	"go-workforce/internal/gate"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/contextutil"
)

const usernameDomain = "@ward.in"

// EmployeeDirectory is the slice of the employee store auth needs.
type EmployeeDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error)
}

//go:generate mockgen -source=auth_service.go -destination=mocks/auth_service_mock.go -package=mocks

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (*LoginResponse, error)

	CreateLogin(ctx context.Context, actorID uuid.UUID, req CreateLoginRequest) (*CreateLoginResponse, error)
	ChangePassword(ctx context.Context, actorID uuid.UUID, req ChangePasswordRequest) error
	AdminResetPassword(ctx context.Context, actorID uuid.UUID, req AdminResetPasswordRequest) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees EmployeeDirectory
	gate      gate.Service
	tokens    *tokenIssuer
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees EmployeeDirectory,
	gateSvc gate.Service,
	tokenCfg TokenConfig,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		gate:      gateSvc,
		tokens:    newTokenIssuer(tokenCfg),
		logger:    l,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	cred, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if isNotFound(err) {
			log.Warn("login for unknown username", zap.String("username", req.Username))
			return nil, autherrors.ErrInvalidCredentials
		}
		return nil, wrapStorage(err)
	}

	emp, err := s.employees.FindByID(ctx, cred.EmployeeID)
	if err != nil {
		if isNotFound(err) {
			return nil, autherrors.ErrInvalidCredentials
		}
		return nil, wrapStorage(err)
	}
	if emp.IsDeleted {
		return nil, autherrors.ErrInvalidCredentials
	}
	if emp.IsLocked {
		log.Warn("login on locked account", zap.String("employee_id", emp.ID.String()))
		return nil, autherrors.ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		attempts, locked, recErr := s.repo.RecordFailedLogin(ctx, emp.ID, MaxFailedAttempts)
		if recErr != nil {
			return nil, wrapStorage(recErr)
		}
		log.Warn("failed login",
			zap.String("employee_id", emp.ID.String()),
			zap.Int("attempts", attempts),
			zap.Bool("locked", locked),
		)
		if locked {
			return nil, autherrors.ErrAccountLocked
		}
		return nil, autherrors.ErrInvalidCredentials
	}

	if emp.FailedLoginAttempts > 0 {
		if err := s.repo.ResetLoginState(ctx, emp.ID); err != nil {
			return nil, wrapStorage(err)
		}
	}

	access, refresh, err := s.tokens.issuePair(emp.ID, emp.Designation, emp.Department)
	if err != nil {
		return nil, wrapStorage(err)
	}

	log.Info("login succeeded", zap.String("employee_id", emp.ID.String()))
	return &LoginResponse{
		AccessToken:        access,
		RefreshToken:       refresh,
		ForcePasswordReset: emp.ForcePasswordReset,
	}, nil
}

func (s *service) Refresh(ctx context.Context, req RefreshRequest) (*LoginResponse, error) {
	claims, err := ParseToken(s.tokens.cfg.Secret, req.RefreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Kind != tokenKindRefresh {
		return nil, autherrors.ErrInvalidToken
	}

	employeeID, err := uuid.Parse(claims.EmployeeID)
	if err != nil {
		return nil, autherrors.ErrInvalidToken
	}
	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if isNotFound(err) {
			return nil, autherrors.ErrInvalidToken
		}
		return nil, wrapStorage(err)
	}
	if emp.IsDeleted || emp.IsLocked {
		return nil, autherrors.ErrInvalidToken
	}

	access, refresh, err := s.tokens.issuePair(emp.ID, emp.Designation, emp.Department)
	if err != nil {
		return nil, wrapStorage(err)
	}
	return &LoginResponse{
		AccessToken:        access,
		RefreshToken:       refresh,
		ForcePasswordReset: emp.ForcePasswordReset,
	}, nil
}

func (s *service) CreateLogin(ctx context.Context, actorID uuid.UUID, req CreateLoginRequest) (*CreateLoginResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	actor, err := s.loadEmployee(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !s.gate.CanAccessAdminPanel(actor.Designation, actor.Department) {
		return nil, employeeerrors.ErrAdminPanelRequired
	}

	targetID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}
	target, err := s.loadEmployee(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByEmployeeID(ctx, targetID); err == nil {
		return nil, autherrors.ErrLoginExists
	} else if !isNotFound(err) {
		return nil, wrapStorage(err)
	}

	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	username, err := s.nextUsername(ctx, target.Name)
	if err != nil {
		return nil, wrapStorage(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, wrapStorage(err)
	}

	cred := &Credential{
		ID:           uuid.New(),
		EmployeeID:   targetID,
		Username:     username,
		PasswordHash: string(hash),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, wrapStorage(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.CreateCredential(ctx, cred); err != nil {
		log.Error("credential create failed", zap.String("employee_id", targetID.String()), zap.Error(err))
		return nil, wrapStorage(err)
	}
	if err := qtx.BindCredential(ctx, targetID, cred.ID); err != nil {
		return nil, wrapStorage(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, wrapStorage(err)
	}

	log.Info("login created",
		zap.String("employee_id", targetID.String()),
		zap.String("username", username),
	)
	return &CreateLoginResponse{Username: username}, nil
}

func (s *service) ChangePassword(ctx context.Context, actorID uuid.UUID, req ChangePasswordRequest) error {
	log := contextutil.GetLogger(ctx, s.logger)

	cred, err := s.repo.FindByEmployeeID(ctx, actorID)
	if err != nil {
		if isNotFound(err) {
			return autherrors.ErrNoLogin
		}
		return wrapStorage(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return autherrors.ErrInvalidCredentials
	}
	if err := validatePassword(req.NewPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return wrapStorage(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapStorage(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.UpdatePassword(ctx, cred.ID, string(hash)); err != nil {
		return wrapStorage(err)
	}
	if err := qtx.SetForcePasswordReset(ctx, actorID, false); err != nil {
		return wrapStorage(err)
	}

	if err := tx.Commit(); err != nil {
		return wrapStorage(err)
	}

	log.Info("password changed", zap.String("employee_id", actorID.String()))
	return nil
}

func (s *service) AdminResetPassword(ctx context.Context, actorID uuid.UUID, req AdminResetPasswordRequest) error {
	log := contextutil.GetLogger(ctx, s.logger)

	actor, err := s.loadEmployee(ctx, actorID)
	if err != nil {
		return err
	}
	if !s.gate.IsManagement(actor.Designation) {
		return employeeerrors.ErrManagementOnly
	}

	targetID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}
	cred, err := s.repo.FindByEmployeeID(ctx, targetID)
	if err != nil {
		if isNotFound(err) {
			return autherrors.ErrNoLogin
		}
		return wrapStorage(err)
	}

	if err := validatePassword(req.NewPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return wrapStorage(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapStorage(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.UpdatePassword(ctx, cred.ID, string(hash)); err != nil {
		return wrapStorage(err)
	}
	if err := qtx.SetForcePasswordReset(ctx, targetID, true); err != nil {
		return wrapStorage(err)
	}
	if err := qtx.Unlock(ctx, targetID); err != nil {
		return wrapStorage(err)
	}

	if err := tx.Commit(); err != nil {
		return wrapStorage(err)
	}

	log.Info("password reset by admin",
		zap.String("employee_id", targetID.String()),
		zap.String("actor_id", actorID.String()),
	)
	return nil
}

func (s *service) loadEmployee(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	emp, err := s.employees.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, wrapStorage(err)
	}
	if emp.IsDeleted {
		return nil, employeeerrors.ErrEmployeeNotFound
	}
	return emp, nil
}

// nextUsername derives the login name from the employee's first name and
// appends the lowest free counter.
func (s *service) nextUsername(ctx context.Context, name string) (string, error) {
	base := usernameBase(name)
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s%d%s", base, n, usernameDomain)
		exists, err := s.repo.UsernameExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
}

func usernameBase(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	base := "employee"
	if len(fields) > 0 {
		base = fields[0]
	}
	var b strings.Builder
	for _, r := range base {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "employee"
	}
	return b.String()
}

// validatePassword enforces the policy: 8-16 characters, at least one
// uppercase letter and one symbol.
func validatePassword(password string) error {
	if len(password) < 8 || len(password) > 16 {
		return autherrors.ErrWeakPassword
	}
	var hasUpper, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	if !hasUpper || !hasSymbol {
		return autherrors.ErrWeakPassword
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound)
}

func wrapStorage(err error) error {
	return apperror.Wrap(err, apperror.CodeInternalError, "auth storage failure", http.StatusInternalServerError)
}
