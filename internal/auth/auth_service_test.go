package auth

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	autherrors "go-workforce/internal/auth/errors"
	"go-workforce/internal/employee"
	employeeerrors "go-workforce/internal/employee/errors"
	"go-workforce/internal/gate"
	"go-workforce/internal/hierarchy"
)

type fakeAuthRepo struct {
	credentials map[uuid.UUID]*Credential
	employees   map[uuid.UUID]*employee.Employee
}

func newFakeAuthRepo(employees map[uuid.UUID]*employee.Employee) *fakeAuthRepo {
	return &fakeAuthRepo{
		credentials: make(map[uuid.UUID]*Credential),
		employees:   employees,
	}
}

func (f *fakeAuthRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeAuthRepo) CreateCredential(ctx context.Context, cred *Credential) error {
	f.credentials[cred.ID] = cred
	return nil
}

func (f *fakeAuthRepo) FindByUsername(ctx context.Context, username string) (*Credential, error) {
	for _, cred := range f.credentials {
		if cred.Username == username {
			return cred, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAuthRepo) FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) (*Credential, error) {
	for _, cred := range f.credentials {
		if cred.EmployeeID == employeeID {
			return cred, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAuthRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := f.FindByUsername(ctx, username)
	return err == nil, nil
}

func (f *fakeAuthRepo) UpdatePassword(ctx context.Context, credentialID uuid.UUID, passwordHash string) error {
	cred, ok := f.credentials[credentialID]
	if !ok {
		return sql.ErrNoRows
	}
	cred.PasswordHash = passwordHash
	return nil
}

func (f *fakeAuthRepo) RecordFailedLogin(ctx context.Context, employeeID uuid.UUID, lockThreshold int) (int, bool, error) {
	emp := f.employees[employeeID]
	emp.FailedLoginAttempts++
	if emp.FailedLoginAttempts >= lockThreshold {
		emp.IsLocked = true
	}
	return emp.FailedLoginAttempts, emp.IsLocked, nil
}

func (f *fakeAuthRepo) ResetLoginState(ctx context.Context, employeeID uuid.UUID) error {
	f.employees[employeeID].FailedLoginAttempts = 0
	return nil
}

func (f *fakeAuthRepo) SetForcePasswordReset(ctx context.Context, employeeID uuid.UUID, forced bool) error {
	f.employees[employeeID].ForcePasswordReset = forced
	return nil
}

func (f *fakeAuthRepo) BindCredential(ctx context.Context, employeeID uuid.UUID, credentialID uuid.UUID) error {
	emp := f.employees[employeeID]
	emp.CredentialID = &credentialID
	emp.ForcePasswordReset = true
	return nil
}

func (f *fakeAuthRepo) Unlock(ctx context.Context, employeeID uuid.UUID) error {
	emp := f.employees[employeeID]
	emp.IsLocked = false
	emp.FailedLoginAttempts = 0
	return nil
}

type authDirectory struct {
	employees map[uuid.UUID]*employee.Employee
}

func (d *authDirectory) FindByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	emp, ok := d.employees[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return emp, nil
}

type authFixture struct {
	svc  Service
	repo *fakeAuthRepo
	mock sqlmock.Sqlmock

	admin  *employee.Employee
	member *employee.Employee
}

const testPassword = "Sunny!Day42"

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gateSvc, err := gate.NewService()
	assert.NoError(t, err)

	admin := &employee.Employee{
		ID:          uuid.New(),
		Name:        "Priya Sharma",
		Designation: hierarchy.DesignationHR,
		Department:  hierarchy.DepartmentAdmin,
	}
	member := &employee.Employee{
		ID:          uuid.New(),
		Name:        "Arun Kumar",
		Designation: hierarchy.DesignationAssociate,
		Department:  hierarchy.DepartmentIT,
	}

	employees := map[uuid.UUID]*employee.Employee{
		admin.ID:  admin,
		member.ID: member,
	}
	repo := newFakeAuthRepo(employees)
	directory := &authDirectory{employees: employees}

	svc := NewService(db, repo, directory, gateSvc, TokenConfig{Secret: "test-secret"})
	return &authFixture{svc: svc, repo: repo, mock: mock, admin: admin, member: member}
}

func (fx *authFixture) createLogin(t *testing.T, target *employee.Employee) string {
	t.Helper()
	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()
	resp, err := fx.svc.CreateLogin(context.Background(), fx.admin.ID, CreateLoginRequest{
		EmployeeID: target.ID.String(),
		Password:   testPassword,
	})
	assert.NoError(t, err)
	return resp.Username
}

func TestCreateLoginGeneratesUsername(t *testing.T) {
	fx := newAuthFixture(t)

	username := fx.createLogin(t, fx.member)

	assert.Equal(t, "arun1@ward.in", username)
	assert.True(t, fx.member.ForcePasswordReset)
	assert.NotNil(t, fx.member.CredentialID)
}

func TestCreateLoginIncrementsUsernameCounter(t *testing.T) {
	fx := newAuthFixture(t)
	other := &employee.Employee{
		ID:          uuid.New(),
		Name:        "Arun Verma",
		Designation: hierarchy.DesignationAssociate,
	}
	fx.repo.employees[other.ID] = other

	first := fx.createLogin(t, fx.member)
	second := fx.createLogin(t, other)

	assert.Equal(t, "arun1@ward.in", first)
	assert.Equal(t, "arun2@ward.in", second)
}

func TestCreateLoginRejectsWeakPassword(t *testing.T) {
	fx := newAuthFixture(t)

	for _, password := range []string{"short!A", "nouppercase1!", "NoSymbolHere1", "WayTooLongPassword!!"} {
		_, err := fx.svc.CreateLogin(context.Background(), fx.admin.ID, CreateLoginRequest{
			EmployeeID: fx.member.ID.String(),
			Password:   password,
		})
		assert.ErrorIs(t, err, autherrors.ErrWeakPassword, password)
	}
}

func TestCreateLoginTwiceFails(t *testing.T) {
	fx := newAuthFixture(t)
	fx.createLogin(t, fx.member)

	_, err := fx.svc.CreateLogin(context.Background(), fx.admin.ID, CreateLoginRequest{
		EmployeeID: fx.member.ID.String(),
		Password:   testPassword,
	})

	assert.ErrorIs(t, err, autherrors.ErrLoginExists)
}

func TestCreateLoginRequiresAdminPanel(t *testing.T) {
	fx := newAuthFixture(t)

	_, err := fx.svc.CreateLogin(context.Background(), fx.member.ID, CreateLoginRequest{
		EmployeeID: fx.member.ID.String(),
		Password:   testPassword,
	})

	assert.ErrorIs(t, err, employeeerrors.ErrAdminPanelRequired)
}

func TestLoginIssuesTokens(t *testing.T) {
	fx := newAuthFixture(t)
	username := fx.createLogin(t, fx.member)

	resp, err := fx.svc.Login(context.Background(), LoginRequest{
		Username: username,
		Password: testPassword,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.True(t, resp.ForcePasswordReset)

	claims, err := ParseToken("test-secret", resp.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, fx.member.ID.String(), claims.EmployeeID)
	assert.Equal(t, hierarchy.DesignationAssociate, claims.Designation)
	assert.Equal(t, hierarchy.DepartmentIT, claims.Department)
}

func TestLoginUnknownUsername(t *testing.T) {
	fx := newAuthFixture(t)

	_, err := fx.svc.Login(context.Background(), LoginRequest{
		Username: "nobody1@ward.in",
		Password: testPassword,
	})

	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestLoginLocksAfterRepeatedFailures(t *testing.T) {
	fx := newAuthFixture(t)
	username := fx.createLogin(t, fx.member)

	var lastErr error
	for i := 0; i < MaxFailedAttempts; i++ {
		_, lastErr = fx.svc.Login(context.Background(), LoginRequest{
			Username: username,
			Password: "Wrong!Pass1",
		})
	}

	assert.ErrorIs(t, lastErr, autherrors.ErrAccountLocked)
	assert.True(t, fx.member.IsLocked)

	_, err := fx.svc.Login(context.Background(), LoginRequest{
		Username: username,
		Password: testPassword,
	})
	assert.ErrorIs(t, err, autherrors.ErrAccountLocked)
}

func TestLoginResetsFailureCountOnSuccess(t *testing.T) {
	fx := newAuthFixture(t)
	username := fx.createLogin(t, fx.member)

	_, _ = fx.svc.Login(context.Background(), LoginRequest{Username: username, Password: "Wrong!Pass1"})
	assert.Equal(t, 1, fx.member.FailedLoginAttempts)

	_, err := fx.svc.Login(context.Background(), LoginRequest{Username: username, Password: testPassword})
	assert.NoError(t, err)
	assert.Equal(t, 0, fx.member.FailedLoginAttempts)
}

func TestLoginRejectsDeletedEmployee(t *testing.T) {
	fx := newAuthFixture(t)
	username := fx.createLogin(t, fx.member)
	fx.member.IsDeleted = true

	_, err := fx.svc.Login(context.Background(), LoginRequest{
		Username: username,
		Password: testPassword,
	})

	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	fx := newAuthFixture(t)
	username := fx.createLogin(t, fx.member)

	login, err := fx.svc.Login(context.Background(), LoginRequest{Username: username, Password: testPassword})
	assert.NoError(t, err)

	_, err = fx.svc.Refresh(context.Background(), RefreshRequest{RefreshToken: login.AccessToken})
	assert.ErrorIs(t, err, autherrors.ErrInvalidToken)

	refreshed, err := fx.svc.Refresh(context.Background(), RefreshRequest{RefreshToken: login.RefreshToken})
	assert.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestChangePasswordClearsForceReset(t *testing.T) {
	fx := newAuthFixture(t)
	fx.createLogin(t, fx.member)
	assert.True(t, fx.member.ForcePasswordReset)

	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()
	err := fx.svc.ChangePassword(context.Background(), fx.member.ID, ChangePasswordRequest{
		CurrentPassword: testPassword,
		NewPassword:     "Fresh!Pass99",
	})

	assert.NoError(t, err)
	assert.False(t, fx.member.ForcePasswordReset)

	cred, err := fx.repo.FindByEmployeeID(context.Background(), fx.member.ID)
	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte("Fresh!Pass99")))
}

func TestChangePasswordRequiresCurrent(t *testing.T) {
	fx := newAuthFixture(t)
	fx.createLogin(t, fx.member)

	err := fx.svc.ChangePassword(context.Background(), fx.member.ID, ChangePasswordRequest{
		CurrentPassword: "Wrong!Pass1",
		NewPassword:     "Fresh!Pass99",
	})

	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestAdminResetUnlocksAndForcesReset(t *testing.T) {
	fx := newAuthFixture(t)
	fx.createLogin(t, fx.member)
	fx.member.IsLocked = true
	fx.member.FailedLoginAttempts = MaxFailedAttempts
	fx.member.ForcePasswordReset = false

	vp := &employee.Employee{
		ID:          uuid.New(),
		Name:        "VP",
		Designation: hierarchy.DesignationVicePresident,
		Department:  hierarchy.DepartmentManagement,
	}
	fx.repo.employees[vp.ID] = vp

	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()
	err := fx.svc.AdminResetPassword(context.Background(), vp.ID, AdminResetPasswordRequest{
		EmployeeID:  fx.member.ID.String(),
		NewPassword: "Fresh!Pass99",
	})

	assert.NoError(t, err)
	assert.False(t, fx.member.IsLocked)
	assert.Equal(t, 0, fx.member.FailedLoginAttempts)
	assert.True(t, fx.member.ForcePasswordReset)
}

func TestAdminResetRequiresManagement(t *testing.T) {
	fx := newAuthFixture(t)
	fx.createLogin(t, fx.member)

	err := fx.svc.AdminResetPassword(context.Background(), fx.admin.ID, AdminResetPasswordRequest{
		EmployeeID:  fx.member.ID.String(),
		NewPassword: "Fresh!Pass99",
	})

	assert.ErrorIs(t, err, employeeerrors.ErrManagementOnly)
}

func TestUsernameBaseStripsNonAlnum(t *testing.T) {
	assert.Equal(t, "omalley", usernameBase("O'Malley Kane"))
	assert.Equal(t, "employee", usernameBase("   "))
	assert.True(t, strings.HasPrefix(usernameBase("Ravi"), "ravi"))
}
