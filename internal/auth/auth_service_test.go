package auth_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/kingxjullien14/nkp-ems/internal/auth"
	autherrors "github.com/kingxjullien14/nkp-ems/internal/auth/errors"
	"github.com/kingxjullien14/nkp-ems/internal/employee"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeAuthRepo struct {
	findAdminByCodeFn func(ctx context.Context, adminCode string) (*auth.Admin, error)
}

func (f *fakeAuthRepo) FindAdminByCode(ctx context.Context, adminCode string) (*auth.Admin, error) {
	return f.findAdminByCodeFn(ctx, adminCode)
}

type fakeEmployeeRepo struct {
	findByCodeFn func(ctx context.Context, empCode string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, empl *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) FindByCode(ctx context.Context, empCode string) (*employee.Employee, error) {
	return f.findByCodeFn(ctx, empCode)
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, empl *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) Delete(ctx context.Context, empCode string) error          { return nil }
func (f *fakeEmployeeRepo) CountDependents(ctx context.Context, empCode string) (int64, error) {
	return 0, nil
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(h)
}

func TestService_Login_AdminWins(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	adminRepo := &fakeAuthRepo{
		findAdminByCodeFn: func(ctx context.Context, code string) (*auth.Admin, error) {
			return &auth.Admin{AdminCode: code, Password: hash(t, "s3cret")}, nil
		},
	}
	emplRepo := &fakeEmployeeRepo{
		findByCodeFn: func(ctx context.Context, code string) (*employee.Employee, error) {
			t.Fatal("employee lookup must not run when an admin matches")
			return nil, nil
		},
	}

	svc := auth.NewService(adminRepo, emplRepo, nil)

	access, refresh, resp, err := svc.Login(ctx, "ADM-01", "s3cret")
	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, auth.RoleAdmin, resp.Role)
	assert.Equal(t, "ADM-01", resp.Code)
}

func TestService_Login_AdminMismatchFallsThroughToEmployee(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	// the same code lives in both tables with different passwords
	adminRepo := &fakeAuthRepo{
		findAdminByCodeFn: func(ctx context.Context, code string) (*auth.Admin, error) {
			return &auth.Admin{AdminCode: code, Password: hash(t, "admin-secret")}, nil
		},
	}
	emplRepo := &fakeEmployeeRepo{
		findByCodeFn: func(ctx context.Context, code string) (*employee.Employee, error) {
			return &employee.Employee{
				EmpCode:  code,
				Password: hash(t, "emp-secret"),
				FullName: "Aye Chan",
			}, nil
		},
	}

	svc := auth.NewService(adminRepo, emplRepo, nil)

	_, _, resp, err := svc.Login(ctx, "X001", "emp-secret")
	assert.NoError(t, err)
	assert.Equal(t, auth.RoleEmployee, resp.Role)
	assert.Equal(t, "X001", resp.Code)
	assert.Equal(t, "Aye Chan", resp.FullName)
}

func TestService_Login_WrongPasswordEverywhere(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	adminRepo := &fakeAuthRepo{
		findAdminByCodeFn: func(ctx context.Context, code string) (*auth.Admin, error) {
			return &auth.Admin{AdminCode: code, Password: hash(t, "admin-secret")}, nil
		},
	}
	emplRepo := &fakeEmployeeRepo{
		findByCodeFn: func(ctx context.Context, code string) (*employee.Employee, error) {
			return &employee.Employee{EmpCode: code, Password: hash(t, "emp-secret")}, nil
		},
	}

	svc := auth.NewService(adminRepo, emplRepo, nil)

	_, _, _, err := svc.Login(ctx, "X001", "wrong")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestService_Login_EmployeeFallback(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	adminRepo := &fakeAuthRepo{
		findAdminByCodeFn: func(ctx context.Context, code string) (*auth.Admin, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	emplRepo := &fakeEmployeeRepo{
		findByCodeFn: func(ctx context.Context, code string) (*employee.Employee, error) {
			return &employee.Employee{
				EmpCode:  code,
				Password: hash(t, "hunter2"),
				FullName: "Aye Chan",
			}, nil
		},
	}

	svc := auth.NewService(adminRepo, emplRepo, nil)

	_, _, resp, err := svc.Login(ctx, "EMP-000001", "hunter2")
	assert.NoError(t, err)
	assert.Equal(t, auth.RoleEmployee, resp.Role)
	assert.Equal(t, "Aye Chan", resp.FullName)
}

func TestService_Login_UnknownPrincipal(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	adminRepo := &fakeAuthRepo{
		findAdminByCodeFn: func(ctx context.Context, code string) (*auth.Admin, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	emplRepo := &fakeEmployeeRepo{
		findByCodeFn: func(ctx context.Context, code string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := auth.NewService(adminRepo, emplRepo, nil)

	_, _, _, err := svc.Login(ctx, "nobody", "whatever")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestService_RefreshToken_RoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	adminRepo := &fakeAuthRepo{
		findAdminByCodeFn: func(ctx context.Context, code string) (*auth.Admin, error) {
			return &auth.Admin{AdminCode: code, Password: hash(t, "s3cret")}, nil
		},
	}
	emplRepo := &fakeEmployeeRepo{}

	svc := auth.NewService(adminRepo, emplRepo, nil)

	_, refresh, _, err := svc.Login(ctx, "ADM-01", "s3cret")
	assert.NoError(t, err)

	access2, refresh2, resp, err := svc.RefreshToken(ctx, refresh)
	assert.NoError(t, err)
	assert.NotEmpty(t, access2)
	assert.NotEmpty(t, refresh2)
	assert.Equal(t, auth.RoleAdmin, resp.Role)
}

func TestService_RefreshToken_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := auth.NewService(&fakeAuthRepo{}, &fakeEmployeeRepo{}, nil)

	_, _, _, err := svc.RefreshToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
}
