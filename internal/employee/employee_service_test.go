package employee_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/kingxjullien14/nkp-ems/internal/employee"
	employeeerrors "github.com/kingxjullien14/nkp-ems/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn          func(tx *sql.Tx) employee.Repository
	createFn          func(ctx context.Context, empl *employee.Employee) error
	findAllFn         func(ctx context.Context) ([]employee.Employee, error)
	findByCodeFn      func(ctx context.Context, empCode string) (*employee.Employee, error)
	updateFn          func(ctx context.Context, empl *employee.Employee) error
	deleteFn          func(ctx context.Context, empCode string) error
	countDependentsFn func(ctx context.Context, empCode string) (int64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) employee.Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, empl *employee.Employee) error {
	return f.createFn(ctx, empl)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) { return f.findAllFn(ctx) }
func (f *fakeRepo) FindByCode(ctx context.Context, empCode string) (*employee.Employee, error) {
	return f.findByCodeFn(ctx, empCode)
}
func (f *fakeRepo) Update(ctx context.Context, empl *employee.Employee) error { return f.updateFn(ctx, empl) }
func (f *fakeRepo) Delete(ctx context.Context, empCode string) error { return f.deleteFn(ctx, empCode) }
func (f *fakeRepo) CountDependents(ctx context.Context, empCode string) (int64, error) {
	return f.countDependentsFn(ctx, empCode)
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	return f.next, nil
}

func validCreateRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		Password:    "hunter22",
		FullName:    "Aye Chan",
		DOB:         "1992-05-01",
		Gender:      "female",
		Nationality: "Myanmar",
		Email:       "aye.chan@example.com",
		HourlyRate:  12.5,
	}
}

func TestService_Create_MintsCodeAndHashesPassword(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	var saved employee.Employee
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) employee.Repository { return repo }
	repo.createFn = func(ctx context.Context, empl *employee.Employee) error { saved = *empl; return nil }

	svc := employee.NewService(db, repo, &fakeCounter{next: 42})

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(ctx, validCreateRequest())
	assert.NoError(t, err)
	assert.Equal(t, "EMP-000042", resp.EmpCode)
	assert.NotEqual(t, "hunter22", saved.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("hunter22")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_BadDateRejected(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) employee.Repository { return repo }

	svc := employee.NewService(db, repo, &fakeCounter{next: 1})

	req := validCreateRequest()
	req.EmpCode = "EMP-000007"
	req.DOB = "01/05/1992"

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidDateFormat)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Update_RollsBackOnPersistFailure(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	stored := employee.Employee{EmpCode: "EMP-000001", FullName: "Old Name", Email: "old@example.com"}

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) employee.Repository { return repo }
	repo.findByCodeFn = func(ctx context.Context, empCode string) (*employee.Employee, error) {
		cp := stored
		return &cp, nil
	}
	repo.updateFn = func(ctx context.Context, empl *employee.Employee) error {
		return errors.New("connection reset")
	}

	svc := employee.NewService(db, repo, &fakeCounter{})

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Update(ctx, "EMP-000001", employee.UpdateEmployeeRequest{
		FullName:    "New Name",
		DOB:         "1992-05-01",
		Gender:      "female",
		Nationality: "Myanmar",
		Email:       "new@example.com",
	})
	assert.Error(t, err)
	assert.Equal(t, "Old Name", stored.FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Update_KeepsPasswordWhenBlank(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	var saved employee.Employee
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) employee.Repository { return repo }
	repo.findByCodeFn = func(ctx context.Context, empCode string) (*employee.Employee, error) {
		return &employee.Employee{EmpCode: empCode, Password: "existing-hash"}, nil
	}
	repo.updateFn = func(ctx context.Context, empl *employee.Employee) error { saved = *empl; return nil }

	svc := employee.NewService(db, repo, &fakeCounter{})

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.Update(ctx, "EMP-000001", employee.UpdateEmployeeRequest{
		FullName:    "Aye Chan",
		DOB:         "1992-05-01",
		Gender:      "female",
		Nationality: "Myanmar",
		Email:       "aye.chan@example.com",
	})
	assert.NoError(t, err)
	assert.Equal(t, "existing-hash", saved.Password)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Delete_RefusedWithDependents(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) employee.Repository { return repo }
	repo.findByCodeFn = func(ctx context.Context, empCode string) (*employee.Employee, error) {
		return &employee.Employee{EmpCode: empCode}, nil
	}
	repo.countDependentsFn = func(ctx context.Context, empCode string) (int64, error) { return 3, nil }
	repo.deleteFn = func(ctx context.Context, empCode string) error {
		return errors.New("delete must not run with dependents")
	}

	svc := employee.NewService(db, repo, &fakeCounter{})

	mock.ExpectBegin()
	mock.ExpectRollback()
	err := svc.Delete(ctx, "EMP-000001")
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeHasDependents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Delete_Unknown(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) employee.Repository { return repo }
	repo.findByCodeFn = func(ctx context.Context, empCode string) (*employee.Employee, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := employee.NewService(db, repo, &fakeCounter{})

	mock.ExpectBegin()
	mock.ExpectRollback()
	err := svc.Delete(context.Background(), "EMP-999999")
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
