package attendance

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	withTxFn         func(tx *sql.Tx) Repository
	createFn         func(ctx context.Context, p *Punch) error
	findAllFn        func(ctx context.Context) ([]Punch, error)
	findByEmployeeFn func(ctx context.Context, empCode string) ([]Punch, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, p *Punch) error { return f.createFn(ctx, p) }
func (f *fakeRepo) FindAll(ctx context.Context) ([]Punch, error) { return f.findAllFn(ctx) }
func (f *fakeRepo) FindByEmployee(ctx context.Context, empCode string) ([]Punch, error) {
	return f.findByEmployeeFn(ctx, empCode)
}

func TestService_RecordPunch_ServerStamped(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	var saved Punch
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, p *Punch) error { saved = *p; return nil }

	svc := NewService(db, repo).(*service)
	svc.now = func() time.Time {
		return time.Date(2024, 1, 10, 9, 15, 30, 0, time.UTC)
	}

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.RecordPunch(ctx, "EMP-000001", RecordPunchRequest{
		ActionName:  ActionPunchIn,
		Description: "front gate",
	})
	assert.NoError(t, err)
	assert.Equal(t, "2024-01-10", resp.AttendanceDate)
	assert.Equal(t, "09:15:30", resp.ActionTime)
	assert.Equal(t, ActionPunchIn, saved.ActionName)
	assert.Equal(t, "front gate", saved.Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_RecordPunch_RejectsUnknownAction(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	svc := NewService(db, repo)

	_, err := svc.RecordPunch(context.Background(), "EMP-000001", RecordPunchRequest{
		ActionName: "lunch",
	})
	assert.Error(t, err)
}

func TestService_GetByEmployee_ScopedToCaller(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	var askedFor string
	repo := &fakeRepo{}
	repo.findByEmployeeFn = func(ctx context.Context, empCode string) ([]Punch, error) {
		askedFor = empCode
		return []Punch{}, nil
	}

	svc := NewService(db, repo)

	_, err := svc.GetByEmployee(context.Background(), "EMP-000002")
	assert.NoError(t, err)
	assert.Equal(t, "EMP-000002", askedFor)
}
