package leave_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/kingxjullien14/nkp-ems/internal/events"
	"github.com/kingxjullien14/nkp-ems/internal/leave"
	leaveerrors "github.com/kingxjullien14/nkp-ems/internal/leave/errors"
	"github.com/kingxjullien14/nkp-ems/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn         func(tx *sql.Tx) leave.Repository
	createFn         func(ctx context.Context, l *leave.Leave) error
	findAllFn        func(ctx context.Context) ([]leave.Leave, error)
	findPendingFn    func(ctx context.Context) ([]leave.Leave, error)
	findByEmployeeFn func(ctx context.Context, empCode string) ([]leave.Leave, error)
	findByIDFn       func(ctx context.Context, id string) (*leave.Leave, error)
	decideFn         func(ctx context.Context, id, status, decidedBy string, decidedAt time.Time) (int64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) leave.Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, l *leave.Leave) error { return f.createFn(ctx, l) }
func (f *fakeRepo) FindAll(ctx context.Context) ([]leave.Leave, error) { return f.findAllFn(ctx) }
func (f *fakeRepo) FindPending(ctx context.Context) ([]leave.Leave, error) { return f.findPendingFn(ctx) }
func (f *fakeRepo) FindByEmployee(ctx context.Context, empCode string) ([]leave.Leave, error) {
	return f.findByEmployeeFn(ctx, empCode)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*leave.Leave, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) DecideIfPending(ctx context.Context, id, status, decidedBy string, decidedAt time.Time) (int64, error) {
	return f.decideFn(ctx, id, status, decidedBy, decidedAt)
}

func TestService_Submit_StartsPending(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	var saved leave.Leave
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) leave.Repository { return repo }
	repo.createFn = func(ctx context.Context, l *leave.Leave) error { saved = *l; return nil }

	svc := leave.NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Submit(ctx, "EMP-000001", leave.SubmitLeaveRequest{
		Subject:   "Family trip",
		StartDate: "2024-03-04",
		EndDate:   "2024-03-06",
		LeaveType: leave.TypePaid,
	})
	assert.NoError(t, err)
	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.Equal(t, 3, resp.TotalDays)
	assert.Equal(t, leave.StatusPending, saved.Status)
	assert.Nil(t, saved.DecidedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Submit_RejectsBadRange(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	svc := leave.NewService(db, repo)

	_, err := svc.Submit(context.Background(), "EMP-000001", leave.SubmitLeaveRequest{
		Subject:   "x",
		StartDate: "2024-03-06",
		EndDate:   "2024-03-04",
		LeaveType: leave.TypeUnpaid,
	})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
}

func pendingLeave(id uuid.UUID) *leave.Leave {
	return &leave.Leave{
		ID:        id,
		EmpCode:   "EMP-000001",
		Subject:   "Family trip",
		StartDate: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
		TotalDays: 3,
		LeaveType: leave.TypePaid,
		Status:    leave.StatusPending,
		AppliedAt: time.Now().UTC(),
	}
}

func TestService_Decide_ApprovesOnce(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	id := uuid.New()
	current := pendingLeave(id)

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) leave.Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, lid string) (*leave.Leave, error) { return current, nil }
	repo.decideFn = func(ctx context.Context, lid, status, decidedBy string, decidedAt time.Time) (int64, error) {
		current.Status = status
		current.DecidedAt = &decidedAt
		current.DecidedBy = &decidedBy
		return 1, nil
	}

	svc := leave.NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Decide(ctx, "ADM-01", id.String(), leave.DecideLeaveRequest{Decision: leave.StatusApproved})
	assert.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, resp.Status)
	assert.NotNil(t, resp.DecidedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Decide_SecondDecisionConflicts(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	id := uuid.New()
	decided := pendingLeave(id)
	decided.Status = leave.StatusApproved

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) leave.Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, lid string) (*leave.Leave, error) { return decided, nil }
	repo.decideFn = func(ctx context.Context, lid, status, decidedBy string, decidedAt time.Time) (int64, error) {
		return 0, nil
	}

	svc := leave.NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Decide(ctx, "ADM-01", id.String(), leave.DecideLeaveRequest{Decision: leave.StatusRejected})
	assert.ErrorIs(t, err, leaveerrors.ErrAlreadyDecided)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Decide_UnknownLeave(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) leave.Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, lid string) (*leave.Leave, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := leave.NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Decide(ctx, "ADM-01", uuid.NewString(), leave.DecideLeaveRequest{Decision: leave.StatusApproved})
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, r string) error { return nil }

func TestService_Decide_WritesOutboxEventInTx(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	id := uuid.New()
	current := pendingLeave(id)

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) leave.Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, lid string) (*leave.Leave, error) { return current, nil }
	repo.decideFn = func(ctx context.Context, lid, status, decidedBy string, decidedAt time.Time) (int64, error) {
		current.Status = status
		return 1, nil
	}

	outbox := &fakeOutboxRepository{}
	svc := leave.NewServiceWithOutbox(db, repo, outbox)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.Decide(ctx, "ADM-01", id.String(), leave.DecideLeaveRequest{Decision: leave.StatusApproved})
	assert.NoError(t, err)
	assert.Len(t, outbox.created, 1)
	assert.Equal(t, events.LeaveDecidedTopic, outbox.created[0].Topic)
	assert.NoError(t, kafka.ValidateOutboxEvent(outbox.created[0]))

	var event events.LeaveDecidedEvent
	assert.NoError(t, json.Unmarshal(outbox.created[0].Payload, &event))
	assert.Equal(t, leave.StatusApproved, event.Status)
	assert.Equal(t, "ADM-01", event.DecidedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Decide_RejectsBadDecision(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	svc := leave.NewService(db, repo)

	_, err := svc.Decide(context.Background(), "ADM-01", uuid.NewString(), leave.DecideLeaveRequest{Decision: "maybe"})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDecision)
}
