package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/kingxjullien14/nkp-ems/internal/events"
	leaveerrors "github.com/kingxjullien14/nkp-ems/internal/leave/errors"
	"github.com/kingxjullien14/nkp-ems/internal/messaging/kafka"
	"github.com/kingxjullien14/nkp-ems/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Submit(ctx context.Context, empCode string, req SubmitLeaveRequest) (LeaveResponse, error)
	Decide(ctx context.Context, adminCode, id string, req DecideLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetPending(ctx context.Context) ([]LeaveResponse, error)
	GetByEmployee(ctx context.Context, empCode string) ([]LeaveResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l, now: time.Now}
}

func (s *service) Submit(ctx context.Context, empCode string, req SubmitLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("submit leave requested",
		zap.String("emp_code", empCode),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	if req.LeaveType != TypePaid && req.LeaveType != TypeUnpaid {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1
	l := &Leave{
		ID:        uuid.New(),
		EmpCode:   empCode,
		Subject:   req.Subject,
		StartDate: startDate,
		EndDate:   endDate,
		TotalDays: totalDays,
		Message:   req.Message,
		LeaveType: req.LeaveType,
		Status:    StatusPending,
		AppliedAt: s.now().UTC(),
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("submit leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("emp_code", empCode),
	)

	return mapToResponse(*l), nil
}

// Decide transitions a pending request exactly once. The UPDATE carries a
// "still pending" precondition, so a concurrent or repeated decision
// affects zero rows and is reported as a conflict instead of overwriting.
func (s *service) Decide(ctx context.Context, adminCode, id string, req DecideLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("decide leave requested",
		zap.String("leave_id", id),
		zap.String("admin_code", adminCode),
		zap.String("decision", req.Decision),
	)

	if req.Decision != StatusApproved && req.Decision != StatusRejected {
		return LeaveResponse{}, leaveerrors.ErrInvalidDecision
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	decidedAt := s.now().UTC()
	affected, err := qtx.DecideIfPending(ctx, id, req.Decision, adminCode, decidedAt)
	if err != nil {
		s.logger.Error("decide leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if affected == 0 {
		s.logger.Warn("decide leave conflict, request no longer pending",
			zap.String("leave_id", id),
			zap.String("decision", req.Decision),
		)
		return LeaveResponse{}, leaveerrors.ErrAlreadyDecided
	}

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	if s.outbox != nil {
		rid := contextutil.GetRequestID(ctx)
		event := events.LeaveDecidedEvent{
			EventType:  "leave_decided",
			RequestID:  rid,
			LeaveID:    l.ID.String(),
			EmpCode:    l.EmpCode,
			Subject:    l.Subject,
			Status:     l.Status,
			DecidedBy:  adminCode,
			OccurredAt: decidedAt,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return LeaveResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "leave",
			AggregateID:   l.ID.String(),
			EventType:     event.EventType,
			Topic:         events.LeaveDecidedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("decide leave outbox persist failed", zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("decide leave success",
		zap.String("leave_id", id),
		zap.String("status", l.Status),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetPending(ctx context.Context) ([]LeaveResponse, error) {
	rows, err := s.repo.FindPending(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByEmployee(ctx context.Context, empCode string) ([]LeaveResponse, error) {
	rows, err := s.repo.FindByEmployee(ctx, empCode)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:        l.ID.String(),
		EmpCode:   l.EmpCode,
		Subject:   l.Subject,
		StartDate: l.StartDate.Format("2006-01-02"),
		EndDate:   l.EndDate.Format("2006-01-02"),
		TotalDays: l.TotalDays,
		Message:   l.Message,
		LeaveType: l.LeaveType,
		Status:    l.Status,
		AppliedAt: l.AppliedAt.Format(time.RFC3339),
	}
	if l.DecidedAt != nil {
		v := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	resp.DecidedBy = l.DecidedBy
	return resp
}

func mapToListResponse(rows []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(rows))
	for i, l := range rows {
		resp[i] = mapToResponse(l)
	}
	return resp
}
