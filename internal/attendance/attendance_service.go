package attendance

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/kingxjullien14/nkp-ems/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	RecordPunch(ctx context.Context, empCode string, req RecordPunchRequest) (PunchResponse, error)
	GetAll(ctx context.Context) ([]PunchResponse, error)
	GetByEmployee(ctx context.Context, empCode string) ([]PunchResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, logger: l, now: time.Now}
}

// RecordPunch appends one punch stamped with the server date and time.
// Punches are immutable once written.
func (s *service) RecordPunch(ctx context.Context, empCode string, req RecordPunchRequest) (PunchResponse, error) {
	s.logger.Debug("record punch requested",
		zap.String("emp_code", empCode),
		zap.String("action_name", req.ActionName),
	)

	if req.ActionName != ActionPunchIn && req.ActionName != ActionPunchOut {
		return PunchResponse{}, apperror.New(apperror.CodeInvalidInput, "action_name must be punchin or punchout", http.StatusBadRequest)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("record punch begin tx failed", zap.Error(err))
		return PunchResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	now := s.now()
	row := &Punch{
		ID:             uuid.New(),
		EmpCode:        empCode,
		AttendanceDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		ActionName:     req.ActionName,
		ActionTime:     now.Format("15:04:05"),
		Description:    req.Description,
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("record punch persist failed", zap.Error(err))
		return PunchResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("record punch commit failed", zap.Error(err))
		return PunchResponse{}, err
	}

	s.logger.Info("record punch success",
		zap.String("emp_code", empCode),
		zap.String("action_name", row.ActionName),
		zap.String("action_time", row.ActionTime),
	)
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context) ([]PunchResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByEmployee(ctx context.Context, empCode string) ([]PunchResponse, error) {
	rows, err := s.repo.FindByEmployee(ctx, empCode)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func mapToResponse(p Punch) PunchResponse {
	return PunchResponse{
		ID:             p.ID.String(),
		EmpCode:        p.EmpCode,
		AttendanceDate: p.AttendanceDate.Format("2006-01-02"),
		ActionName:     p.ActionName,
		ActionTime:     p.ActionTime,
		Description:    p.Description,
	}
}

func mapToListResponse(rows []Punch) []PunchResponse {
	resp := make([]PunchResponse, len(rows))
	for i, p := range rows {
		resp[i] = mapToResponse(p)
	}
	return resp
}
