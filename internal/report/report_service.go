package report

import (
	"context"

	"go.uber.org/zap"
)

type Service interface {
	AttendanceSummary(ctx context.Context) ([]AttendanceSummaryRow, error)
	SalarySummary(ctx context.Context) ([]SalarySummaryRow, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) AttendanceSummary(ctx context.Context) ([]AttendanceSummaryRow, error) {
	rows, err := s.repo.AttendanceSummary(ctx)
	if err != nil {
		s.logger.Error("attendance summary failed", zap.Error(err))
		return nil, err
	}
	return rows, nil
}

func (s *service) SalarySummary(ctx context.Context) ([]SalarySummaryRow, error) {
	rows, err := s.repo.SalarySummary(ctx)
	if err != nil {
		s.logger.Error("salary summary failed", zap.Error(err))
		return nil, err
	}
	return rows, nil
}
