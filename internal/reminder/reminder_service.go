package reminder

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Service interface {
	Scan(ctx context.Context) (ScanResponse, error)
}

type service struct {
	repo       Repository
	windowDays int
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("reminder.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("reminder.service")
	}
	return &service{repo: repo, windowDays: DefaultWindowDays, logger: l, now: time.Now}
}

// Scan reports every passport, visa and permit expiring before
// today+window, already-lapsed documents included. The three document
// kinds are checked independently, so one employee can appear in all
// three lists.
func (s *service) Scan(ctx context.Context) (ScanResponse, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	until := today.AddDate(0, 0, s.windowDays)

	passports, err := s.repo.FindExpiringPassports(ctx, until)
	if err != nil {
		s.logger.Error("expiry scan passports failed", zap.Error(err))
		return ScanResponse{}, err
	}
	visas, err := s.repo.FindExpiringVisas(ctx, until)
	if err != nil {
		s.logger.Error("expiry scan visas failed", zap.Error(err))
		return ScanResponse{}, err
	}
	permits, err := s.repo.FindExpiringPermits(ctx, until)
	if err != nil {
		s.logger.Error("expiry scan permits failed", zap.Error(err))
		return ScanResponse{}, err
	}

	s.logger.Info("expiry scan complete",
		zap.Int("passports", len(passports)),
		zap.Int("visas", len(visas)),
		zap.Int("permits", len(permits)),
	)

	return ScanResponse{
		WindowDays: s.windowDays,
		ScannedAt:  now.Format(time.RFC3339),
		Passports:  mapToListResponse(passports),
		Visas:      mapToListResponse(visas),
		Permits:    mapToListResponse(permits),
	}, nil
}

func mapToListResponse(rows []ExpiringDocument) []ExpiringDocumentResponse {
	resp := make([]ExpiringDocumentResponse, len(rows))
	for i, row := range rows {
		resp[i] = ExpiringDocumentResponse{
			EmpCode:      row.EmpCode,
			FullName:     row.FullName,
			Email:        row.Email,
			DocumentType: row.DocumentType,
			Number:       row.Number,
			ExpiryDate:   row.ExpiryDate.Format("2006-01-02"),
		}
	}
	return resp
}
