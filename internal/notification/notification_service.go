package notification

import (
	"context"
	"net/http"
	"time"

	"github.com/kingxjullien14/nkp-ems/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errNotificationNotFound = apperror.New(
	apperror.CodeNotFound,
	"notification not found or already read",
	http.StatusNotFound,
)

type Service interface {
	Notify(ctx context.Context, recipientCode, title, body, sourceEvent string) error
	GetMine(ctx context.Context, recipientCode string) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, id, recipientCode string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l, now: time.Now}
}

func (s *service) Notify(ctx context.Context, recipientCode, title, body, sourceEvent string) error {
	n := &Notification{
		ID:            uuid.New(),
		RecipientCode: recipientCode,
		Title:         title,
		Body:          body,
		SourceEvent:   sourceEvent,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("notify failed",
			zap.String("recipient_code", recipientCode),
			zap.String("source_event", sourceEvent),
			zap.Error(err),
		)
		return err
	}
	s.logger.Info("notification stored",
		zap.String("recipient_code", recipientCode),
		zap.String("source_event", sourceEvent),
	)
	return nil
}

func (s *service) GetMine(ctx context.Context, recipientCode string) ([]NotificationResponse, error) {
	rows, err := s.repo.FindByRecipient(ctx, recipientCode)
	if err != nil {
		return nil, err
	}
	resp := make([]NotificationResponse, len(rows))
	for i, n := range rows {
		resp[i] = mapToResponse(n)
	}
	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, id, recipientCode string) error {
	affected, err := s.repo.MarkRead(ctx, id, recipientCode, s.now().UTC())
	if err != nil {
		return err
	}
	if affected == 0 {
		return errNotificationNotFound
	}
	return nil
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:          n.ID.String(),
		Title:       n.Title,
		Body:        n.Body,
		SourceEvent: n.SourceEvent,
		CreatedAt:   n.CreatedAt.Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		v := n.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &v
	}
	return resp
}
