package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/kingxjullien14/nkp-ems/internal/notification"

	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	createFn          func(ctx context.Context, n *notification.Notification) error
	findByRecipientFn func(ctx context.Context, recipientCode string) ([]notification.Notification, error)
	markReadFn        func(ctx context.Context, id, recipientCode string, readAt time.Time) (int64, error)
}

func (f *fakeRepo) Create(ctx context.Context, n *notification.Notification) error { return f.createFn(ctx, n) }
func (f *fakeRepo) FindByRecipient(ctx context.Context, recipientCode string) ([]notification.Notification, error) {
	return f.findByRecipientFn(ctx, recipientCode)
}
func (f *fakeRepo) MarkRead(ctx context.Context, id, recipientCode string, readAt time.Time) (int64, error) {
	return f.markReadFn(ctx, id, recipientCode, readAt)
}

func TestService_Notify_PersistsRecipientAndSource(t *testing.T) {
	var saved notification.Notification
	repo := &fakeRepo{
		createFn: func(ctx context.Context, n *notification.Notification) error { saved = *n; return nil },
	}

	svc := notification.NewService(repo)

	err := svc.Notify(context.Background(), "EMP-000001", "Salary generated", "body", "payroll_generated")
	assert.NoError(t, err)
	assert.Equal(t, "EMP-000001", saved.RecipientCode)
	assert.Equal(t, "payroll_generated", saved.SourceEvent)
	assert.Nil(t, saved.ReadAt)
}

func TestService_MarkRead_NotFoundForOtherRecipient(t *testing.T) {
	repo := &fakeRepo{
		markReadFn: func(ctx context.Context, id, recipientCode string, readAt time.Time) (int64, error) {
			return 0, nil
		},
	}

	svc := notification.NewService(repo)

	err := svc.MarkRead(context.Background(), "some-id", "EMP-000002")
	assert.Error(t, err)
}
