package notification

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindByRecipient(ctx context.Context, recipientCode string) ([]Notification, error)
	MarkRead(ctx context.Context, id, recipientCode string, readAt time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) FindByRecipient(ctx context.Context, recipientCode string) ([]Notification, error) {
	var rows []Notification
	err := r.db.WithContext(ctx).
		Where("recipient_code = ?", recipientCode).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// MarkRead is scoped to the recipient so one employee cannot ack
// another's notification.
func (r *repository) MarkRead(ctx context.Context, id, recipientCode string, readAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ?", id).
		Where("recipient_code = ?", recipientCode).
		Where("read_at IS NULL").
		Update("read_at", readAt)
	return res.RowsAffected, res.Error
}
