package notification

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	RecipientCode string     `gorm:"column:recipient_code;type:varchar(20);not null;index"`
	Title         string     `gorm:"column:title;type:varchar(255);not null"`
	Body          string     `gorm:"column:body;type:text"`
	SourceEvent   string     `gorm:"column:source_event;type:varchar(50)"`
	ReadAt        *time.Time `gorm:"column:read_at"`
	CreatedAt     time.Time
}

func (Notification) TableName() string {
	return "notifications"
}
