package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"

	TypePaid   = "paid"
	TypeUnpaid = "unpaid"
)

type Leave struct {
	ID      uuid.UUID `gorm:"column:leave_id;type:uuid;primaryKey"`
	EmpCode string    `gorm:"column:emp_code;type:varchar(20);not null;index"`

	Subject   string    `gorm:"column:leave_subject;type:varchar(255);not null"`
	StartDate time.Time `gorm:"column:leave_start_date;type:date;not null"`
	EndDate   time.Time `gorm:"column:leave_end_date;type:date;not null"`
	TotalDays int       `gorm:"column:total_days;type:int;not null;default:1"`
	Message   string    `gorm:"column:leave_message;type:text"`
	LeaveType string    `gorm:"column:leave_type;type:varchar(10);not null"`

	// pending until an admin decides; terminal after that
	Status    string     `gorm:"column:leave_status;type:varchar(10);not null;default:'pending';index"`
	AppliedAt time.Time  `gorm:"column:apply_date;not null"`
	DecidedAt *time.Time `gorm:"column:admin_approval_date"`
	DecidedBy *string    `gorm:"column:decided_by;type:varchar(20)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Leave) TableName() string {
	return "leaves"
}
