package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionPunchIn  = "punchin"
	ActionPunchOut = "punchout"
)

// Punch is an append-only attendance event. Rows are never updated or
// deleted; punches within one (emp_code, date) group are read back in
// insertion order.
type Punch struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	EmpCode        string    `gorm:"column:emp_code;type:varchar(20);not null;index:idx_attendances_emp_date"`
	AttendanceDate time.Time `gorm:"column:attendance_date;type:date;not null;index:idx_attendances_emp_date"`
	ActionName     string    `gorm:"column:action_name;type:varchar(10);not null"`
	ActionTime     string    `gorm:"column:action_time;type:varchar(8);not null"` // HH:MM:SS
	Description    string    `gorm:"column:emp_desc;type:text"`
	CreatedAt      time.Time
}

func (Punch) TableName() string {
	return "attendances"
}
