package payroll

import (
	"time"

	"github.com/google/uuid"
)

// Salary is one employee's derived pay for one calendar month. Rows are
// replaced wholesale on regeneration, never edited in place.
type Salary struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	EmpCode      string    `gorm:"column:emp_code;type:varchar(20);not null;uniqueIndex:idx_salaries_emp_month"`
	NetSalary    float64   `gorm:"column:net_salary;type:numeric(12,2);not null"`
	SalaryMonth  string    `gorm:"column:salary_month;type:varchar(7);not null;uniqueIndex:idx_salaries_emp_month"` // YYYY-MM
	GenerateDate time.Time `gorm:"column:generate_date;not null"`
	CreatedAt    time.Time
}

func (Salary) TableName() string {
	return "salaries"
}

// PunchRow is one attendance event joined with the employee's pay rate,
// the unit the aggregator consumes.
type PunchRow struct {
	EmpCode        string
	AttendanceDate time.Time
	ActionName     string
	ActionTime     string // HH:MM:SS
	HourlyRate     float64
}
