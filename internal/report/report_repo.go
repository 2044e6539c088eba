package report

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	AttendanceSummary(ctx context.Context) ([]AttendanceSummaryRow, error)
	SalarySummary(ctx context.Context) ([]SalarySummaryRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) AttendanceSummary(ctx context.Context) ([]AttendanceSummaryRow, error) {
	var rows []AttendanceSummaryRow
	err := r.db.WithContext(ctx).
		Table("attendances").
		Select("attendances.emp_code, employees.full_name, COUNT(DISTINCT attendances.attendance_date) AS days_present, COUNT(*) AS total_punches").
		Joins("JOIN employees ON employees.emp_code = attendances.emp_code").
		Group("attendances.emp_code, employees.full_name").
		Order("attendances.emp_code ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) SalarySummary(ctx context.Context) ([]SalarySummaryRow, error) {
	var rows []SalarySummaryRow
	err := r.db.WithContext(ctx).
		Table("salaries").
		Select("salary_month, COUNT(DISTINCT emp_code) AS employees, SUM(net_salary) AS total_pay").
		Group("salary_month").
		Order("salary_month DESC").
		Scan(&rows).Error
	return rows, err
}
