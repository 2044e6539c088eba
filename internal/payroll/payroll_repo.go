package payroll

import (
	"context"
	"database/sql"

	"github.com/kingxjullien14/nkp-ems/internal/scope"
	"github.com/kingxjullien14/nkp-ems/internal/shared/gormtx"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	LoadPunchRows(ctx context.Context) ([]PunchRow, error)
	ExistingPeriods(ctx context.Context, periods []string) ([]string, error)
	DeleteByPeriods(ctx context.Context, periods []string) error
	InsertSalaries(ctx context.Context, rows []Salary) error
	FindAll(ctx context.Context) ([]Salary, error)
	FindByEmployee(ctx context.Context, empCode string) ([]Salary, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository onto the caller's transaction, so the
// regenerate delete and the insert either land together or not at all.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: gormtx.Bind(r.db, tx)}
}

// LoadPunchRows reads the full punch ledger joined with each employee's
// rate, ordered so the pairing pass sees events in submission order.
func (r *repository) LoadPunchRows(ctx context.Context) ([]PunchRow, error) {
	var rows []PunchRow
	err := r.db.WithContext(ctx).
		Table("attendances").
		Select("attendances.emp_code, attendances.attendance_date, attendances.action_name, attendances.action_time, employees.hourly_rate").
		Joins("JOIN employees ON employees.emp_code = attendances.emp_code").
		Order("attendances.emp_code ASC, attendances.attendance_date ASC, attendances.created_at ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ExistingPeriods(ctx context.Context, periods []string) ([]string, error) {
	if len(periods) == 0 {
		return nil, nil
	}
	var found []string
	err := r.db.WithContext(ctx).
		Model(&Salary{}).
		Distinct("salary_month").
		Where("salary_month IN ?", periods).
		Pluck("salary_month", &found).Error
	return found, err
}

func (r *repository) DeleteByPeriods(ctx context.Context, periods []string) error {
	if len(periods) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("salary_month IN ?", periods).
		Delete(&Salary{}).Error
}

func (r *repository) InsertSalaries(ctx context.Context, rows []Salary) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Salary, error) {
	var rows []Salary
	err := r.db.WithContext(ctx).
		Order("salary_month DESC, emp_code ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByEmployee(ctx context.Context, empCode string) ([]Salary, error) {
	var rows []Salary
	err := r.db.WithContext(ctx).
		Scopes(scope.ByEmployee(empCode)).
		Order("salary_month DESC").
		Find(&rows).Error
	return rows, err
}
