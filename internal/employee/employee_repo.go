package employee

import (
	"context"
	"database/sql"

	"github.com/kingxjullien14/nkp-ems/internal/shared/gormtx"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByCode(ctx context.Context, empCode string) (*Employee, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, empCode string) error
	CountDependents(ctx context.Context, empCode string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: gormtx.Bind(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Order("emp_code ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByCode(ctx context.Context, empCode string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		First(&empl, "emp_code = ?", empCode).Error
	return &empl, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, empCode string) error {
	return r.db.WithContext(ctx).
		Delete(&Employee{}, "emp_code = ?", empCode).Error
}

// CountDependents sums attendance, leave and salary rows still referencing
// the code. Deletion is refused while this is non-zero.
func (r *repository) CountDependents(ctx context.Context, empCode string) (int64, error) {
	var total int64

	for _, table := range []string{"attendances", "leaves", "salaries"} {
		var n int64
		err := r.db.WithContext(ctx).
			Table(table).
			Where("emp_code = ?", empCode).
			Count(&n).Error
		if err != nil {
			return 0, err
		}
		total += n
	}

	return total, nil
}
