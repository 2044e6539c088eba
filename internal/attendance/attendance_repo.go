package attendance

import (
	"context"
	"database/sql"

	"github.com/kingxjullien14/nkp-ems/internal/scope"
	"github.com/kingxjullien14/nkp-ems/internal/shared/gormtx"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Punch) error
	FindAll(ctx context.Context) ([]Punch, error)
	FindByEmployee(ctx context.Context, empCode string) ([]Punch, error)
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

func (r *repository) Create(ctx context.Context, p *Punch) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Punch, error) {
	var rows []Punch
	err := r.db.WithContext(ctx).
		Order("attendance_date DESC, created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByEmployee(ctx context.Context, empCode string) ([]Punch, error) {
	var rows []Punch
	err := r.db.WithContext(ctx).
		Scopes(scope.ByEmployee(empCode)).
		Order("attendance_date DESC, created_at ASC").
		Find(&rows).Error
	return rows, err
}
