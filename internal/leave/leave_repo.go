package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/kingxjullien14/nkp-ems/internal/scope"
	"github.com/kingxjullien14/nkp-ems/internal/shared/gormtx"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindAll(ctx context.Context) ([]Leave, error)
	FindPending(ctx context.Context) ([]Leave, error)
	FindByEmployee(ctx context.Context, empCode string) ([]Leave, error)
	FindByID(ctx context.Context, id string) (*Leave, error)
	// DecideIfPending applies the decision only while the row is still
	// pending; the returned count is zero when another decision won.
	DecideIfPending(ctx context.Context, id, status, decidedBy string, decidedAt time.Time) (int64, error)
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Leave, error) {
	var rows []Leave
	err := r.db.WithContext(ctx).
		Order("apply_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindPending(ctx context.Context) ([]Leave, error) {
	var rows []Leave
	err := r.db.WithContext(ctx).
		Where("leave_status = ?", StatusPending).
		Order("apply_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByEmployee(ctx context.Context, empCode string) ([]Leave, error) {
	var rows []Leave
	err := r.db.WithContext(ctx).
		Scopes(scope.ByEmployee(empCode)).
		Order("apply_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		First(&l, "leave_id = ?", id).Error
	return &l, err
}

func (r *repository) DecideIfPending(ctx context.Context, id, status, decidedBy string, decidedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("leave_id = ?", id).
		Where("leave_status = ?", StatusPending).
		Updates(map[string]any{
			"leave_status":        status,
			"admin_approval_date": decidedAt,
			"decided_by":          decidedBy,
		})
	return res.RowsAffected, res.Error
}
