package reminder

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Repository lists documents whose expiry falls before the cutoff.
// There is deliberately no lower bound: a passport that lapsed last
// week still needs chasing, so it stays on the list.
type Repository interface {
	FindExpiringPassports(ctx context.Context, until time.Time) ([]ExpiringDocument, error)
	FindExpiringVisas(ctx context.Context, until time.Time) ([]ExpiringDocument, error)
	FindExpiringPermits(ctx context.Context, until time.Time) ([]ExpiringDocument, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindExpiringPassports(ctx context.Context, until time.Time) ([]ExpiringDocument, error) {
	return r.findExpiring(ctx, "passport_number", "passport_expiry_date", DocPassport, until)
}

func (r *repository) FindExpiringVisas(ctx context.Context, until time.Time) ([]ExpiringDocument, error) {
	return r.findExpiring(ctx, "visa_number", "visa_expiry_date", DocVisa, until)
}

func (r *repository) FindExpiringPermits(ctx context.Context, until time.Time) ([]ExpiringDocument, error) {
	return r.findExpiring(ctx, "permit_number", "permit_expiry_date", DocPermit, until)
}

func (r *repository) findExpiring(ctx context.Context, numberCol, expiryCol, docType string, until time.Time) ([]ExpiringDocument, error) {
	var rows []ExpiringDocument
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("emp_code, full_name, email, "+numberCol+" AS number, "+expiryCol+" AS expiry_date").
		Where(expiryCol+" < ?", until).
		Order(expiryCol + " ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].DocumentType = docType
	}
	return rows, nil
}
