package auth

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindAdminByCode(ctx context.Context, adminCode string) (*Admin, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAdminByCode(ctx context.Context, adminCode string) (*Admin, error) {
	var admin Admin
	err := r.db.WithContext(ctx).
		First(&admin, "admin_code = ?", adminCode).Error
	return &admin, err
}
