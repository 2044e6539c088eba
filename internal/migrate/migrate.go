package migrate

import (
	"context"
	"errors"
	"os"

	"github.com/kingxjullien14/nkp-ems/internal/attendance"
	"github.com/kingxjullien14/nkp-ems/internal/auth"
	"github.com/kingxjullien14/nkp-ems/internal/employee"
	"github.com/kingxjullien14/nkp-ems/internal/leave"
	"github.com/kingxjullien14/nkp-ems/internal/notification"
	"github.com/kingxjullien14/nkp-ems/internal/payroll"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const outboxDDL = `
CREATE TABLE IF NOT EXISTS outbox_events (
    id UUID PRIMARY KEY,
    request_id VARCHAR(64),
    aggregate_type VARCHAR(50) NOT NULL,
    aggregate_id VARCHAR(100) NOT NULL,
    event_type VARCHAR(50) NOT NULL,
    topic VARCHAR(100) NOT NULL,
    payload JSONB NOT NULL,
    status VARCHAR(10) NOT NULL DEFAULT 'pending',
    retry_count INT NOT NULL DEFAULT 0,
    error_message VARCHAR(500),
    next_retry_at TIMESTAMPTZ,
    processed_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const outboxIndexDDL = `
CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created
    ON outbox_events (status, created_at)`

const countersDDL = `
CREATE TABLE IF NOT EXISTS counters (
    counter_type VARCHAR(50) PRIMARY KEY,
    last_value BIGINT NOT NULL DEFAULT 0,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Run applies the schema and seeds the bootstrap admin account.
func Run(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	log := logger.Named("migrate")

	if err := db.WithContext(ctx).AutoMigrate(
		&auth.Admin{},
		&employee.Employee{},
		&attendance.Punch{},
		&leave.Leave{},
		&payroll.Salary{},
		&notification.Notification{},
	); err != nil {
		return err
	}

	// the outbox and counters live outside GORM models on purpose
	for _, ddl := range []string{outboxDDL, outboxIndexDDL, countersDDL} {
		if err := db.WithContext(ctx).Exec(ddl).Error; err != nil {
			return err
		}
	}

	if err := seedAdmin(ctx, db, log); err != nil {
		return err
	}

	log.Info("migrations applied")
	return nil
}

// seedAdmin creates the first admin account when the table is empty so
// a fresh deployment can log in. Credentials come from the environment.
func seedAdmin(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	code := os.Getenv("SEED_ADMIN_CODE")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if code == "" || password == "" {
		log.Info("no seed admin configured, skipping")
		return nil
	}

	var existing auth.Admin
	err := db.WithContext(ctx).First(&existing, "admin_code = ?", code).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := db.WithContext(ctx).Create(&auth.Admin{
		AdminCode: code,
		Password:  string(hash),
	}).Error; err != nil {
		return err
	}

	log.Info("seed admin created", zap.String("admin_code", code))
	return nil
}
