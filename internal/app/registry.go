package app

import (
	"database/sql"

	"github.com/kingxjullien14/nkp-ems/internal/attendance"
	"github.com/kingxjullien14/nkp-ems/internal/auth"
	"github.com/kingxjullien14/nkp-ems/internal/employee"
	"github.com/kingxjullien14/nkp-ems/internal/leave"
	"github.com/kingxjullien14/nkp-ems/internal/messaging/kafka"
	"github.com/kingxjullien14/nkp-ems/internal/notification"
	"github.com/kingxjullien14/nkp-ems/internal/payroll"
	"github.com/kingxjullien14/nkp-ems/internal/rbac"
	"github.com/kingxjullien14/nkp-ems/internal/reminder"
	"github.com/kingxjullien14/nkp-ems/internal/report"
	"github.com/kingxjullien14/nkp-ems/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	reminderRepo := reminder.NewRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(authRepo, employeeRepo, rdb)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo)
	attendanceService := attendance.NewService(db, attendanceRepo)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, outboxRepo)
	payrollService := payroll.NewService(db, payrollRepo, outboxRepo, rdb)
	reminderService := reminder.NewService(reminderRepo)
	reportService := report.NewService(reportRepo)
	notificationService := notification.NewService(notificationRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	attendanceHandler := attendance.NewHandlerWithRedis(attendanceService, rdb)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	reminderHandler := reminder.NewHandler(reminderService)
	reportHandler := report.NewHandler(reportService)
	notificationHandler := notification.NewHandler(notificationService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, rdb)
		employee.RegisterRoutes(api, employeeHandler, enforcer, rdb)
		attendance.RegisterRoutes(api, attendanceHandler, enforcer, rdb)
		leave.RegisterRoutes(api, leaveHandler, enforcer, rdb)
		payroll.RegisterRoutes(api, payrollHandler, enforcer, rdb)
		reminder.RegisterRoutes(api, reminderHandler, enforcer, rdb)
		report.RegisterRoutes(api, reportHandler, enforcer, rdb)
		notification.RegisterRoutes(api, notificationHandler, enforcer, rdb)
	}

	return nil
}
