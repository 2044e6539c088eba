package report

import (
	"github.com/kingxjullien14/nkp-ems/internal/middleware"
	"github.com/kingxjullien14/nkp-ems/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer *casbin.Enforcer,
	rdb *redis.Client,
) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware(rdb))

	reports.GET("/attendance-summary", rbac.Authorize(enforcer, rbac.ResourceReport, rbac.ActionRead), handler.AttendanceSummary)
	reports.GET("/salary-summary", rbac.Authorize(enforcer, rbac.ResourceReport, rbac.ActionRead), handler.SalarySummary)
}
