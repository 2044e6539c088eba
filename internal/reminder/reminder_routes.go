package reminder

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
	reminders := r.Group("/reminders")
	reminders.Use(middleware.AuthMiddleware(rdb))

	reminders.GET("/expiring-documents", rbac.Authorize(enforcer, rbac.ResourceReminder, rbac.ActionRead), handler.Scan)
}
