package attendance

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
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware(rdb))

	// Idempotency keys shield the punch ledger from double submissions
	attendances.POST("/punch",
		rbac.Authorize(enforcer, rbac.ResourceAttendance, rbac.ActionCreate),
		middleware.RateLimitByPrincipal(3, 10),
		middleware.Idempotency(rdb),
		handler.Punch,
	)
	attendances.GET("", rbac.Authorize(enforcer, rbac.ResourceAttendance, rbac.ActionRead), handler.GetAll)
	attendances.GET("/me", rbac.Authorize(enforcer, rbac.ResourceAttendance, rbac.ActionReadOwn), handler.GetMine)
}
