package payroll

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
	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware(rdb))

	// a retried run must not double-append salary rows
	payrolls.POST("/run",
		rbac.Authorize(enforcer, rbac.ResourcePayroll, rbac.ActionRun),
		middleware.RateLimitByPrincipal(0.1, 1),
		middleware.Idempotency(rdb),
		handler.Run,
	)
	payrolls.GET("", rbac.Authorize(enforcer, rbac.ResourcePayroll, rbac.ActionRead), handler.GetAll)
	payrolls.GET("/me", rbac.Authorize(enforcer, rbac.ResourcePayroll, rbac.ActionReadOwn), handler.GetMine)
}
