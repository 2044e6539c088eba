package leave

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
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware(rdb))

	leaves.POST("",
		rbac.Authorize(enforcer, rbac.ResourceLeave, rbac.ActionCreate),
		middleware.RateLimitByPrincipal(3, 10),
		middleware.Idempotency(rdb),
		handler.Submit,
	)
	leaves.POST("/:id/decision",
		rbac.Authorize(enforcer, rbac.ResourceLeave, rbac.ActionDecide),
		middleware.RateLimitByPrincipal(1, 5),
		handler.Decide,
	)
	leaves.GET("", rbac.Authorize(enforcer, rbac.ResourceLeave, rbac.ActionRead), handler.GetAll)
	leaves.GET("/me", rbac.Authorize(enforcer, rbac.ResourceLeave, rbac.ActionReadOwn), handler.GetMine)
}
