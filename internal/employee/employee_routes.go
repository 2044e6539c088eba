package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware(rdb))

	employees.GET("", rbac.Authorize(enforcer, rbac.ResourceEmployee, rbac.ActionRead), handler.GetAll)
	employees.POST("", rbac.Authorize(enforcer, rbac.ResourceEmployee, rbac.ActionCreate), handler.Create)
	employees.GET("/:code", rbac.Authorize(enforcer, rbac.ResourceEmployee, rbac.ActionReadOwn), handler.GetByCode)
	employees.PUT("/:code", rbac.Authorize(enforcer, rbac.ResourceEmployee, rbac.ActionUpdate), handler.Update)
	employees.DELETE("/:code", rbac.Authorize(enforcer, rbac.ResourceEmployee, rbac.ActionDelete), handler.Delete)
}
