package notification

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
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware(rdb))

	notifications.GET("/me", rbac.Authorize(enforcer, rbac.ResourceNotification, rbac.ActionReadOwn), handler.GetMine)
	notifications.PATCH("/:id/read", rbac.Authorize(enforcer, rbac.ResourceNotification, rbac.ActionUpdate), handler.MarkRead)
}
