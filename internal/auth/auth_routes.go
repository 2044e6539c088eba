package auth

import (
	"github.com/kingxjullien14/nkp-ems/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	authGroup := r.Group("/auth")

	// Brute-force protection on the credential check
	authGroup.POST("/login", middleware.RateLimitByIP(rate.Limit(1), 5), handler.Login)
	authGroup.POST("/refresh", middleware.RateLimitByIP(rate.Limit(1), 5), handler.Refresh)

	authGroup.POST("/logout", middleware.AuthMiddleware(rdb), handler.Logout)
	authGroup.GET("/me", middleware.AuthMiddleware(rdb), handler.Me)
}
