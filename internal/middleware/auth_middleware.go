package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	autherrors "github.com/kingxjullien14/nkp-ems/internal/auth/errors"
	"github.com/kingxjullien14/nkp-ems/internal/shared/contextutil"
	"github.com/kingxjullien14/nkp-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

const revokedTokenKeyPrefix = "auth:revoked:"

func RevokedTokenKey(tokenID string) string {
	return revokedTokenKeyPrefix + tokenID
}

// AuthMiddleware validates the bearer token, rejects revoked sessions and
// rebuilds the principal (role + employee code) for downstream handlers.
// rdb may be nil in tests, which skips the deny-list lookup.
func AuthMiddleware(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if err != nil && strings.Contains(err.Error(), "expired") {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		code, ok := claims["code"].(string)
		if !ok || code == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Principal code not found in token", nil)
			c.Abort()
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Role not found in token", nil)
			c.Abort()
			return
		}

		if tokenID, ok := claims["jti"].(string); ok && tokenID != "" && rdb != nil {
			if n, err := rdb.Exists(c.Request.Context(), RevokedTokenKey(tokenID)).Result(); err == nil && n > 0 {
				errObj := autherrors.ErrTokenRevoked
				response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
				c.Abort()
				return
			}
		}

		c.Set("code", code)
		c.Set("role", role)

		ctx := contextutil.WithPrincipal(c.Request.Context(), code)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
