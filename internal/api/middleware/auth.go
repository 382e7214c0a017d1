package middleware

import (
	"IronProof/internal/api/config"
	"IronProof/internal/pkg/redis"
	"IronProof/internal/pkg/response"
	"IronProof/internal/pkg/security"
	"IronProof/internal/service"
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, http.StatusUnauthorized, service.ErrUnauthorized.Error())
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, service.ErrUnauthorized.Error())
			c.Abort()
			return
		}

		// 注销后的 Token 签名进黑名单，命中即拒
		value, err := redis.GetValue(c.Request.Context(), signature)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, service.ErrInternal.Error())
			c.Abort()
			return
		}
		if value != "" {
			response.Fail(c, http.StatusUnauthorized, service.ErrUnauthorized.Error())
			c.Abort()
			return
		}

		claims, err := security.ValidateToken(tokenString, config.Cfg.Auth.JWTSecret)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, service.ErrUnauthorized.Error())
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("roles", claims.Roles)

		newCtx := context.WithValue(c.Request.Context(), "user_id", claims.UserID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}
