package middleware

import (
	"IronProof/internal/api/config"
	"IronProof/internal/pkg/response"
	"IronProof/internal/pkg/security"
	"IronProof/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminSecretMiddleware 校验管理端共享密钥
// 密钥只存散列，明文仅在运维侧分发
func AdminSecretMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := c.GetHeader("X-Admin-Secret")
		if secret == "" {
			response.Fail(c, http.StatusUnauthorized, service.ErrUnauthorized.Error())
			c.Abort()
			return
		}

		if err := security.CheckSecretHash(secret, config.Cfg.Admin.SecretHash); err != nil {
			response.Fail(c, http.StatusUnauthorized, service.ErrUnauthorized.Error())
			c.Abort()
			return
		}

		c.Next()
	}
}
