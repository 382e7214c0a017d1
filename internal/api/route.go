package api

import (
	"IronProof/internal/api/middleware"
	"IronProof/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		communityGroup := apiGroup.Group("/community")
		communityGroup.Use(middleware.AuthMiddleware())
		{
			communityGroup.POST("/share", group.CommunityHandler.Share)
			communityGroup.POST("/share/limit", group.CommunityHandler.CheckShareLimit)
			communityGroup.GET("/share/:share_id", group.CommunityHandler.GetShare)
			communityGroup.POST("/vote", group.CommunityHandler.Vote)
		}

		// 榜单只读，无需登录
		apiGroup.GET("/leaderboard", group.LeaderboardHandler.GetLeaderboard)

		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(middleware.AdminSecretMiddleware())
		{
			adminGroup.POST("/claims", group.AdminHandler.AssignClaim)
		}
	}

	return r
}
