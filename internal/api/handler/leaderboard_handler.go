package handler

import (
	"IronProof/internal/pkg/consts"
	"IronProof/internal/pkg/response"
	"IronProof/internal/service"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	rankingSvc service.RankingService
}

func NewLeaderboardHandler(rankingSvc service.RankingService) *LeaderboardHandler {
	return &LeaderboardHandler{
		rankingSvc: rankingSvc,
	}
}

// GetLeaderboard 查询某个分区的 Top-N 榜单
// scope=global 时 value 留空，country/gym 必须给出 value
func (s *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	scope := c.DefaultQuery("scope", consts.ScopeGlobal)
	value := c.Query("value")
	exercise := c.Query("exercise")

	if exercise == "" {
		response.Error(c, service.ErrInvalidPayload)
		return
	}

	switch scope {
	case consts.ScopeGlobal:
		value = ""
	case consts.ScopeCountry, consts.ScopeGym:
		if value == "" {
			response.Error(c, service.ErrInvalidPayload)
			return
		}
	default:
		response.Error(c, service.ErrInvalidPayload)
		return
	}

	board, err := s.rankingSvc.GetLeaderboard(c.Request.Context(), service.ScopeKey(scope, value, exercise))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, board)
}
