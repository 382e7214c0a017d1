package handler

import (
	"IronProof/internal/api/dto"
	"IronProof/internal/pkg/response"
	"IronProof/internal/service"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	shareSvc service.ShareService
	voteSvc  service.VoteService
}

func NewCommunityHandler(shareSvc service.ShareService, voteSvc service.VoteService) *CommunityHandler {
	return &CommunityHandler{
		shareSvc: shareSvc,
		voteSvc:  voteSvc,
	}
}

// Share 提交一条待审投稿
func (s *CommunityHandler) Share(c *gin.Context) {
	userID := c.GetString("user_id")
	var req dto.ShareCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	share, err := s.shareSvc.SubmitShare(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, share)
}

// GetShare 查询投稿详情与审核状态
func (s *CommunityHandler) GetShare(c *gin.Context) {
	shareID := c.Param("share_id")
	if shareID == "" {
		response.Error(c, service.ErrInvalidPayload)
		return
	}

	share, err := s.shareSvc.GetShare(c.Request.Context(), shareID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, share)
}

// CheckShareLimit 投稿限流预检
func (s *CommunityHandler) CheckShareLimit(c *gin.Context) {
	userID := c.GetString("user_id")
	var req dto.ShareLimitCheckDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	// 只能给自己预检配额
	if req.UserID != userID {
		response.Error(c, service.ErrInvalidPayload)
		return
	}

	if err := s.shareSvc.CheckShareLimit(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Vote 对投稿记一票
// 重复票与已定稿后的迟到票都按成功返回，客户端无需区分
func (s *CommunityHandler) Vote(c *gin.Context) {
	userID := c.GetString("user_id")
	var req dto.VoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	// 票面上的投票人必须与登录身份一致
	if req.VoterID != userID {
		response.Error(c, service.ErrInvalidPayload)
		return
	}

	outcome, err := s.voteSvc.CastVote(c.Request.Context(), req.ShareID, userID, *req.Approve)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"applied": outcome == service.VoteApplied,
	})
}
