package handler

import (
	"IronProof/internal/api/dto"
	"IronProof/internal/pkg/response"
	"IronProof/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	userSvc service.UserService
}

func NewAdminHandler(userSvc service.UserService) *AdminHandler {
	return &AdminHandler{
		userSvc: userSvc,
	}
}

// AssignClaim 给用户打上审核员标记
func (s *AdminHandler) AssignClaim(c *gin.Context) {
	var req dto.ClaimAssignDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.userSvc.AssignModeratorClaim(c.Request.Context(), req.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
