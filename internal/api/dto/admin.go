package dto

// ClaimAssignDTO 管理端授权请求
type ClaimAssignDTO struct {
	UserID string `json:"userId" binding:"required"`
}
