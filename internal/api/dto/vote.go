package dto

// VoteReq 社区投票请求
// Approve 使用指针以区分 false 和字段缺失
type VoteReq struct {
	ShareID string `json:"shareId" binding:"required"`
	VoterID string `json:"voterId" binding:"required"`
	Approve *bool  `json:"approve" binding:"required"`
}
