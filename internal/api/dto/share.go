package dto

// ShareCreateDTO 提交成绩请求
type ShareCreateDTO struct {
	Exercise string  `json:"exercise" binding:"required,max=50"`
	WeightKg float64 `json:"weightKg" binding:"required,gt=0,lte=600"`
	Reps     int     `json:"reps" binding:"required,min=1,max=100"`
	Sets     int     `json:"sets" binding:"omitempty,min=1,max=50"`
	Country  string  `json:"country" binding:"omitempty,max=50"`
	Gym      string  `json:"gym" binding:"omitempty,max=100"`
}

// ShareDTO 投稿详情
type ShareDTO struct {
	ID            string  `json:"id"`
	SubmitterID   string  `json:"submitterId"`
	SubmitterName string  `json:"submitterName"`
	Exercise      string  `json:"exercise"`
	WeightKg      float64 `json:"weightKg"`
	Reps          int     `json:"reps"`
	Sets          int     `json:"sets"`
	Country       string  `json:"country,omitempty"`
	Gym           string  `json:"gym,omitempty"`
	ComputedScore int     `json:"computedScore"`
	Status        string  `json:"status"`
	TotalVotes    int     `json:"totalVotes"`
	ApproveVotes  int     `json:"approveVotes"`
	RejectVotes   int     `json:"rejectVotes"`
	CreatedAt     string  `json:"createdAt"`
}

// ShareLimitCheckDTO 投稿限流预检请求
type ShareLimitCheckDTO struct {
	UserID string `json:"userId" binding:"required"`
}
