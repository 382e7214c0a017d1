package dto

// LeaderboardEntryDTO 榜单行
type LeaderboardEntryDTO struct {
	Rank          int     `json:"rank"`
	ItemID        string  `json:"itemId"`
	SubmitterID   string  `json:"submitterId"`
	SubmitterName string  `json:"submitterName"`
	Exercise      string  `json:"exercise"`
	WeightKg      float64 `json:"weightKg"`
	Reps          int     `json:"reps"`
	ComputedScore int     `json:"computedScore"`
	RecordDate    string  `json:"recordDate"`
}

// LeaderboardDTO 某个分区的 Top-N 榜单
type LeaderboardDTO struct {
	ScopeKey  string                 `json:"scopeKey"`
	Entries   []*LeaderboardEntryDTO `json:"entries"`
	RebuiltAt string                 `json:"rebuiltAt"`
}
