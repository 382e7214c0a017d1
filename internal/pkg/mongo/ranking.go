package mongo

import "time"

// RankingEntry 审核通过的投稿在某个分区下的冗余投影，按来源投稿覆盖写入
type RankingEntry struct {
	ID            string    `bson:"_id"` // {scopeKey}|{itemID}，保证同一投稿在同一分区只有一条
	ScopeKey      string    `bson:"scope_key" json:"scopeKey"`
	ItemID        string    `bson:"item_id" json:"itemId"`
	SubmitterID   string    `bson:"submitter_id" json:"submitterId"`
	SubmitterName string    `bson:"submitter_name" json:"submitterName"`
	Exercise      string    `bson:"exercise" json:"exercise"`
	WeightKg      float64   `bson:"weight_kg" json:"weightKg"`
	Reps          int       `bson:"reps" json:"reps"`
	ComputedScore int       `bson:"computed_score" json:"computedScore"`
	RecordDate    time.Time `bson:"record_date" json:"recordDate"`
}

// LeaderboardEntry 榜单中的一行，带 1 起始的名次
type LeaderboardEntry struct {
	Rank          int       `bson:"rank" json:"rank"`
	ItemID        string    `bson:"item_id" json:"itemId"`
	SubmitterID   string    `bson:"submitter_id" json:"submitterId"`
	SubmitterName string    `bson:"submitter_name" json:"submitterName"`
	Exercise      string    `bson:"exercise" json:"exercise"`
	WeightKg      float64   `bson:"weight_kg" json:"weightKg"`
	Reps          int       `bson:"reps" json:"reps"`
	ComputedScore int       `bson:"computed_score" json:"computedScore"`
	RecordDate    time.Time `bson:"record_date" json:"recordDate"`
}

// Leaderboard 每个分区一份的物化榜单，定时整体重建
type Leaderboard struct {
	ScopeKey   string             `bson:"_id" json:"scopeKey"`
	TopEntries []LeaderboardEntry `bson:"top_entries" json:"topEntries"`
	RebuiltAt  time.Time          `bson:"rebuilt_at" json:"rebuiltAt"`
}
