package mongo

import (
	"time"
)

// 投稿审核状态，只允许 pending → approved/rejected 单向流转
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// VoteLedger 投票账本，内嵌在 SharedItem 中
// 不变量: TotalVotes == ApproveVotes + RejectVotes == len(Voters)
type VoteLedger struct {
	TotalVotes   int      `bson:"total_votes" json:"totalVotes"`
	ApproveVotes int      `bson:"approve_votes" json:"approveVotes"`
	RejectVotes  int      `bson:"reject_votes" json:"rejectVotes"`
	Voters       []string `bson:"voters" json:"voters"` // 已投票的用户ID集合，去重
}

// HasVoted 判断用户是否已投过票
func (l VoteLedger) HasVoted(voterID string) bool {
	for _, v := range l.Voters {
		if v == voterID {
			return true
		}
	}
	return false
}

// SharedItem 用户提交的举重成绩，等待社区审核
type SharedItem struct {
	ID            string     `bson:"_id" json:"id"`
	SubmitterID   string     `bson:"submitter_id" json:"submitterId"`
	SubmitterName string     `bson:"submitter_name" json:"submitterName"` // 提交时的昵称快照
	Exercise      string     `bson:"exercise" json:"exercise"`
	WeightKg      float64    `bson:"weight_kg" json:"weightKg"`
	Reps          int        `bson:"reps" json:"reps"`
	Sets          int        `bson:"sets" json:"sets"`
	Country       string     `bson:"country,omitempty" json:"country,omitempty"` // 可选分区标签
	Gym           string     `bson:"gym,omitempty" json:"gym,omitempty"`         // 可选分区标签
	ComputedScore int        `bson:"computed_score" json:"computedScore"`        // 提交时计算的极限单次估值
	Status        string     `bson:"status" json:"status"`
	VoteLedger    VoteLedger `bson:"vote_ledger" json:"voteLedger"`
	CreatedAt     time.Time  `bson:"created_at" json:"createdAt"`
	FinalizedAt   *time.Time `bson:"finalized_at,omitempty" json:"finalizedAt,omitempty"`
}
