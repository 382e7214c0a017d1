package kafka

import "time"

// ShareEvent 投稿账本发生写入后发出的事件，驱动终审消费者
// 消费语义为 at-least-once，下游处理必须幂等
type ShareEvent struct {
	ShareID    string    `json:"share_id"`
	VoterID    string    `json:"voter_id"`
	Approve    bool      `json:"approve"`
	OccurredAt time.Time `json:"occurred_at"`
}
