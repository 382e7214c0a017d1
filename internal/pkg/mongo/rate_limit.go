package mongo

import "time"

// RateLimitCounter 固定窗口计数器，每个 {用户}:{动作} 一条
// 窗口过期后在下一次请求时就地翻转，不做显式删除
type RateLimitCounter struct {
	Key         string    `bson:"_id"` // {actorID}:{action}
	WindowStart time.Time `bson:"window_start"`
	Count       int       `bson:"count"`
	UpdatedAt   time.Time `bson:"updated_at"`
}
