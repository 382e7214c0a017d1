package mongo

import "time"

// User 用户身份档案，由外部认证服务写入，这里只读取和更新审核员标记
type User struct {
	ID        string    `bson:"_id" json:"id"`
	Nickname  string    `bson:"nickname" json:"nickname"`
	Country   string    `bson:"country,omitempty" json:"country,omitempty"`
	Gym       string    `bson:"gym,omitempty" json:"gym,omitempty"`
	Moderator bool      `bson:"moderator" json:"moderator"` // 管理端授权标记
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
