package consts

// 限流动作类别
const (
	ActionVote  = "vote"
	ActionShare = "share"
)

// 榜单分区类别
const (
	ScopeGlobal  = "global"
	ScopeCountry = "country"
	ScopeGym     = "gym"
)
