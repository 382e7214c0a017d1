package consts

const (
	LeaderboardCacheKey = "leaderboard:cache:"
)

const (
	LeaderboardRebuildLock = "lock:leaderboard:rebuild"
)
