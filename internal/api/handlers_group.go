package api

import "IronProof/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	CommunityHandler   *handler.CommunityHandler
	LeaderboardHandler *handler.LeaderboardHandler
	AdminHandler       *handler.AdminHandler
}
