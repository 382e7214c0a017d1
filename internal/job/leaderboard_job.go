package job

import (
	"IronProof/internal/pkg/consts"
	"IronProof/internal/pkg/logger"
	"IronProof/internal/pkg/redis"
	"IronProof/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// lockTTL 重建锁的保底过期时间，宿主崩溃后锁自动释放
const lockTTL = 9 * time.Minute

// LeaderboardJob 定时整体重建各分区 Top-N 榜单
type LeaderboardJob struct {
	rankingSvc service.RankingService
}

func NewLeaderboardJob(rankingSvc service.RankingService) *LeaderboardJob {
	return &LeaderboardJob{
		rankingSvc: rankingSvc,
	}
}

func (s *LeaderboardJob) Run() {
	traceID := "job-leaderboard-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	// 多实例部署时同一轮只允许一个实例重建
	locked, err := redis.TryLock(ctx, consts.LeaderboardRebuildLock, traceID, lockTTL, 1)
	if err != nil {
		log.ErrorContext(ctx, "acquire rebuild lock error", "err", err)
		return
	}
	if !locked {
		log.InfoContext(ctx, "rebuild already running elsewhere, skipping")
		return
	}
	defer redis.UnLock(ctx, consts.LeaderboardRebuildLock, traceID)

	start := time.Now()
	if err := s.rankingSvc.RebuildAll(ctx); err != nil {
		// 失败的分区已在服务层逐个记录，这里只汇总
		log.ErrorContext(ctx, "leaderboard rebuild finished with errors", "err", err)
	}

	log.InfoContext(ctx, "LeaderboardJob finished", "elapsed", time.Since(start))
}
