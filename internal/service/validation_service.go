package service

import (
	"IronProof/internal/api/config"
	"IronProof/internal/pkg/mongo"
	"context"
	"errors"
	log "log/slog"
	"math"

	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

type ValidationService interface {
	// TryFinalize 幂等终审：未达到法定票数时空转，达到后把投稿一次性置为
	// approved/rejected，通过的投稿随即摄入榜单。重复调用收敛到同一终态。
	TryFinalize(ctx context.Context, shareID string) error
}

type validationServiceImpl struct {
	items   mongo.SharedItemRepo
	ranking RankingService
	quorum  int
	// approvalPermille 通过比例的千分数，整数比较规避浮点边界误差
	approvalPermille int64
}

func NewValidationService(items mongo.SharedItemRepo, ranking RankingService, policy config.CommunityConfig) ValidationService {
	return &validationServiceImpl{
		items:            items,
		ranking:          ranking,
		quorum:           policy.Quorum,
		approvalPermille: int64(math.Round(policy.ApprovalRatio * 1000)),
	}
}

func (s *validationServiceImpl) TryFinalize(ctx context.Context, shareID string) error {
	status, changed, err := s.items.Finalize(ctx, shareID, s.decide)
	if err != nil {
		if errors.Is(err, mongoDB.ErrNoDocuments) {
			// 投稿不存在（例如外部清理），终审无事可做
			log.WarnContext(ctx, "finalize target missing", "share_id", shareID)
			return nil
		}
		return err
	}
	if !changed {
		return nil
	}

	log.InfoContext(ctx, "share finalized", "share_id", shareID, "status", status)

	if status != mongo.StatusApproved {
		return nil
	}

	// 摄入是按投稿ID覆盖写的，终审触发器的 at-least-once 重放不会产生重复行
	item, err := s.items.GetByID(ctx, shareID)
	if err != nil {
		return err
	}
	return s.ranking.Ingest(ctx, item)
}

// decide 基于账本计算终态，票数未达标返回空串表示保持 pending
func (s *validationServiceImpl) decide(l mongo.VoteLedger) string {
	if l.TotalVotes < s.quorum {
		return ""
	}
	if int64(l.ApproveVotes)*1000 >= int64(l.TotalVotes)*s.approvalPermille {
		return mongo.StatusApproved
	}
	return mongo.StatusRejected
}
