package service

import (
	"IronProof/internal/pkg/consts"
	"IronProof/internal/pkg/kafka"
	"IronProof/internal/pkg/mongo"
	"context"
	"errors"
	log "log/slog"
	"time"

	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

// VoteOutcome 记票结果
// AlreadyVoted / AlreadyFinalized 对调用方都算成功：重复请求下接口保持幂等
type VoteOutcome int

const (
	VoteApplied VoteOutcome = iota
	VoteAlreadyVoted
	VoteAlreadyFinalized
)

type VoteService interface {
	CastVote(ctx context.Context, shareID, voterID string, approve bool) (VoteOutcome, error)
}

type voteServiceImpl struct {
	items      mongo.SharedItemRepo
	rates      RateLimitService
	validation ValidationService
	producer   kafka.ShareEventProducer
}

func NewVoteService(
	items mongo.SharedItemRepo,
	rates RateLimitService,
	validation ValidationService,
	producer kafka.ShareEventProducer,
) VoteService {
	return &voteServiceImpl{
		items:      items,
		rates:      rates,
		validation: validation,
		producer:   producer,
	}
}

// CastVote 限流 → 校验 → 记票
// 记票本身是单文档原子更新（状态与投票者集合作为过滤条件），并发下不丢更新；
// 成功记票后发布投稿事件，由终审消费者判定是否达到法定票数。
func (s *voteServiceImpl) CastVote(ctx context.Context, shareID, voterID string, approve bool) (VoteOutcome, error) {
	if err := s.rates.Admit(ctx, voterID, consts.ActionVote); err != nil {
		return 0, err
	}

	item, err := s.items.GetByID(ctx, shareID)
	if err != nil {
		if errors.Is(err, mongoDB.ErrNoDocuments) {
			return 0, ErrShareNotFound
		}
		return 0, err
	}

	if item.SubmitterID == voterID {
		return 0, ErrVoteSelf
	}
	if item.Status != mongo.StatusPending {
		return VoteAlreadyFinalized, nil
	}
	if item.VoteLedger.HasVoted(voterID) {
		return VoteAlreadyVoted, nil
	}

	applied, err := s.items.ApplyVote(ctx, shareID, voterID, approve)
	if err != nil {
		return 0, err
	}
	if !applied {
		// 预检和更新之间有并发写抢先，重读一次分类
		item, err = s.items.GetByID(ctx, shareID)
		if err != nil {
			return 0, err
		}
		if item.Status != mongo.StatusPending {
			return VoteAlreadyFinalized, nil
		}
		return VoteAlreadyVoted, nil
	}

	s.notifyApplied(ctx, shareID, voterID, approve)

	log.InfoContext(ctx, "vote applied", "share_id", shareID, "voter_id", voterID, "approve", approve)
	return VoteApplied, nil
}

// notifyApplied 发布投稿事件驱动终审
// 发布失败时退化为就地终审，避免这张票成为压线票却无人判定
func (s *voteServiceImpl) notifyApplied(ctx context.Context, shareID, voterID string, approve bool) {
	evt := &kafka.ShareEvent{
		ShareID:    shareID,
		VoterID:    voterID,
		Approve:    approve,
		OccurredAt: time.Now(),
	}
	if err := s.producer.PublishVoteApplied(ctx, evt); err != nil {
		log.ErrorContext(ctx, "publish share event error, finalizing inline", "share_id", shareID, "err", err)
		if err := s.validation.TryFinalize(ctx, shareID); err != nil {
			log.ErrorContext(ctx, "inline finalize error", "share_id", shareID, "err", err)
		}
	}
}
