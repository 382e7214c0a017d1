package service

import (
	"IronProof/internal/api/dto"
	"IronProof/internal/pkg/consts"
	"IronProof/internal/pkg/mongo"
	"IronProof/internal/pkg/util"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

type ShareService interface {
	SubmitShare(ctx context.Context, userID string, req *dto.ShareCreateDTO) (*dto.ShareDTO, error)
	GetShare(ctx context.Context, shareID string) (*dto.ShareDTO, error)
	// CheckShareLimit 投稿限流预检，面向直写外部存储的客户端
	// 与提交共用同一个计数器，预检通过即占用一次配额
	CheckShareLimit(ctx context.Context, userID string) error
}

type shareServiceImpl struct {
	items mongo.SharedItemRepo
	users mongo.UserRepo
	rates RateLimitService
}

func NewShareService(items mongo.SharedItemRepo, users mongo.UserRepo, rates RateLimitService) ShareService {
	return &shareServiceImpl{
		items: items,
		users: users,
		rates: rates,
	}
}

// SubmitShare 限流 → 取昵称快照 → 计算分值 → 落一条 pending 投稿
func (s *shareServiceImpl) SubmitShare(ctx context.Context, userID string, req *dto.ShareCreateDTO) (*dto.ShareDTO, error) {
	if err := s.rates.Admit(ctx, userID, consts.ActionShare); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongoDB.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// 分区标签请求优先，缺省回落到用户档案
	country := req.Country
	if country == "" {
		country = user.Country
	}
	gym := req.Gym
	if gym == "" {
		gym = user.Gym
	}

	item := &mongo.SharedItem{
		ID:            uuid.NewString(),
		SubmitterID:   userID,
		SubmitterName: user.Nickname,
		Exercise:      req.Exercise,
		WeightKg:      req.WeightKg,
		Reps:          req.Reps,
		Sets:          req.Sets,
		Country:       country,
		Gym:           gym,
		ComputedScore: util.EstimateOneRepMax(req.WeightKg, req.Reps),
		Status:        mongo.StatusPending,
		VoteLedger:    mongo.VoteLedger{Voters: []string{}},
		CreatedAt:     time.Now(),
	}

	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "share submitted", "share_id", item.ID, "submitter_id", userID)
	return toShareDTO(item), nil
}

func (s *shareServiceImpl) GetShare(ctx context.Context, shareID string) (*dto.ShareDTO, error) {
	item, err := s.items.GetByID(ctx, shareID)
	if err != nil {
		if errors.Is(err, mongoDB.ErrNoDocuments) {
			return nil, ErrShareNotFound
		}
		return nil, err
	}
	return toShareDTO(item), nil
}

func (s *shareServiceImpl) CheckShareLimit(ctx context.Context, userID string) error {
	return s.rates.Admit(ctx, userID, consts.ActionShare)
}

func toShareDTO(item *mongo.SharedItem) *dto.ShareDTO {
	d := &dto.ShareDTO{}
	_ = copier.Copy(d, item)
	d.TotalVotes = item.VoteLedger.TotalVotes
	d.ApproveVotes = item.VoteLedger.ApproveVotes
	d.RejectVotes = item.VoteLedger.RejectVotes
	d.CreatedAt = item.CreatedAt.UTC().Format(time.RFC3339)
	return d
}
