package service

import (
	"IronProof/internal/api/config"
	"IronProof/internal/pkg/consts"
	"IronProof/internal/pkg/mongo"
	"context"
	"fmt"
	"time"
)

type RateLimitService interface {
	Admit(ctx context.Context, actorID, action string) error
}

type rateLimitServiceImpl struct {
	repo  mongo.RateLimitRepo
	rules config.RateLimitConfig
	now   func() time.Time
}

func NewRateLimitService(repo mongo.RateLimitRepo, rules config.RateLimitConfig) RateLimitService {
	return &rateLimitServiceImpl{
		repo:  repo,
		rules: rules,
		now:   time.Now,
	}
}

// Admit 固定窗口限流判定，计数器的读取、判定和写回在仓储层的同一个事务内完成
func (s *rateLimitServiceImpl) Admit(ctx context.Context, actorID, action string) error {
	rule, err := s.ruleFor(action)
	if err != nil {
		return err
	}

	now := s.now()
	key := actorID + ":" + action

	allowed, err := s.repo.Decide(ctx, key, func(cur *mongo.RateLimitCounter) (mongo.RateLimitCounter, bool) {
		return nextWindow(cur, now, rule)
	})
	if err != nil {
		return err
	}
	if !allowed {
		return ErrRateLimited
	}
	return nil
}

func (s *rateLimitServiceImpl) ruleFor(action string) (config.RateLimitRule, error) {
	switch action {
	case consts.ActionVote:
		return s.rules.Vote, nil
	case consts.ActionShare:
		return s.rules.Share, nil
	default:
		return config.RateLimitRule{}, fmt.Errorf("unknown rate limit action: %s", action)
	}
}

// nextWindow 纯判定函数
// 窗口已过期则翻转重计 (count=1 放行)；窗口内超限则拒绝且不递增，
// 其余情况递增放行。无论结果如何，返回值都会被写回存储。
func nextWindow(cur *mongo.RateLimitCounter, now time.Time, rule config.RateLimitRule) (mongo.RateLimitCounter, bool) {
	if cur == nil || now.Sub(cur.WindowStart) >= rule.Window {
		return mongo.RateLimitCounter{WindowStart: now, Count: 1}, true
	}

	next := *cur
	if cur.Count+1 > rule.MaxCount {
		return next, false
	}

	next.Count++
	return next, true
}
