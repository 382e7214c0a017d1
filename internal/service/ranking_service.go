package service

import (
	"IronProof/internal/api/config"
	"IronProof/internal/api/dto"
	"IronProof/internal/pkg/consts"
	"IronProof/internal/pkg/mongo"
	"IronProof/internal/pkg/redis"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

type RankingService interface {
	// Ingest 把一条审核通过的投稿摄入它所属的全部分区，幂等
	Ingest(ctx context.Context, item *mongo.SharedItem) error
	// RebuildAll 对所有分区整体重建 Top-N 榜单，单个分区失败不阻断其它分区
	RebuildAll(ctx context.Context) error
	GetLeaderboard(ctx context.Context, scopeKey string) (*dto.LeaderboardDTO, error)
}

// leaderboardCache 榜单读缓存
type leaderboardCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// redisLeaderboardCache 默认缓存实现，落在全局 redis 客户端上
type redisLeaderboardCache struct{}

func (redisLeaderboardCache) Get(ctx context.Context, key string) (string, error) {
	return redis.GetValue(ctx, key)
}

func (redisLeaderboardCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return redis.SetWithExpiration(ctx, key, payload, ttl)
}

func (redisLeaderboardCache) Delete(ctx context.Context, key string) error {
	return redis.DeleteKey(ctx, key)
}

type rankingServiceImpl struct {
	repo  mongo.RankingRepo
	cache leaderboardCache
	cfg   config.LeaderboardConfig
}

func NewRankingService(repo mongo.RankingRepo, cfg config.LeaderboardConfig) RankingService {
	return &rankingServiceImpl{
		repo:  repo,
		cache: redisLeaderboardCache{},
		cfg:   cfg,
	}
}

// ScopeKey 构造分区键 {类别}:{取值}:{动作}，全局分区取值为空
func ScopeKey(kind, value, exercise string) string {
	norm := func(s string) string {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return kind + ":" + norm(value) + ":" + norm(exercise)
}

// scopesFor 计算一条投稿归属的全部分区：全局必有，国家/场馆按标签可选
func scopesFor(item *mongo.SharedItem) []string {
	keys := []string{ScopeKey(consts.ScopeGlobal, "", item.Exercise)}
	if item.Country != "" {
		keys = append(keys, ScopeKey(consts.ScopeCountry, item.Country, item.Exercise))
	}
	if item.Gym != "" {
		keys = append(keys, ScopeKey(consts.ScopeGym, item.Gym, item.Exercise))
	}
	return keys
}

func (s *rankingServiceImpl) Ingest(ctx context.Context, item *mongo.SharedItem) error {
	for _, scopeKey := range scopesFor(item) {
		entry := &mongo.RankingEntry{
			ID:            scopeKey + "|" + item.ID,
			ScopeKey:      scopeKey,
			ItemID:        item.ID,
			SubmitterID:   item.SubmitterID,
			SubmitterName: item.SubmitterName,
			Exercise:      item.Exercise,
			WeightKg:      item.WeightKg,
			Reps:          item.Reps,
			ComputedScore: item.ComputedScore,
			RecordDate:    item.CreatedAt,
		}
		if err := s.repo.UpsertEntry(ctx, entry); err != nil {
			return fmt.Errorf("upsert ranking entry %s: %w", entry.ID, err)
		}
	}

	log.InfoContext(ctx, "share ingested into rankings", "share_id", item.ID)
	return nil
}

func (s *rankingServiceImpl) RebuildAll(ctx context.Context) error {
	scopeKeys, err := s.repo.ListScopeKeys(ctx)
	if err != nil {
		return err
	}

	var errs []error
	rebuilt := 0
	for _, scopeKey := range scopeKeys {
		if err := s.rebuildScope(ctx, scopeKey); err != nil {
			log.ErrorContext(ctx, "rebuild scope error", "scope", scopeKey, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", scopeKey, err))
			continue
		}
		rebuilt++
	}

	log.InfoContext(ctx, "leaderboards rebuilt",
		"scope_count", len(scopeKeys), "rebuilt", rebuilt, "failed", len(errs))
	return errors.Join(errs...)
}

func (s *rankingServiceImpl) rebuildScope(ctx context.Context, scopeKey string) error {
	entries, err := s.repo.ListByScope(ctx, scopeKey)
	if err != nil {
		return err
	}

	sortEntries(entries)
	if len(entries) > s.cfg.TopN {
		entries = entries[:s.cfg.TopN]
	}

	top := make([]mongo.LeaderboardEntry, 0, len(entries))
	for i, e := range entries {
		var row mongo.LeaderboardEntry
		_ = copier.Copy(&row, e)
		row.Rank = i + 1
		top = append(top, row)
	}

	if err := s.repo.ReplaceLeaderboard(ctx, &mongo.Leaderboard{
		ScopeKey:   scopeKey,
		TopEntries: top,
		RebuiltAt:  time.Now(),
	}); err != nil {
		return err
	}

	// 新榜单落库后立刻失效读缓存，失败只告警，下次 TTL 到期自然收敛
	if err := s.cache.Delete(ctx, consts.LeaderboardCacheKey+scopeKey); err != nil {
		log.WarnContext(ctx, "invalidate leaderboard cache error", "scope", scopeKey, "err", err)
	}
	return nil
}

// sortEntries 分值降序；并列时早记录在前，再按来源ID兜底，排序结果完全确定
func sortEntries(entries []*mongo.RankingEntry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.ComputedScore != b.ComputedScore {
			return a.ComputedScore > b.ComputedScore
		}
		if !a.RecordDate.Equal(b.RecordDate) {
			return a.RecordDate.Before(b.RecordDate)
		}
		return a.ItemID < b.ItemID
	})
}

// GetLeaderboard 旁路缓存读取，TTL 内的榜单读不落库
func (s *rankingServiceImpl) GetLeaderboard(ctx context.Context, scopeKey string) (*dto.LeaderboardDTO, error) {
	cacheKey := consts.LeaderboardCacheKey + scopeKey

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
		var d dto.LeaderboardDTO
		if err := json.Unmarshal([]byte(cached), &d); err == nil {
			return &d, nil
		}
	}

	lb, err := s.repo.GetLeaderboard(ctx, scopeKey)
	if err != nil {
		if errors.Is(err, mongoDB.ErrNoDocuments) {
			// 分区尚未物化过，返回空榜单
			return &dto.LeaderboardDTO{ScopeKey: scopeKey, Entries: []*dto.LeaderboardEntryDTO{}}, nil
		}
		return nil, err
	}

	d := &dto.LeaderboardDTO{
		ScopeKey:  lb.ScopeKey,
		Entries:   make([]*dto.LeaderboardEntryDTO, 0, len(lb.TopEntries)),
		RebuiltAt: lb.RebuiltAt.UTC().Format(time.RFC3339),
	}
	for _, e := range lb.TopEntries {
		row := &dto.LeaderboardEntryDTO{}
		_ = copier.Copy(row, e)
		row.RecordDate = e.RecordDate.UTC().Format(time.RFC3339)
		d.Entries = append(d.Entries, row)
	}

	if payload, err := json.Marshal(d); err == nil {
		_ = s.cache.Set(ctx, cacheKey, payload, s.cfg.CacheTTL)
	}

	return d, nil
}
