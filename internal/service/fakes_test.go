package service

import (
	"IronProof/internal/api/dto"
	"IronProof/internal/pkg/kafka"
	"IronProof/internal/pkg/mongo"
	"context"
	"sync"
	"time"

	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

// 内存版仓储，行为对齐 mongo 实现的并发语义

type fakeSharedItemRepo struct {
	mu    sync.Mutex
	items map[string]*mongo.SharedItem
}

func newFakeSharedItemRepo(items ...*mongo.SharedItem) *fakeSharedItemRepo {
	r := &fakeSharedItemRepo{items: make(map[string]*mongo.SharedItem)}
	for _, item := range items {
		cp := *item
		r.items[item.ID] = &cp
	}
	return r
}

func (r *fakeSharedItemRepo) Create(_ context.Context, item *mongo.SharedItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeSharedItemRepo) GetByID(_ context.Context, itemID string) (*mongo.SharedItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok {
		return nil, mongoDB.ErrNoDocuments
	}
	cp := *item
	cp.VoteLedger.Voters = append([]string{}, item.VoteLedger.Voters...)
	return &cp, nil
}

// ApplyVote 模拟单文档条件更新：pending 且未投过票才会命中
func (r *fakeSharedItemRepo) ApplyVote(_ context.Context, itemID, voterID string, approve bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok {
		return false, nil
	}
	if item.Status != mongo.StatusPending || item.VoteLedger.HasVoted(voterID) {
		return false, nil
	}

	item.VoteLedger.Voters = append(item.VoteLedger.Voters, voterID)
	item.VoteLedger.TotalVotes++
	if approve {
		item.VoteLedger.ApproveVotes++
	} else {
		item.VoteLedger.RejectVotes++
	}
	return true, nil
}

func (r *fakeSharedItemRepo) Finalize(_ context.Context, itemID string, decide func(l mongo.VoteLedger) string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok {
		return "", false, mongoDB.ErrNoDocuments
	}
	if item.Status != mongo.StatusPending {
		return item.Status, false, nil
	}

	status := decide(item.VoteLedger)
	if status == "" {
		return mongo.StatusPending, false, nil
	}

	now := time.Now()
	item.Status = status
	item.FinalizedAt = &now
	return status, true, nil
}

type fakeRateLimitRepo struct {
	mu       sync.Mutex
	counters map[string]*mongo.RateLimitCounter
}

func newFakeRateLimitRepo() *fakeRateLimitRepo {
	return &fakeRateLimitRepo{counters: make(map[string]*mongo.RateLimitCounter)}
}

func (r *fakeRateLimitRepo) Decide(_ context.Context, key string, fn mongo.DecideFunc) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next, allowed := fn(r.counters[key])
	r.counters[key] = &next
	return allowed, nil
}

type fakeRankingRepo struct {
	mu         sync.Mutex
	entries    map[string]*mongo.RankingEntry
	boards     map[string]*mongo.Leaderboard
	scopeErrs  map[string]error
	upsertCnt  int
	replaceCnt int
}

func newFakeRankingRepo() *fakeRankingRepo {
	return &fakeRankingRepo{
		entries:   make(map[string]*mongo.RankingEntry),
		boards:    make(map[string]*mongo.Leaderboard),
		scopeErrs: make(map[string]error),
	}
}

func (r *fakeRankingRepo) UpsertEntry(_ context.Context, entry *mongo.RankingEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *entry
	r.entries[entry.ID] = &cp
	r.upsertCnt++
	return nil
}

func (r *fakeRankingRepo) ListScopeKeys(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]bool)
	var keys []string
	for _, e := range r.entries {
		if !seen[e.ScopeKey] {
			seen[e.ScopeKey] = true
			keys = append(keys, e.ScopeKey)
		}
	}
	return keys, nil
}

func (r *fakeRankingRepo) ListByScope(_ context.Context, scopeKey string) ([]*mongo.RankingEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.scopeErrs[scopeKey]; err != nil {
		return nil, err
	}
	var out []*mongo.RankingEntry
	for _, e := range r.entries {
		if e.ScopeKey == scopeKey {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRankingRepo) ReplaceLeaderboard(_ context.Context, lb *mongo.Leaderboard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *lb
	r.boards[lb.ScopeKey] = &cp
	r.replaceCnt++
	return nil
}

func (r *fakeRankingRepo) GetLeaderboard(_ context.Context, scopeKey string) (*mongo.Leaderboard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lb, ok := r.boards[scopeKey]
	if !ok {
		return nil, mongoDB.ErrNoDocuments
	}
	cp := *lb
	return &cp, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*mongo.User
}

func newFakeUserRepo(users ...*mongo.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*mongo.User)}
	for _, u := range users {
		cp := *u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID string) (*mongo.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, mongoDB.ErrNoDocuments
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) SetModerator(_ context.Context, userID string, moderator bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return false, nil
	}
	u.Moderator = moderator
	return true, nil
}

// 服务层桩

type fakeProducer struct {
	mu        sync.Mutex
	published []*kafka.ShareEvent
	err       error
}

func (p *fakeProducer) PublishVoteApplied(_ context.Context, evt *kafka.ShareEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, evt)
	return nil
}

func (p *fakeProducer) Close() error { return nil }

type fakeValidation struct {
	mu        sync.Mutex
	finalized []string
	err       error
}

func (v *fakeValidation) TryFinalize(_ context.Context, shareID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.err != nil {
		return v.err
	}
	v.finalized = append(v.finalized, shareID)
	return nil
}

type fakeRanking struct {
	mu       sync.Mutex
	ingested []string
	err      error
}

func (r *fakeRanking) Ingest(_ context.Context, item *mongo.SharedItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.ingested = append(r.ingested, item.ID)
	return nil
}

func (r *fakeRanking) RebuildAll(_ context.Context) error { return nil }

func (r *fakeRanking) GetLeaderboard(_ context.Context, _ string) (*dto.LeaderboardDTO, error) {
	return nil, nil
}

type fakeCache struct {
	mu      sync.Mutex
	store   map[string]string
	deleted []string
	getErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]string)}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", c.getErr
	}
	return c.store[key], nil
}

func (c *fakeCache) Set(_ context.Context, key string, payload []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = string(payload)
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	c.deleted = append(c.deleted, key)
	return nil
}

type allowAllLimiter struct{}

func (allowAllLimiter) Admit(_ context.Context, _, _ string) error { return nil }

type denyAllLimiter struct{}

func (denyAllLimiter) Admit(_ context.Context, _, _ string) error { return ErrRateLimited }
