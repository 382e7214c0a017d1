package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RankingRepo interface {
	UpsertEntry(ctx context.Context, entry *RankingEntry) error
	ListScopeKeys(ctx context.Context) ([]string, error)
	ListByScope(ctx context.Context, scopeKey string) ([]*RankingEntry, error)
	ReplaceLeaderboard(ctx context.Context, lb *Leaderboard) error
	GetLeaderboard(ctx context.Context, scopeKey string) (*Leaderboard, error)
}

type rankingRepoImpl struct {
	entries      *mongo.Collection
	leaderboards *mongo.Collection
}

func NewRankingRepo(db *mongo.Database) RankingRepo {
	return &rankingRepoImpl{
		entries:      db.Collection("ranking_entries"),
		leaderboards: db.Collection("leaderboards"),
	}
}

// UpsertEntry 按 {分区, 来源投稿} 覆盖写入，同一投稿重复摄入不会产生重复行
func (s *rankingRepoImpl) UpsertEntry(ctx context.Context, entry *RankingEntry) error {
	_, err := s.entries.ReplaceOne(ctx,
		bson.M{"_id": entry.ID},
		entry,
		options.Replace().SetUpsert(true),
	)
	return err
}

// ListScopeKeys 枚举所有出现过的分区键
func (s *rankingRepoImpl) ListScopeKeys(ctx context.Context) ([]string, error) {
	values, err := s.entries.Distinct(ctx, "scope_key", bson.M{})
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(values))
	for _, v := range values {
		if key, ok := v.(string); ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// ListByScope 拉取一个分区下的全部原始行，排序在内存中完成
func (s *rankingRepoImpl) ListByScope(ctx context.Context, scopeKey string) ([]*RankingEntry, error) {
	cursor, err := s.entries.Find(ctx, bson.M{"scope_key": scopeKey})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var entries []*RankingEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ReplaceLeaderboard 整体覆盖该分区的榜单文档
func (s *rankingRepoImpl) ReplaceLeaderboard(ctx context.Context, lb *Leaderboard) error {
	_, err := s.leaderboards.ReplaceOne(ctx,
		bson.M{"_id": lb.ScopeKey},
		lb,
		options.Replace().SetUpsert(true),
	)
	return err
}

// GetLeaderboard 读取某个分区的榜单
func (s *rankingRepoImpl) GetLeaderboard(ctx context.Context, scopeKey string) (*Leaderboard, error) {
	var lb Leaderboard
	err := s.leaderboards.FindOne(ctx, bson.M{"_id": scopeKey}).Decode(&lb)
	if err != nil {
		return nil, err
	}
	return &lb, nil
}
