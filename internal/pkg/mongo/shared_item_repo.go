package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type SharedItemRepo interface {
	Create(ctx context.Context, item *SharedItem) error
	GetByID(ctx context.Context, itemID string) (*SharedItem, error)
	ApplyVote(ctx context.Context, itemID, voterID string, approve bool) (bool, error)
	Finalize(ctx context.Context, itemID string, decide func(l VoteLedger) string) (string, bool, error)
}

type sharedItemRepoImpl struct {
	col *mongo.Collection
}

func NewSharedItemRepo(db *mongo.Database) SharedItemRepo {
	return &sharedItemRepoImpl{
		col: db.Collection("shared_items"),
	}
}

// Create 写入一条待审核的投稿
func (s *sharedItemRepoImpl) Create(ctx context.Context, item *SharedItem) error {
	_, err := s.col.InsertOne(ctx, item)
	return err
}

// GetByID 精确查询
func (s *sharedItemRepoImpl) GetByID(ctx context.Context, itemID string) (*SharedItem, error) {
	var item SharedItem
	err := s.col.FindOne(ctx, bson.M{"_id": itemID}).Decode(&item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ApplyVote 以单文档原子更新的方式记票
// 过滤条件同时约束 状态仍为 pending 且 该用户未投过票，
// 投票者集合与三个计数在同一次更新里变更，并发投票不会丢更新。
// 返回 false 表示过滤条件未命中（已终审或已投过），由调用方重读分类。
func (s *sharedItemRepoImpl) ApplyVote(ctx context.Context, itemID, voterID string, approve bool) (bool, error) {
	inc := bson.M{"vote_ledger.total_votes": 1}
	if approve {
		inc["vote_ledger.approve_votes"] = 1
	} else {
		inc["vote_ledger.reject_votes"] = 1
	}

	filter := bson.M{
		"_id":                itemID,
		"status":             StatusPending,
		"vote_ledger.voters": bson.M{"$ne": voterID},
	}
	update := bson.M{
		"$addToSet": bson.M{"vote_ledger.voters": voterID},
		"$inc":      inc,
	}

	res, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// Finalize 在一个事务里读取账本、调用 decide 计算终态并以 CAS 方式落盘
// decide 返回空字符串表示票数尚未达标，保持 pending。
// 任意次重复调用都收敛到同一终态：状态一旦离开 pending，后续调用全部空转。
func (s *sharedItemRepoImpl) Finalize(ctx context.Context, itemID string, decide func(l VoteLedger) string) (string, bool, error) {
	var finalStatus string
	var changed bool

	err := WithTxnRetry(ctx, s.col.Database().Client(), func(sc mongo.SessionContext) error {
		finalStatus, changed = "", false

		var item SharedItem
		if err := s.col.FindOne(sc, bson.M{"_id": itemID}).Decode(&item); err != nil {
			return err
		}
		if item.Status != StatusPending {
			return nil
		}

		st := decide(item.VoteLedger)
		if st == "" {
			return nil
		}

		now := time.Now()
		res, err := s.col.UpdateOne(sc,
			bson.M{"_id": itemID, "status": StatusPending},
			bson.M{"$set": bson.M{"status": st, "finalized_at": now}},
		)
		if err != nil {
			return err
		}
		if res.ModifiedCount == 1 {
			finalStatus, changed = st, true
		}
		return nil
	})

	return finalStatus, changed, err
}
