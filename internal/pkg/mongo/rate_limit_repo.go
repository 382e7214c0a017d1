package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DecideFunc 纯函数：基于当前计数器（可能为 nil）计算新计数器和放行结果
type DecideFunc func(cur *RateLimitCounter) (RateLimitCounter, bool)

type RateLimitRepo interface {
	Decide(ctx context.Context, key string, fn DecideFunc) (bool, error)
}

type rateLimitRepoImpl struct {
	col *mongo.Collection
}

func NewRateLimitRepo(db *mongo.Database) RateLimitRepo {
	return &rateLimitRepoImpl{
		col: db.Collection("rate_limits"),
	}
}

// Decide 在一个事务里完成 读取计数器 → 判定 → 写回
// 无论放行还是拒绝都持久化重算后的窗口，重试不会让被拒的突发流量漏过去
func (s *rateLimitRepoImpl) Decide(ctx context.Context, key string, fn DecideFunc) (bool, error) {
	var allowed bool

	err := WithTxnRetry(ctx, s.col.Database().Client(), func(sc mongo.SessionContext) error {
		var cur *RateLimitCounter

		var c RateLimitCounter
		err := s.col.FindOne(sc, bson.M{"_id": key}).Decode(&c)
		if err == nil {
			cur = &c
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			return err
		}

		next, ok := fn(cur)
		allowed = ok

		next.Key = key
		next.UpdatedAt = time.Now()

		_, err = s.col.ReplaceOne(sc, bson.M{"_id": key}, &next, options.Replace().SetUpsert(true))
		return err
	})

	return allowed, err
}
