package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// txnMaxAttempts 写冲突时的本地重试上限，超过则向上抛出
const txnMaxAttempts = 3

// WithTxnRetry 在一个会话事务中执行 fn，遇到瞬时冲突时做有限次重试
// 请求路径上的事务不允许无限重试，耗尽后返回包装过的错误
func WithTxnRetry(ctx context.Context, client *mongo.Client, fn func(sc mongo.SessionContext) error) error {
	sess, err := client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	var lastErr error
	for attempt := 0; attempt < txnMaxAttempts; attempt++ {
		lastErr = mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
			if err := sess.StartTransaction(); err != nil {
				return err
			}
			if err := fn(sc); err != nil {
				_ = sess.AbortTransaction(sc)
				return err
			}
			return sess.CommitTransaction(sc)
		})
		if lastErr == nil {
			return nil
		}
		if !isTransient(lastErr) {
			return lastErr
		}
		time.Sleep(time.Duration(attempt+1) * 20 * time.Millisecond)
	}

	return fmt.Errorf("transaction retries exhausted: %w", lastErr)
}

// isTransient 判断是否为可重试的事务冲突
func isTransient(err error) bool {
	var se mongo.ServerError
	if errors.As(err, &se) {
		return se.HasErrorLabel("TransientTransactionError") ||
			se.HasErrorLabel("UnknownTransactionCommitResult")
	}
	return false
}
