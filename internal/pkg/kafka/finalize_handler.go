package kafka

import (
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// FinalizeFunc 对一条投稿做幂等终审，事件重复投递是安全的
type FinalizeFunc func(ctx context.Context, shareID string) error

// FinalizeHandler 消费投稿写入事件并触发终审判定
type FinalizeHandler struct {
	finalize FinalizeFunc
}

func NewFinalizeHandler(finalize FinalizeFunc) *FinalizeHandler {
	return &FinalizeHandler{
		finalize: finalize,
	}
}

func (s *FinalizeHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("share event consumer setup")
	return nil
}

func (s *FinalizeHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("share event consumer cleanup")
	return nil
}

func (s *FinalizeHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-share-events consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-share-events process batch error", "err", err)
		return err
	}
	return nil
}

func (s *FinalizeHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var evt ShareEvent
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		log.Error("unmarshal share event error", "err", err)
		// 结构损坏的消息重试也无济于事，直接丢弃
		return nil
	}
	if evt.ShareID == "" {
		return nil
	}

	return s.finalize(ctx, evt.ShareID)
}
