package kafka

import (
	"IronProof/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

type ShareEventProducer interface {
	PublishVoteApplied(ctx context.Context, evt *ShareEvent) error
	Close() error
}

type shareEventProducerImpl struct {
	producer sarama.SyncProducer
	topic    string
}

func NewShareEventProducer(cfg *config.Config) (ShareEventProducer, error) {
	c := newSaramaConfig(cfg.Kafka)
	c.Producer.Return.Successes = true
	c.Producer.RequiredAcks = sarama.WaitForAll
	c.Producer.Retry.Max = 3

	p, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, c)
	if err != nil {
		return nil, err
	}

	return &shareEventProducerImpl{
		producer: p,
		topic:    cfg.KafkaShareConsumer.Topic,
	}, nil
}

// PublishVoteApplied 发布投稿写入事件
// 以投稿ID作为分区键，同一投稿的事件保持有序
func (s *shareEventProducerImpl) PublishVoteApplied(ctx context.Context, evt *ShareEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	partition, offset, err := s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(evt.ShareID),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "share event published",
		"share_id", evt.ShareID, "partition", partition, "offset", offset)
	return nil
}

func (s *shareEventProducerImpl) Close() error {
	return s.producer.Close()
}
