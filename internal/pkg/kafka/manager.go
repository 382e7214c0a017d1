package kafka

import (
	"IronProof/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	shareConsumer sarama.ConsumerGroup
	shareHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config, finalize FinalizeFunc) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	shareConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaShareConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	shareHandler := NewFinalizeHandler(finalize)

	return &ConsumerManager{
		shareConsumer: shareConsumer,
		shareHandler:  shareHandler,
	}, nil
}

// Start 启动所有消费者
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaShareConsumer.Topic
		log.Info("Share event consumer started", "topic", topic)
		for {
			if err := m.shareConsumer.Consume(ctx, []string{topic}, m.shareHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.shareConsumer.Close(); err != nil {
		log.Error("Failed to close share event consumer", "err", err)
	}

	return nil
}
