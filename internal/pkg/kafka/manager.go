package kafka

import (
	"Matchpoint/internal/api/config"
	"Matchpoint/internal/pkg/signals"
	"Matchpoint/internal/repository"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	sessionConsumer sarama.ConsumerGroup
	sessionHandler  sarama.ConsumerGroupHandler
}

func NewConsumerManager(
	cfg *config.Config,
	aggRepo repository.ReputationAggregateRepo,
	provider signals.Provider,
	enqueuer Enqueuer,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	sessionConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaSessionConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	sessionHandler := NewSessionHandler(aggRepo, provider, enqueuer)

	return &ConsumerManager{
		sessionConsumer: sessionConsumer,
		sessionHandler:  sessionHandler,
	}, nil
}

// Start 启动消费者，阻塞到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaSessionConsumer.Topic
		log.Info("Session event consumer started", "topic", topic)
		for {
			if err := m.sessionConsumer.Consume(ctx, []string{topic}, m.sessionHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.sessionConsumer.Close(); err != nil {
		log.Error("Failed to close session consumer", "err", err)
	}
	return nil
}
