package kafka

import (
	"Matchpoint/internal/model"
	"Matchpoint/internal/pkg/signals"
	"Matchpoint/internal/repository"
	"context"
	"errors"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

const (
	SessionCompleted = "session_completed"
	SessionCancelled = "session_cancelled"
)

// SessionEvent 场次服务发布的生命周期事件
// 东道主的可靠性与参与质量信号随之变化，需要让综合声誉跟上
type SessionEvent struct {
	Type   string `json:"type"`
	GameID uint64 `json:"game_id"`
	HostID uint64 `json:"host_id"`
}

type Enqueuer interface {
	Enqueue(entityKind int8, entityID uint64)
}

type SessionHandler struct {
	aggRepo  repository.ReputationAggregateRepo
	signals  signals.Provider
	enqueuer Enqueuer
}

func NewSessionHandler(aggRepo repository.ReputationAggregateRepo, provider signals.Provider, enqueuer Enqueuer) *SessionHandler {
	return &SessionHandler{
		aggRepo:  aggRepo,
		signals:  provider,
		enqueuer: enqueuer,
	}
}

func (s *SessionHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("session event consumer setup")
	return nil
}

func (s *SessionHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("session event consumer cleanup")
	return nil
}

func (s *SessionHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("session events consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("session events process batch error", "err", err)
		return err
	}
	return nil
}

func (s *SessionHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	event, err := toSessionEvent(msg)
	if err != nil {
		// 格式错误的消息没有重试价值，记录后跳过
		log.WarnContext(ctx, "drop malformed session event", "err", err)
		return nil
	}

	switch event.Type {
	case SessionCompleted, SessionCancelled:
		return s.handleHostChanged(ctx, event)
	default:
		return nil
	}
}

// handleHostChanged 场次结束或取消后清掉东道主的信号缓存并触发重算
func (s *SessionHandler) handleHostChanged(ctx context.Context, event *SessionEvent) error {
	if event.HostID == 0 {
		return nil
	}

	s.signals.InvalidateHost(ctx, event.HostID)

	if err := s.aggRepo.MarkStale(ctx, model.EntityKindUser, event.HostID); err != nil {
		return err
	}
	s.enqueuer.Enqueue(model.EntityKindUser, event.HostID)

	log.InfoContext(ctx, "host reputation marked stale",
		"hostID", event.HostID, "gameID", event.GameID, "event", event.Type)
	return nil
}

func toSessionEvent(msg *sarama.ConsumerMessage) (*SessionEvent, error) {
	var event SessionEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return nil, err
	}
	if event.Type == "" {
		return nil, errors.New("event type is empty")
	}
	return &event, nil
}
