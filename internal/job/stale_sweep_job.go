package job

import (
	"Matchpoint/internal/pkg/consts"
	"Matchpoint/internal/pkg/logger"
	"Matchpoint/internal/pkg/redis"
	"Matchpoint/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const sweepBatchLimit = 500

type Enqueuer interface {
	Enqueue(entityKind int8, entityID uint64)
}

// StaleSweepJob 周期兜底任务：把所有 stale 的聚合重新排队
// 正常路径失败（超时、数据库抖动、进程重启丢队列）留下的欠账由它补齐
type StaleSweepJob struct {
	aggRepo  repository.ReputationAggregateRepo
	enqueuer Enqueuer
}

func NewStaleSweepJob(aggRepo repository.ReputationAggregateRepo, enqueuer Enqueuer) *StaleSweepJob {
	return &StaleSweepJob{
		aggRepo:  aggRepo,
		enqueuer: enqueuer,
	}
}

func (s *StaleSweepJob) Run() {
	traceID := "job-sweep-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	// 多实例部署时只允许一个实例扫描，避免重复排队放大压力
	locked, err := redis.TryLock(ctx, consts.SweepLock, traceID, 5*time.Minute, 0)
	if err != nil {
		log.ErrorContext(ctx, "acquire sweep lock error", "err", err)
		return
	}
	if !locked {
		return
	}
	defer redis.UnLock(ctx, consts.SweepLock, traceID)

	aggs, err := s.aggRepo.ListStale(ctx, sweepBatchLimit)
	if err != nil {
		log.ErrorContext(ctx, "list stale aggregates error", "err", err)
		return
	}

	for _, agg := range aggs {
		s.enqueuer.Enqueue(agg.EntityKind, agg.EntityID)
	}

	if len(aggs) > 0 {
		log.InfoContext(ctx, "stale sweep enqueued", "count", len(aggs))
	}
}
