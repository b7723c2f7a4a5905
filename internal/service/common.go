package service

import (
	"Matchpoint/internal/repository"
	"context"
	"errors"
	log "log/slog"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Enqueuer 重算调度入口，由 scheduler.Scheduler 实现
type Enqueuer interface {
	Enqueue(entityKind int8, entityID uint64)
}

// isDuplicateKey 识别唯一索引冲突（并发重复写入由数据库裁决）
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// markStaleAndEnqueue 影响聚合的写入成功后触发重算
// stale 标记失败只记日志，入队照常：本轮由内存队列兜住，之后的由兜底扫描兜住
func markStaleAndEnqueue(ctx context.Context, aggRepo repository.ReputationAggregateRepo,
	enqueuer Enqueuer, entityKind int8, entityID uint64,
) {
	if err := aggRepo.MarkStale(ctx, entityKind, entityID); err != nil {
		log.ErrorContext(ctx, "mark aggregate stale error",
			"entityKind", entityKind, "entityID", entityID, "err", err)
	}
	enqueuer.Enqueue(entityKind, entityID)
}
