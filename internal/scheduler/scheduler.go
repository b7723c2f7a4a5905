package scheduler

import (
	"context"
	"errors"
	log "log/slog"
	"sync"
	"time"
)

// RecomputeFunc 对单个实体执行一次完整的聚合重算
type RecomputeFunc func(ctx context.Context, entityKind int8, entityID uint64) error

type entityKey struct {
	kind int8
	id   uint64
}

// 每个实体的调度状态，未登记即视为 idle
const (
	statePending int8 = 1
	stateRunning int8 = 2
)

// Scheduler 按实体维度串行化重算：
// 同一实体同时最多一次重算在跑，排队事件合并为一次；不同实体并行。
// 调用方 Enqueue 后立即返回，不等待重算完成。
type Scheduler struct {
	mu     sync.Mutex
	states map[entityKey]int8
	rerun  map[entityKey]bool

	queue     chan entityKey
	recompute RecomputeFunc
	timeout   time.Duration
	workers   int
}

func New(workers, queueSize int, timeout time.Duration, recompute RecomputeFunc) *Scheduler {
	if workers <= 0 {
		workers = 4
	}
	if queueSize <= 0 {
		queueSize = 4096
	}
	return &Scheduler{
		states:    make(map[entityKey]int8),
		rerun:     make(map[entityKey]bool),
		queue:     make(chan entityKey, queueSize),
		recompute: recompute,
		timeout:   timeout,
		workers:   workers,
	}
}

// Enqueue 登记一次重算请求
// idle -> pending 入队；pending 合并为空操作；running 则标记结束后再跑一轮
func (s *Scheduler) Enqueue(entityKind int8, entityID uint64) {
	key := entityKey{kind: entityKind, id: entityID}

	s.mu.Lock()
	switch s.states[key] {
	case statePending:
		s.mu.Unlock()
		return
	case stateRunning:
		s.rerun[key] = true
		s.mu.Unlock()
		return
	default:
		s.states[key] = statePending
		s.mu.Unlock()
	}

	// 合并保证了队列中每个实体至多一项，容量按实体数配置即可
	s.queue <- key
}

// Run 启动工作协程并阻塞到 ctx 取消
func (s *Scheduler) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.workerLoop(ctx)
		}()
	}
	log.Info("重算调度器启动", "workers", s.workers)

	<-ctx.Done()
	wg.Wait()
	log.Info("重算调度器退出")
}

func (s *Scheduler) workerLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case key := <-s.queue:
			s.runOne(ctx, key)
		}
	}
}

func (s *Scheduler) runOne(ctx context.Context, key entityKey) {
	s.mu.Lock()
	s.states[key] = stateRunning
	s.rerun[key] = false
	s.mu.Unlock()

	rctx, cancel := context.WithTimeout(ctx, s.timeout)
	err := s.recompute(rctx, key.kind, key.id)
	cancel()

	if err != nil {
		// 超时/失败不向调用方传播：聚合保持 stale，由兜底扫描重试
		if errors.Is(err, context.DeadlineExceeded) {
			log.WarnContext(ctx, "重算超时，等待下轮扫描重试", "entityKind", key.kind, "entityID", key.id)
		} else if !errors.Is(err, context.Canceled) {
			log.ErrorContext(ctx, "重算失败", "entityKind", key.kind, "entityID", key.id, "err", err)
		}
	}

	s.mu.Lock()
	if s.rerun[key] {
		// 运行期间有新事件进来，保证最后一次写入的效果不丢
		s.states[key] = statePending
		delete(s.rerun, key)
		s.mu.Unlock()

		select {
		case s.queue <- key:
		case <-ctx.Done():
		}
		return
	}
	delete(s.states, key)
	delete(s.rerun, key)
	s.mu.Unlock()
}
