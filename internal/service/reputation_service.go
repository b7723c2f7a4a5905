package service

import (
	"Matchpoint/internal/api/config"
	"Matchpoint/internal/api/dto"
	"Matchpoint/internal/model"
	"Matchpoint/internal/pkg/consts"
	"Matchpoint/internal/pkg/redis"
	"Matchpoint/internal/pkg/signals"
	"Matchpoint/internal/repository"
	"context"
	"math"
	"strconv"
	"time"

	log "log/slog"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

type ReputationService interface {
	// Recompute 对单个实体做一次完整重算并落快照，由调度器的工作协程串行调用
	Recompute(ctx context.Context, entityKind int8, entityID uint64) error
	GetGameRating(ctx context.Context, gameID uint64) (*dto.ReputationDTO, error)
	GetUserReputation(ctx context.Context, userID uint64) (*dto.ReputationDTO, error)
}

type reputationServiceImpl struct {
	reviewRepo repository.ReviewRepo
	aggRepo    repository.ReputationAggregateRepo
	signals    signals.Provider
	cfg        config.ReputationConfig
	cacheTTL   time.Duration
}

// NewReputationService 权重配置非法时拒绝构造，进程在启动阶段就失败
func NewReputationService(
	reviewRepo repository.ReviewRepo,
	aggRepo repository.ReputationAggregateRepo,
	provider signals.Provider,
	cfg config.ReputationConfig,
) (ReputationService, error) {
	w := cfg.Weights
	sum := w.Review + w.Skill + w.Reliability + w.Participation
	if math.Abs(sum-1.0) > 1e-6 {
		return nil, ErrWeightConfigInvalid
	}
	if cfg.GameConfidence <= 0 || cfg.UserConfidence <= 0 {
		return nil, ErrWeightConfigInvalid
	}

	ttl := time.Duration(cfg.CacheTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	return &reputationServiceImpl{
		reviewRepo: reviewRepo,
		aggRepo:    aggRepo,
		signals:    provider,
		cfg:        cfg,
		cacheTTL:   ttl,
	}, nil
}

func (s *reputationServiceImpl) Recompute(ctx context.Context, entityKind int8, entityID uint64) error {
	var reviewKind int8
	var confidence, prior float64
	switch entityKind {
	case model.EntityKindGame:
		reviewKind = model.ReviewKindGame
		confidence, prior = s.cfg.GameConfidence, s.cfg.GamePrior
	case model.EntityKindUser:
		reviewKind = model.ReviewKindUser
		confidence, prior = s.cfg.UserConfidence, s.cfg.UserPrior
	default:
		return ErrParamInvalid
	}

	// 单条聚合查询取回总和与条数，评分快照内部一致
	sum, count, err := s.reviewRepo.VisibleStats(ctx, reviewKind, entityID)
	if err != nil {
		return err
	}

	adjusted := (confidence*prior + float64(sum)) / (confidence + float64(count))

	agg := &model.ReputationAggregate{
		EntityKind:     entityKind,
		EntityID:       entityID,
		AdjustedRating: adjusted,
		ReviewCount:    int(count),
		Stale:          false,
		ComputedAt:     time.Now(),
	}

	if entityKind == model.EntityKindUser {
		composite, partial := s.compositeScore(ctx, entityID, adjusted)
		agg.CompositeScore = composite
		agg.PartialInputs = partial
	}

	// 超时或取消的计算不允许落库，快照保持上一次的完整结果
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.aggRepo.Upsert(ctx, agg); err != nil {
		return err
	}

	s.dropCache(ctx, entityKind, entityID)

	log.InfoContext(ctx, "reputation recomputed",
		"entityKind", entityKind, "entityID", entityID,
		"adjustedRating", adjusted, "reviewCount", count, "partialInputs", agg.PartialInputs)
	return nil
}

// compositeScore 并行拉取三路外部信号，缺失的信号按 0 计入并标记 partial
func (s *reputationServiceImpl) compositeScore(ctx context.Context, userID uint64, adjusted float64) (float64, bool) {
	var skill, reliability, participation float64
	var skillOK, reliabilityOK, participationOK bool

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		skill, skillOK = s.signals.SkillRating(egCtx, userID)
		return nil
	})
	eg.Go(func() error {
		reliability, reliabilityOK = s.signals.HostReliability(egCtx, userID)
		return nil
	})
	eg.Go(func() error {
		participation, participationOK = s.signals.ParticipationQuality(egCtx, userID)
		return nil
	})
	_ = eg.Wait()

	w := s.cfg.Weights
	composite := w.Review*adjusted +
		w.Skill*skill +
		w.Reliability*reliability +
		w.Participation*participation

	partial := !(skillOK && reliabilityOK && participationOK)
	return composite, partial
}

func (s *reputationServiceImpl) GetGameRating(ctx context.Context, gameID uint64) (*dto.ReputationDTO, error) {
	return s.getReputation(ctx, model.EntityKindGame, gameID)
}

func (s *reputationServiceImpl) GetUserReputation(ctx context.Context, userID uint64) (*dto.ReputationDTO, error) {
	return s.getReputation(ctx, model.EntityKindUser, userID)
}

func (s *reputationServiceImpl) getReputation(ctx context.Context, entityKind int8, entityID uint64) (*dto.ReputationDTO, error) {
	cacheKey := s.cacheKey(entityKind, entityID)
	if raw, err := redis.GetValue(ctx, cacheKey); err == nil && raw != "" {
		cached := &dto.ReputationDTO{}
		if err := json.Unmarshal([]byte(raw), cached); err == nil {
			return cached, nil
		}
	}

	agg, err := s.aggRepo.GetByEntity(ctx, entityKind, entityID)
	if err != nil {
		return nil, err
	}
	// 占位行只说明有重算在途，对外仍视为暂无数据
	if agg == nil || agg.ComputedAt.IsZero() {
		return nil, ErrAggregateNotFound
	}

	res := &dto.ReputationDTO{
		EntityID:       agg.EntityID,
		EntityKind:     agg.EntityKind,
		AdjustedRating: agg.AdjustedRating,
		ReviewCount:    agg.ReviewCount,
		CompositeScore: agg.CompositeScore,
		PartialInputs:  agg.PartialInputs,
		Stale:          agg.Stale,
		ComputedAt:     agg.ComputedAt,
	}

	if raw, err := json.Marshal(res); err == nil {
		_ = redis.SetWithExpiration(ctx, cacheKey, string(raw), s.cacheTTL)
	}
	return res, nil
}

func (s *reputationServiceImpl) dropCache(ctx context.Context, entityKind int8, entityID uint64) {
	if err := redis.DeleteKey(ctx, s.cacheKey(entityKind, entityID)); err != nil {
		log.WarnContext(ctx, "drop reputation cache error", "entityKind", entityKind, "entityID", entityID, "err", err)
	}
}

func (s *reputationServiceImpl) cacheKey(entityKind int8, entityID uint64) string {
	prefix := consts.GameReputationKey
	if entityKind == model.EntityKindUser {
		prefix = consts.UserReputationKey
	}
	return prefix + strconv.FormatUint(entityID, 10)
}
