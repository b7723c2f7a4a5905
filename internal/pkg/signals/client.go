package signals

import (
	"Matchpoint/internal/api/config"
	"Matchpoint/internal/pkg/consts"
	"Matchpoint/internal/pkg/redis"
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// Provider 外部声誉信号，均已归一化到 0~5
// 任一信号不可用时返回 ok=false，由聚合侧降级处理，不阻塞计算
type Provider interface {
	SkillRating(ctx context.Context, userID uint64) (float64, bool)
	HostReliability(ctx context.Context, userID uint64) (float64, bool)
	ParticipationQuality(ctx context.Context, userID uint64) (float64, bool)
	// InvalidateHost 场次事件到达后清掉该用户的信号缓存
	InvalidateHost(ctx context.Context, userID uint64)
}

type signalResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Value float64 `json:"value"`
	} `json:"data"`
}

type restyProvider struct {
	client   *resty.Client
	cfg      config.SignalsConfig
	cacheTTL time.Duration
}

func NewProvider(cfg config.SignalsConfig) Provider {
	client := resty.New().
		SetTimeout(time.Duration(cfg.TimeoutMillis) * time.Millisecond).
		SetRetryCount(1)

	return &restyProvider{
		client:   client,
		cfg:      cfg,
		cacheTTL: time.Duration(cfg.CacheTTLMinutes) * time.Minute,
	}
}

func (s *restyProvider) SkillRating(ctx context.Context, userID uint64) (float64, bool) {
	return s.fetch(ctx, s.cfg.SkillURL, consts.SignalSkillKey, userID)
}

func (s *restyProvider) HostReliability(ctx context.Context, userID uint64) (float64, bool) {
	return s.fetch(ctx, s.cfg.ReliabilityURL, consts.SignalReliabilityKey, userID)
}

func (s *restyProvider) ParticipationQuality(ctx context.Context, userID uint64) (float64, bool) {
	return s.fetch(ctx, s.cfg.ParticipationURL, consts.SignalParticipationKey, userID)
}

func (s *restyProvider) InvalidateHost(ctx context.Context, userID uint64) {
	suffix := strconv.FormatUint(userID, 10)
	_ = redis.DeleteKey(ctx, consts.SignalSkillKey+suffix)
	_ = redis.DeleteKey(ctx, consts.SignalReliabilityKey+suffix)
	_ = redis.DeleteKey(ctx, consts.SignalParticipationKey+suffix)
}

// fetch 先查缓存再回源，任何异常都按信号缺失处理
func (s *restyProvider) fetch(ctx context.Context, baseURL, keyPrefix string, userID uint64) (float64, bool) {
	if baseURL == "" {
		return 0, false
	}

	cacheKey := keyPrefix + strconv.FormatUint(userID, 10)
	if val, err := redis.GetFloat64(ctx, cacheKey); err == nil {
		return val, true
	}

	var body signalResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get(fmt.Sprintf("%s/%d", baseURL, userID))

	if err != nil || !resp.IsSuccess() || body.Code != 200 {
		log.WarnContext(ctx, "signal provider unavailable", "url", baseURL, "userID", userID, "err", err)
		return 0, false
	}

	value := clamp(body.Data.Value, 0, 5)
	_ = redis.SetWithExpiration(ctx, cacheKey, strconv.FormatFloat(value, 'f', -1, 64), s.cacheTTL)

	return value, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
