package service

import (
	"Matchpoint/internal/api/config"
	"Matchpoint/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultReputationConfig() config.ReputationConfig {
	return config.ReputationConfig{
		GameConfidence: 5,
		GamePrior:      3.5,
		UserConfidence: 5,
		UserPrior:      3.5,
		Weights: config.WeightConfig{
			Review:        0.45,
			Skill:         0.30,
			Reliability:   0.15,
			Participation: 0.10,
		},
		CacheTTLMinutes: 10,
	}
}

func newTestReputationService(t *testing.T, reviewRepo *fakeReviewRepo, aggRepo *fakeAggRepo, provider *fakeSignals) ReputationService {
	t.Helper()
	svc, err := NewReputationService(reviewRepo, aggRepo, provider, defaultReputationConfig())
	require.NoError(t, err)
	return svc
}

func TestNewReputationService_WeightValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *config.ReputationConfig)
		wantErr error
	}{
		{
			name:   "默认权重合法",
			mutate: func(cfg *config.ReputationConfig) {},
		},
		{
			name: "权重和偏小",
			mutate: func(cfg *config.ReputationConfig) {
				cfg.Weights.Review = 0.44
			},
			wantErr: ErrWeightConfigInvalid,
		},
		{
			name: "权重和偏大",
			mutate: func(cfg *config.ReputationConfig) {
				cfg.Weights.Participation = 0.12
			},
			wantErr: ErrWeightConfigInvalid,
		},
		{
			name: "平滑常数必须为正",
			mutate: func(cfg *config.ReputationConfig) {
				cfg.GameConfidence = 0
			},
			wantErr: ErrWeightConfigInvalid,
		},
		{
			name: "浮点误差容忍",
			mutate: func(cfg *config.ReputationConfig) {
				cfg.Weights.Review = 0.45 + 1e-9
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultReputationConfig()
			tt.mutate(&cfg)
			_, err := NewReputationService(newFakeReviewRepo(), newFakeAggRepo(), &fakeSignals{}, cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRecompute_NoReviewsFallsBackToPrior(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	aggRepo := newFakeAggRepo()
	svc := newTestReputationService(t, reviewRepo, aggRepo, &fakeSignals{})

	err := svc.Recompute(context.Background(), model.EntityKindGame, 100)
	require.NoError(t, err)

	agg, err := aggRepo.GetByEntity(context.Background(), model.EntityKindGame, 100)
	require.NoError(t, err)
	require.NotNil(t, agg)
	assert.InDelta(t, 3.5, agg.AdjustedRating, 1e-9)
	assert.Equal(t, 0, agg.ReviewCount)
	assert.False(t, agg.Stale)
	assert.False(t, agg.ComputedAt.IsZero())
}

func TestRecompute_SingleFiveStarReview(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	require.NoError(t, reviewRepo.Create(context.Background(), &model.Review{
		Kind: model.ReviewKindGame, ReviewerID: 1, TargetID: 100, Rating: 5,
	}))
	aggRepo := newFakeAggRepo()
	svc := newTestReputationService(t, reviewRepo, aggRepo, &fakeSignals{})

	require.NoError(t, svc.Recompute(context.Background(), model.EntityKindGame, 100))

	agg, _ := aggRepo.GetByEntity(context.Background(), model.EntityKindGame, 100)
	require.NotNil(t, agg)
	// (5*3.5 + 5) / (5+1)
	assert.InDelta(t, 3.75, agg.AdjustedRating, 1e-9)
	assert.Equal(t, 1, agg.ReviewCount)
}

func TestRecompute_ExcludesHiddenReviews(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	ratings := []int8{5, 4, 5, 3, 4, 2, 4}
	for i, rating := range ratings {
		require.NoError(t, reviewRepo.Create(context.Background(), &model.Review{
			Kind: model.ReviewKindGame, ReviewerID: uint64(i + 1), TargetID: 100, Rating: rating,
		}))
	}
	// 一条被隐藏的一星评价不应影响结果
	require.NoError(t, reviewRepo.Create(context.Background(), &model.Review{
		Kind: model.ReviewKindGame, ReviewerID: 99, TargetID: 100, Rating: 1,
		Visibility: model.VisibilityHidden,
	}))

	aggRepo := newFakeAggRepo()
	svc := newTestReputationService(t, reviewRepo, aggRepo, &fakeSignals{})
	require.NoError(t, svc.Recompute(context.Background(), model.EntityKindGame, 100))

	agg, _ := aggRepo.GetByEntity(context.Background(), model.EntityKindGame, 100)
	require.NotNil(t, agg)
	// (5*3.5 + 27) / (5+7)
	assert.InDelta(t, 44.5/12.0, agg.AdjustedRating, 1e-9)
	assert.Equal(t, 7, agg.ReviewCount)
}

func TestRecompute_UserCompositeScore(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	require.NoError(t, reviewRepo.Create(context.Background(), &model.Review{
		Kind: model.ReviewKindUser, ReviewerID: 1, TargetID: 7, Rating: 4,
	}))
	aggRepo := newFakeAggRepo()
	provider := &fakeSignals{
		skill: 4.2, skillOK: true,
		reliability: 3.8, reliabilityOK: true,
		participation: 4.5, participationOK: true,
	}
	svc := newTestReputationService(t, reviewRepo, aggRepo, provider)

	require.NoError(t, svc.Recompute(context.Background(), model.EntityKindUser, 7))

	agg, _ := aggRepo.GetByEntity(context.Background(), model.EntityKindUser, 7)
	require.NotNil(t, agg)

	adjusted := (5*3.5 + 4) / 6.0
	want := 0.45*adjusted + 0.30*4.2 + 0.15*3.8 + 0.10*4.5
	assert.InDelta(t, want, agg.CompositeScore, 1e-9)
	assert.False(t, agg.PartialInputs)
}

func TestRecompute_MissingSignalMarksPartial(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	aggRepo := newFakeAggRepo()
	provider := &fakeSignals{
		skill: 4.2, skillOK: true,
		reliabilityOK:   false,
		participationOK: false,
	}
	svc := newTestReputationService(t, reviewRepo, aggRepo, provider)

	require.NoError(t, svc.Recompute(context.Background(), model.EntityKindUser, 7))

	agg, _ := aggRepo.GetByEntity(context.Background(), model.EntityKindUser, 7)
	require.NotNil(t, agg)
	assert.True(t, agg.PartialInputs)
	// 缺失信号按 0 计入
	want := 0.45*3.5 + 0.30*4.2
	assert.InDelta(t, want, agg.CompositeScore, 1e-9)
}

func TestRecompute_Idempotent(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	require.NoError(t, reviewRepo.Create(context.Background(), &model.Review{
		Kind: model.ReviewKindGame, ReviewerID: 1, TargetID: 100, Rating: 5,
	}))
	aggRepo := newFakeAggRepo()
	svc := newTestReputationService(t, reviewRepo, aggRepo, &fakeSignals{})

	require.NoError(t, svc.Recompute(context.Background(), model.EntityKindGame, 100))
	first, _ := aggRepo.GetByEntity(context.Background(), model.EntityKindGame, 100)

	require.NoError(t, svc.Recompute(context.Background(), model.EntityKindGame, 100))
	second, _ := aggRepo.GetByEntity(context.Background(), model.EntityKindGame, 100)

	assert.Equal(t, first.AdjustedRating, second.AdjustedRating)
	assert.Equal(t, first.ReviewCount, second.ReviewCount)
}

func TestRecompute_CancelledContextDoesNotWrite(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	aggRepo := newFakeAggRepo()
	svc := newTestReputationService(t, reviewRepo, aggRepo, &fakeSignals{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.Recompute(ctx, model.EntityKindGame, 100)
	assert.Error(t, err)

	agg, _ := aggRepo.GetByEntity(context.Background(), model.EntityKindGame, 100)
	assert.Nil(t, agg)
}

func TestRecompute_UnknownEntityKind(t *testing.T) {
	svc := newTestReputationService(t, newFakeReviewRepo(), newFakeAggRepo(), &fakeSignals{})
	err := svc.Recompute(context.Background(), 9, 1)
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestGetReputation_NotComputedYet(t *testing.T) {
	aggRepo := newFakeAggRepo()
	svc := newTestReputationService(t, newFakeReviewRepo(), aggRepo, &fakeSignals{})

	_, err := svc.GetGameRating(context.Background(), 100)
	assert.ErrorIs(t, err, ErrAggregateNotFound)

	// MarkStale 产生的占位行同样视为暂无数据
	require.NoError(t, aggRepo.MarkStale(context.Background(), model.EntityKindUser, 7))
	_, err = svc.GetUserReputation(context.Background(), 7)
	assert.ErrorIs(t, err, ErrAggregateNotFound)
}

func TestGetReputation_ReturnsSnapshot(t *testing.T) {
	aggRepo := newFakeAggRepo()
	require.NoError(t, aggRepo.Upsert(context.Background(), &model.ReputationAggregate{
		EntityKind:     model.EntityKindGame,
		EntityID:       100,
		AdjustedRating: 3.75,
		ReviewCount:    1,
		ComputedAt:     time.Now(),
	}))
	svc := newTestReputationService(t, newFakeReviewRepo(), aggRepo, &fakeSignals{})

	res, err := svc.GetGameRating(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), res.EntityID)
	assert.InDelta(t, 3.75, res.AdjustedRating, 1e-9)
	assert.Equal(t, 1, res.ReviewCount)
}
