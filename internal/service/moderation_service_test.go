package service

import (
	"Matchpoint/internal/model"
	"Matchpoint/internal/pkg/mongo"
	"context"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedReview(t *testing.T, repo *fakeReviewRepo, visibility int8) uint64 {
	t.Helper()
	review := &model.Review{
		Kind:       model.ReviewKindGame,
		ReviewerID: 2,
		TargetID:   100,
		Rating:     1,
		Visibility: visibility,
	}
	require.NoError(t, repo.Create(context.Background(), review))
	return review.ID
}

func newTestModerationService(reviewRepo *fakeReviewRepo, flagRepo *fakeFlagRepo,
	aggRepo *fakeAggRepo, auditRepo *fakeAuditRepo, enqueuer *fakeEnqueuer,
) ModerationService {
	users := &fakeEntityRepo{existing: map[uint64]bool{1: true, 2: true, 3: true, 4: true, 9: true}}
	return NewModerationService(reviewRepo, flagRepo, users, aggRepo, auditRepo, enqueuer, 3)
}

func TestFlagReview_BelowThreshold(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	reviewID := seedReview(t, reviewRepo, model.VisibilityVisible)
	flagRepo := &fakeFlagRepo{newCount: 1, hidden: false}
	auditRepo := &fakeAuditRepo{}
	enqueuer := &fakeEnqueuer{}
	svc := newTestModerationService(reviewRepo, flagRepo, newFakeAggRepo(), auditRepo, enqueuer)

	res, err := svc.FlagReview(context.Background(), 1, reviewID, "灌水")
	require.NoError(t, err)
	assert.Equal(t, 1, res.FlagCount)
	assert.False(t, res.Hidden)

	// 未达阈值不触发重算，但举报本身要留档
	assert.Zero(t, enqueuer.count())
	assert.Equal(t, []string{mongo.AuditActionFlag}, auditRepo.actions())
}

func TestFlagReview_ThresholdTriggersHide(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	reviewID := seedReview(t, reviewRepo, model.VisibilityVisible)
	flagRepo := &fakeFlagRepo{newCount: 3, hidden: true}
	auditRepo := &fakeAuditRepo{}
	enqueuer := &fakeEnqueuer{}
	aggRepo := newFakeAggRepo()
	svc := newTestModerationService(reviewRepo, flagRepo, aggRepo, auditRepo, enqueuer)

	res, err := svc.FlagReview(context.Background(), 3, reviewID, "辱骂")
	require.NoError(t, err)
	assert.Equal(t, 3, res.FlagCount)
	assert.True(t, res.Hidden)

	// 隐藏后目标实体重新排队重算
	require.Equal(t, 1, enqueuer.count())
	assert.Equal(t, [2]uint64{uint64(model.EntityKindGame), 100}, enqueuer.calls[0])
	require.Len(t, aggRepo.staled, 1)

	assert.Equal(t, []string{mongo.AuditActionFlag, mongo.AuditActionHide}, auditRepo.actions())
}

func TestFlagReview_AlreadyHiddenNoTransition(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	reviewID := seedReview(t, reviewRepo, model.VisibilityHidden)
	flagRepo := &fakeFlagRepo{newCount: 4, hidden: false}
	enqueuer := &fakeEnqueuer{}
	svc := newTestModerationService(reviewRepo, flagRepo, newFakeAggRepo(), &fakeAuditRepo{}, enqueuer)

	res, err := svc.FlagReview(context.Background(), 4, reviewID, "重复内容")
	require.NoError(t, err)
	assert.Equal(t, 4, res.FlagCount)
	assert.False(t, res.Hidden)
	assert.Zero(t, enqueuer.count())
}

func TestFlagReview_Duplicate(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	reviewID := seedReview(t, reviewRepo, model.VisibilityVisible)
	flagRepo := &fakeFlagRepo{appendErr: &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}}
	svc := newTestModerationService(reviewRepo, flagRepo, newFakeAggRepo(), &fakeAuditRepo{}, &fakeEnqueuer{})

	_, err := svc.FlagReview(context.Background(), 1, reviewID, "灌水")
	assert.ErrorIs(t, err, ErrFlagDuplicate)
}

func TestFlagReview_UnknownReview(t *testing.T) {
	svc := newTestModerationService(newFakeReviewRepo(), &fakeFlagRepo{}, newFakeAggRepo(), &fakeAuditRepo{}, &fakeEnqueuer{})
	_, err := svc.FlagReview(context.Background(), 1, 999, "灌水")
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestRestoreReview(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	hiddenID := seedReview(t, reviewRepo, model.VisibilityHidden)
	auditRepo := &fakeAuditRepo{}
	enqueuer := &fakeEnqueuer{}
	aggRepo := newFakeAggRepo()
	svc := newTestModerationService(reviewRepo, &fakeFlagRepo{}, aggRepo, auditRepo, enqueuer)

	require.NoError(t, svc.RestoreReview(context.Background(), 9, hiddenID))

	review, _ := reviewRepo.GetByID(context.Background(), hiddenID)
	assert.Equal(t, model.VisibilityVisible, review.Visibility)
	assert.Equal(t, []string{mongo.AuditActionRestore}, auditRepo.actions())
	require.Equal(t, 1, enqueuer.count())

	// 再次恢复：评价已可见
	err := svc.RestoreReview(context.Background(), 9, hiddenID)
	assert.ErrorIs(t, err, ErrReviewNotHidden)
}

func TestRestoreReview_UnknownReview(t *testing.T) {
	svc := newTestModerationService(newFakeReviewRepo(), &fakeFlagRepo{}, newFakeAggRepo(), &fakeAuditRepo{}, &fakeEnqueuer{})
	err := svc.RestoreReview(context.Background(), 9, 999)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestGetAuditTrail(t *testing.T) {
	auditRepo := &fakeAuditRepo{}
	require.NoError(t, auditRepo.Append(context.Background(), &mongo.ModerationAudit{
		ReviewID: 5, Action: mongo.AuditActionFlag, OperatorID: 1,
	}))
	require.NoError(t, auditRepo.Append(context.Background(), &mongo.ModerationAudit{
		ReviewID: 5, Action: mongo.AuditActionHide,
	}))
	require.NoError(t, auditRepo.Append(context.Background(), &mongo.ModerationAudit{
		ReviewID: 6, Action: mongo.AuditActionFlag, OperatorID: 2,
	}))
	svc := newTestModerationService(newFakeReviewRepo(), &fakeFlagRepo{}, newFakeAggRepo(), auditRepo, &fakeEnqueuer{})

	audits, err := svc.GetAuditTrail(context.Background(), 5, 50)
	require.NoError(t, err)
	assert.Len(t, audits, 2)
}

func TestFlagReview_StaleMarkFailureStillEnqueues(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	reviewID := seedReview(t, reviewRepo, model.VisibilityVisible)
	aggRepo := newFakeAggRepo()
	aggRepo.staleErr = assert.AnError
	enqueuer := &fakeEnqueuer{}
	svc := newTestModerationService(reviewRepo, &fakeFlagRepo{newCount: 3, hidden: true}, aggRepo, &fakeAuditRepo{}, enqueuer)

	res, err := svc.FlagReview(context.Background(), 3, reviewID, "辱骂")
	require.NoError(t, err)
	assert.True(t, res.Hidden)
	require.Equal(t, 1, enqueuer.count())
}

func TestRestoreReview_StaleMarkFailureStillEnqueues(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	hiddenID := seedReview(t, reviewRepo, model.VisibilityHidden)
	aggRepo := newFakeAggRepo()
	aggRepo.staleErr = assert.AnError
	enqueuer := &fakeEnqueuer{}
	svc := newTestModerationService(reviewRepo, &fakeFlagRepo{}, aggRepo, &fakeAuditRepo{}, enqueuer)

	require.NoError(t, svc.RestoreReview(context.Background(), 9, hiddenID))
	require.Equal(t, 1, enqueuer.count())
}
