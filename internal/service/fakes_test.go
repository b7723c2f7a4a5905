package service

import (
	"Matchpoint/internal/model"
	"Matchpoint/internal/pkg/mongo"
	"context"
	"sort"
	"sync"
	"time"
)

type fakeReviewRepo struct {
	mu      sync.Mutex
	nextID  uint64
	reviews map[uint64]*model.Review

	createErr error
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{
		nextID:  1,
		reviews: make(map[uint64]*model.Review),
	}
}

func (f *fakeReviewRepo) Create(_ context.Context, review *model.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	review.ID = f.nextID
	f.nextID++
	stored := *review
	f.reviews[review.ID] = &stored
	return nil
}

func (f *fakeReviewRepo) GetByID(_ context.Context, reviewID uint64) (*model.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	review, ok := f.reviews[reviewID]
	if !ok {
		return nil, nil
	}
	cp := *review
	return &cp, nil
}

func (f *fakeReviewRepo) VisibleStats(_ context.Context, kind int8, targetID uint64) (int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum, count int64
	for _, r := range f.reviews {
		if r.Kind == kind && r.TargetID == targetID && r.Visibility == model.VisibilityVisible {
			sum += int64(r.Rating)
			count++
		}
	}
	return sum, count, nil
}

func (f *fakeReviewRepo) ListByTarget(_ context.Context, kind int8, targetID uint64, includeHidden bool,
	beforeCreatedAt time.Time, beforeID uint64, limit int,
) ([]*model.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := make([]*model.Review, 0)
	for _, r := range f.reviews {
		if r.Kind != kind || r.TargetID != targetID {
			continue
		}
		if !includeHidden && r.Visibility != model.VisibilityVisible {
			continue
		}
		if beforeID > 0 {
			if !(r.CreatedAt.Before(beforeCreatedAt) || (r.CreatedAt.Equal(beforeCreatedAt) && r.ID < beforeID)) {
				continue
			}
		}
		cp := *r
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeReviewRepo) UpdateVisibility(_ context.Context, reviewID uint64, visibility int8) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.reviews[reviewID]; ok {
		r.Visibility = visibility
	}
	return nil
}

type fakeFlagRepo struct {
	appendErr error
	newCount  int
	hidden    bool
	calls     int
}

func (f *fakeFlagRepo) AppendFlag(_ context.Context, _ *model.ReviewFlag, _ int) (int, bool, error) {
	f.calls++
	if f.appendErr != nil {
		return 0, false, f.appendErr
	}
	return f.newCount, f.hidden, nil
}

func (f *fakeFlagRepo) CountByReview(_ context.Context, _ uint64) (int64, error) {
	return int64(f.newCount), nil
}

type fakeAggRepo struct {
	mu     sync.Mutex
	aggs   map[[2]uint64]*model.ReputationAggregate
	staled [][2]uint64

	upsertErr error
	staleErr  error
}

func newFakeAggRepo() *fakeAggRepo {
	return &fakeAggRepo{aggs: make(map[[2]uint64]*model.ReputationAggregate)}
}

func aggKey(kind int8, id uint64) [2]uint64 {
	return [2]uint64{uint64(kind), id}
}

func (f *fakeAggRepo) Upsert(_ context.Context, agg *model.ReputationAggregate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	cp := *agg
	f.aggs[aggKey(agg.EntityKind, agg.EntityID)] = &cp
	return nil
}

func (f *fakeAggRepo) GetByEntity(_ context.Context, entityKind int8, entityID uint64) (*model.ReputationAggregate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	agg, ok := f.aggs[aggKey(entityKind, entityID)]
	if !ok {
		return nil, nil
	}
	cp := *agg
	return &cp, nil
}

func (f *fakeAggRepo) MarkStale(_ context.Context, entityKind int8, entityID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.staleErr != nil {
		return f.staleErr
	}
	key := aggKey(entityKind, entityID)
	f.staled = append(f.staled, key)
	if agg, ok := f.aggs[key]; ok {
		agg.Stale = true
	} else {
		f.aggs[key] = &model.ReputationAggregate{EntityKind: entityKind, EntityID: entityID, Stale: true}
	}
	return nil
}

func (f *fakeAggRepo) ListStale(_ context.Context, limit int) ([]*model.ReputationAggregate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := make([]*model.ReputationAggregate, 0)
	for _, agg := range f.aggs {
		if agg.Stale && len(res) < limit {
			cp := *agg
			res = append(res, &cp)
		}
	}
	return res, nil
}

type fakeEntityRepo struct {
	existing map[uint64]bool
}

func (f *fakeEntityRepo) Exists(_ context.Context, id uint64) (bool, error) {
	return f.existing[id], nil
}

type fakeEnqueuer struct {
	mu    sync.Mutex
	calls [][2]uint64
}

func (f *fakeEnqueuer) Enqueue(entityKind int8, entityID uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, [2]uint64{uint64(entityKind), entityID})
}

func (f *fakeEnqueuer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeAuditRepo struct {
	mu     sync.Mutex
	audits []*mongo.ModerationAudit
}

func (f *fakeAuditRepo) Append(_ context.Context, audit *mongo.ModerationAudit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.audits = append(f.audits, audit)
	return nil
}

func (f *fakeAuditRepo) ListByReview(_ context.Context, reviewID uint64, limit int) ([]*mongo.ModerationAudit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := make([]*mongo.ModerationAudit, 0)
	for _, a := range f.audits {
		if a.ReviewID == reviewID && len(res) < limit {
			res = append(res, a)
		}
	}
	return res, nil
}

func (f *fakeAuditRepo) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := make([]string, 0, len(f.audits))
	for _, a := range f.audits {
		res = append(res, a.Action)
	}
	return res
}

type fakeSignals struct {
	skill, reliability, participation       float64
	skillOK, reliabilityOK, participationOK bool
	invalidated                             []uint64
}

func (f *fakeSignals) SkillRating(_ context.Context, _ uint64) (float64, bool) {
	return f.skill, f.skillOK
}

func (f *fakeSignals) HostReliability(_ context.Context, _ uint64) (float64, bool) {
	return f.reliability, f.reliabilityOK
}

func (f *fakeSignals) ParticipationQuality(_ context.Context, _ uint64) (float64, bool) {
	return f.participation, f.participationOK
}

func (f *fakeSignals) InvalidateHost(_ context.Context, userID uint64) {
	f.invalidated = append(f.invalidated, userID)
}
