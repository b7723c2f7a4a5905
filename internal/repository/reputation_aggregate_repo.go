package repository

import (
	"Matchpoint/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReputationAggregateRepo interface {
	// Upsert 完整写入一次重算结果。快照只在计算成功后落库，不存在部分写入
	Upsert(ctx context.Context, agg *model.ReputationAggregate) error
	GetByEntity(ctx context.Context, entityKind int8, entityID uint64) (*model.ReputationAggregate, error)
	// MarkStale 在产生影响聚合的写入后调用，作为周期兜底扫描的依据
	MarkStale(ctx context.Context, entityKind int8, entityID uint64) error
	ListStale(ctx context.Context, limit int) ([]*model.ReputationAggregate, error)
}

type reputationAggregateRepoImpl struct {
	db *gorm.DB
}

func NewReputationAggregateRepo(db *gorm.DB) ReputationAggregateRepo {
	return &reputationAggregateRepoImpl{db: db}
}

func (r *reputationAggregateRepoImpl) Upsert(ctx context.Context, agg *model.ReputationAggregate) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "entity_kind"}, {Name: "entity_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"adjusted_rating",
			"review_count",
			"composite_score",
			"partial_inputs",
			"stale",
			"computed_at",
		}),
	}).Create(agg).Error
}

func (r *reputationAggregateRepoImpl) GetByEntity(ctx context.Context, entityKind int8, entityID uint64) (*model.ReputationAggregate, error) {
	var agg model.ReputationAggregate
	err := r.db.WithContext(ctx).
		Where("entity_kind = ? AND entity_id = ?", entityKind, entityID).
		First(&agg).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &agg, nil
}

// MarkStale 若聚合行尚不存在则插入一条待计算的占位行，保证扫描任务能发现它
func (r *reputationAggregateRepoImpl) MarkStale(ctx context.Context, entityKind int8, entityID uint64) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entity_kind"}, {Name: "entity_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"stale": true}),
	}).Create(&model.ReputationAggregate{
		EntityKind: entityKind,
		EntityID:   entityID,
		Stale:      true,
	}).Error
}

func (r *reputationAggregateRepoImpl) ListStale(ctx context.Context, limit int) ([]*model.ReputationAggregate, error) {
	aggs := make([]*model.ReputationAggregate, 0)
	err := r.db.WithContext(ctx).
		Where("stale = ?", true).
		Order("updated_at ASC").
		Limit(limit).
		Find(&aggs).Error
	if err != nil {
		return nil, err
	}
	return aggs, nil
}
