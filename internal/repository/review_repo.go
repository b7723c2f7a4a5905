package repository

import (
	"Matchpoint/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type ReviewRepo interface {
	Create(ctx context.Context, review *model.Review) error
	GetByID(ctx context.Context, reviewID uint64) (*model.Review, error)
	// VisibleStats 一次查询取回可见评价的评分总和与条数，保证读到同一快照
	VisibleStats(ctx context.Context, kind int8, targetID uint64) (sum int64, count int64, err error)
	ListByTarget(ctx context.Context, kind int8, targetID uint64, includeHidden bool,
		beforeCreatedAt time.Time, beforeID uint64, limit int) ([]*model.Review, error)
	UpdateVisibility(ctx context.Context, reviewID uint64, visibility int8) error
}

type reviewRepoImpl struct {
	db *gorm.DB
}

func NewReviewRepo(db *gorm.DB) ReviewRepo {
	return &reviewRepoImpl{db: db}
}

// Create 依赖 uk_review_identity 唯一索引保证同一评价人对同一对象只有一条记录
// 并发重复提交由数据库裁决，冲突以 1062 错误返回
func (r *reviewRepoImpl) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepoImpl) GetByID(ctx context.Context, reviewID uint64) (*model.Review, error) {
	var review model.Review
	err := r.db.WithContext(ctx).
		Where("id = ?", reviewID).
		First(&review).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

type reviewStatsRow struct {
	RatingSum   int64
	RatingCount int64
}

func (r *reviewRepoImpl) VisibleStats(ctx context.Context, kind int8, targetID uint64) (int64, int64, error) {
	var row reviewStatsRow
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Select("COALESCE(SUM(rating), 0) AS rating_sum, COUNT(*) AS rating_count").
		Where("kind = ? AND target_id = ? AND visibility = ?", kind, targetID, model.VisibilityVisible).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.RatingSum, row.RatingCount, nil
}

// ListByTarget 按创建时间倒序做游标分页，(created_at, id) 双字段定位避免同秒漂移
func (r *reviewRepoImpl) ListByTarget(ctx context.Context, kind int8, targetID uint64, includeHidden bool,
	beforeCreatedAt time.Time, beforeID uint64, limit int,
) ([]*model.Review, error) {
	reviews := make([]*model.Review, 0, limit)

	query := r.db.WithContext(ctx).
		Where("kind = ? AND target_id = ?", kind, targetID)

	if !includeHidden {
		query = query.Where("visibility = ?", model.VisibilityVisible)
	}

	if beforeID > 0 {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			beforeCreatedAt, beforeCreatedAt, beforeID)
	}

	err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepoImpl) UpdateVisibility(ctx context.Context, reviewID uint64, visibility int8) error {
	return r.db.WithContext(ctx).Model(&model.Review{}).
		Where("id = ?", reviewID).
		Update("visibility", visibility).Error
}
