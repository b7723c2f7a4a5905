package repository

import (
	"Matchpoint/internal/model"
	"context"

	"gorm.io/gorm"
)

type ReviewFlagRepo interface {
	// AppendFlag 在单个事务内写入举报记录、累加计数，并在达到阈值时隐藏评价
	// 返回累加后的举报数以及本次是否触发了隐藏
	AppendFlag(ctx context.Context, flag *model.ReviewFlag, threshold int) (newCount int, hidden bool, err error)
	CountByReview(ctx context.Context, reviewID uint64) (int64, error)
}

type reviewFlagRepoImpl struct {
	db *gorm.DB
}

func NewReviewFlagRepo(db *gorm.DB) ReviewFlagRepo {
	return &reviewFlagRepoImpl{db: db}
}

func (r *reviewFlagRepoImpl) AppendFlag(ctx context.Context, flag *model.ReviewFlag, threshold int) (int, bool, error) {
	var newCount int
	var hidden bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// uk_review_flagger 唯一索引拦截同一用户的重复举报
		if err := tx.Create(flag).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Review{}).
			Where("id = ?", flag.ReviewID).
			Update("flag_count", gorm.Expr("flag_count + 1")).Error; err != nil {
			return err
		}

		// 上面的 UPDATE 已持有行锁，此处读到的是事务内的最新值
		var review model.Review
		if err := tx.Where("id = ?", flag.ReviewID).First(&review).Error; err != nil {
			return err
		}

		newCount = review.FlagCount
		if newCount >= threshold && review.Visibility == model.VisibilityVisible {
			if err := tx.Model(&model.Review{}).
				Where("id = ?", flag.ReviewID).
				Update("visibility", model.VisibilityHidden).Error; err != nil {
				return err
			}
			hidden = true
		}
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return newCount, hidden, nil
}

func (r *reviewFlagRepoImpl) CountByReview(ctx context.Context, reviewID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ReviewFlag{}).
		Where("review_id = ?", reviewID).
		Count(&count).Error
	return count, err
}
