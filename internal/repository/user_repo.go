package repository

import (
	"Matchpoint/internal/model"
	"context"

	"gorm.io/gorm"
)

type UserRepo interface {
	Exists(ctx context.Context, userID uint64) (bool, error)
}

type userRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &userRepoImpl{db: db}
}

func (r *userRepoImpl) Exists(ctx context.Context, userID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND status = ?", userID, 1).
		Count(&count).Error
	return count > 0, err
}
