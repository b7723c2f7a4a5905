package repository

import (
	"Matchpoint/internal/model"
	"context"

	"gorm.io/gorm"
)

type GameRepo interface {
	Exists(ctx context.Context, gameID uint64) (bool, error)
}

type gameRepoImpl struct {
	db *gorm.DB
}

func NewGameRepo(db *gorm.DB) GameRepo {
	return &gameRepoImpl{db: db}
}

func (r *gameRepoImpl) Exists(ctx context.Context, gameID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Game{}).
		Where("id = ?", gameID).
		Count(&count).Error
	return count > 0, err
}
