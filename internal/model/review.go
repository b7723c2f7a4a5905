package model

import (
	"time"
)

const (
	ReviewKindGame int8 = 1 // 对一场游戏的评价
	ReviewKindUser int8 = 2 // 对一名用户的评价（可限定某场游戏）
)

const (
	VisibilityVisible int8 = 0
	VisibilityHidden  int8 = 1
)

type Review struct {
	ID            uint64    `gorm:"primaryKey" json:"id"`
	Kind          int8      `gorm:"not null;uniqueIndex:uk_review_identity" json:"kind"`
	ReviewerID    uint64    `gorm:"not null;uniqueIndex:uk_review_identity" json:"reviewer_id"`
	TargetID      uint64    `gorm:"not null;uniqueIndex:uk_review_identity;index:idx_target" json:"target_id"`
	GameContextID uint64    `gorm:"not null;default:0;uniqueIndex:uk_review_identity" json:"game_context_id"` // 0表示不限定具体游戏场次
	Rating        int8      `gorm:"not null" json:"rating"`
	Tags          []string  `gorm:"type:json;serializer:json" json:"tags"`
	Comment       string    `gorm:"type:varchar(2000)" json:"comment"`
	Visibility    int8      `gorm:"not null;default:0;index:idx_target" json:"visibility"`
	FlagCount     int       `gorm:"not null;default:0" json:"flag_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}

// TargetEntityKind 评价对象对应的聚合实体类型
func (r *Review) TargetEntityKind() int8 {
	if r.Kind == ReviewKindGame {
		return EntityKindGame
	}
	return EntityKindUser
}
