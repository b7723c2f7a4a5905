package model

import "time"

const (
	EntityKindGame int8 = 1
	EntityKindUser int8 = 2
)

// ReputationAggregate 单个实体的声誉快照，只由重算流程写入
type ReputationAggregate struct {
	ID             uint64    `gorm:"primaryKey"`
	EntityKind     int8      `gorm:"not null;uniqueIndex:uk_entity"`
	EntityID       uint64    `gorm:"not null;uniqueIndex:uk_entity"`
	AdjustedRating float64   `gorm:"not null;default:0"`
	ReviewCount    int       `gorm:"not null;default:0"`
	CompositeScore float64   `gorm:"not null;default:0"` // 仅用户实体有意义
	PartialInputs  bool      `gorm:"type:tinyint(1);not null;default:0"`
	Stale          bool      `gorm:"type:tinyint(1);not null;default:0;index:idx_stale"`
	ComputedAt     time.Time `gorm:"default:null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ReputationAggregate) TableName() string {
	return "reputation_aggregates"
}
