package dto

import "time"

// ReputationDTO 声誉快照
type ReputationDTO struct {
	EntityID       uint64    `json:"entity_id"`
	EntityKind     int8      `json:"entity_kind"` // 1:游戏, 2:用户
	AdjustedRating float64   `json:"adjusted_rating"`
	ReviewCount    int       `json:"review_count"`
	CompositeScore float64   `json:"composite_score,omitempty"` // 仅用户实体返回
	PartialInputs  bool      `json:"partial_inputs"`
	Stale          bool      `json:"stale"`
	ComputedAt     time.Time `json:"computed_at"`
}
