package dto

import "time"

// ModerationAuditDTO 单条审核流水
type ModerationAuditDTO struct {
	ReviewID   uint64    `json:"review_id"`
	OperatorID uint64    `json:"operator_id"`
	Action     string    `json:"action"`
	Reason     string    `json:"reason,omitempty"`
	FlagCount  int       `json:"flag_count"`
	CreatedAt  time.Time `json:"created_at"`
}
