package mongo

import "time"

// 审核流水动作类型
const (
	AuditActionFlag    = "flag"
	AuditActionHide    = "hide"
	AuditActionRestore = "restore"
)

// ModerationAudit 审核流水，只追加不修改，用于事后追溯
type ModerationAudit struct {
	ID         string         `bson:"_id,omitempty" json:"id"`
	ReviewID   uint64         `bson:"review_id" json:"review_id"`
	OperatorID uint64         `bson:"operator_id" json:"operator_id"` // 举报人或管理员
	Action     string         `bson:"action" json:"action"`
	Reason     string         `bson:"reason,omitempty" json:"reason"`
	FlagCount  int            `bson:"flag_count" json:"flag_count"` // 动作发生时的举报数
	Extra      map[string]any `bson:"extra,omitempty" json:"extra"`
	CreatedAt  time.Time      `bson:"created_at" json:"created_at"`
}
