package dto

// FlagSubmitDTO 举报评价请求
type FlagSubmitDTO struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// FlagResultDTO 举报结果
type FlagResultDTO struct {
	ReviewID  uint64 `json:"review_id"`
	FlagCount int    `json:"flag_count"`
	Hidden    bool   `json:"hidden"` // 本次举报是否触发了隐藏
}
