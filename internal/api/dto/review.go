package dto

import "time"

// ReviewSubmitDTO 提交评价请求
type ReviewSubmitDTO struct {
	Kind          int8     `json:"kind" binding:"required,oneof=1 2"` // 1:游戏评价, 2:用户评价
	TargetID      uint64   `json:"target_id" binding:"required"`
	GameContextID uint64   `json:"game_context_id"` // 用户评价可限定某场游戏，0表示不限定
	Rating        int8     `json:"rating" binding:"required"`
	Tags          []string `json:"tags" binding:"omitempty,max=5,dive,min=1,max=20"`
	Comment       string   `json:"comment" binding:"omitempty,max=2000"`
}

// ReviewDTO 评价详情
type ReviewDTO struct {
	ID            uint64    `json:"id"`
	Kind          int8      `json:"kind"`
	ReviewerID    uint64    `json:"reviewer_id"`
	TargetID      uint64    `json:"target_id"`
	GameContextID uint64    `json:"game_context_id"`
	Rating        int8      `json:"rating"`
	Tags          []string  `json:"tags"`
	Comment       string    `json:"comment"`
	Visibility    int8      `json:"visibility"`
	CreatedAt     time.Time `json:"created_at"`
}

// ReviewListDTO 游标分页的评价列表
type ReviewListDTO struct {
	List       []*ReviewDTO `json:"list"`
	NextCursor string       `json:"next_cursor"`
	HasMore    bool         `json:"has_more"`
}
