package model

import "time"

type ReviewFlag struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	ReviewID  uint64    `gorm:"not null;uniqueIndex:uk_review_flagger" json:"review_id"`
	FlaggerID uint64    `gorm:"not null;uniqueIndex:uk_review_flagger" json:"flagger_id"`
	Reason    string    `gorm:"type:varchar(500)" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

func (ReviewFlag) TableName() string {
	return "review_flags"
}
