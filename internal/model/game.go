package model

import "time"

// Game 游戏场次主档由撮合服务维护，本服务只读
type Game struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(255)" json:"title"`
	HostID    uint64    `gorm:"not null;index:idx_host" json:"host_id"`
	Status    int8      `gorm:"not null;default:1" json:"status"` // 1:正常, 2:已取消
	CreatedAt time.Time `json:"created_at"`
}

func (Game) TableName() string {
	return "games"
}
