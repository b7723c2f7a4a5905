package model

import "time"

// User 用户主档由身份服务维护，本服务只读
type User struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(64);not null" json:"username"`
	Nickname  string    `gorm:"type:varchar(64)" json:"nickname"`
	Status    int8      `gorm:"not null;default:1" json:"status"` // 1:正常, 2:封禁
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
