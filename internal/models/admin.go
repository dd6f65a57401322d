package models

import "time"

// Admin 管理员账号
// TokenVersion 用于改密后作废已签发的 JWT。
type Admin struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	Username     string     `gorm:"type:varchar(100);not null;uniqueIndex" json:"username"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	TokenVersion int        `gorm:"not null;default:0" json:"-"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
