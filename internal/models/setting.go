package models

import "time"

// Setting 键值设置表
type Setting struct {
	Key       string    `gorm:"primarykey;type:varchar(100)" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
