package models

import "time"

// Product 商品档案
// 删除商品时级联删除其库存状态、库存流水和销售记录（硬删除）。
type Product struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null;index" json:"name"`
	SKU          *string   `gorm:"type:varchar(100);uniqueIndex" json:"sku"`
	VariableCost Money     `gorm:"type:decimal(20,2);not null;default:0" json:"variable_cost"`
	DefaultPrice Money     `gorm:"type:decimal(20,2);not null;default:0" json:"default_price"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
