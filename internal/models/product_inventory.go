package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductInventory 商品库存状态（每个商品一行）
// AvgCost 为移动加权平均成本，保留原始精度，不做四舍五入。
type ProductInventory struct {
	ProductID uint            `gorm:"primarykey" json:"product_id"`
	Quantity  decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"quantity"`
	AvgCost   decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"avg_cost"`
	UpdatedAt time.Time       `json:"updated_at"`
}
