package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale 销售流水
// CostUnitAtSale 在记账时刻冻结当时的平均成本，后续入库不回溯修改。
type Sale struct {
	ID                uint            `gorm:"primarykey" json:"id"`
	ProductID         uint            `gorm:"not null;index" json:"product_id"`
	Date              string          `gorm:"type:varchar(10);not null;index" json:"date"`
	Quantity          decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	UnitPrice         Money           `gorm:"type:decimal(20,2);not null" json:"unit_price"`
	MarketplaceFee    Money           `gorm:"type:decimal(20,2);not null;default:0" json:"marketplace_fee"`
	OtherVariableCost Money           `gorm:"type:decimal(20,2);not null;default:0" json:"other_variable_cost"`
	Discount          Money           `gorm:"type:decimal(20,2);not null;default:0" json:"discount"`
	CostUnitAtSale    decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"cost_unit_at_sale"`
	Source            string          `gorm:"type:varchar(32);not null" json:"source"`
	CreatedAt         time.Time       `json:"created_at"`
}
