package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntry 入库流水（追加写，不修改）
type StockEntry struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	ProductID uint            `gorm:"not null;index" json:"product_id"`
	Date      string          `gorm:"type:varchar(10);not null;index" json:"date"`
	Quantity  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	UnitCost  Money           `gorm:"type:decimal(20,2);not null" json:"unit_cost"`
	Origin    string          `gorm:"type:varchar(32);not null" json:"origin"`
	CreatedAt time.Time       `json:"created_at"`
}
