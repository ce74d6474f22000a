package fulfillment

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockReceipt records goods arriving at a warehouse against a specific order.
// Receipts are append-only: created exactly once per fulfilled order, never
// updated or deleted. The unique index on OrderID enforces the at-most-one
// receipt per order invariant at the storage boundary.
type StockReceipt struct {
	ID          int             `gorm:"primaryKey;autoIncrement"`
	WarehouseID int             `gorm:"not null;index"`
	ProductID   int             `gorm:"not null;index"`
	OrderID     int             `gorm:"not null;uniqueIndex:uq_stock_receipts_order"`
	Amount      int             `gorm:"not null"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockReceipt) TableName() string {
	return "stock_receipts"
}
