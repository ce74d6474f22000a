package fulfillment

import (
	"time"
)

// Order represents a pending customer order awaiting stock. Orders are created
// outside this flow; the fulfillment transaction mutates an order exactly once,
// transitioning it from unfulfilled (FulfilledAt == nil) to fulfilled.
//
// The FulfilledAt column is a denormalized cache: the source of truth for
// "fulfilled" is the existence of a StockReceipt referencing the order. Both
// are written inside the same transaction to keep them consistent.
type Order struct {
	ID          int        `gorm:"primaryKey;autoIncrement"`
	ProductID   int        `gorm:"not null;index"`
	Amount      int        `gorm:"not null"`
	CreatedAt   time.Time  `gorm:"not null"`
	FulfilledAt *time.Time `gorm:""`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// IsFulfilled reports whether the order carries a fulfillment timestamp.
func (o *Order) IsFulfilled() bool {
	return o.FulfilledAt != nil
}

// Matches reports whether the order is a candidate for a stock receipt with
// the given product, amount, and creation time: same product, exact amount,
// and created strictly before the receipt.
func (o *Order) Matches(productID, amount int, before time.Time) bool {
	return o.ProductID == productID && o.Amount == amount && o.CreatedAt.Before(before)
}
