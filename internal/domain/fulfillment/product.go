package fulfillment

import (
	"github.com/shopspring/decimal"
)

// Product represents a sellable product. In the fulfillment flow products are
// immutable reference data: only existence and unit price are read.
type Product struct {
	ID          int             `gorm:"primaryKey;autoIncrement"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:varchar(200)"`
	Price       decimal.Decimal `gorm:"type:numeric(25,2);not null"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}
