package fulfillment

import (
	"time"

	"github.com/warehouse/backend/internal/domain/shared"
)

// Request is an inbound fulfillment request: a stock delivery for a product
// arriving at a warehouse, to be matched against a pending order.
type Request struct {
	ProductID   int
	WarehouseID int
	Amount      int
	CreatedAt   time.Time
}

// Validate performs structural validation only: positive identifiers, positive
// amount, present timestamp. Existence of the referenced product and warehouse
// is deliberately not checked here; it can change between validation and
// execution and is verified inside the transaction instead.
func (r Request) Validate() error {
	if r.ProductID <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "product_id must be greater than 0")
	}
	if r.WarehouseID <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "warehouse_id must be greater than 0")
	}
	if r.Amount <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "amount must be greater than 0")
	}
	if r.CreatedAt.IsZero() {
		return shared.NewDomainError("VALIDATION_ERROR", "created_at is required")
	}
	return nil
}
