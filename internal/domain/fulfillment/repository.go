package fulfillment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository defines the persistence operations consumed by the fulfillment
// coordinator. All queries are parameterized and honor context cancellation.
//
// Implementations obtained through a TransactionScope share one database
// transaction, so the check-match-update-insert sequence commits or rolls back
// as a unit.
type Repository interface {
	// ProductExists reports whether a product with the given ID exists.
	ProductExists(ctx context.Context, id int) (bool, error)

	// WarehouseExists reports whether a warehouse with the given ID exists.
	WarehouseExists(ctx context.Context, id int) (bool, error)

	// FindUnfulfilledMatchingOrder selects the oldest order for the product
	// with the exact amount, created strictly before the given time, that has
	// no stock receipt yet. Returns nil when no order matches. Transactional
	// implementations lock the returned row until commit.
	FindUnfulfilledMatchingOrder(ctx context.Context, productID, amount int, before time.Time) (*Order, error)

	// IsOrderFulfilled reports whether a stock receipt references the order.
	IsOrderFulfilled(ctx context.Context, orderID int) (bool, error)

	// MarkOrderFulfilled sets the order's fulfillment timestamp.
	MarkOrderFulfilled(ctx context.Context, orderID int, at time.Time) error

	// GetProductPrice returns the product's current unit price.
	GetProductPrice(ctx context.Context, productID int) (decimal.Decimal, error)

	// InsertReceipt records a new stock receipt and returns its identifier.
	// A unique-constraint violation on the order reference is translated to
	// ErrAlreadyFulfilled.
	InsertReceipt(ctx context.Context, warehouseID, productID, orderID, amount int, totalPrice decimal.Decimal) (int, error)
}

// ProcedureRepository is the alternate data access path that delegates the
// whole fulfillment transaction to a stored procedure. It is a drop-in
// alternative for the coordinator's step-by-step transaction, not a
// different contract.
type ProcedureRepository interface {
	// Fulfill executes the server-side fulfillment routine and returns the
	// new receipt identifier.
	Fulfill(ctx context.Context, req Request) (int, error)
}
