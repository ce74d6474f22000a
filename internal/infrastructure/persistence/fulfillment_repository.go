package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/fulfillment"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFulfillmentRepository implements fulfillment.Repository using GORM.
// All statements are parameterized; untrusted input never reaches query text.
type GormFulfillmentRepository struct {
	db *gorm.DB
}

// NewGormFulfillmentRepository creates a new GormFulfillmentRepository
func NewGormFulfillmentRepository(db *gorm.DB) *GormFulfillmentRepository {
	return &GormFulfillmentRepository{db: db}
}

// ProductExists reports whether a product with the given ID exists
func (r *GormFulfillmentRepository) ProductExists(ctx context.Context, id int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&fulfillment.Product{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// WarehouseExists reports whether a warehouse with the given ID exists
func (r *GormFulfillmentRepository) WarehouseExists(ctx context.Context, id int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&fulfillment.Warehouse{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindUnfulfilledMatchingOrder selects the oldest eligible order and locks its
// row until the surrounding transaction commits. "Unfulfilled" means no stock
// receipt references the order; the orders.fulfilled_at column is only a
// denormalized cache and is not part of the predicate.
//
// The FOR UPDATE lock serializes concurrent fulfillments of the same order:
// the loser blocks here until the winner commits, and the follow-up
// IsOrderFulfilled re-check (running on a fresh statement snapshot) then
// observes the winner's receipt.
func (r *GormFulfillmentRepository) FindUnfulfilledMatchingOrder(ctx context.Context, productID, amount int, before time.Time) (*fulfillment.Order, error) {
	var order fulfillment.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND amount = ? AND created_at < ?", productID, amount, before).
		Where("NOT EXISTS (SELECT 1 FROM stock_receipts WHERE stock_receipts.order_id = orders.id)").
		Order("created_at ASC").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// IsOrderFulfilled reports whether a stock receipt references the order
func (r *GormFulfillmentRepository) IsOrderFulfilled(ctx context.Context, orderID int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&fulfillment.StockReceipt{}).
		Where("order_id = ?", orderID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkOrderFulfilled sets the order's fulfillment timestamp
func (r *GormFulfillmentRepository) MarkOrderFulfilled(ctx context.Context, orderID int, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&fulfillment.Order{}).
		Where("id = ?", orderID).
		Update("fulfilled_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fulfillment.ErrNoMatchingOrder
	}
	return nil
}

// GetProductPrice returns the product's current unit price
func (r *GormFulfillmentRepository) GetProductPrice(ctx context.Context, productID int) (decimal.Decimal, error) {
	var product fulfillment.Product
	if err := r.db.WithContext(ctx).
		Select("price").
		First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, fulfillment.ErrProductNotFound
		}
		return decimal.Zero, err
	}
	return product.Price, nil
}

// InsertReceipt records a new stock receipt and returns its identifier.
// The unique index on order_id is the optimistic backstop for the fulfillment
// race: a duplicate-key violation means a concurrent request already recorded
// a receipt for this order, so it is translated to ErrAlreadyFulfilled.
func (r *GormFulfillmentRepository) InsertReceipt(ctx context.Context, warehouseID, productID, orderID, amount int, totalPrice decimal.Decimal) (int, error) {
	receipt := fulfillment.StockReceipt{
		WarehouseID: warehouseID,
		ProductID:   productID,
		OrderID:     orderID,
		Amount:      amount,
		TotalPrice:  totalPrice,
		CreatedAt:   time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&receipt).Error; err != nil {
		if isDuplicateKeyError(err) {
			return 0, fulfillment.ErrAlreadyFulfilled
		}
		return 0, err
	}
	return receipt.ID, nil
}

// isDuplicateKeyError detects unique-constraint violations across drivers.
// GORM translates them to ErrDuplicatedKey when TranslateError is enabled;
// the SQLSTATE check covers connections opened without translation.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}

var _ fulfillment.Repository = (*GormFulfillmentRepository)(nil)
