package persistence

import (
	"context"

	appfulfillment "github.com/warehouse/backend/internal/application/fulfillment"
	"github.com/warehouse/backend/internal/domain/fulfillment"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of the fulfillment repository operations: a
// connection-level transaction is opened per Execute call, and the repository
// handed to fn is bound to it, so every check, update, and insert commits or
// rolls back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed. Context cancellation
// aborts the in-flight transaction with no partial effects.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repo fulfillment.Repository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormFulfillmentRepository(tx))
	})
}

var _ appfulfillment.TransactionScope = (*GormTransactionScope)(nil)
