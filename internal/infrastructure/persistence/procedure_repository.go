package persistence

import (
	"context"

	"github.com/warehouse/backend/internal/domain/fulfillment"
	"gorm.io/gorm"
)

// GormProcedureRepository implements fulfillment.ProcedureRepository by
// delegating the whole fulfillment transaction to the add_product_to_warehouse
// database function. The routine performs the same existence checks, order
// match, fulfillment mark, and receipt insert server-side and returns the new
// receipt identifier; its failures surface as raw store errors for the
// coordinator to classify.
type GormProcedureRepository struct {
	db *gorm.DB
}

// NewGormProcedureRepository creates a new GormProcedureRepository
func NewGormProcedureRepository(db *gorm.DB) *GormProcedureRepository {
	return &GormProcedureRepository{db: db}
}

// Fulfill executes the stored routine and returns the new receipt identifier
func (r *GormProcedureRepository) Fulfill(ctx context.Context, req fulfillment.Request) (int, error) {
	var receiptID int
	err := r.db.WithContext(ctx).
		Raw("SELECT add_product_to_warehouse(?, ?, ?, ?)",
			req.ProductID, req.WarehouseID, req.Amount, req.CreatedAt).
		Scan(&receiptID).Error
	if err != nil {
		return 0, err
	}
	return receiptID, nil
}

var _ fulfillment.ProcedureRepository = (*GormProcedureRepository)(nil)
