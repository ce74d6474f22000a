package fulfillment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warehouse/backend/internal/domain/shared"
)

func TestRequestValidate(t *testing.T) {
	now := time.Now()

	valid := Request{ProductID: 1, WarehouseID: 2, Amount: 5, CreatedAt: now}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		request Request
		wantMsg string
	}{
		{
			name:    "zero product id",
			request: Request{ProductID: 0, WarehouseID: 2, Amount: 5, CreatedAt: now},
			wantMsg: "product_id must be greater than 0",
		},
		{
			name:    "negative product id",
			request: Request{ProductID: -1, WarehouseID: 2, Amount: 5, CreatedAt: now},
			wantMsg: "product_id must be greater than 0",
		},
		{
			name:    "zero warehouse id",
			request: Request{ProductID: 1, WarehouseID: 0, Amount: 5, CreatedAt: now},
			wantMsg: "warehouse_id must be greater than 0",
		},
		{
			name:    "zero amount",
			request: Request{ProductID: 1, WarehouseID: 2, Amount: 0, CreatedAt: now},
			wantMsg: "amount must be greater than 0",
		},
		{
			name:    "negative amount",
			request: Request{ProductID: 1, WarehouseID: 2, Amount: -3, CreatedAt: now},
			wantMsg: "amount must be greater than 0",
		},
		{
			name:    "missing timestamp",
			request: Request{ProductID: 1, WarehouseID: 2, Amount: 5},
			wantMsg: "created_at is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			require.Error(t, err)

			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
			assert.Equal(t, tt.wantMsg, domainErr.Message)
		})
	}
}
