package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warehouse/backend/internal/domain/fulfillment"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockProcedureRepo(t *testing.T) (*GormProcedureRepository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormProcedureRepository(gormDB), mock
}

func TestProcedureFulfillReturnsReceiptID(t *testing.T) {
	repo, mock := newMockProcedureRepo(t)

	req := fulfillment.Request{
		ProductID:   7,
		WarehouseID: 3,
		Amount:      5,
		CreatedAt:   time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
	}

	mock.ExpectQuery(`SELECT add_product_to_warehouse\(`).
		WithArgs(req.ProductID, req.WarehouseID, req.Amount, req.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"add_product_to_warehouse"}).AddRow(91))

	receiptID, err := repo.Fulfill(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 91, receiptID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcedureFulfillPropagatesDatabaseError(t *testing.T) {
	repo, mock := newMockProcedureRepo(t)

	mock.ExpectQuery(`SELECT add_product_to_warehouse\(`).
		WillReturnError(errors.New("pq: No matching order found"))

	_, err := repo.Fulfill(context.Background(), fulfillment.Request{
		ProductID: 7, WarehouseID: 3, Amount: 5, CreatedAt: time.Now(),
	})
	assert.Error(t, err)
}
