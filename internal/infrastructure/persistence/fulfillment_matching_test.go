package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockFulfillmentRepo creates a repository backed by sqlmock so the
// Postgres-specific matching SQL can be asserted without a live database.
func newMockFulfillmentRepo(t *testing.T) (*GormFulfillmentRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormFulfillmentRepository(gormDB), mock, mockDB
}

func TestFindUnfulfilledMatchingOrderLocksOldestMatch(t *testing.T) {
	repo, mock, mockDB := newMockFulfillmentRepo(t)
	defer mockDB.Close()

	createdAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "product_id", "amount", "created_at", "fulfilled_at"}).
		AddRow(42, 7, 5, createdAt, nil)

	// The match must take a row lock, exclude orders that already have a
	// receipt, and pick the oldest candidate first.
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE .*product_id = .* AND amount = .* AND created_at < .*NOT EXISTS \(SELECT 1 FROM stock_receipts WHERE stock_receipts\.order_id = orders\.id\).*ORDER BY created_at ASC.*FOR UPDATE`).
		WillReturnRows(rows)

	order, err := repo.FindUnfulfilledMatchingOrder(context.Background(), 7, 5, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, 42, order.ID)
	assert.Equal(t, 7, order.ProductID)
	assert.Equal(t, 5, order.Amount)
	assert.Nil(t, order.FulfilledAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUnfulfilledMatchingOrderNoMatch(t *testing.T) {
	repo, mock, mockDB := newMockFulfillmentRepo(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "amount", "created_at", "fulfilled_at"}))

	order, err := repo.FindUnfulfilledMatchingOrder(context.Background(), 7, 5, time.Now())
	require.NoError(t, err)
	assert.Nil(t, order)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUnfulfilledMatchingOrderQueryError(t *testing.T) {
	repo, mock, mockDB := newMockFulfillmentRepo(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnError(sql.ErrConnDone)

	order, err := repo.FindUnfulfilledMatchingOrder(context.Background(), 7, 5, time.Now())
	assert.Error(t, err)
	assert.Nil(t, order)
}
