package persistence

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/liamd101/logiwa-shipments/internal/domain/shipment"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/persistence/models"
)

// setupShipmentTestDB opens an in-memory sqlite database with every shipment table
func setupShipmentTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// every connection to :memory: is a separate database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return db
}

func ptr[T any](v T) *T {
	return &v
}

var testFetchedAt = time.Date(2024, 3, 1, 10, 30, 0, 123456000, time.UTC)

// newTestOrder builds a record set with one line, one address, tags and one error
func newTestOrder(orderID int64, fetchedAt time.Time) *shipment.NormalizedOrder {
	return &shipment.NormalizedOrder{
		Order: shipment.Order{
			ID:                       orderID,
			Code:                     "SO-1001",
			CustomerOrderNo:          ptr("PO-77"),
			WarehouseOrderStatusCode: ptr("Shipped"),
			TotalSalesVat:            ptr(decimal.RequireFromString("12.5")),
			FetchedAt:                fetchedAt,
		},
		Lines: []shipment.OrderLine{
			{ID: orderID*10 + 1, OrderID: orderID, Code: "L1", PackQuantity: ptr(int64(3))},
		},
		Addresses: []shipment.OrderAddress{
			{OrderID: orderID, Type: shipment.AddressTypeThirdParty, AccountNumber: ptr("ACC-9"), City: ptr("Austin")},
		},
		Statuses: []int64{3},
		Carriers: []int64{11, 12},
		Channels: []int64{},
		Errors: []shipment.OrderError{
			{OrderID: orderID, Message: "address unverified", Code: ptr("ADDR")},
		},
	}
}

func countRows(t *testing.T, db *gorm.DB, table string, orderID int64) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Table(table).Where("order_id = ?", orderID).Count(&count).Error)
	return count
}
