package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/liamd101/logiwa-shipments/internal/domain/shipment"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/persistence/models"
)

const stagingBatchSize = 200

// GormStagingStore implements shipment.StagingStore on the shipment_order_staging table
type GormStagingStore struct {
	db *gorm.DB
}

// NewGormStagingStore creates a new GormStagingStore
func NewGormStagingStore(db *gorm.DB) *GormStagingStore {
	return &GormStagingStore{db: db}
}

// Append inserts entries in batches. Fetch times are normalized to UTC microseconds
// so they compare exactly against the header's fetched_at on commit.
func (s *GormStagingStore) Append(ctx context.Context, entries []shipment.StagingEntry) error {
	if len(entries) == 0 {
		return nil
	}

	rows := make([]models.ShipmentOrderStagingModel, len(entries))
	for i := range entries {
		entry := entries[i]
		entry.FetchedAt = NormalizeTimestamp(entry.FetchedAt)
		rows[i].FromDomain(&entry)
	}

	if err := s.db.WithContext(ctx).CreateInBatches(rows, stagingBatchSize).Error; err != nil {
		return fmt.Errorf("append staging entries: %w", err)
	}

	for i := range rows {
		entries[i].ID = rows[i].ID
	}
	return nil
}

// ListAll returns every staged entry ordered by order id, then fetch time, then insert order
func (s *GormStagingStore) ListAll(ctx context.Context) ([]shipment.StagingEntry, error) {
	var rows []models.ShipmentOrderStagingModel
	err := s.db.WithContext(ctx).
		Order("order_id ASC").
		Order("fetched_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list staging entries: %w", err)
	}

	entries := make([]shipment.StagingEntry, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries, nil
}

// Delete removes the entries of orderID fetched at or before through
func (s *GormStagingStore) Delete(ctx context.Context, orderID int64, through time.Time) error {
	return deleteStaged(s.db.WithContext(ctx), orderID, through)
}

func deleteStaged(tx *gorm.DB, orderID int64, through time.Time) error {
	err := tx.Where("order_id = ? AND fetched_at <= ?", orderID, NormalizeTimestamp(through)).
		Delete(&models.ShipmentOrderStagingModel{}).Error
	if err != nil {
		return fmt.Errorf("delete staging entries for order %d: %w", orderID, err)
	}
	return nil
}

// NormalizeTimestamp truncates t to the microsecond precision postgres stores, in UTC
func NormalizeTimestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// Ensure GormStagingStore implements shipment.StagingStore
var _ shipment.StagingStore = (*GormStagingStore)(nil)
