package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/liamd101/logiwa-shipments/internal/domain/shipment"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/persistence/models"
)

// GormRunLedger implements shipment.RunLedger on the shipment_order_runs table
type GormRunLedger struct {
	db *gorm.DB
}

// NewGormRunLedger creates a new GormRunLedger
func NewGormRunLedger(db *gorm.DB) *GormRunLedger {
	return &GormRunLedger{db: db}
}

// RecordRun appends one run record
func (l *GormRunLedger) RecordRun(ctx context.Context, record shipment.RunRecord) error {
	record.StartedAt = NormalizeTimestamp(record.StartedAt)
	record.FinishedAt = NormalizeTimestamp(record.FinishedAt)

	var row models.ShipmentOrderRunModel
	row.FromDomain(&record)
	row.ID = 0

	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("record run %s: %w", record.RunID, err)
	}
	return nil
}

// LastSuccessfulRun returns the latest started_at among successful runs, or nil if none exists
func (l *GormRunLedger) LastSuccessfulRun(ctx context.Context) (*time.Time, error) {
	var rows []models.ShipmentOrderRunModel
	err := l.db.WithContext(ctx).
		Select("started_at").
		Where("succeeded = ?", true).
		Order("started_at DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query last successful run: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	startedAt := rows[0].StartedAt.UTC()
	return &startedAt, nil
}

// History returns the most recent run records, newest first
func (l *GormRunLedger) History(ctx context.Context, limit int) ([]shipment.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows []models.ShipmentOrderRunModel
	err := l.db.WithContext(ctx).
		Order("started_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query run history: %w", err)
	}

	records := make([]shipment.RunRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].ToDomain()
	}
	return records, nil
}

// Ensure GormRunLedger implements shipment.RunLedger
var _ shipment.RunLedger = (*GormRunLedger)(nil)
