package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/liamd101/logiwa-shipments/internal/domain/shipment"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/persistence/models"
)

// GormCommitWriter writes one normalized order per transaction.
// The header, every child table and the staging cleanup commit or roll back together.
type GormCommitWriter struct {
	db *gorm.DB
}

// NewGormCommitWriter creates a new GormCommitWriter
func NewGormCommitWriter(db *gorm.DB) *GormCommitWriter {
	return &GormCommitWriter{db: db}
}

// Commit upserts the record set of order and removes its staged entries up to Order.FetchedAt.
// Child rows absent from the record set are removed so the stored order matches the newest fetch.
func (w *GormCommitWriter) Commit(ctx context.Context, order *shipment.NormalizedOrder) error {
	if order == nil {
		return fmt.Errorf("%w: nil order", shipment.ErrCommitFailed)
	}
	orderID := order.OrderID()

	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsertHeader(tx, &order.Order); err != nil {
			return err
		}
		if err := replaceLines(tx, orderID, order.Lines); err != nil {
			return err
		}
		if err := replaceAddresses(tx, orderID, order.Addresses); err != nil {
			return err
		}
		for _, kind := range shipment.AllTagKinds {
			if err := replaceTags(tx, kind, orderID, order.TagMappings(kind)); err != nil {
				return err
			}
		}
		if err := replaceErrors(tx, orderID, order.Errors); err != nil {
			return err
		}
		return deleteStaged(tx, orderID, order.Order.FetchedAt)
	})
	if err != nil {
		return fmt.Errorf("%w: order %d: %w", shipment.ErrCommitFailed, orderID, err)
	}
	return nil
}

func upsertHeader(tx *gorm.DB, order *shipment.Order) error {
	var header models.ShipmentOrderModel
	header.FromDomain(order)
	header.FetchedAt = NormalizeTimestamp(header.FetchedAt)

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}},
		UpdateAll: true,
	}).Create(&header).Error
	if err != nil {
		return fmt.Errorf("upsert header: %w", err)
	}
	return nil
}

func replaceLines(tx *gorm.DB, orderID int64, lines []shipment.OrderLine) error {
	stale := tx.Where("order_id = ?", orderID)
	if len(lines) > 0 {
		ids := make([]int64, len(lines))
		for i := range lines {
			ids[i] = lines[i].ID
		}
		stale = stale.Where("line_id NOT IN ?", ids)
	}
	if err := stale.Delete(&models.ShipmentOrderLineModel{}).Error; err != nil {
		return fmt.Errorf("delete stale lines: %w", err)
	}
	if len(lines) == 0 {
		return nil
	}

	rows := make([]models.ShipmentOrderLineModel, len(lines))
	for i := range lines {
		rows[i].FromDomain(&lines[i])
		rows[i].OrderID = orderID
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "line_id"}},
		UpdateAll: true,
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("upsert lines: %w", err)
	}
	return nil
}

func replaceAddresses(tx *gorm.DB, orderID int64, addresses []shipment.OrderAddress) error {
	stale := tx.Where("order_id = ?", orderID)
	if len(addresses) > 0 {
		types := make([]string, len(addresses))
		for i := range addresses {
			types[i] = addresses[i].Type.String()
		}
		stale = stale.Where("address_type NOT IN ?", types)
	}
	if err := stale.Delete(&models.ShipmentOrderAddressModel{}).Error; err != nil {
		return fmt.Errorf("delete stale addresses: %w", err)
	}
	if len(addresses) == 0 {
		return nil
	}

	rows := make([]models.ShipmentOrderAddressModel, len(addresses))
	for i := range addresses {
		rows[i].FromDomain(&addresses[i])
		rows[i].OrderID = orderID
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}, {Name: "address_type"}},
		UpdateAll: true,
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("upsert addresses: %w", err)
	}
	return nil
}

func replaceTags(tx *gorm.DB, kind shipment.TagKind, orderID int64, mappings []shipment.TagMapping) error {
	table := models.TagTableName(kind)

	stale := tx.Table(table).Where("order_id = ?", orderID)
	if len(mappings) > 0 {
		ids := make([]int64, len(mappings))
		for i := range mappings {
			ids[i] = mappings[i].TagID
		}
		stale = stale.Where("tag_id NOT IN ?", ids)
	}
	if err := stale.Delete(&models.TagMappingModel{}).Error; err != nil {
		return fmt.Errorf("delete stale %s: %w", table, err)
	}
	if len(mappings) == 0 {
		return nil
	}

	rows := models.NewTagMappingModels(mappings)
	err := tx.Table(table).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

func replaceErrors(tx *gorm.DB, orderID int64, orderErrors []shipment.OrderError) error {
	if err := tx.Where("order_id = ?", orderID).Delete(&models.ShipmentOrderErrorModel{}).Error; err != nil {
		return fmt.Errorf("delete order errors: %w", err)
	}
	if len(orderErrors) == 0 {
		return nil
	}

	rows := make([]models.ShipmentOrderErrorModel, len(orderErrors))
	for i := range orderErrors {
		rows[i].FromDomain(&orderErrors[i])
		rows[i].OrderID = orderID
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("insert order errors: %w", err)
	}
	return nil
}

// Ensure GormCommitWriter implements shipment.CommitWriter
var _ shipment.CommitWriter = (*GormCommitWriter)(nil)
