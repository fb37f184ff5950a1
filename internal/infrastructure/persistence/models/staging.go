package models

import (
	"time"

	"github.com/liamd101/logiwa-shipments/internal/domain/shipment"
)

// ShipmentOrderStagingModel is one staged fetch of a raw order document
type ShipmentOrderStagingModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID   int64     `gorm:"column:order_id;not null;index:idx_shipment_order_staging_order_fetched,priority:1"`
	RawJSON   string    `gorm:"column:raw_json;type:text;not null"`
	FetchedAt time.Time `gorm:"column:fetched_at;not null;index:idx_shipment_order_staging_order_fetched,priority:2"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

// TableName returns the table name for GORM
func (ShipmentOrderStagingModel) TableName() string {
	return "shipment_order_staging"
}

// FromDomain populates the model from a staging entry
func (m *ShipmentOrderStagingModel) FromDomain(e *shipment.StagingEntry) {
	m.ID = e.ID
	m.OrderID = e.OrderID
	m.RawJSON = string(e.RawJSON)
	m.FetchedAt = e.FetchedAt
}

// ToDomain converts the model to a staging entry
func (m *ShipmentOrderStagingModel) ToDomain() shipment.StagingEntry {
	return shipment.StagingEntry{
		ID:        m.ID,
		OrderID:   m.OrderID,
		RawJSON:   []byte(m.RawJSON),
		FetchedAt: m.FetchedAt,
	}
}
