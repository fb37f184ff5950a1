package models

import (
	"time"

	"github.com/liamd101/logiwa-shipments/internal/domain/shipment"
)

// ShipmentOrderRunModel is one row of the run ledger
type ShipmentOrderRunModel struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement"`
	RunID           string    `gorm:"column:run_id;type:varchar(36);not null"`
	StartedAt       time.Time `gorm:"column:started_at;not null;index:idx_shipment_order_runs_started"`
	FinishedAt      time.Time `gorm:"column:finished_at;not null"`
	Succeeded       bool      `gorm:"column:succeeded;not null"`
	OrdersCommitted int       `gorm:"column:orders_committed;not null;default:0"`
	OrdersFailed    int       `gorm:"column:orders_failed;not null;default:0"`
	ErrorMessage    string    `gorm:"column:error_message;type:text"`
}

// TableName returns the table name for GORM
func (ShipmentOrderRunModel) TableName() string {
	return "shipment_order_runs"
}

// FromDomain populates the model from a run record
func (m *ShipmentOrderRunModel) FromDomain(r *shipment.RunRecord) {
	m.ID = r.ID
	m.RunID = r.RunID
	m.StartedAt = r.StartedAt
	m.FinishedAt = r.FinishedAt
	m.Succeeded = r.Succeeded
	m.OrdersCommitted = r.OrdersCommitted
	m.OrdersFailed = r.OrdersFailed
	m.ErrorMessage = r.ErrorMessage
}

// ToDomain converts the model to a run record
func (m *ShipmentOrderRunModel) ToDomain() shipment.RunRecord {
	return shipment.RunRecord{
		ID:              m.ID,
		RunID:           m.RunID,
		StartedAt:       m.StartedAt,
		FinishedAt:      m.FinishedAt,
		Succeeded:       m.Succeeded,
		OrdersCommitted: m.OrdersCommitted,
		OrdersFailed:    m.OrdersFailed,
		ErrorMessage:    m.ErrorMessage,
	}
}
