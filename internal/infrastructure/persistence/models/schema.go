package models

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/liamd101/logiwa-shipments/internal/domain/shipment"
)

// AutoMigrate creates every shipment table on db
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&ShipmentOrderModel{},
		&ShipmentOrderLineModel{},
		&ShipmentOrderAddressModel{},
		&ShipmentOrderErrorModel{},
		&ShipmentOrderStagingModel{},
		&ShipmentOrderRunModel{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for _, kind := range shipment.AllTagKinds {
		if err := db.Table(TagTableName(kind)).AutoMigrate(&TagMappingModel{}); err != nil {
			return fmt.Errorf("auto migrate %s: %w", TagTableName(kind), err)
		}
	}
	return nil
}
