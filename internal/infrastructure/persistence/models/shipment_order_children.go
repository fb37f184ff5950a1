package models

import (
	"time"

	"github.com/liamd101/logiwa-shipments/internal/domain/shipment"
)

// ---------------------------------------------------------------------------
// Addresses
// ---------------------------------------------------------------------------

// ShipmentOrderAddressModel is the persistence model for shipment.OrderAddress
type ShipmentOrderAddressModel struct {
	ID                uint64               `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID           int64                `gorm:"column:order_id;not null;uniqueIndex:uq_shipment_order_addresses_order_type,priority:1"`
	AddressType       shipment.AddressType `gorm:"column:address_type;type:varchar(20);not null;uniqueIndex:uq_shipment_order_addresses_order_type,priority:2"`
	AccountNumber     *string              `gorm:"column:account_number;type:varchar(100)"`
	Country           *string              `gorm:"column:country;type:varchar(100)"`
	State             *string              `gorm:"column:state;type:varchar(100)"`
	City              *string              `gorm:"column:city;type:varchar(100)"`
	CustomerAddress   *string              `gorm:"column:customer_address;type:varchar(255)"`
	AddressText       *string              `gorm:"column:address_text;type:text"`
	AddressDirections *string              `gorm:"column:address_directions;type:text"`
	PostalCode        *string              `gorm:"column:postal_code;type:varchar(20)"`
	CreatedAt         time.Time            `gorm:"column:created_at;not null"`
	UpdatedAt         time.Time            `gorm:"column:updated_at;not null"`
}

// TableName returns the table name for GORM
func (ShipmentOrderAddressModel) TableName() string {
	return "shipment_order_addresses"
}

// FromDomain populates the model from a domain address
func (m *ShipmentOrderAddressModel) FromDomain(a *shipment.OrderAddress) {
	m.OrderID = a.OrderID
	m.AddressType = a.Type
	m.AccountNumber = a.AccountNumber
	m.Country = a.Country
	m.State = a.State
	m.City = a.City
	m.CustomerAddress = a.CustomerAddress
	m.AddressText = a.AddressText
	m.AddressDirections = a.AddressDirections
	m.PostalCode = a.PostalCode
}

// ToDomain converts the model to a domain address
func (m *ShipmentOrderAddressModel) ToDomain() shipment.OrderAddress {
	return shipment.OrderAddress{
		OrderID:           m.OrderID,
		Type:              m.AddressType,
		AccountNumber:     m.AccountNumber,
		Country:           m.Country,
		State:             m.State,
		City:              m.City,
		CustomerAddress:   m.CustomerAddress,
		AddressText:       m.AddressText,
		AddressDirections: m.AddressDirections,
		PostalCode:        m.PostalCode,
	}
}

// ---------------------------------------------------------------------------
// Tag mappings
// ---------------------------------------------------------------------------

// TagMappingModel is one (order_id, tag_id) row of a junction table.
// The five tag kinds share this shape; TagTableName selects the table.
type TagMappingModel struct {
	OrderID   int64     `gorm:"column:order_id;primaryKey;autoIncrement:false"`
	TagID     int64     `gorm:"column:tag_id;primaryKey;autoIncrement:false"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

// TagTableName returns the junction table of a tag kind
func TagTableName(kind shipment.TagKind) string {
	switch kind {
	case shipment.TagKindStatus:
		return "shipment_order_statuses"
	case shipment.TagKindCarrier:
		return "shipment_order_carriers"
	case shipment.TagKindChannel:
		return "shipment_order_channels"
	case shipment.TagKindCustomStatus:
		return "shipment_order_custom_statuses"
	case shipment.TagKindFBAStatus:
		return "shipment_order_fba_statuses"
	default:
		return ""
	}
}

// NewTagMappingModels converts domain mappings to rows
func NewTagMappingModels(mappings []shipment.TagMapping) []TagMappingModel {
	rows := make([]TagMappingModel, 0, len(mappings))
	for _, mapping := range mappings {
		rows = append(rows, TagMappingModel{OrderID: mapping.OrderID, TagID: mapping.TagID})
	}
	return rows
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

// ShipmentOrderErrorModel is the persistence model for shipment.OrderError
type ShipmentOrderErrorModel struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID      int64     `gorm:"column:order_id;not null;index:idx_shipment_order_errors_order"`
	ErrorMessage string    `gorm:"column:error_message;type:text;not null"`
	ErrorCode    *string   `gorm:"column:error_code;type:varchar(100)"`
	ErrorField   *string   `gorm:"column:error_field;type:varchar(100)"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"`
}

// TableName returns the table name for GORM
func (ShipmentOrderErrorModel) TableName() string {
	return "shipment_order_errors"
}

// FromDomain populates the model from a domain error
func (m *ShipmentOrderErrorModel) FromDomain(e *shipment.OrderError) {
	m.OrderID = e.OrderID
	m.ErrorMessage = e.Message
	m.ErrorCode = e.Code
	m.ErrorField = e.Field
}

// ToDomain converts the model to a domain error
func (m *ShipmentOrderErrorModel) ToDomain() shipment.OrderError {
	return shipment.OrderError{
		OrderID: m.OrderID,
		Message: m.ErrorMessage,
		Code:    m.ErrorCode,
		Field:   m.ErrorField,
	}
}
