package shipment

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Order header
// ---------------------------------------------------------------------------

// Order is the normalized header of one Logiwa warehouse order.
// Optional attributes are pointers; nil means the source value was absent or unusable.
type Order struct {
	// ID is the Logiwa order id and the natural key of every related row
	ID   int64
	Code string

	PriorityID                            *string
	CustomerRefCode                       *string
	DepositorRefCode                      *string
	CustomerOrderNo                       *string
	DepositorOrderNo                      *string
	WarehouseOrderStatusCode              *string
	CustomerID                            *int64
	CustomerCode                          *string
	CustomerDescription                   *string
	InventorySiteID                       *int64
	InventorySiteCode                     *string
	WarehouseID                           *int64
	WarehouseCode                         *string
	WarehouseDescription                  *string
	DepositorID                           *int64
	DepositorCode                         *string
	DepositorDescription                  *string
	IsPrintCarrierLabelPackListAsLabel    *bool
	IsPrintCarrierLabelPackListOnSamePage *bool
	CarrierTrackingNumber                 *string
	WarehouseOrderTypeID                  *int64
	WarehouseOrderTypeCode                *string
	IsAmazonFBA                           *bool
	OrderDate                             *time.Time
	PlannedDeliveryDate                   *time.Time
	PlannedShipDate                       *time.Time
	Notes                                 *string
	IsDocumentExist                       *string
	PurchaseOrderID                       *int64
	PurchaseOrderCode                     *string
	IsImported                            *bool
	IsExported                            *bool
	IsExported2                           *bool
	IsExported4                           *bool
	IsExported5                           *bool
	IsBackorder                           *bool
	NofShipmentLabel                      *int64
	IsAllocated                           *bool
	IsPickingStarted                      *bool
	IsPickingCompleted                    *bool
	InvoiceCustomerID                     *int64
	InvoiceCustomerPartyID                *int64
	InvoiceCustomerDescription            *string
	InvoiceCustomerAddressID              *int64
	InvoiceCustomerAddressDescription     *string
	TotalSalesGrossPrice                  *decimal.Decimal
	TotalSalesVat                         *decimal.Decimal
	TotalSalesDiscount                    *decimal.Decimal
	Instructions                          *string
	AccountNumber                         *string
	Driver                                *string
	PlateNumber                           *string
	BillingTypeID                         *int64
	BillingTypeDescription                *string
	RouteID                               *int64
	RouteDescription                      *string
	ChannelDescription                    *string
	IsCancelRequested                     *bool
	CarrierDescription                    *string
	IntegrationKey                        *string
	EnteredBy                             *string
	CanceledBy                            *string
	CarrierShippingOptionsID              *int64
	CarrierDepositorListID                *int64
	NofProducts                           *int64
	StoreName                             *string
	LinkedChannelID                       *int64
	LinkedChannelDescription              *string
	CarrierRate                           *decimal.Decimal
	CarrierMarkupRate                     *decimal.Decimal
	CarrierPackageTypeID                  *int64
	CustomerAddressID                     *int64
	CustomerAddressDescription            *string
	PlannedPickDate                       *time.Time
	ActualPickDate                        *time.Time
	ActualDeliveryDate                    *time.Time
	ProjectID                             *int64
	ProjectDescription                    *string
	WarehouseReceiptID                    *int64
	WarehouseReceiptCode                  *string
	BackWarehouseOrderID                  *int64
	BackWarehouseOrderCode                *string
	DropShipMasterOrderID                 *int64
	DropShipWarehouseOrderCode            *string
	DropShipNotes                         *string
	IsWaybillPrinted                      *bool
	InvoiceNo                             *string
	DeliveryNoteNo                        *string
	IsCarrierLabelPrinted                 *bool
	ChannelOrderCode                      *string
	CarrierWeight                         *string
	ClientPartyID                         *int64
	POWindowWarehouseID                   *int64
	WareOrderCancelReasonID               *int64
	WareOrderCancelReasonDescription      *string
	IsGift                                *bool
	GiftNote                              *string
	OrderItems                            *string
	ExtraNotes                            *string
	ExtraNotes1                           *string
	ExtraNotes2                           *string
	ExtraNotes3                           *string
	ExtraNotes4                           *string
	ExtraNotes5                           *string
	MasterEDIReference                    *string
	Priority                              *int64
	FraudRecommendationID                 *int64
	FraudRecommendationCode               *string
	FraudRecommendationDescription        *string
	OrderRiskScore                        *decimal.Decimal
	ShipmentMethodID                      *int64
	ShipmentMethodDescription             *string
	IsAddressVerified                     *bool
	AvailableStockQuantity                *int64
	Store                                 *string
	ChannelDepositorParameterID           *int64
	CarrierBillingTypeID                  *int64
	CarrierBillingTypeDescription         *string
	IsPickListPrinted                     *bool
	IsPrimeOrder                          *bool
	InvoiceDate                           *time.Time
	EntryDateTime                         *time.Time
	CargoDiscount                         *decimal.Decimal
	WarehouseOrdReturnReasonID            *int64
	WarehouseOrdReturnReasonDescription   *string
	CompanyName                           *string
	TotalMarkupRate                       *decimal.Decimal
	TotalCarrierRate                      *decimal.Decimal
	ActualShipDate                        *time.Time
	PlannedPickupDate                     *time.Time
	CarrierShippingDescription            *string
	IsGetOrderDetails                     *bool
	LastModifiedDate                      *time.Time
	CancellationDate                      *time.Time
	MasterWarehouseOrderCode              *string
	PartyCarrierInfoID                    *int64
	BusinessDaysInTransit                 *int64
	SupplierID                            *int64
	SupplierAddressID                     *int64
	ReceiptOrderCode                      *string
	ReceiptDate                           *time.Time
	WarehouseReceiptTypeID                *int64
	IsAutoGenerate                        *bool
	IsUseSameLotNumber                    *bool
	IsAllowChangingTaxAndDutiesPayor      *bool
	IsGetCustomerAddressInfo              *bool
	CustomerEmail                         *string
	WarehouseDropShipOrderCode            *string
	WarehouseBackOrderCode                *string
	WarehouseMasterOrderCode              *string
	WarehouseReceiptOrderCode             *string
	WarehouseOrderOperationState          *string
	OrgFBAOrderID                         *int64
	WarehouseFBAOrderStatusCode           *string
	WarehouseFBAOrderStatusDesc           *string
	SelectedOrder                         *string
	PackageCode                           *string
	SSCC                                  *string
	ShipmentTypeID                        *int64
	InsuranceCost                         *decimal.Decimal
	InsuranceType                         *string
	IsUseSaturdayDelivery                 *bool
	IsSkipAddressVerificationStamps       *bool
	IsFedexOneRate                        *bool
	TaxesAndDutiesBillingType             *string
	TaxAndDutiesPayorInfo                 *string
	EarliestShipDate                      *time.Time
	LatestShipDate                        *time.Time
	EarliestDeliveryDate                  *time.Time
	LatestDeliveryDate                    *time.Time

	// FetchedAt is when the staged document this header came from was fetched
	FetchedAt time.Time
}

// ---------------------------------------------------------------------------
// Order lines
// ---------------------------------------------------------------------------

// OrderLine is one entry of the DetailInfo array.
type OrderLine struct {
	// ID is the Logiwa line id, unique across orders
	ID      int64
	OrderID int64
	Code    string

	InventoryItemID                  *int64
	InventoryItemDescription         *string
	InventoryItemInfo                *string
	Barcode                          *string
	DisplayMember                    *string
	InventoryItemPackTypeID          *int64
	InventoryItemPackTypeDescription *string
	PackQuantity                     *int64
	InsuranceAmountPerUnit           *decimal.Decimal
	EDIReference                     *string
	UnitWeight                       *decimal.Decimal
	UnitVolume                       *decimal.Decimal
	AllocatedCuQuantity              *int64
	PickedCuQuantity                 *int64
	LoadedCuQuantity                 *int64
	ShippedCuQuantity                *int64
	PlannedPackQuantity              *int64
	PlannedCuQuantity                *int64
	SortedCuQuantity                 *int64
	PackedCuQuantity                 *int64
	CancelledCuQuantity              *int64
	FreeAttr1                        *string
	FreeAttr2                        *string
	FreeAttr3                        *string
	CurrencyPrice                    *decimal.Decimal
	TaxRate                          *decimal.Decimal
	NetCurrencyPrice                 *decimal.Decimal
	TotalWeight                      *decimal.Decimal
	TotalVolume                      *decimal.Decimal
	LineWeight                       *decimal.Decimal
	SupplierID                       *int64
	SupplierDescription              *string
	Notes1                           *string
	Notes2                           *string
	Notes3                           *string
	SalesUnitPrice                   *decimal.Decimal
	ChannelOrderDetailCode           *string
	LotNo                            *string
	ExpiryDate                       *time.Time
	ProductionDate                   *time.Time
	PackageType                      *string
	StockKitCode                     *string
	SuitabilityReason                *string
	QuarantineReason                 *string
}

// ---------------------------------------------------------------------------
// Addresses
// ---------------------------------------------------------------------------

// AddressType distinguishes the addresses stored per order
type AddressType string

const (
	// AddressTypeThirdParty is the address of the ThirdPartyAccount object
	AddressTypeThirdParty AddressType = "THIRD_PARTY"
)

// String returns the string representation of AddressType
func (t AddressType) String() string {
	return string(t)
}

// OrderAddress is at most one address per (order, address type).
type OrderAddress struct {
	OrderID           int64
	Type              AddressType
	AccountNumber     *string
	Country           *string
	State             *string
	City              *string
	CustomerAddress   *string
	AddressText       *string
	AddressDirections *string
	PostalCode        *string
}

// ---------------------------------------------------------------------------
// Tags
// ---------------------------------------------------------------------------

// TagKind names one of the five integer-id arrays carried by an order
type TagKind string

const (
	TagKindStatus       TagKind = "STATUS"
	TagKindCarrier      TagKind = "CARRIER"
	TagKindChannel      TagKind = "CHANNEL"
	TagKindCustomStatus TagKind = "CUSTOM_STATUS"
	TagKindFBAStatus    TagKind = "FBA_STATUS"
)

// AllTagKinds lists every TagKind in write order
var AllTagKinds = []TagKind{
	TagKindStatus,
	TagKindCarrier,
	TagKindChannel,
	TagKindCustomStatus,
	TagKindFBAStatus,
}

// SourceField returns the document key holding the tag ids of this kind
func (k TagKind) SourceField() string {
	switch k {
	case TagKindStatus:
		return "WarehouseOrderStatusID"
	case TagKindCarrier:
		return "CarrierID"
	case TagKindChannel:
		return "ChannelID"
	case TagKindCustomStatus:
		return "OrderCustomStatusID"
	case TagKindFBAStatus:
		return "WarehouseFBAOrderStatusID"
	default:
		return ""
	}
}

// IsValid returns true if the tag kind is known
func (k TagKind) IsValid() bool {
	return k.SourceField() != ""
}

// String returns the string representation of TagKind
func (k TagKind) String() string {
	return string(k)
}

// TagMapping is one (order_id, tag_id) pair of a junction set
type TagMapping struct {
	OrderID int64
	TagID   int64
}

// ---------------------------------------------------------------------------
// Errors reported by the API
// ---------------------------------------------------------------------------

// OrderError is an informational error entry reported by Logiwa for an order
type OrderError struct {
	OrderID int64
	Message string
	Code    *string
	Field   *string
}

// ---------------------------------------------------------------------------
// NormalizedOrder
// ---------------------------------------------------------------------------

// NormalizedOrder is the full record set produced from one raw order document.
// Collections are never nil.
type NormalizedOrder struct {
	Order          Order
	Lines          []OrderLine
	Addresses      []OrderAddress
	Statuses       []int64
	Carriers       []int64
	Channels       []int64
	CustomStatuses []int64
	FBAStatuses    []int64
	Errors         []OrderError
}

// OrderID returns the id shared by every row of the record set
func (n *NormalizedOrder) OrderID() int64 {
	return n.Order.ID
}

// TagIDs returns the tag ids of the given kind
func (n *NormalizedOrder) TagIDs(kind TagKind) []int64 {
	switch kind {
	case TagKindStatus:
		return n.Statuses
	case TagKindCarrier:
		return n.Carriers
	case TagKindChannel:
		return n.Channels
	case TagKindCustomStatus:
		return n.CustomStatuses
	case TagKindFBAStatus:
		return n.FBAStatuses
	default:
		return nil
	}
}

// TagMappings returns the junction rows of the given kind
func (n *NormalizedOrder) TagMappings(kind TagKind) []TagMapping {
	ids := n.TagIDs(kind)
	mappings := make([]TagMapping, 0, len(ids))
	for _, id := range ids {
		mappings = append(mappings, TagMapping{OrderID: n.Order.ID, TagID: id})
	}
	return mappings
}

// setTagIDs stores ids under the given kind
func (n *NormalizedOrder) setTagIDs(kind TagKind, ids []int64) {
	switch kind {
	case TagKindStatus:
		n.Statuses = ids
	case TagKindCarrier:
		n.Carriers = ids
	case TagKindChannel:
		n.Channels = ids
	case TagKindCustomStatus:
		n.CustomStatuses = ids
	case TagKindFBAStatus:
		n.FBAStatuses = ids
	}
}
