package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/liamd101/logiwa-shipments/internal/domain/shipment"
)

// ---------------------------------------------------------------------------
// Order header
// ---------------------------------------------------------------------------

// ShipmentOrderModel is the persistence model for shipment.Order.
// Every column is declared explicitly; the migration in migrations/ mirrors it.
type ShipmentOrderModel struct {
	OrderID int64  `gorm:"column:order_id;primaryKey;autoIncrement:false"`
	Code    string `gorm:"column:code;type:varchar(100);not null"`

	PriorityID                            *string          `gorm:"column:priority_id;type:varchar(255)"`
	CustomerRefCode                       *string          `gorm:"column:customer_ref_code;type:varchar(255)"`
	DepositorRefCode                      *string          `gorm:"column:depositor_ref_code;type:varchar(255)"`
	CustomerOrderNo                       *string          `gorm:"column:customer_order_no;type:varchar(255)"`
	DepositorOrderNo                      *string          `gorm:"column:depositor_order_no;type:varchar(255)"`
	WarehouseOrderStatusCode              *string          `gorm:"column:warehouse_order_status_code;type:varchar(255)"`
	CustomerID                            *int64           `gorm:"column:customer_id"`
	CustomerCode                          *string          `gorm:"column:customer_code;type:varchar(255)"`
	CustomerDescription                   *string          `gorm:"column:customer_description;type:varchar(255)"`
	InventorySiteID                       *int64           `gorm:"column:inventory_site_id"`
	InventorySiteCode                     *string          `gorm:"column:inventory_site_code;type:varchar(255)"`
	WarehouseID                           *int64           `gorm:"column:warehouse_id"`
	WarehouseCode                         *string          `gorm:"column:warehouse_code;type:varchar(255)"`
	WarehouseDescription                  *string          `gorm:"column:warehouse_description;type:varchar(255)"`
	DepositorID                           *int64           `gorm:"column:depositor_id"`
	DepositorCode                         *string          `gorm:"column:depositor_code;type:varchar(255)"`
	DepositorDescription                  *string          `gorm:"column:depositor_description;type:varchar(255)"`
	IsPrintCarrierLabelPackListAsLabel    *bool            `gorm:"column:is_print_carrier_label_pack_list_as_label"`
	IsPrintCarrierLabelPackListOnSamePage *bool            `gorm:"column:is_print_carrier_label_pack_list_on_same_page"`
	CarrierTrackingNumber                 *string          `gorm:"column:carrier_tracking_number;type:varchar(255)"`
	WarehouseOrderTypeID                  *int64           `gorm:"column:warehouse_order_type_id"`
	WarehouseOrderTypeCode                *string          `gorm:"column:warehouse_order_type_code;type:varchar(255)"`
	IsAmazonFBA                           *bool            `gorm:"column:is_amazon_fba"`
	OrderDate                             *time.Time       `gorm:"column:order_date"`
	PlannedDeliveryDate                   *time.Time       `gorm:"column:planned_delivery_date"`
	PlannedShipDate                       *time.Time       `gorm:"column:planned_ship_date"`
	Notes                                 *string          `gorm:"column:notes;type:text"`
	IsDocumentExist                       *string          `gorm:"column:is_document_exist;type:varchar(255)"`
	PurchaseOrderID                       *int64           `gorm:"column:purchase_order_id"`
	PurchaseOrderCode                     *string          `gorm:"column:purchase_order_code;type:varchar(255)"`
	IsImported                            *bool            `gorm:"column:is_imported"`
	IsExported                            *bool            `gorm:"column:is_exported"`
	IsExported2                           *bool            `gorm:"column:is_exported2"`
	IsExported4                           *bool            `gorm:"column:is_exported4"`
	IsExported5                           *bool            `gorm:"column:is_exported5"`
	IsBackorder                           *bool            `gorm:"column:is_backorder"`
	NofShipmentLabel                      *int64           `gorm:"column:nof_shipment_label"`
	IsAllocated                           *bool            `gorm:"column:is_allocated"`
	IsPickingStarted                      *bool            `gorm:"column:is_picking_started"`
	IsPickingCompleted                    *bool            `gorm:"column:is_picking_completed"`
	InvoiceCustomerID                     *int64           `gorm:"column:invoice_customer_id"`
	InvoiceCustomerPartyID                *int64           `gorm:"column:invoice_customer_party_id"`
	InvoiceCustomerDescription            *string          `gorm:"column:invoice_customer_description;type:varchar(255)"`
	InvoiceCustomerAddressID              *int64           `gorm:"column:invoice_customer_address_id"`
	InvoiceCustomerAddressDescription     *string          `gorm:"column:invoice_customer_address_description;type:varchar(255)"`
	TotalSalesGrossPrice                  *decimal.Decimal `gorm:"column:total_sales_gross_price;type:numeric(18,4)"`
	TotalSalesVat                         *decimal.Decimal `gorm:"column:total_sales_vat;type:numeric(18,4)"`
	TotalSalesDiscount                    *decimal.Decimal `gorm:"column:total_sales_discount;type:numeric(18,4)"`
	Instructions                          *string          `gorm:"column:instructions;type:text"`
	AccountNumber                         *string          `gorm:"column:account_number;type:varchar(255)"`
	Driver                                *string          `gorm:"column:driver;type:varchar(255)"`
	PlateNumber                           *string          `gorm:"column:plate_number;type:varchar(255)"`
	BillingTypeID                         *int64           `gorm:"column:billing_type_id"`
	BillingTypeDescription                *string          `gorm:"column:billing_type_description;type:varchar(255)"`
	RouteID                               *int64           `gorm:"column:route_id"`
	RouteDescription                      *string          `gorm:"column:route_description;type:varchar(255)"`
	ChannelDescription                    *string          `gorm:"column:channel_description;type:varchar(255)"`
	IsCancelRequested                     *bool            `gorm:"column:is_cancel_requested"`
	CarrierDescription                    *string          `gorm:"column:carrier_description;type:varchar(255)"`
	IntegrationKey                        *string          `gorm:"column:integration_key;type:varchar(255)"`
	EnteredBy                             *string          `gorm:"column:entered_by;type:varchar(255)"`
	CanceledBy                            *string          `gorm:"column:canceled_by;type:varchar(255)"`
	CarrierShippingOptionsID              *int64           `gorm:"column:carrier_shipping_options_id"`
	CarrierDepositorListID                *int64           `gorm:"column:carrier_depositor_list_id"`
	NofProducts                           *int64           `gorm:"column:nof_products"`
	StoreName                             *string          `gorm:"column:store_name;type:varchar(255)"`
	LinkedChannelID                       *int64           `gorm:"column:linked_channel_id"`
	LinkedChannelDescription              *string          `gorm:"column:linked_channel_description;type:varchar(255)"`
	CarrierRate                           *decimal.Decimal `gorm:"column:carrier_rate;type:numeric(18,4)"`
	CarrierMarkupRate                     *decimal.Decimal `gorm:"column:carrier_markup_rate;type:numeric(18,4)"`
	CarrierPackageTypeID                  *int64           `gorm:"column:carrier_package_type_id"`
	CustomerAddressID                     *int64           `gorm:"column:customer_address_id"`
	CustomerAddressDescription            *string          `gorm:"column:customer_address_description;type:varchar(255)"`
	PlannedPickDate                       *time.Time       `gorm:"column:planned_pick_date"`
	ActualPickDate                        *time.Time       `gorm:"column:actual_pick_date"`
	ActualDeliveryDate                    *time.Time       `gorm:"column:actual_delivery_date"`
	ProjectID                             *int64           `gorm:"column:project_id"`
	ProjectDescription                    *string          `gorm:"column:project_description;type:varchar(255)"`
	WarehouseReceiptID                    *int64           `gorm:"column:warehouse_receipt_id"`
	WarehouseReceiptCode                  *string          `gorm:"column:warehouse_receipt_code;type:varchar(255)"`
	BackWarehouseOrderID                  *int64           `gorm:"column:back_warehouse_order_id"`
	BackWarehouseOrderCode                *string          `gorm:"column:back_warehouse_order_code;type:varchar(255)"`
	DropShipMasterOrderID                 *int64           `gorm:"column:drop_ship_master_order_id"`
	DropShipWarehouseOrderCode            *string          `gorm:"column:drop_ship_warehouse_order_code;type:varchar(255)"`
	DropShipNotes                         *string          `gorm:"column:drop_ship_notes;type:text"`
	IsWaybillPrinted                      *bool            `gorm:"column:is_waybill_printed"`
	InvoiceNo                             *string          `gorm:"column:invoice_no;type:varchar(255)"`
	DeliveryNoteNo                        *string          `gorm:"column:delivery_note_no;type:varchar(255)"`
	IsCarrierLabelPrinted                 *bool            `gorm:"column:is_carrier_label_printed"`
	ChannelOrderCode                      *string          `gorm:"column:channel_order_code;type:varchar(255)"`
	CarrierWeight                         *string          `gorm:"column:carrier_weight;type:varchar(255)"`
	ClientPartyID                         *int64           `gorm:"column:client_party_id"`
	POWindowWarehouseID                   *int64           `gorm:"column:po_window_warehouse_id"`
	WareOrderCancelReasonID               *int64           `gorm:"column:ware_order_cancel_reason_id"`
	WareOrderCancelReasonDescription      *string          `gorm:"column:ware_order_cancel_reason_description;type:varchar(255)"`
	IsGift                                *bool            `gorm:"column:is_gift"`
	GiftNote                              *string          `gorm:"column:gift_note;type:text"`
	OrderItems                            *string          `gorm:"column:order_items;type:text"`
	ExtraNotes                            *string          `gorm:"column:extra_notes;type:text"`
	ExtraNotes1                           *string          `gorm:"column:extra_notes1;type:text"`
	ExtraNotes2                           *string          `gorm:"column:extra_notes2;type:text"`
	ExtraNotes3                           *string          `gorm:"column:extra_notes3;type:text"`
	ExtraNotes4                           *string          `gorm:"column:extra_notes4;type:text"`
	ExtraNotes5                           *string          `gorm:"column:extra_notes5;type:text"`
	MasterEDIReference                    *string          `gorm:"column:master_edi_reference;type:varchar(255)"`
	Priority                              *int64           `gorm:"column:priority"`
	FraudRecommendationID                 *int64           `gorm:"column:fraud_recommendation_id"`
	FraudRecommendationCode               *string          `gorm:"column:fraud_recommendation_code;type:varchar(255)"`
	FraudRecommendationDescription        *string          `gorm:"column:fraud_recommendation_description;type:varchar(255)"`
	OrderRiskScore                        *decimal.Decimal `gorm:"column:order_risk_score;type:numeric(18,4)"`
	ShipmentMethodID                      *int64           `gorm:"column:shipment_method_id"`
	ShipmentMethodDescription             *string          `gorm:"column:shipment_method_description;type:varchar(255)"`
	IsAddressVerified                     *bool            `gorm:"column:is_address_verified"`
	AvailableStockQuantity                *int64           `gorm:"column:available_stock_quantity"`
	Store                                 *string          `gorm:"column:store;type:varchar(255)"`
	ChannelDepositorParameterID           *int64           `gorm:"column:channel_depositor_parameter_id"`
	CarrierBillingTypeID                  *int64           `gorm:"column:carrier_billing_type_id"`
	CarrierBillingTypeDescription         *string          `gorm:"column:carrier_billing_type_description;type:varchar(255)"`
	IsPickListPrinted                     *bool            `gorm:"column:is_pick_list_printed"`
	IsPrimeOrder                          *bool            `gorm:"column:is_prime_order"`
	InvoiceDate                           *time.Time       `gorm:"column:invoice_date"`
	EntryDateTime                         *time.Time       `gorm:"column:entry_date_time"`
	CargoDiscount                         *decimal.Decimal `gorm:"column:cargo_discount;type:numeric(18,4)"`
	WarehouseOrdReturnReasonID            *int64           `gorm:"column:warehouse_ord_return_reason_id"`
	WarehouseOrdReturnReasonDescription   *string          `gorm:"column:warehouse_ord_return_reason_description;type:varchar(255)"`
	CompanyName                           *string          `gorm:"column:company_name;type:varchar(255)"`
	TotalMarkupRate                       *decimal.Decimal `gorm:"column:total_markup_rate;type:numeric(18,4)"`
	TotalCarrierRate                      *decimal.Decimal `gorm:"column:total_carrier_rate;type:numeric(18,4)"`
	ActualShipDate                        *time.Time       `gorm:"column:actual_ship_date"`
	PlannedPickupDate                     *time.Time       `gorm:"column:planned_pickup_date"`
	CarrierShippingDescription            *string          `gorm:"column:carrier_shipping_description;type:varchar(255)"`
	IsGetOrderDetails                     *bool            `gorm:"column:is_get_order_details"`
	LastModifiedDate                      *time.Time       `gorm:"column:last_modified_date"`
	CancellationDate                      *time.Time       `gorm:"column:cancellation_date"`
	MasterWarehouseOrderCode              *string          `gorm:"column:master_warehouse_order_code;type:varchar(255)"`
	PartyCarrierInfoID                    *int64           `gorm:"column:party_carrier_info_id"`
	BusinessDaysInTransit                 *int64           `gorm:"column:business_days_in_transit"`
	SupplierID                            *int64           `gorm:"column:supplier_id"`
	SupplierAddressID                     *int64           `gorm:"column:supplier_address_id"`
	ReceiptOrderCode                      *string          `gorm:"column:receipt_order_code;type:varchar(255)"`
	ReceiptDate                           *time.Time       `gorm:"column:receipt_date"`
	WarehouseReceiptTypeID                *int64           `gorm:"column:warehouse_receipt_type_id"`
	IsAutoGenerate                        *bool            `gorm:"column:is_auto_generate"`
	IsUseSameLotNumber                    *bool            `gorm:"column:is_use_same_lot_number"`
	IsAllowChangingTaxAndDutiesPayor      *bool            `gorm:"column:is_allow_changing_tax_and_duties_payor"`
	IsGetCustomerAddressInfo              *bool            `gorm:"column:is_get_customer_address_info"`
	CustomerEmail                         *string          `gorm:"column:customer_email;type:varchar(255)"`
	WarehouseDropShipOrderCode            *string          `gorm:"column:warehouse_drop_ship_order_code;type:varchar(255)"`
	WarehouseBackOrderCode                *string          `gorm:"column:warehouse_back_order_code;type:varchar(255)"`
	WarehouseMasterOrderCode              *string          `gorm:"column:warehouse_master_order_code;type:varchar(255)"`
	WarehouseReceiptOrderCode             *string          `gorm:"column:warehouse_receipt_order_code;type:varchar(255)"`
	WarehouseOrderOperationState          *string          `gorm:"column:warehouse_order_operation_state;type:varchar(255)"`
	OrgFBAOrderID                         *int64           `gorm:"column:org_fba_order_id"`
	WarehouseFBAOrderStatusCode           *string          `gorm:"column:warehouse_fba_order_status_code;type:varchar(255)"`
	WarehouseFBAOrderStatusDesc           *string          `gorm:"column:warehouse_fba_order_status_desc;type:varchar(255)"`
	SelectedOrder                         *string          `gorm:"column:selected_order;type:varchar(255)"`
	PackageCode                           *string          `gorm:"column:package_code;type:varchar(255)"`
	SSCC                                  *string          `gorm:"column:sscc;type:varchar(255)"`
	ShipmentTypeID                        *int64           `gorm:"column:shipment_type_id"`
	InsuranceCost                         *decimal.Decimal `gorm:"column:insurance_cost;type:numeric(18,4)"`
	InsuranceType                         *string          `gorm:"column:insurance_type;type:varchar(255)"`
	IsUseSaturdayDelivery                 *bool            `gorm:"column:is_use_saturday_delivery"`
	IsSkipAddressVerificationStamps       *bool            `gorm:"column:is_skip_address_verification_stamps"`
	IsFedexOneRate                        *bool            `gorm:"column:is_fedex_one_rate"`
	TaxesAndDutiesBillingType             *string          `gorm:"column:taxes_and_duties_billing_type;type:varchar(255)"`
	TaxAndDutiesPayorInfo                 *string          `gorm:"column:tax_and_duties_payor_info;type:text"`
	EarliestShipDate                      *time.Time       `gorm:"column:earliest_ship_date"`
	LatestShipDate                        *time.Time       `gorm:"column:latest_ship_date"`
	EarliestDeliveryDate                  *time.Time       `gorm:"column:earliest_delivery_date"`
	LatestDeliveryDate                    *time.Time       `gorm:"column:latest_delivery_date"`

	FetchedAt time.Time `gorm:"column:fetched_at;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName returns the table name for GORM
func (ShipmentOrderModel) TableName() string {
	return "shipment_orders"
}

// FromDomain populates the model from a domain order
func (m *ShipmentOrderModel) FromDomain(o *shipment.Order) {
	*m = ShipmentOrderModel{
		OrderID:                               o.ID,
		Code:                                  o.Code,
		PriorityID:                            o.PriorityID,
		CustomerRefCode:                       o.CustomerRefCode,
		DepositorRefCode:                      o.DepositorRefCode,
		CustomerOrderNo:                       o.CustomerOrderNo,
		DepositorOrderNo:                      o.DepositorOrderNo,
		WarehouseOrderStatusCode:              o.WarehouseOrderStatusCode,
		CustomerID:                            o.CustomerID,
		CustomerCode:                          o.CustomerCode,
		CustomerDescription:                   o.CustomerDescription,
		InventorySiteID:                       o.InventorySiteID,
		InventorySiteCode:                     o.InventorySiteCode,
		WarehouseID:                           o.WarehouseID,
		WarehouseCode:                         o.WarehouseCode,
		WarehouseDescription:                  o.WarehouseDescription,
		DepositorID:                           o.DepositorID,
		DepositorCode:                         o.DepositorCode,
		DepositorDescription:                  o.DepositorDescription,
		IsPrintCarrierLabelPackListAsLabel:    o.IsPrintCarrierLabelPackListAsLabel,
		IsPrintCarrierLabelPackListOnSamePage: o.IsPrintCarrierLabelPackListOnSamePage,
		CarrierTrackingNumber:                 o.CarrierTrackingNumber,
		WarehouseOrderTypeID:                  o.WarehouseOrderTypeID,
		WarehouseOrderTypeCode:                o.WarehouseOrderTypeCode,
		IsAmazonFBA:                           o.IsAmazonFBA,
		OrderDate:                             o.OrderDate,
		PlannedDeliveryDate:                   o.PlannedDeliveryDate,
		PlannedShipDate:                       o.PlannedShipDate,
		Notes:                                 o.Notes,
		IsDocumentExist:                       o.IsDocumentExist,
		PurchaseOrderID:                       o.PurchaseOrderID,
		PurchaseOrderCode:                     o.PurchaseOrderCode,
		IsImported:                            o.IsImported,
		IsExported:                            o.IsExported,
		IsExported2:                           o.IsExported2,
		IsExported4:                           o.IsExported4,
		IsExported5:                           o.IsExported5,
		IsBackorder:                           o.IsBackorder,
		NofShipmentLabel:                      o.NofShipmentLabel,
		IsAllocated:                           o.IsAllocated,
		IsPickingStarted:                      o.IsPickingStarted,
		IsPickingCompleted:                    o.IsPickingCompleted,
		InvoiceCustomerID:                     o.InvoiceCustomerID,
		InvoiceCustomerPartyID:                o.InvoiceCustomerPartyID,
		InvoiceCustomerDescription:            o.InvoiceCustomerDescription,
		InvoiceCustomerAddressID:              o.InvoiceCustomerAddressID,
		InvoiceCustomerAddressDescription:     o.InvoiceCustomerAddressDescription,
		TotalSalesGrossPrice:                  o.TotalSalesGrossPrice,
		TotalSalesVat:                         o.TotalSalesVat,
		TotalSalesDiscount:                    o.TotalSalesDiscount,
		Instructions:                          o.Instructions,
		AccountNumber:                         o.AccountNumber,
		Driver:                                o.Driver,
		PlateNumber:                           o.PlateNumber,
		BillingTypeID:                         o.BillingTypeID,
		BillingTypeDescription:                o.BillingTypeDescription,
		RouteID:                               o.RouteID,
		RouteDescription:                      o.RouteDescription,
		ChannelDescription:                    o.ChannelDescription,
		IsCancelRequested:                     o.IsCancelRequested,
		CarrierDescription:                    o.CarrierDescription,
		IntegrationKey:                        o.IntegrationKey,
		EnteredBy:                             o.EnteredBy,
		CanceledBy:                            o.CanceledBy,
		CarrierShippingOptionsID:              o.CarrierShippingOptionsID,
		CarrierDepositorListID:                o.CarrierDepositorListID,
		NofProducts:                           o.NofProducts,
		StoreName:                             o.StoreName,
		LinkedChannelID:                       o.LinkedChannelID,
		LinkedChannelDescription:              o.LinkedChannelDescription,
		CarrierRate:                           o.CarrierRate,
		CarrierMarkupRate:                     o.CarrierMarkupRate,
		CarrierPackageTypeID:                  o.CarrierPackageTypeID,
		CustomerAddressID:                     o.CustomerAddressID,
		CustomerAddressDescription:            o.CustomerAddressDescription,
		PlannedPickDate:                       o.PlannedPickDate,
		ActualPickDate:                        o.ActualPickDate,
		ActualDeliveryDate:                    o.ActualDeliveryDate,
		ProjectID:                             o.ProjectID,
		ProjectDescription:                    o.ProjectDescription,
		WarehouseReceiptID:                    o.WarehouseReceiptID,
		WarehouseReceiptCode:                  o.WarehouseReceiptCode,
		BackWarehouseOrderID:                  o.BackWarehouseOrderID,
		BackWarehouseOrderCode:                o.BackWarehouseOrderCode,
		DropShipMasterOrderID:                 o.DropShipMasterOrderID,
		DropShipWarehouseOrderCode:            o.DropShipWarehouseOrderCode,
		DropShipNotes:                         o.DropShipNotes,
		IsWaybillPrinted:                      o.IsWaybillPrinted,
		InvoiceNo:                             o.InvoiceNo,
		DeliveryNoteNo:                        o.DeliveryNoteNo,
		IsCarrierLabelPrinted:                 o.IsCarrierLabelPrinted,
		ChannelOrderCode:                      o.ChannelOrderCode,
		CarrierWeight:                         o.CarrierWeight,
		ClientPartyID:                         o.ClientPartyID,
		POWindowWarehouseID:                   o.POWindowWarehouseID,
		WareOrderCancelReasonID:               o.WareOrderCancelReasonID,
		WareOrderCancelReasonDescription:      o.WareOrderCancelReasonDescription,
		IsGift:                                o.IsGift,
		GiftNote:                              o.GiftNote,
		OrderItems:                            o.OrderItems,
		ExtraNotes:                            o.ExtraNotes,
		ExtraNotes1:                           o.ExtraNotes1,
		ExtraNotes2:                           o.ExtraNotes2,
		ExtraNotes3:                           o.ExtraNotes3,
		ExtraNotes4:                           o.ExtraNotes4,
		ExtraNotes5:                           o.ExtraNotes5,
		MasterEDIReference:                    o.MasterEDIReference,
		Priority:                              o.Priority,
		FraudRecommendationID:                 o.FraudRecommendationID,
		FraudRecommendationCode:               o.FraudRecommendationCode,
		FraudRecommendationDescription:        o.FraudRecommendationDescription,
		OrderRiskScore:                        o.OrderRiskScore,
		ShipmentMethodID:                      o.ShipmentMethodID,
		ShipmentMethodDescription:             o.ShipmentMethodDescription,
		IsAddressVerified:                     o.IsAddressVerified,
		AvailableStockQuantity:                o.AvailableStockQuantity,
		Store:                                 o.Store,
		ChannelDepositorParameterID:           o.ChannelDepositorParameterID,
		CarrierBillingTypeID:                  o.CarrierBillingTypeID,
		CarrierBillingTypeDescription:         o.CarrierBillingTypeDescription,
		IsPickListPrinted:                     o.IsPickListPrinted,
		IsPrimeOrder:                          o.IsPrimeOrder,
		InvoiceDate:                           o.InvoiceDate,
		EntryDateTime:                         o.EntryDateTime,
		CargoDiscount:                         o.CargoDiscount,
		WarehouseOrdReturnReasonID:            o.WarehouseOrdReturnReasonID,
		WarehouseOrdReturnReasonDescription:   o.WarehouseOrdReturnReasonDescription,
		CompanyName:                           o.CompanyName,
		TotalMarkupRate:                       o.TotalMarkupRate,
		TotalCarrierRate:                      o.TotalCarrierRate,
		ActualShipDate:                        o.ActualShipDate,
		PlannedPickupDate:                     o.PlannedPickupDate,
		CarrierShippingDescription:            o.CarrierShippingDescription,
		IsGetOrderDetails:                     o.IsGetOrderDetails,
		LastModifiedDate:                      o.LastModifiedDate,
		CancellationDate:                      o.CancellationDate,
		MasterWarehouseOrderCode:              o.MasterWarehouseOrderCode,
		PartyCarrierInfoID:                    o.PartyCarrierInfoID,
		BusinessDaysInTransit:                 o.BusinessDaysInTransit,
		SupplierID:                            o.SupplierID,
		SupplierAddressID:                     o.SupplierAddressID,
		ReceiptOrderCode:                      o.ReceiptOrderCode,
		ReceiptDate:                           o.ReceiptDate,
		WarehouseReceiptTypeID:                o.WarehouseReceiptTypeID,
		IsAutoGenerate:                        o.IsAutoGenerate,
		IsUseSameLotNumber:                    o.IsUseSameLotNumber,
		IsAllowChangingTaxAndDutiesPayor:      o.IsAllowChangingTaxAndDutiesPayor,
		IsGetCustomerAddressInfo:              o.IsGetCustomerAddressInfo,
		CustomerEmail:                         o.CustomerEmail,
		WarehouseDropShipOrderCode:            o.WarehouseDropShipOrderCode,
		WarehouseBackOrderCode:                o.WarehouseBackOrderCode,
		WarehouseMasterOrderCode:              o.WarehouseMasterOrderCode,
		WarehouseReceiptOrderCode:             o.WarehouseReceiptOrderCode,
		WarehouseOrderOperationState:          o.WarehouseOrderOperationState,
		OrgFBAOrderID:                         o.OrgFBAOrderID,
		WarehouseFBAOrderStatusCode:           o.WarehouseFBAOrderStatusCode,
		WarehouseFBAOrderStatusDesc:           o.WarehouseFBAOrderStatusDesc,
		SelectedOrder:                         o.SelectedOrder,
		PackageCode:                           o.PackageCode,
		SSCC:                                  o.SSCC,
		ShipmentTypeID:                        o.ShipmentTypeID,
		InsuranceCost:                         o.InsuranceCost,
		InsuranceType:                         o.InsuranceType,
		IsUseSaturdayDelivery:                 o.IsUseSaturdayDelivery,
		IsSkipAddressVerificationStamps:       o.IsSkipAddressVerificationStamps,
		IsFedexOneRate:                        o.IsFedexOneRate,
		TaxesAndDutiesBillingType:             o.TaxesAndDutiesBillingType,
		TaxAndDutiesPayorInfo:                 o.TaxAndDutiesPayorInfo,
		EarliestShipDate:                      o.EarliestShipDate,
		LatestShipDate:                        o.LatestShipDate,
		EarliestDeliveryDate:                  o.EarliestDeliveryDate,
		LatestDeliveryDate:                    o.LatestDeliveryDate,
		FetchedAt:                             o.FetchedAt,
	}
}

// ToDomain converts the model to a domain order
func (m *ShipmentOrderModel) ToDomain() *shipment.Order {
	return &shipment.Order{
		ID:                                    m.OrderID,
		Code:                                  m.Code,
		PriorityID:                            m.PriorityID,
		CustomerRefCode:                       m.CustomerRefCode,
		DepositorRefCode:                      m.DepositorRefCode,
		CustomerOrderNo:                       m.CustomerOrderNo,
		DepositorOrderNo:                      m.DepositorOrderNo,
		WarehouseOrderStatusCode:              m.WarehouseOrderStatusCode,
		CustomerID:                            m.CustomerID,
		CustomerCode:                          m.CustomerCode,
		CustomerDescription:                   m.CustomerDescription,
		InventorySiteID:                       m.InventorySiteID,
		InventorySiteCode:                     m.InventorySiteCode,
		WarehouseID:                           m.WarehouseID,
		WarehouseCode:                         m.WarehouseCode,
		WarehouseDescription:                  m.WarehouseDescription,
		DepositorID:                           m.DepositorID,
		DepositorCode:                         m.DepositorCode,
		DepositorDescription:                  m.DepositorDescription,
		IsPrintCarrierLabelPackListAsLabel:    m.IsPrintCarrierLabelPackListAsLabel,
		IsPrintCarrierLabelPackListOnSamePage: m.IsPrintCarrierLabelPackListOnSamePage,
		CarrierTrackingNumber:                 m.CarrierTrackingNumber,
		WarehouseOrderTypeID:                  m.WarehouseOrderTypeID,
		WarehouseOrderTypeCode:                m.WarehouseOrderTypeCode,
		IsAmazonFBA:                           m.IsAmazonFBA,
		OrderDate:                             m.OrderDate,
		PlannedDeliveryDate:                   m.PlannedDeliveryDate,
		PlannedShipDate:                       m.PlannedShipDate,
		Notes:                                 m.Notes,
		IsDocumentExist:                       m.IsDocumentExist,
		PurchaseOrderID:                       m.PurchaseOrderID,
		PurchaseOrderCode:                     m.PurchaseOrderCode,
		IsImported:                            m.IsImported,
		IsExported:                            m.IsExported,
		IsExported2:                           m.IsExported2,
		IsExported4:                           m.IsExported4,
		IsExported5:                           m.IsExported5,
		IsBackorder:                           m.IsBackorder,
		NofShipmentLabel:                      m.NofShipmentLabel,
		IsAllocated:                           m.IsAllocated,
		IsPickingStarted:                      m.IsPickingStarted,
		IsPickingCompleted:                    m.IsPickingCompleted,
		InvoiceCustomerID:                     m.InvoiceCustomerID,
		InvoiceCustomerPartyID:                m.InvoiceCustomerPartyID,
		InvoiceCustomerDescription:            m.InvoiceCustomerDescription,
		InvoiceCustomerAddressID:              m.InvoiceCustomerAddressID,
		InvoiceCustomerAddressDescription:     m.InvoiceCustomerAddressDescription,
		TotalSalesGrossPrice:                  m.TotalSalesGrossPrice,
		TotalSalesVat:                         m.TotalSalesVat,
		TotalSalesDiscount:                    m.TotalSalesDiscount,
		Instructions:                          m.Instructions,
		AccountNumber:                         m.AccountNumber,
		Driver:                                m.Driver,
		PlateNumber:                           m.PlateNumber,
		BillingTypeID:                         m.BillingTypeID,
		BillingTypeDescription:                m.BillingTypeDescription,
		RouteID:                               m.RouteID,
		RouteDescription:                      m.RouteDescription,
		ChannelDescription:                    m.ChannelDescription,
		IsCancelRequested:                     m.IsCancelRequested,
		CarrierDescription:                    m.CarrierDescription,
		IntegrationKey:                        m.IntegrationKey,
		EnteredBy:                             m.EnteredBy,
		CanceledBy:                            m.CanceledBy,
		CarrierShippingOptionsID:              m.CarrierShippingOptionsID,
		CarrierDepositorListID:                m.CarrierDepositorListID,
		NofProducts:                           m.NofProducts,
		StoreName:                             m.StoreName,
		LinkedChannelID:                       m.LinkedChannelID,
		LinkedChannelDescription:              m.LinkedChannelDescription,
		CarrierRate:                           m.CarrierRate,
		CarrierMarkupRate:                     m.CarrierMarkupRate,
		CarrierPackageTypeID:                  m.CarrierPackageTypeID,
		CustomerAddressID:                     m.CustomerAddressID,
		CustomerAddressDescription:            m.CustomerAddressDescription,
		PlannedPickDate:                       m.PlannedPickDate,
		ActualPickDate:                        m.ActualPickDate,
		ActualDeliveryDate:                    m.ActualDeliveryDate,
		ProjectID:                             m.ProjectID,
		ProjectDescription:                    m.ProjectDescription,
		WarehouseReceiptID:                    m.WarehouseReceiptID,
		WarehouseReceiptCode:                  m.WarehouseReceiptCode,
		BackWarehouseOrderID:                  m.BackWarehouseOrderID,
		BackWarehouseOrderCode:                m.BackWarehouseOrderCode,
		DropShipMasterOrderID:                 m.DropShipMasterOrderID,
		DropShipWarehouseOrderCode:            m.DropShipWarehouseOrderCode,
		DropShipNotes:                         m.DropShipNotes,
		IsWaybillPrinted:                      m.IsWaybillPrinted,
		InvoiceNo:                             m.InvoiceNo,
		DeliveryNoteNo:                        m.DeliveryNoteNo,
		IsCarrierLabelPrinted:                 m.IsCarrierLabelPrinted,
		ChannelOrderCode:                      m.ChannelOrderCode,
		CarrierWeight:                         m.CarrierWeight,
		ClientPartyID:                         m.ClientPartyID,
		POWindowWarehouseID:                   m.POWindowWarehouseID,
		WareOrderCancelReasonID:               m.WareOrderCancelReasonID,
		WareOrderCancelReasonDescription:      m.WareOrderCancelReasonDescription,
		IsGift:                                m.IsGift,
		GiftNote:                              m.GiftNote,
		OrderItems:                            m.OrderItems,
		ExtraNotes:                            m.ExtraNotes,
		ExtraNotes1:                           m.ExtraNotes1,
		ExtraNotes2:                           m.ExtraNotes2,
		ExtraNotes3:                           m.ExtraNotes3,
		ExtraNotes4:                           m.ExtraNotes4,
		ExtraNotes5:                           m.ExtraNotes5,
		MasterEDIReference:                    m.MasterEDIReference,
		Priority:                              m.Priority,
		FraudRecommendationID:                 m.FraudRecommendationID,
		FraudRecommendationCode:               m.FraudRecommendationCode,
		FraudRecommendationDescription:        m.FraudRecommendationDescription,
		OrderRiskScore:                        m.OrderRiskScore,
		ShipmentMethodID:                      m.ShipmentMethodID,
		ShipmentMethodDescription:             m.ShipmentMethodDescription,
		IsAddressVerified:                     m.IsAddressVerified,
		AvailableStockQuantity:                m.AvailableStockQuantity,
		Store:                                 m.Store,
		ChannelDepositorParameterID:           m.ChannelDepositorParameterID,
		CarrierBillingTypeID:                  m.CarrierBillingTypeID,
		CarrierBillingTypeDescription:         m.CarrierBillingTypeDescription,
		IsPickListPrinted:                     m.IsPickListPrinted,
		IsPrimeOrder:                          m.IsPrimeOrder,
		InvoiceDate:                           m.InvoiceDate,
		EntryDateTime:                         m.EntryDateTime,
		CargoDiscount:                         m.CargoDiscount,
		WarehouseOrdReturnReasonID:            m.WarehouseOrdReturnReasonID,
		WarehouseOrdReturnReasonDescription:   m.WarehouseOrdReturnReasonDescription,
		CompanyName:                           m.CompanyName,
		TotalMarkupRate:                       m.TotalMarkupRate,
		TotalCarrierRate:                      m.TotalCarrierRate,
		ActualShipDate:                        m.ActualShipDate,
		PlannedPickupDate:                     m.PlannedPickupDate,
		CarrierShippingDescription:            m.CarrierShippingDescription,
		IsGetOrderDetails:                     m.IsGetOrderDetails,
		LastModifiedDate:                      m.LastModifiedDate,
		CancellationDate:                      m.CancellationDate,
		MasterWarehouseOrderCode:              m.MasterWarehouseOrderCode,
		PartyCarrierInfoID:                    m.PartyCarrierInfoID,
		BusinessDaysInTransit:                 m.BusinessDaysInTransit,
		SupplierID:                            m.SupplierID,
		SupplierAddressID:                     m.SupplierAddressID,
		ReceiptOrderCode:                      m.ReceiptOrderCode,
		ReceiptDate:                           m.ReceiptDate,
		WarehouseReceiptTypeID:                m.WarehouseReceiptTypeID,
		IsAutoGenerate:                        m.IsAutoGenerate,
		IsUseSameLotNumber:                    m.IsUseSameLotNumber,
		IsAllowChangingTaxAndDutiesPayor:      m.IsAllowChangingTaxAndDutiesPayor,
		IsGetCustomerAddressInfo:              m.IsGetCustomerAddressInfo,
		CustomerEmail:                         m.CustomerEmail,
		WarehouseDropShipOrderCode:            m.WarehouseDropShipOrderCode,
		WarehouseBackOrderCode:                m.WarehouseBackOrderCode,
		WarehouseMasterOrderCode:              m.WarehouseMasterOrderCode,
		WarehouseReceiptOrderCode:             m.WarehouseReceiptOrderCode,
		WarehouseOrderOperationState:          m.WarehouseOrderOperationState,
		OrgFBAOrderID:                         m.OrgFBAOrderID,
		WarehouseFBAOrderStatusCode:           m.WarehouseFBAOrderStatusCode,
		WarehouseFBAOrderStatusDesc:           m.WarehouseFBAOrderStatusDesc,
		SelectedOrder:                         m.SelectedOrder,
		PackageCode:                           m.PackageCode,
		SSCC:                                  m.SSCC,
		ShipmentTypeID:                        m.ShipmentTypeID,
		InsuranceCost:                         m.InsuranceCost,
		InsuranceType:                         m.InsuranceType,
		IsUseSaturdayDelivery:                 m.IsUseSaturdayDelivery,
		IsSkipAddressVerificationStamps:       m.IsSkipAddressVerificationStamps,
		IsFedexOneRate:                        m.IsFedexOneRate,
		TaxesAndDutiesBillingType:             m.TaxesAndDutiesBillingType,
		TaxAndDutiesPayorInfo:                 m.TaxAndDutiesPayorInfo,
		EarliestShipDate:                      m.EarliestShipDate,
		LatestShipDate:                        m.LatestShipDate,
		EarliestDeliveryDate:                  m.EarliestDeliveryDate,
		LatestDeliveryDate:                    m.LatestDeliveryDate,
		FetchedAt:                             m.FetchedAt,
	}
}

// ---------------------------------------------------------------------------
// Order lines
// ---------------------------------------------------------------------------

// ShipmentOrderLineModel is the persistence model for shipment.OrderLine
type ShipmentOrderLineModel struct {
	LineID  int64  `gorm:"column:line_id;primaryKey;autoIncrement:false"`
	OrderID int64  `gorm:"column:order_id;not null;index:idx_shipment_order_lines_order"`
	Code    string `gorm:"column:code;type:varchar(100);not null"`

	InventoryItemID                  *int64           `gorm:"column:inventory_item_id"`
	InventoryItemDescription         *string          `gorm:"column:inventory_item_description;type:text"`
	InventoryItemInfo                *string          `gorm:"column:inventory_item_info;type:text"`
	Barcode                          *string          `gorm:"column:barcode;type:varchar(255)"`
	DisplayMember                    *string          `gorm:"column:display_member;type:text"`
	InventoryItemPackTypeID          *int64           `gorm:"column:inventory_item_pack_type_id"`
	InventoryItemPackTypeDescription *string          `gorm:"column:inventory_item_pack_type_description;type:varchar(255)"`
	PackQuantity                     *int64           `gorm:"column:pack_quantity"`
	InsuranceAmountPerUnit           *decimal.Decimal `gorm:"column:insurance_amount_per_unit;type:numeric(18,4)"`
	EDIReference                     *string          `gorm:"column:edi_reference;type:varchar(255)"`
	UnitWeight                       *decimal.Decimal `gorm:"column:unit_weight;type:numeric(18,4)"`
	UnitVolume                       *decimal.Decimal `gorm:"column:unit_volume;type:numeric(18,4)"`
	AllocatedCuQuantity              *int64           `gorm:"column:allocated_cu_quantity"`
	PickedCuQuantity                 *int64           `gorm:"column:picked_cu_quantity"`
	LoadedCuQuantity                 *int64           `gorm:"column:loaded_cu_quantity"`
	ShippedCuQuantity                *int64           `gorm:"column:shipped_cu_quantity"`
	PlannedPackQuantity              *int64           `gorm:"column:planned_pack_quantity"`
	PlannedCuQuantity                *int64           `gorm:"column:planned_cu_quantity"`
	SortedCuQuantity                 *int64           `gorm:"column:sorted_cu_quantity"`
	PackedCuQuantity                 *int64           `gorm:"column:packed_cu_quantity"`
	CancelledCuQuantity              *int64           `gorm:"column:cancelled_cu_quantity"`
	FreeAttr1                        *string          `gorm:"column:free_attr1;type:varchar(255)"`
	FreeAttr2                        *string          `gorm:"column:free_attr2;type:varchar(255)"`
	FreeAttr3                        *string          `gorm:"column:free_attr3;type:varchar(255)"`
	CurrencyPrice                    *decimal.Decimal `gorm:"column:currency_price;type:numeric(18,4)"`
	TaxRate                          *decimal.Decimal `gorm:"column:tax_rate;type:numeric(18,4)"`
	NetCurrencyPrice                 *decimal.Decimal `gorm:"column:net_currency_price;type:numeric(18,4)"`
	TotalWeight                      *decimal.Decimal `gorm:"column:total_weight;type:numeric(18,4)"`
	TotalVolume                      *decimal.Decimal `gorm:"column:total_volume;type:numeric(18,4)"`
	LineWeight                       *decimal.Decimal `gorm:"column:line_weight;type:numeric(18,4)"`
	SupplierID                       *int64           `gorm:"column:supplier_id"`
	SupplierDescription              *string          `gorm:"column:supplier_description;type:varchar(255)"`
	Notes1                           *string          `gorm:"column:notes1;type:text"`
	Notes2                           *string          `gorm:"column:notes2;type:text"`
	Notes3                           *string          `gorm:"column:notes3;type:text"`
	SalesUnitPrice                   *decimal.Decimal `gorm:"column:sales_unit_price;type:numeric(18,4)"`
	ChannelOrderDetailCode           *string          `gorm:"column:channel_order_detail_code;type:varchar(255)"`
	LotNo                            *string          `gorm:"column:lot_no;type:varchar(255)"`
	ExpiryDate                       *time.Time       `gorm:"column:expiry_date"`
	ProductionDate                   *time.Time       `gorm:"column:production_date"`
	PackageType                      *string          `gorm:"column:package_type;type:varchar(255)"`
	StockKitCode                     *string          `gorm:"column:stock_kit_code;type:varchar(255)"`
	SuitabilityReason                *string          `gorm:"column:suitability_reason;type:text"`
	QuarantineReason                 *string          `gorm:"column:quarantine_reason;type:text"`

	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName returns the table name for GORM
func (ShipmentOrderLineModel) TableName() string {
	return "shipment_order_lines"
}

// FromDomain populates the model from a domain line
func (m *ShipmentOrderLineModel) FromDomain(l *shipment.OrderLine) {
	*m = ShipmentOrderLineModel{
		LineID:                           l.ID,
		OrderID:                          l.OrderID,
		Code:                             l.Code,
		InventoryItemID:                  l.InventoryItemID,
		InventoryItemDescription:         l.InventoryItemDescription,
		InventoryItemInfo:                l.InventoryItemInfo,
		Barcode:                          l.Barcode,
		DisplayMember:                    l.DisplayMember,
		InventoryItemPackTypeID:          l.InventoryItemPackTypeID,
		InventoryItemPackTypeDescription: l.InventoryItemPackTypeDescription,
		PackQuantity:                     l.PackQuantity,
		InsuranceAmountPerUnit:           l.InsuranceAmountPerUnit,
		EDIReference:                     l.EDIReference,
		UnitWeight:                       l.UnitWeight,
		UnitVolume:                       l.UnitVolume,
		AllocatedCuQuantity:              l.AllocatedCuQuantity,
		PickedCuQuantity:                 l.PickedCuQuantity,
		LoadedCuQuantity:                 l.LoadedCuQuantity,
		ShippedCuQuantity:                l.ShippedCuQuantity,
		PlannedPackQuantity:              l.PlannedPackQuantity,
		PlannedCuQuantity:                l.PlannedCuQuantity,
		SortedCuQuantity:                 l.SortedCuQuantity,
		PackedCuQuantity:                 l.PackedCuQuantity,
		CancelledCuQuantity:              l.CancelledCuQuantity,
		FreeAttr1:                        l.FreeAttr1,
		FreeAttr2:                        l.FreeAttr2,
		FreeAttr3:                        l.FreeAttr3,
		CurrencyPrice:                    l.CurrencyPrice,
		TaxRate:                          l.TaxRate,
		NetCurrencyPrice:                 l.NetCurrencyPrice,
		TotalWeight:                      l.TotalWeight,
		TotalVolume:                      l.TotalVolume,
		LineWeight:                       l.LineWeight,
		SupplierID:                       l.SupplierID,
		SupplierDescription:              l.SupplierDescription,
		Notes1:                           l.Notes1,
		Notes2:                           l.Notes2,
		Notes3:                           l.Notes3,
		SalesUnitPrice:                   l.SalesUnitPrice,
		ChannelOrderDetailCode:           l.ChannelOrderDetailCode,
		LotNo:                            l.LotNo,
		ExpiryDate:                       l.ExpiryDate,
		ProductionDate:                   l.ProductionDate,
		PackageType:                      l.PackageType,
		StockKitCode:                     l.StockKitCode,
		SuitabilityReason:                l.SuitabilityReason,
		QuarantineReason:                 l.QuarantineReason,
	}
}

// ToDomain converts the model to a domain line
func (m *ShipmentOrderLineModel) ToDomain() shipment.OrderLine {
	return shipment.OrderLine{
		ID:                               m.LineID,
		OrderID:                          m.OrderID,
		Code:                             m.Code,
		InventoryItemID:                  m.InventoryItemID,
		InventoryItemDescription:         m.InventoryItemDescription,
		InventoryItemInfo:                m.InventoryItemInfo,
		Barcode:                          m.Barcode,
		DisplayMember:                    m.DisplayMember,
		InventoryItemPackTypeID:          m.InventoryItemPackTypeID,
		InventoryItemPackTypeDescription: m.InventoryItemPackTypeDescription,
		PackQuantity:                     m.PackQuantity,
		InsuranceAmountPerUnit:           m.InsuranceAmountPerUnit,
		EDIReference:                     m.EDIReference,
		UnitWeight:                       m.UnitWeight,
		UnitVolume:                       m.UnitVolume,
		AllocatedCuQuantity:              m.AllocatedCuQuantity,
		PickedCuQuantity:                 m.PickedCuQuantity,
		LoadedCuQuantity:                 m.LoadedCuQuantity,
		ShippedCuQuantity:                m.ShippedCuQuantity,
		PlannedPackQuantity:              m.PlannedPackQuantity,
		PlannedCuQuantity:                m.PlannedCuQuantity,
		SortedCuQuantity:                 m.SortedCuQuantity,
		PackedCuQuantity:                 m.PackedCuQuantity,
		CancelledCuQuantity:              m.CancelledCuQuantity,
		FreeAttr1:                        m.FreeAttr1,
		FreeAttr2:                        m.FreeAttr2,
		FreeAttr3:                        m.FreeAttr3,
		CurrencyPrice:                    m.CurrencyPrice,
		TaxRate:                          m.TaxRate,
		NetCurrencyPrice:                 m.NetCurrencyPrice,
		TotalWeight:                      m.TotalWeight,
		TotalVolume:                      m.TotalVolume,
		LineWeight:                       m.LineWeight,
		SupplierID:                       m.SupplierID,
		SupplierDescription:              m.SupplierDescription,
		Notes1:                           m.Notes1,
		Notes2:                           m.Notes2,
		Notes3:                           m.Notes3,
		SalesUnitPrice:                   m.SalesUnitPrice,
		ChannelOrderDetailCode:           m.ChannelOrderDetailCode,
		LotNo:                            m.LotNo,
		ExpiryDate:                       m.ExpiryDate,
		ProductionDate:                   m.ProductionDate,
		PackageType:                      m.PackageType,
		StockKitCode:                     m.StockKitCode,
		SuitabilityReason:                m.SuitabilityReason,
		QuarantineReason:                 m.QuarantineReason,
	}
}

