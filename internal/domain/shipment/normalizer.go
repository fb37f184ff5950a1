package shipment

import (
	"encoding/json"
	"time"
)

// Normalizer converts raw order documents into normalized record sets.
// It performs no I/O and holds no state.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Parse normalizes one raw order document.
// fetchedAt is the fetch time of the staged entry and becomes Order.FetchedAt.
// Malformed field values degrade to absent values; only a document that is not
// a JSON object or lacks an ID is rejected.
func (n *Normalizer) Parse(raw []byte, fetchedAt time.Time) (*NormalizedOrder, error) {
	doc, err := decodeDocument(raw)
	if err != nil {
		return nil, err
	}
	id := doc.int64("ID")
	if id == nil {
		return nil, ErrMissingOrderID
	}

	result := &NormalizedOrder{
		Order:     parseOrder(doc, *id),
		Lines:     parseLines(doc, *id),
		Addresses: parseAddresses(doc, *id),
		Errors:    parseErrors(doc, *id),
	}
	result.Order.FetchedAt = fetchedAt
	for _, kind := range AllTagKinds {
		result.setTagIDs(kind, doc.tagIDs(kind.SourceField()))
	}
	return result, nil
}

func parseOrder(d document, id int64) Order {
	return Order{
		ID:                                    id,
		Code:                                  deref(d.str("Code")),
		PriorityID:                            d.str("PriorityID"),
		CustomerRefCode:                       d.str("CustomerRefCode"),
		DepositorRefCode:                      d.str("DepositorRefCode"),
		CustomerOrderNo:                       d.str("CustomerOrderNo"),
		DepositorOrderNo:                      d.str("DepositorOrderNo"),
		WarehouseOrderStatusCode:              d.str("WarehouseOrderStatusCode"),
		CustomerID:                            d.int64("CustomerID"),
		CustomerCode:                          d.str("CustomerCode"),
		CustomerDescription:                   d.str("CustomerDescription"),
		InventorySiteID:                       d.int64("InventorySiteID"),
		InventorySiteCode:                     d.str("InventorySiteCode"),
		WarehouseID:                           d.int64("WarehouseID"),
		WarehouseCode:                         d.str("WarehouseCode"),
		WarehouseDescription:                  d.str("WarehouseDescription"),
		DepositorID:                           d.int64("DepositorID"),
		DepositorCode:                         d.str("DepositorCode"),
		DepositorDescription:                  d.str("DepositorDescription"),
		IsPrintCarrierLabelPackListAsLabel:    d.boolean("IsPrintCarrierLabelPackListAsLabel"),
		IsPrintCarrierLabelPackListOnSamePage: d.boolean("IsPrintCarrierLabelPackListOnSamePage"),
		CarrierTrackingNumber:                 d.str("CarrierTrackingNumber"),
		WarehouseOrderTypeID:                  d.int64("WarehouseOrderTypeID"),
		WarehouseOrderTypeCode:                d.str("WarehouseOrderTypeCode"),
		IsAmazonFBA:                           d.boolean("IsAmazonFBA"),
		OrderDate:                             d.timestamp("OrderDate"),
		PlannedDeliveryDate:                   d.timestamp("PlannedDeliveryDate"),
		PlannedShipDate:                       d.timestamp("PlannedShipDate"),
		Notes:                                 d.str("Notes"),
		IsDocumentExist:                       d.str("IsDocumentExist"),
		PurchaseOrderID:                       d.int64("PurchaseOrderID"),
		PurchaseOrderCode:                     d.str("PurchaseOrderCode"),
		IsImported:                            d.boolean("IsImported"),
		IsExported:                            d.boolean("IsExported"),
		IsExported2:                           d.boolean("IsExported2"),
		IsExported4:                           d.boolean("IsExported4"),
		IsExported5:                           d.boolean("IsExported5"),
		IsBackorder:                           d.boolean("IsBackorder"),
		NofShipmentLabel:                      d.int64("NofShipmentLabel"),
		IsAllocated:                           d.boolean("IsAllocated"),
		IsPickingStarted:                      d.boolean("IsPickingStarted"),
		IsPickingCompleted:                    d.boolean("IsPickingCompleted"),
		InvoiceCustomerID:                     d.int64("InvoiceCustomerID"),
		InvoiceCustomerPartyID:                d.int64("InvoiceCustomerPartyID"),
		InvoiceCustomerDescription:            d.str("InvoiceCustomerDescription"),
		InvoiceCustomerAddressID:              d.int64("InvoiceCustomerAddressID"),
		InvoiceCustomerAddressDescription:     d.str("InvoiceCustomerAddressDescription"),
		TotalSalesGrossPrice:                  d.decimal("TotalSalesGrossPrice"),
		TotalSalesVat:                         d.decimal("TotalSalesVat"),
		TotalSalesDiscount:                    d.decimal("TotalSalesDiscount"),
		Instructions:                          d.str("Instructions"),
		AccountNumber:                         d.str("AccountNumber"),
		Driver:                                d.str("Driver"),
		PlateNumber:                           d.str("Platenumber"),
		BillingTypeID:                         d.int64("BillingTypeID"),
		BillingTypeDescription:                d.str("BillingTypeDescription"),
		RouteID:                               d.int64("RouteID"),
		RouteDescription:                      d.str("RouteDescription"),
		ChannelDescription:                    d.str("ChannelDescription"),
		IsCancelRequested:                     d.boolean("IsCancelRequested"),
		CarrierDescription:                    d.str("CarrierDescription"),
		IntegrationKey:                        d.str("IntegrationKey"),
		EnteredBy:                             d.str("EnteredBy"),
		CanceledBy:                            d.str("CanceledBy"),
		CarrierShippingOptionsID:              d.int64("CarrierShippingOptionsID"),
		CarrierDepositorListID:                d.int64("CarrierDepositorListID"),
		NofProducts:                           d.int64("NofProducts"),
		StoreName:                             d.str("StoreName"),
		LinkedChannelID:                       d.int64("LinkedChannelID"),
		LinkedChannelDescription:              d.str("LinkedChannelDescription"),
		CarrierRate:                           d.decimal("CarrierRate"),
		CarrierMarkupRate:                     d.decimal("CarrierMarkupRate"),
		CarrierPackageTypeID:                  d.int64("CarrierPackageTypeID"),
		CustomerAddressID:                     d.int64("CustomerAddressID"),
		CustomerAddressDescription:            d.str("CustomerAddressDescription"),
		PlannedPickDate:                       d.timestamp("PlannedPickDate"),
		ActualPickDate:                        d.timestamp("ActualPickDate"),
		ActualDeliveryDate:                    d.timestamp("ActualDeliveryDate"),
		ProjectID:                             d.int64("ProjectID"),
		ProjectDescription:                    d.str("ProjectDescription"),
		WarehouseReceiptID:                    d.int64("WarehouseReceiptID"),
		WarehouseReceiptCode:                  d.str("WarehouseReceiptCode"),
		BackWarehouseOrderID:                  d.int64("BackWarehouseOrderID"),
		BackWarehouseOrderCode:                d.str("BackWarehouseOrderCode"),
		DropShipMasterOrderID:                 d.int64("DropShipMasterOrderID"),
		DropShipWarehouseOrderCode:            d.str("DropShipWarehouseOrderCode"),
		DropShipNotes:                         d.str("DropShipNotes"),
		IsWaybillPrinted:                      d.boolean("IsWaybillPrinted"),
		InvoiceNo:                             d.str("InvoiceNo"),
		DeliveryNoteNo:                        d.str("DeliveryNoteNo"),
		IsCarrierLabelPrinted:                 d.boolean("IsCarrierLabelPrinted"),
		ChannelOrderCode:                      d.str("ChannelOrderCode"),
		CarrierWeight:                         d.str("CarrierWeight"),
		ClientPartyID:                         d.int64("ClientPartyID"),
		POWindowWarehouseID:                   d.int64("POWindowWarehouseID"),
		WareOrderCancelReasonID:               d.int64("WareOrderCancelReasonID"),
		WareOrderCancelReasonDescription:      d.str("WareOrderCancelReasonDescription"),
		IsGift:                                d.boolean("IsGift"),
		GiftNote:                              d.str("GiftNote"),
		OrderItems:                            d.str("OrderItems"),
		ExtraNotes:                            d.str("ExtraNotes"),
		ExtraNotes1:                           d.str("ExtraNotes1"),
		ExtraNotes2:                           d.str("ExtraNotes2"),
		ExtraNotes3:                           d.str("ExtraNotes3"),
		ExtraNotes4:                           d.str("ExtraNotes4"),
		ExtraNotes5:                           d.str("ExtraNotes5"),
		MasterEDIReference:                    d.str("MasterEDIReference"),
		Priority:                              d.int64("Priority"),
		FraudRecommendationID:                 d.int64("FraudRecommendationID"),
		FraudRecommendationCode:               d.str("FraudRecommendationCode"),
		FraudRecommendationDescription:        d.str("FraudRecommendationDescription"),
		OrderRiskScore:                        d.decimal("OrderRiskScore"),
		ShipmentMethodID:                      d.int64("ShipmentMethodID"),
		ShipmentMethodDescription:             d.str("ShipmentMethodDescription"),
		IsAddressVerified:                     d.boolean("IsAddressVerified"),
		AvailableStockQuantity:                d.int64("AvaliableStockQuantity"),
		Store:                                 d.str("Store"),
		ChannelDepositorParameterID:           d.int64("ChannelDepositorParameterID"),
		CarrierBillingTypeID:                  d.int64("CarrierBillingTypeID"),
		CarrierBillingTypeDescription:         d.str("CarrierBillingTypeDescription"),
		IsPickListPrinted:                     d.boolean("IsPickListPrinted"),
		IsPrimeOrder:                          d.boolean("IsPrimeOrder"),
		InvoiceDate:                           d.timestamp("InvoiceDate"),
		EntryDateTime:                         d.timestamp("EntryDateTime"),
		CargoDiscount:                         d.decimal("CargoDiscount"),
		WarehouseOrdReturnReasonID:            d.int64("WarehouseOrdReturnReasonId"),
		WarehouseOrdReturnReasonDescription:   d.str("WarehouseOrdReturnReasonDescription"),
		CompanyName:                           d.str("CompanyName"),
		TotalMarkupRate:                       d.decimal("TotalMarkupRate"),
		TotalCarrierRate:                      d.decimal("TotalCarrierRate"),
		ActualShipDate:                        d.timestamp("ActualShipDate"),
		PlannedPickupDate:                     d.timestamp("PlannedPickupDate"),
		CarrierShippingDescription:            d.str("CarrierShippingDescription"),
		IsGetOrderDetails:                     d.boolean("IsGetOrderDetails"),
		LastModifiedDate:                      d.timestamp("LastModifiedDate"),
		CancellationDate:                      d.timestamp("CancellationDate"),
		MasterWarehouseOrderCode:              d.str("MasterWarehouseOrderCode"),
		PartyCarrierInfoID:                    d.int64("PartyCarrierInfoID"),
		BusinessDaysInTransit:                 d.int64("BusinessDaysInTransit"),
		SupplierID:                            d.int64("SupplierID"),
		SupplierAddressID:                     d.int64("SupplierAddressID"),
		ReceiptOrderCode:                      d.str("ReceiptOrderCode"),
		ReceiptDate:                           d.timestamp("ReceiptDate"),
		WarehouseReceiptTypeID:                d.int64("WarehouseReceiptTypeID"),
		IsAutoGenerate:                        d.boolean("isAutoGenerate"),
		IsUseSameLotNumber:                    d.boolean("isUseSameLotNumber"),
		IsAllowChangingTaxAndDutiesPayor:      d.boolean("IsAllowChangingTaxAndDutiesPayor"),
		IsGetCustomerAddressInfo:              d.boolean("IsGetCustomerAddressInfo"),
		CustomerEmail:                         d.str("CustomerEmail"),
		WarehouseDropShipOrderCode:            d.str("WarehouseDropShipOrderCode"),
		WarehouseBackOrderCode:                d.str("WarehouseBackOrderCode"),
		WarehouseMasterOrderCode:              d.str("WarehouseMasterOrderCode"),
		WarehouseReceiptOrderCode:             d.str("WarehouseReceiptOrderCode"),
		WarehouseOrderOperationState:          d.str("WarehouseOrderOperationStatus"),
		OrgFBAOrderID:                         d.int64("OrgFBAOrderId"),
		WarehouseFBAOrderStatusCode:           d.str("WarehouseFBAOrderStatusCode"),
		WarehouseFBAOrderStatusDesc:           d.str("WarehouseFBAOrderStatusDesc"),
		SelectedOrder:                         d.str("selectedOrder"),
		PackageCode:                           d.str("PackageCode"),
		SSCC:                                  d.str("SSCC"),
		ShipmentTypeID:                        d.int64("ShipmentTypeID"),
		InsuranceCost:                         d.decimal("InsuranceCost"),
		InsuranceType:                         d.str("InsuranceType"),
		IsUseSaturdayDelivery:                 d.boolean("IsUseSaturdayDelivery"),
		IsSkipAddressVerificationStamps:       d.boolean("IsSkipAdressVerificationStamps"),
		IsFedexOneRate:                        d.boolean("IsFedexOneRate"),
		TaxesAndDutiesBillingType:             d.str("TaxesandDutiesBillingType"),
		TaxAndDutiesPayorInfo:                 d.str("TaxandDutiesPayorInfo"),
		EarliestShipDate:                      d.timestamp("EarliestShipDate"),
		LatestShipDate:                        d.timestamp("LatestShipDate"),
		EarliestDeliveryDate:                  d.timestamp("EarliestDeliveryDate"),
		LatestDeliveryDate:                    d.timestamp("LatestDeliveryDate"),
	}
}

// parseLines reads DetailInfo. Entries without an ID cannot be keyed and are skipped;
// a repeated line ID keeps its first occurrence.
func parseLines(d document, orderID int64) []OrderLine {
	lines := make([]OrderLine, 0)
	seen := make(map[int64]struct{})
	for _, item := range d.array("DetailInfo") {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		detail := document(obj)
		lineID := detail.int64("ID")
		if lineID == nil {
			continue
		}
		if _, dup := seen[*lineID]; dup {
			continue
		}
		seen[*lineID] = struct{}{}
		lines = append(lines, OrderLine{
			ID:                               *lineID,
			OrderID:                          orderID,
			Code:                             deref(detail.str("Code")),
			InventoryItemID:                  detail.int64("InventoryItemID"),
			InventoryItemDescription:         detail.str("InventoryItemDescription"),
			InventoryItemInfo:                detail.str("InventoryItemInfo"),
			Barcode:                          detail.str("Barcode"),
			DisplayMember:                    detail.str("DisplayMember"),
			InventoryItemPackTypeID:          detail.int64("InventoryItemPackTypeID"),
			InventoryItemPackTypeDescription: detail.str("InventoryItemPackTypeDescription"),
			PackQuantity:                     detail.int64("PackQuantity"),
			InsuranceAmountPerUnit:           detail.decimal("InsuranceAmountPerUnit"),
			EDIReference:                     detail.str("EDIReference"),
			UnitWeight:                       detail.decimal("UnitWeight"),
			UnitVolume:                       detail.decimal("UnitVolume"),
			AllocatedCuQuantity:              detail.int64("AllocatedCuQuantity"),
			PickedCuQuantity:                 detail.int64("PickedCuQuantity"),
			LoadedCuQuantity:                 detail.int64("LoadedCuQuantity"),
			ShippedCuQuantity:                detail.int64("ShippedCuQuantity"),
			PlannedPackQuantity:              detail.int64("PlannedPackQuantity"),
			PlannedCuQuantity:                detail.int64("PlannedCuQuantity"),
			SortedCuQuantity:                 detail.int64("SortedCUQuantity"),
			PackedCuQuantity:                 detail.int64("PackedCUQuantity"),
			CancelledCuQuantity:              detail.int64("CancelledCuQuantity"),
			FreeAttr1:                        detail.str("FreeAttr1"),
			FreeAttr2:                        detail.str("FreeAttr2"),
			FreeAttr3:                        detail.str("FreeAttr3"),
			CurrencyPrice:                    detail.decimal("CurrencyPrice"),
			TaxRate:                          detail.decimal("TaxRate"),
			NetCurrencyPrice:                 detail.decimal("NetCurrencyPrice"),
			TotalWeight:                      detail.decimal("TotalWeight"),
			TotalVolume:                      detail.decimal("TotalVolume"),
			LineWeight:                       detail.decimal("LineWeight"),
			SupplierID:                       detail.int64("SupplierID"),
			SupplierDescription:              detail.str("SupplierDescription"),
			Notes1:                           detail.str("Notes1"),
			Notes2:                           detail.str("Notes2"),
			Notes3:                           detail.str("Notes3"),
			SalesUnitPrice:                   detail.decimal("SalesUnitPrice"),
			ChannelOrderDetailCode:           detail.str("ChannelOrderDetailCode"),
			LotNo:                            detail.str("LotNo"),
			ExpiryDate:                       detail.timestamp("ExpiryDate"),
			ProductionDate:                   detail.timestamp("ProductionDate"),
			PackageType:                      detail.str("PackageType"),
			StockKitCode:                     detail.str("StockKitCode"),
			SuitabilityReason:                detail.str("SuitabilityReason"),
			QuarantineReason:                 detail.str("QuarantineReason"),
		})
	}
	return lines
}

// parseAddresses extracts the ThirdPartyAccount address, if any
func parseAddresses(d document, orderID int64) []OrderAddress {
	addresses := make([]OrderAddress, 0, 1)

	account := d.object("ThirdPartyAccount")
	if len(account) == 0 {
		return addresses
	}
	addr := account.object("Address")
	if len(addr) == 0 {
		return addresses
	}

	return append(addresses, OrderAddress{
		OrderID:           orderID,
		Type:              AddressTypeThirdParty,
		AccountNumber:     account.str("AccountNumber"),
		Country:           addr.str("Country"),
		State:             addr.str("State"),
		City:              addr.str("City"),
		CustomerAddress:   addr.str("CustomerAddress"),
		AddressText:       addr.str("AddressText"),
		AddressDirections: addr.str("AddressDirections"),
		PostalCode:        addr.str("PostalCode"),
	})
}

// parseErrors reads Errors, whose entries are plain strings or {message, code, field} objects
func parseErrors(d document, orderID int64) []OrderError {
	errs := make([]OrderError, 0)
	for _, item := range d.array("Errors") {
		switch t := item.(type) {
		case string:
			if t == "" {
				continue
			}
			errs = append(errs, OrderError{OrderID: orderID, Message: t})
		case map[string]any:
			if len(t) == 0 {
				continue
			}
			entry := document(t)
			message := entry.str("message")
			if message == nil {
				encoded, err := json.Marshal(t)
				if err != nil {
					continue
				}
				text := string(encoded)
				message = &text
			}
			errs = append(errs, OrderError{
				OrderID: orderID,
				Message: *message,
				Code:    entry.str("code"),
				Field:   entry.str("field"),
			})
		}
	}
	return errs
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
