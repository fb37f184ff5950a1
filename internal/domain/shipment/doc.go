// Package shipment contains the Shipment bounded context.
// This context models warehouse orders pulled from Logiwa and the bookkeeping
// needed to land them safely in the relational store.
//
// Key concepts:
//   - Order, OrderLine, OrderAddress, OrderError: the normalized record set of one order
//   - TagKind: the five (order_id, tag_id) junction sets carried by an order
//   - StagingEntry: one raw fetch of an order, held until its record set commits
//   - RunRecord: one pipeline execution; successful runs supply the watermark
//   - Normalizer: pure conversion of one raw order document into a NormalizedOrder
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (Logiwa client, gorm repositories) are in the infrastructure layer
package shipment
