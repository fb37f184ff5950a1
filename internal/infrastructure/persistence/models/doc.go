// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
// - shipment_order.go: order header and line models
// - shipment_order_children.go: addresses, tag junction rows, API error rows
// - staging.go: raw document staging rows
// - run.go: run ledger rows
// - schema.go: the full table set, for AutoMigrate in tests and local setups
//
// The production schema is owned by the SQL migrations; AutoMigrate is not run in production.
package models
