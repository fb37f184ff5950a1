package shipment

import "errors"

var (
	// Document errors
	ErrInvalidDocument = errors.New("shipment: raw order document is not a JSON object")
	ErrMissingOrderID  = errors.New("shipment: raw order document has no usable ID")

	// Pipeline port errors
	ErrCredentialUnavailable = errors.New("shipment: credential unavailable")
	ErrPartitionLookupFailed = errors.New("shipment: partition lookup failed")
	ErrCommitFailed          = errors.New("shipment: order commit failed")
	ErrRunLockHeld           = errors.New("shipment: another run holds the run lock")
)
