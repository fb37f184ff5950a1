package shipment

import (
	"context"
	"time"
)

// RunRecord is one pipeline execution in the append-only run ledger
type RunRecord struct {
	ID              int64
	RunID           string
	StartedAt       time.Time
	FinishedAt      time.Time
	Succeeded       bool
	OrdersCommitted int
	OrdersFailed    int
	ErrorMessage    string
}

// RunLedger records pipeline executions and supplies the incremental watermark
type RunLedger interface {
	// RecordRun appends a run record
	RecordRun(ctx context.Context, record RunRecord) error
	// LastSuccessfulRun returns the latest StartedAt among successful runs, or nil if none exists
	LastSuccessfulRun(ctx context.Context) (*time.Time, error)
}
