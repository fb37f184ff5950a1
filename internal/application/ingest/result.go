// Package ingest runs the shipment-order pipeline: fetch every warehouse into staging,
// then normalize and commit each staged order, bracketed by the run ledger.
package ingest

import (
	"errors"
	"time"

	"github.com/liamd101/logiwa-shipments/internal/domain/shipment"
)

var (
	// ErrOrdersFailed is returned when a run finished but some staged orders did not commit
	ErrOrdersFailed = errors.New("ingest: one or more orders failed to commit")
	// ErrWatermarkUnavailable is returned when the run ledger cannot be read
	ErrWatermarkUnavailable = errors.New("ingest: watermark unavailable")
)

// FetchParams are shared by every partition of one run
type FetchParams struct {
	RunID         string
	Window        shipment.SearchWindow
	ModifiedSince *time.Time
}

// PartitionResult summarizes the collection of one warehouse
type PartitionResult struct {
	WarehouseID     int64
	Pages           int
	Documents       int
	Rejected        int
	ArchiveFailures int
	// PageError is the fetch error that ended the partition early, if any
	PageError error
}

// FetchResult summarizes the fetch phase of a run
type FetchResult struct {
	Partitions []PartitionResult
}

// Pages returns the number of non-empty pages fetched
func (r FetchResult) Pages() int {
	n := 0
	for _, p := range r.Partitions {
		n += p.Pages
	}
	return n
}

// Documents returns the number of documents staged
func (r FetchResult) Documents() int {
	n := 0
	for _, p := range r.Partitions {
		n += p.Documents
	}
	return n
}

// ArchiveFailures returns the number of pages that could not be archived
func (r FetchResult) ArchiveFailures() int {
	n := 0
	for _, p := range r.Partitions {
		n += p.ArchiveFailures
	}
	return n
}

// PartitionsCutShort returns the warehouses whose collection ended on a page error
func (r FetchResult) PartitionsCutShort() []int64 {
	ids := make([]int64, 0)
	for _, p := range r.Partitions {
		if p.PageError != nil {
			ids = append(ids, p.WarehouseID)
		}
	}
	return ids
}

// ProcessResult summarizes the normalize and commit phase of a run
type ProcessResult struct {
	Staged            int
	OrdersCommitted   int
	OrdersFailed      int
	SupersededRemoved int
	FailedOrderIDs    []int64
}

// RunResult reports one pipeline execution
type RunResult struct {
	RunID         string
	StartedAt     time.Time
	FinishedAt    time.Time
	ModifiedSince *time.Time
	Skipped       bool
	Succeeded     bool
	ProcessOnly   bool
	Fetch         FetchResult
	Process       ProcessResult
	Err           error
}

// Duration returns the wall time of the run
func (r *RunResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
