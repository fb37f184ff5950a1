package shipment

import (
	"context"
	"sort"
	"time"
)

// StagingEntry is one fetch of one raw order document.
// The same order id may be staged several times; the newest entry wins.
type StagingEntry struct {
	ID        int64
	OrderID   int64
	RawJSON   []byte
	FetchedAt time.Time
}

// newerThan reports whether e supersedes other. Ties on FetchedAt go to the later insert.
func (e StagingEntry) newerThan(other StagingEntry) bool {
	if !e.FetchedAt.Equal(other.FetchedAt) {
		return e.FetchedAt.After(other.FetchedAt)
	}
	return e.ID > other.ID
}

// StagingStore is the durable holding area for fetched documents
type StagingStore interface {
	// Append durably stores entries, independent of any later processing outcome
	Append(ctx context.Context, entries []StagingEntry) error
	// ListAll returns every entry ordered by order id, then fetch time, oldest first
	ListAll(ctx context.Context) ([]StagingEntry, error)
	// Delete removes the entries of orderID fetched at or before through
	Delete(ctx context.Context, orderID int64, through time.Time) error
}

// StagedOrder is the entry chosen for processing plus the older entries it supersedes
type StagedOrder struct {
	Latest     StagingEntry
	Superseded []StagingEntry
}

// GroupStaged groups entries by order id and picks the newest entry of each group.
// The result is ordered by order id.
func GroupStaged(entries []StagingEntry) []StagedOrder {
	byOrder := make(map[int64]*StagedOrder)
	ids := make([]int64, 0)

	for _, entry := range entries {
		group, ok := byOrder[entry.OrderID]
		if !ok {
			byOrder[entry.OrderID] = &StagedOrder{Latest: entry}
			ids = append(ids, entry.OrderID)
			continue
		}
		if entry.newerThan(group.Latest) {
			group.Superseded = append(group.Superseded, group.Latest)
			group.Latest = entry
		} else {
			group.Superseded = append(group.Superseded, entry)
		}
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]StagedOrder, 0, len(ids))
	for _, id := range ids {
		result = append(result, *byOrder[id])
	}
	return result
}
