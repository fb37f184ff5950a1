package logiwa

import (
	"context"
	"fmt"

	"github.com/liamd101/logiwa-shipments/internal/domain/shipment"
)

// StaticPartitionLookup returns a fixed list of warehouse ids
type StaticPartitionLookup struct {
	warehouseIDs []int64
}

var (
	_ shipment.PartitionLookup = (*StaticPartitionLookup)(nil)
	_ shipment.PartitionLookup = (*APIPartitionLookup)(nil)
)

// NewStaticPartitionLookup creates a lookup over the given ids
func NewStaticPartitionLookup(warehouseIDs []int64) *StaticPartitionLookup {
	ids := make([]int64, len(warehouseIDs))
	copy(ids, warehouseIDs)
	return &StaticPartitionLookup{warehouseIDs: ids}
}

// Partitions returns the configured ids; an empty list is an error
func (l *StaticPartitionLookup) Partitions(_ context.Context, _ shipment.Credential) ([]int64, error) {
	if len(l.warehouseIDs) == 0 {
		return nil, fmt.Errorf("%w: no warehouse ids configured", shipment.ErrPartitionLookupFailed)
	}
	ids := make([]int64, len(l.warehouseIDs))
	copy(ids, l.warehouseIDs)
	return ids, nil
}

// APIPartitionLookup lists warehouses through the WarehouseSearch endpoint
type APIPartitionLookup struct {
	client   *Client
	pageSize int
}

// NewAPIPartitionLookup creates a lookup backed by the API
func NewAPIPartitionLookup(client *Client, pageSize int) *APIPartitionLookup {
	if pageSize <= 0 {
		pageSize = 200
	}
	return &APIPartitionLookup{client: client, pageSize: pageSize}
}

// Partitions pages through WarehouseSearch until an empty page
func (l *APIPartitionLookup) Partitions(ctx context.Context, cred shipment.Credential) ([]int64, error) {
	ids := make([]int64, 0)
	seen := make(map[int64]struct{})

	for pageIndex := 1; ; pageIndex++ {
		var resp WarehouseSearchResponse
		req := WarehouseSearchRequest{SelectedPageIndex: pageIndex, PageSize: l.pageSize}
		if err := l.client.postJSON(ctx, cred, l.client.config.WarehouseSearchPath, req, &resp); err != nil {
			return nil, fmt.Errorf("%w: %w", shipment.ErrPartitionLookupFailed, err)
		}
		if len(resp.Data) == 0 {
			break
		}
		for _, w := range resp.Data {
			if _, dup := seen[w.ID]; dup || w.ID == 0 {
				continue
			}
			seen[w.ID] = struct{}{}
			ids = append(ids, w.ID)
		}
		if len(resp.Data) < l.pageSize {
			break
		}
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no warehouses returned", shipment.ErrPartitionLookupFailed)
	}
	return ids, nil
}
