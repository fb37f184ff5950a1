package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/liamd101/logiwa-shipments/internal/domain/shipment"
)

func TestFetchCoordinator_FetchesEveryWarehouse(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.addPages(202, 1, 3, 2)
	fetcher.addPages(303, 100, 4)
	staging := &memStaging{}

	lookup := new(MockPartitionLookup)
	lookup.On("Partitions", mock.Anything, testCred).Return([]int64{202, 303, 404}, nil)

	coordinator := NewFetchCoordinator(lookup, NewWarehouseCollector(fetcher, staging, 200), 1)
	result, err := coordinator.Fetch(context.Background(), testCred, FetchParams{Window: testWindow})
	require.NoError(t, err)
	lookup.AssertExpectations(t)

	require.Len(t, result.Partitions, 3)
	assert.Equal(t, int64(202), result.Partitions[0].WarehouseID)
	assert.Equal(t, 2, result.Partitions[0].Pages)
	assert.Equal(t, 1, result.Partitions[1].Pages)
	assert.Zero(t, result.Partitions[2].Documents, "a warehouse with nothing is not a failure")
	assert.Equal(t, 3, result.Pages())
	assert.Equal(t, 9, result.Documents())
	assert.Len(t, staging.orderIDs(), 9)
}

func TestFetchCoordinator_PartitionLookupFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"already classified", shipment.ErrPartitionLookupFailed},
		{"raw error", errors.New("502 from warehouse search")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := newFakeFetcher()
			lookup := new(MockPartitionLookup)
			lookup.On("Partitions", mock.Anything, testCred).Return(nil, tt.err)

			coordinator := NewFetchCoordinator(lookup, NewWarehouseCollector(fetcher, &memStaging{}, 200), 2)
			_, err := coordinator.Fetch(context.Background(), testCred, FetchParams{Window: testWindow})
			assert.ErrorIs(t, err, shipment.ErrPartitionLookupFailed)
			assert.Empty(t, fetcher.requests)
		})
	}
}

func TestFetchCoordinator_PageErrorDoesNotFailRun(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.addPages(202, 1, 2, 2)
	fetcher.addPages(303, 100, 2)
	fetcher.failAt[202] = 1

	lookup := new(MockPartitionLookup)
	lookup.On("Partitions", mock.Anything, testCred).Return([]int64{202, 303}, nil)

	result, err := NewFetchCoordinator(lookup, NewWarehouseCollector(fetcher, &memStaging{}, 200), 2).
		Fetch(context.Background(), testCred, FetchParams{Window: testWindow})
	require.NoError(t, err)
	assert.Equal(t, []int64{202}, result.PartitionsCutShort())
	assert.Equal(t, 2, result.Documents())
}

func TestFetchCoordinator_StagingFailureCancelsOthers(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.addPages(202, 1, 1)
	fetcher.addPages(303, 100, 1)

	lookup := new(MockPartitionLookup)
	lookup.On("Partitions", mock.Anything, testCred).Return([]int64{202, 303}, nil)

	staging := &memStaging{appendErr: errors.New("database is read only")}
	_, err := NewFetchCoordinator(lookup, NewWarehouseCollector(fetcher, staging, 200), 2).
		Fetch(context.Background(), testCred, FetchParams{Window: testWindow})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is read only")
}

func TestFetchCoordinator_BoundsConcurrency(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.delay = 5 * time.Millisecond
	ids := []int64{1, 2, 3, 4, 5, 6}
	for _, id := range ids {
		fetcher.addPages(id, id*1000, 1, 1)
	}

	lookup := new(MockPartitionLookup)
	lookup.On("Partitions", mock.Anything, testCred).Return(ids, nil)

	result, err := NewFetchCoordinator(lookup, NewWarehouseCollector(fetcher, &memStaging{}, 200), 3).
		Fetch(context.Background(), testCred, FetchParams{Window: testWindow})
	require.NoError(t, err)
	assert.Equal(t, 12, result.Documents())
	assert.LessOrEqual(t, fetcher.maxSeen, 3)

	for _, id := range ids {
		requests := fetcher.requestsFor(id)
		require.Len(t, requests, 3)
		for i, req := range requests {
			assert.Equal(t, i+1, req.PageIndex, "pages of one warehouse are sequential")
		}
	}
}

func TestNewFetchCoordinator_DefaultsToSequential(t *testing.T) {
	c := NewFetchCoordinator(new(MockPartitionLookup), nil, 0)
	assert.Equal(t, 1, c.concurrency)
}
