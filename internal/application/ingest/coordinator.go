package ingest

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/liamd101/logiwa-shipments/internal/domain/shipment"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/logger"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/telemetry"
)

// FetchCoordinator fans the collector out over every warehouse.
// All collectors share the fetcher, and with it the rate limiter.
type FetchCoordinator struct {
	partitions  shipment.PartitionLookup
	collector   *WarehouseCollector
	concurrency int
}

// NewFetchCoordinator creates a coordinator running at most concurrency warehouses at once
func NewFetchCoordinator(partitions shipment.PartitionLookup, collector *WarehouseCollector, concurrency int) *FetchCoordinator {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &FetchCoordinator{
		partitions:  partitions,
		collector:   collector,
		concurrency: concurrency,
	}
}

// Fetch stages every warehouse's documents.
// It fails when the partition lookup fails or a collector hits a run-level error;
// warehouses that return nothing are not failures.
func (c *FetchCoordinator) Fetch(ctx context.Context, cred shipment.Credential, params FetchParams) (FetchResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "ingest.fetch", telemetry.SpanAttrRunID, params.RunID)
	defer span.End()

	ids, err := c.partitions.Partitions(ctx, cred)
	if err != nil {
		if !errors.Is(err, shipment.ErrPartitionLookupFailed) {
			err = fmt.Errorf("%w: %w", shipment.ErrPartitionLookupFailed, err)
		}
		telemetry.RecordError(span, err)
		return FetchResult{}, err
	}

	log := logger.L(ctx)
	log.Info("Fetching warehouses",
		zap.Int64s("warehouse_ids", ids),
		zap.Int("concurrency", c.concurrency),
		zap.Stringer("window", params.Window),
		zap.Timep("modified_since", params.ModifiedSince),
	)

	results := make([]PartitionResult, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, id := range ids {
		g.Go(func() error {
			result, err := c.collector.Collect(gctx, cred, id, params)
			results[i] = result
			return err
		})
	}

	fetch := FetchResult{Partitions: results}
	if err := g.Wait(); err != nil {
		telemetry.RecordError(span, err)
		return fetch, err
	}

	if cut := fetch.PartitionsCutShort(); len(cut) > 0 {
		log.Warn("Some warehouses ended on a page error", zap.Int64s("warehouse_ids", cut))
	}
	return fetch, nil
}
