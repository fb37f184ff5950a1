package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/liamd101/logiwa-shipments/internal/domain/shipment"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/archive"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/logger"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/telemetry"
)

// DefaultPageSize is the number of orders requested per page
const DefaultPageSize = 200

// WarehouseCollector pages through one warehouse and stages every document it receives
type WarehouseCollector struct {
	fetcher  shipment.PageFetcher
	staging  shipment.StagingStore
	archive  shipment.PageArchive
	metrics  *telemetry.PipelineMetrics
	pageSize int
	now      func() time.Time
}

// CollectorOption configures a WarehouseCollector
type CollectorOption func(*WarehouseCollector)

// WithArchive stores a copy of every fetched page
func WithArchive(a shipment.PageArchive) CollectorOption {
	return func(c *WarehouseCollector) {
		if a != nil {
			c.archive = a
		}
	}
}

// WithCollectorMetrics records page counters
func WithCollectorMetrics(m *telemetry.PipelineMetrics) CollectorOption {
	return func(c *WarehouseCollector) {
		c.metrics = m
	}
}

// WithCollectorClock overrides the fetch timestamp source
func WithCollectorClock(now func() time.Time) CollectorOption {
	return func(c *WarehouseCollector) {
		c.now = now
	}
}

// NewWarehouseCollector creates a collector
func NewWarehouseCollector(fetcher shipment.PageFetcher, staging shipment.StagingStore, pageSize int, opts ...CollectorOption) *WarehouseCollector {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	c := &WarehouseCollector{
		fetcher:  fetcher,
		staging:  staging,
		archive:  archive.NopArchive{},
		pageSize: pageSize,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect fetches pages 1, 2, ... of warehouseID until an empty page.
// Each page is staged before the next one is requested. A failed fetch ends the
// partition without an error; the returned error is reserved for failures that
// make the run itself unsafe (staging writes, cancellation).
func (c *WarehouseCollector) Collect(ctx context.Context, cred shipment.Credential, warehouseID int64, params FetchParams) (PartitionResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "ingest.collect",
		telemetry.SpanAttrRunID, params.RunID,
		telemetry.SpanAttrWarehouseID, warehouseID,
	)
	defer span.End()

	log := logger.L(ctx).With(zap.Int64("warehouse_id", warehouseID))
	result := PartitionResult{WarehouseID: warehouseID}

	for pageIndex := 1; ; pageIndex++ {
		page, err := c.fetcher.FetchPage(ctx, cred, shipment.PageRequest{
			WarehouseID:   warehouseID,
			PageIndex:     pageIndex,
			PageSize:      c.pageSize,
			Window:        params.Window,
			ModifiedSince: params.ModifiedSince,
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				telemetry.RecordError(span, ctxErr)
				return result, ctxErr
			}
			log.Warn("Page fetch failed, treating warehouse as exhausted",
				zap.Int("page_index", pageIndex),
				zap.Error(err),
			)
			result.PageError = err
			span.AddEvent("page fetch failed")
			break
		}
		if page.Exhausted() {
			break
		}

		if err := c.stagePage(ctx, warehouseID, page, &result, log); err != nil {
			telemetry.RecordError(span, err)
			return result, err
		}
		c.archivePage(ctx, params.RunID, warehouseID, page, &result, log)
	}

	telemetry.SetAttributes(span,
		"pages", result.Pages,
		telemetry.SpanAttrDocuments, result.Documents,
	)
	log.Info("Warehouse collected",
		zap.Int("pages", result.Pages),
		zap.Int("documents", result.Documents),
		zap.Int("rejected", result.Rejected),
	)
	return result, nil
}

// stagePage appends every document of page with one fetch timestamp
func (c *WarehouseCollector) stagePage(ctx context.Context, warehouseID int64, page shipment.Page, result *PartitionResult, log *zap.Logger) error {
	fetchedAt := c.now()
	entries := make([]shipment.StagingEntry, 0, len(page.Documents))

	for i, doc := range page.Documents {
		orderID, err := shipment.ExtractOrderID(doc)
		if err != nil {
			result.Rejected++
			log.Warn("Skipping document without order id",
				zap.Int("page_index", page.Index),
				zap.Int("position", i),
				zap.Error(err),
			)
			continue
		}
		entries = append(entries, shipment.StagingEntry{
			OrderID:   orderID,
			RawJSON:   cloneRaw(doc),
			FetchedAt: fetchedAt,
		})
	}

	if len(entries) > 0 {
		if err := c.staging.Append(ctx, entries); err != nil {
			return fmt.Errorf("stage warehouse %d page %d: %w", warehouseID, page.Index, err)
		}
	}

	result.Pages++
	result.Documents += len(entries)
	c.metrics.PageFetched(warehouseID, len(entries))

	log.Debug("Page staged",
		zap.Int("page_index", page.Index),
		zap.Int("documents", len(entries)),
	)
	return nil
}

// archivePage stores a copy of page. Failures are counted, never returned.
func (c *WarehouseCollector) archivePage(ctx context.Context, runID string, warehouseID int64, page shipment.Page, result *PartitionResult, log *zap.Logger) {
	key := archive.PageKey(runID, warehouseID, page.Index)
	if err := c.archive.Store(ctx, key, page); err != nil {
		result.ArchiveFailures++
		log.Warn("Failed to archive page", zap.String("key", key), zap.Error(err))
	}
}

func cloneRaw(doc json.RawMessage) []byte {
	out := make([]byte, len(doc))
	copy(out, doc)
	return out
}
