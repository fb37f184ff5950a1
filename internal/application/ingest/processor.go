package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/liamd101/logiwa-shipments/internal/domain/shipment"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/logger"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/telemetry"
)

// Processor drains the staging area: the newest staged copy of every order is
// normalized and committed, one transaction per order.
type Processor struct {
	staging    shipment.StagingStore
	normalizer *shipment.Normalizer
	writer     shipment.CommitWriter
	metrics    *telemetry.PipelineMetrics
}

// NewProcessor creates a processor
func NewProcessor(staging shipment.StagingStore, normalizer *shipment.Normalizer, writer shipment.CommitWriter, metrics *telemetry.PipelineMetrics) *Processor {
	if normalizer == nil {
		normalizer = shipment.NewNormalizer()
	}
	return &Processor{
		staging:    staging,
		normalizer: normalizer,
		writer:     writer,
		metrics:    metrics,
	}
}

// Process commits every staged order. A failed order keeps its staging rows and
// does not stop the others; only listing failures and cancellation are returned.
func (p *Processor) Process(ctx context.Context) (ProcessResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "ingest.process")
	defer span.End()

	var result ProcessResult

	entries, err := p.staging.ListAll(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return result, fmt.Errorf("list staged orders: %w", err)
	}
	result.Staged = len(entries)

	log := logger.L(ctx)
	groups := shipment.GroupStaged(entries)
	log.Info("Processing staged orders",
		zap.Int("entries", len(entries)),
		zap.Int("orders", len(groups)),
	)

	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			telemetry.RecordError(span, err)
			return result, err
		}

		if err := p.processOne(ctx, group); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				telemetry.RecordError(span, ctxErr)
				return result, ctxErr
			}
			result.OrdersFailed++
			result.FailedOrderIDs = append(result.FailedOrderIDs, group.Latest.OrderID)
			p.metrics.OrderProcessed(telemetry.OutcomeFailed)
			log.Error("Order left in staging",
				zap.Int64("order_id", group.Latest.OrderID),
				zap.Error(err),
			)
			continue
		}

		result.OrdersCommitted++
		result.SupersededRemoved += len(group.Superseded)
		p.metrics.OrderProcessed(telemetry.OutcomeCommitted)
	}

	telemetry.SetAttributes(span,
		"orders_committed", result.OrdersCommitted,
		"orders_failed", result.OrdersFailed,
	)
	return result, nil
}

// processOne normalizes the newest entry of group and commits it.
// The commit also removes the superseded entries, which are never newer than the one committed.
func (p *Processor) processOne(ctx context.Context, group shipment.StagedOrder) error {
	ctx, span := telemetry.StartSpan(ctx, "ingest.commit", telemetry.SpanAttrOrderID, group.Latest.OrderID)
	defer span.End()

	order, err := p.normalizer.Parse(group.Latest.RawJSON, group.Latest.FetchedAt)
	if err != nil {
		err = fmt.Errorf("normalize staged entry %d: %w", group.Latest.ID, err)
		telemetry.RecordError(span, err)
		return err
	}

	if err := p.writer.Commit(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	if len(group.Superseded) > 0 {
		logger.L(ctx).Debug("Superseded staged copies removed",
			zap.Int64("order_id", group.Latest.OrderID),
			zap.Int("superseded", len(group.Superseded)),
		)
	}
	return nil
}
