package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/liamd101/logiwa-shipments/internal/domain/shipment"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/lock"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/logger"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/telemetry"
)

// bookkeepingTimeout bounds ledger writes, lock release and metric pushes after a run,
// which use a context detached from the (possibly expired) run context
const bookkeepingTimeout = 30 * time.Second

// Config holds the run parameters of a Pipeline
type Config struct {
	// WindowDays is W of the OrderDate window now-W .. now+W
	WindowDays int
	// RunTimeout bounds one run. Zero means no timeout.
	RunTimeout time.Duration
}

// RunOptions alter a single run
type RunOptions struct {
	// ProcessOnly skips fetching and only drains staging
	ProcessOnly bool
}

// Pipeline executes one ingestion run: watermark, credential, fetch, process, ledger
type Pipeline struct {
	config      Config
	credentials shipment.CredentialProvider
	coordinator *FetchCoordinator
	processor   *Processor
	ledger      shipment.RunLedger
	lock        shipment.RunLock
	metrics     *telemetry.PipelineMetrics
	logger      *zap.Logger
	now         func() time.Time
	newRunID    func() string
}

// PipelineOption configures a Pipeline
type PipelineOption func(*Pipeline)

// WithRunLock guards runs against overlap
func WithRunLock(l shipment.RunLock) PipelineOption {
	return func(p *Pipeline) {
		if l != nil {
			p.lock = l
		}
	}
}

// WithMetrics records run metrics and pushes them when the run ends
func WithMetrics(m *telemetry.PipelineMetrics) PipelineOption {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// WithLogger sets the base logger
func WithLogger(l *zap.Logger) PipelineOption {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithClock overrides the run start time source
func WithClock(now func() time.Time) PipelineOption {
	return func(p *Pipeline) {
		p.now = now
	}
}

// WithRunIDGenerator overrides run id generation
func WithRunIDGenerator(fn func() string) PipelineOption {
	return func(p *Pipeline) {
		p.newRunID = fn
	}
}

// NewPipeline creates a pipeline
func NewPipeline(
	config Config,
	credentials shipment.CredentialProvider,
	coordinator *FetchCoordinator,
	processor *Processor,
	ledger shipment.RunLedger,
	opts ...PipelineOption,
) *Pipeline {
	if config.WindowDays <= 0 {
		config.WindowDays = 45
	}
	p := &Pipeline{
		config:      config,
		credentials: credentials,
		coordinator: coordinator,
		processor:   processor,
		ledger:      ledger,
		lock:        lock.NopRunLock{},
		logger:      zap.NewNop(),
		now:         time.Now,
		newRunID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one run and records it in the ledger on every exit path once the lock is held.
// A run whose lock is held elsewhere is skipped: nothing is recorded and the
// returned error wraps shipment.ErrRunLockHeld.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	result := &RunResult{
		RunID:       p.newRunID(),
		StartedAt:   p.now().UTC(),
		ProcessOnly: opts.ProcessOnly,
	}
	ctx, log := logger.WithRunID(ctx, p.logger, result.RunID)

	release, err := p.lock.Acquire(ctx)
	if err != nil {
		result.FinishedAt = p.now().UTC()
		if errors.Is(err, shipment.ErrRunLockHeld) {
			result.Skipped = true
			log.Info("Another run holds the run lock, skipping")
			return result, err
		}
		result.Err = err
		return result, fmt.Errorf("acquire run lock: %w", err)
	}

	bookkeeping, cancelBookkeeping := context.WithTimeout(context.WithoutCancel(ctx), bookkeepingTimeout)
	defer cancelBookkeeping()
	defer func() {
		if err := release(bookkeeping); err != nil {
			log.Warn("Failed to release run lock", zap.Error(err))
		}
	}()

	runCtx := ctx
	if p.config.RunTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, p.config.RunTimeout)
		defer cancel()
	}

	runCtx, span := telemetry.StartSpan(runCtx, "ingest.run", telemetry.SpanAttrRunID, result.RunID)
	log.Info("Run started",
		zap.Time("started_at", result.StartedAt),
		zap.Bool("process_only", opts.ProcessOnly),
	)

	runErr := p.execute(runCtx, result, opts)
	if runErr == nil && result.Process.OrdersFailed > 0 {
		runErr = fmt.Errorf("%w: %d of %d orders", ErrOrdersFailed,
			result.Process.OrdersFailed, result.Process.OrdersFailed+result.Process.OrdersCommitted)
	}
	if runErr != nil {
		telemetry.RecordError(span, runErr)
	}
	span.End()

	result.FinishedAt = p.now().UTC()
	result.Succeeded = runErr == nil
	result.Err = runErr

	if err := p.record(bookkeeping, result); err != nil {
		log.Error("Failed to record run", zap.Error(err))
		runErr = errors.Join(runErr, err)
		result.Err = runErr
	}

	p.metrics.RunFinished(result.FinishedAt, result.Duration(), result.Succeeded)
	if err := p.metrics.Push(bookkeeping); err != nil {
		log.Warn("Failed to push metrics", zap.Error(err))
	}

	p.logResult(log, result)
	return result, runErr
}

// execute runs the phases between the ledger bracket
func (p *Pipeline) execute(ctx context.Context, result *RunResult, opts RunOptions) error {
	since, err := p.ledger.LastSuccessfulRun(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWatermarkUnavailable, err)
	}
	result.ModifiedSince = since

	if !opts.ProcessOnly {
		cred, err := p.credentials.Credential(ctx)
		if err != nil {
			if !errors.Is(err, shipment.ErrCredentialUnavailable) {
				err = fmt.Errorf("%w: %w", shipment.ErrCredentialUnavailable, err)
			}
			return err
		}

		fetch, err := p.coordinator.Fetch(ctx, cred, FetchParams{
			RunID:         result.RunID,
			Window:        shipment.WindowAround(result.StartedAt, p.config.WindowDays),
			ModifiedSince: since,
		})
		result.Fetch = fetch
		if err != nil {
			return fmt.Errorf("fetch: %w", err)
		}
	}

	process, err := p.processor.Process(ctx)
	result.Process = process
	if err != nil {
		return fmt.Errorf("process: %w", err)
	}
	return nil
}

// record appends the run to the ledger
func (p *Pipeline) record(ctx context.Context, result *RunResult) error {
	record := shipment.RunRecord{
		RunID:           result.RunID,
		StartedAt:       result.StartedAt,
		FinishedAt:      result.FinishedAt,
		Succeeded:       result.Succeeded,
		OrdersCommitted: result.Process.OrdersCommitted,
		OrdersFailed:    result.Process.OrdersFailed,
	}
	if result.Err != nil {
		record.ErrorMessage = result.Err.Error()
	}
	return p.ledger.RecordRun(ctx, record)
}

func (p *Pipeline) logResult(log *zap.Logger, result *RunResult) {
	fields := []zap.Field{
		zap.Bool("succeeded", result.Succeeded),
		zap.Duration("duration", result.Duration()),
		zap.Int("partitions", len(result.Fetch.Partitions)),
		zap.Int("pages", result.Fetch.Pages()),
		zap.Int("documents_staged", result.Fetch.Documents()),
		zap.Int("archive_failures", result.Fetch.ArchiveFailures()),
		zap.Int("orders_committed", result.Process.OrdersCommitted),
		zap.Int("orders_failed", result.Process.OrdersFailed),
		zap.Int("superseded_removed", result.Process.SupersededRemoved),
	}
	if result.Err != nil {
		log.Error("Run failed", append(fields, zap.Error(result.Err))...)
		return
	}
	log.Info("Run finished", fields...)
}
