package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/liamd101/logiwa-shipments/internal/application/ingest"
	"github.com/liamd101/logiwa-shipments/internal/domain/shipment"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/archive"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/config"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/lock"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/logger"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/logiwa"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/persistence"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/ratelimit"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/scheduler"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/telemetry"
)

const shutdownTimeout = 30 * time.Second

func main() {
	var (
		daemon      bool
		processOnly bool
		history     int
	)
	flag.BoolVar(&daemon, "daemon", false, "Run on the configured interval until interrupted")
	flag.BoolVar(&processOnly, "process-only", false, "Skip fetching and only commit what is already staged")
	flag.IntVar(&history, "history", 0, "Print the last n recorded runs and exit")
	flag.Parse()

	os.Exit(run(daemon, processOnly, history))
}

func run(daemon, processOnly bool, history int) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}, cfg.App.Name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting Logiwa shipment ingestion",
		zap.String("env", cfg.App.Env),
		zap.Bool("daemon", daemon),
		zap.Bool("process_only", processOnly),
	)

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Error("Failed to initialize tracing", zap.Error(err))
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("Tracer shutdown failed", zap.Error(err))
		}
	}()

	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Error("Failed to initialize log export", zap.Error(err))
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		// Shutdown reports its own failure on the unbridged logger
		_ = lp.Shutdown(shutdownCtx)
	}()
	log = telemetry.BridgeLogger(log, telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
		ServiceName:    cfg.Telemetry.ServiceName,
		LoggerProvider: lp,
		Level:          logger.ParseLevel(cfg.Log.Level),
	}))

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Database.LogLevel),
		logger.WithSlowThreshold(cfg.Database.SlowThreshold))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		return 1
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.EnableDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled: cfg.Telemetry.DBTraceEnabled,
		DBName:  cfg.Database.DBName,
	}, log); err != nil {
		log.Warn("Database tracing unavailable", zap.Error(err))
	}

	ledger := persistence.NewGormRunLedger(db.DB)
	if history > 0 {
		return printHistory(ctx, ledger, history, log)
	}

	pipeline, closeLock, err := buildPipeline(ctx, cfg, db, ledger, log)
	if err != nil {
		log.Error("Failed to build pipeline", zap.Error(err))
		return 1
	}
	defer func() {
		if err := closeLock(); err != nil {
			log.Warn("Error closing Redis client", zap.Error(err))
		}
	}()

	opts := ingest.RunOptions{ProcessOnly: processOnly}
	if daemon {
		return runDaemon(ctx, cfg.Pipeline, pipeline, opts, log)
	}

	_, err = pipeline.Run(ctx, opts)
	return exitCode(err)
}

// buildPipeline wires the pipeline collaborators from configuration
func buildPipeline(ctx context.Context, cfg *config.Config, db *persistence.Database, ledger shipment.RunLedger, log *zap.Logger) (*ingest.Pipeline, func() error, error) {
	metrics := telemetry.NewPipelineMetrics(telemetry.MetricsConfig{
		PushgatewayURL: cfg.Metrics.PushgatewayURL,
		JobName:        cfg.Metrics.JobName,
	})

	logiwaCfg := logiwa.NewConfig(cfg.Logiwa.Username, cfg.Logiwa.Password)
	logiwaCfg.BaseURL = cfg.Logiwa.BaseURL
	logiwaCfg.TimeoutSeconds = cfg.Logiwa.TimeoutSeconds
	logiwaCfg.MaxThrottleRetries = cfg.Logiwa.MaxThrottleRetries
	if cfg.Logiwa.ThrottleBackoff > 0 {
		logiwaCfg.ThrottleBackoff = cfg.Logiwa.ThrottleBackoff
	}
	if cfg.Logiwa.ThrottleMaxBackoff > 0 {
		logiwaCfg.ThrottleMaxBackoff = cfg.Logiwa.ThrottleMaxBackoff
	}
	loc, err := cfg.Logiwa.Location()
	if err != nil {
		return nil, nil, err
	}
	logiwaCfg.Location = loc

	client, err := logiwa.NewClient(logiwaCfg, ratelimit.New(cfg.Pipeline.MinRequestInterval), log)
	if err != nil {
		return nil, nil, fmt.Errorf("logiwa client: %w", err)
	}
	client.OnThrottle(metrics.ThrottleRetried)

	var partitions shipment.PartitionLookup = logiwa.NewStaticPartitionLookup(cfg.Logiwa.WarehouseIDs)
	if cfg.Logiwa.LookupWarehouses {
		partitions = logiwa.NewAPIPartitionLookup(client, cfg.Pipeline.PageSize)
	}

	pageArchive, err := archive.New(ctx, cfg.Archive, log)
	if err != nil {
		return nil, nil, fmt.Errorf("archive: %w", err)
	}

	runLock, closeLock, err := lock.New(ctx, cfg.Redis, cfg.Pipeline.LockTTL, log)
	if err != nil {
		return nil, nil, fmt.Errorf("run lock: %w", err)
	}

	staging := persistence.NewGormStagingStore(db.DB)
	collector := ingest.NewWarehouseCollector(client, staging, cfg.Pipeline.PageSize,
		ingest.WithArchive(pageArchive),
		ingest.WithCollectorMetrics(metrics),
	)
	coordinator := ingest.NewFetchCoordinator(partitions, collector, cfg.Pipeline.Concurrency)
	processor := ingest.NewProcessor(staging, shipment.NewNormalizer(), persistence.NewGormCommitWriter(db.DB), metrics)

	pipeline := ingest.NewPipeline(ingest.Config{
		WindowDays: cfg.Pipeline.WindowDays,
		RunTimeout: cfg.Pipeline.RunTimeout,
	}, client, coordinator, processor, ledger,
		ingest.WithRunLock(runLock),
		ingest.WithMetrics(metrics),
		ingest.WithLogger(log),
	)
	return pipeline, closeLock, nil
}

// runDaemon runs the pipeline on an interval until ctx is cancelled
func runDaemon(ctx context.Context, cfg config.PipelineConfig, pipeline *ingest.Pipeline, opts ingest.RunOptions, log *zap.Logger) int {
	runnerCfg := scheduler.DefaultIntervalRunnerConfig()
	runnerCfg.Interval = cfg.Interval
	// the pipeline applies its own run timeout
	runnerCfg.RunTimeout = 0
	runnerCfg.IsSkipped = func(err error) bool {
		return errors.Is(err, shipment.ErrRunLockHeld)
	}

	runner, err := scheduler.NewIntervalRunner(runnerCfg, func(ctx context.Context) error {
		_, err := pipeline.Run(ctx, opts)
		return err
	}, log)
	if err != nil {
		log.Error("Failed to create interval runner", zap.Error(err))
		return 1
	}
	if err := runner.Start(ctx); err != nil {
		log.Error("Failed to start interval runner", zap.Error(err))
		return 1
	}

	<-ctx.Done()
	log.Info("Shutdown signal received")

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := runner.Stop(stopCtx); err != nil {
		log.Warn("Runner did not stop in time", zap.Error(err))
		return 1
	}
	log.Info("Ingestion stopped", zap.Int("runs", runner.RunCount()))
	return 0
}

func printHistory(ctx context.Context, ledger *persistence.GormRunLedger, limit int, log *zap.Logger) int {
	records, err := ledger.History(ctx, limit)
	if err != nil {
		log.Error("Failed to read run history", zap.Error(err))
		return 1
	}
	if len(records) == 0 {
		fmt.Println("No runs recorded")
		return 0
	}
	fmt.Printf("%-36s  %-25s  %-10s  %9s  %6s  %s\n", "RUN", "STARTED", "DURATION", "COMMITTED", "FAILED", "STATUS")
	for _, r := range records {
		status := "ok"
		if !r.Succeeded {
			status = "failed: " + r.ErrorMessage
		}
		fmt.Printf("%-36s  %-25s  %-10s  %9d  %6d  %s\n",
			r.RunID,
			r.StartedAt.Format(time.RFC3339),
			r.FinishedAt.Sub(r.StartedAt).Round(time.Second),
			r.OrdersCommitted,
			r.OrdersFailed,
			status,
		)
	}
	return 0
}

// exitCode maps a run outcome to the process exit status; a skipped run is not a failure
func exitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, shipment.ErrRunLockHeld):
		return 0
	default:
		return 1
	}
}
