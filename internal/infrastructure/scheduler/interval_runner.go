package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ---------------------------------------------------------------------------
// Run Types
// ---------------------------------------------------------------------------

// RunStatus represents the outcome of one scheduled run
type RunStatus string

const (
	RunStatusSuccess RunStatus = "SUCCESS"
	RunStatusFailed  RunStatus = "FAILED"
	RunStatusSkipped RunStatus = "SKIPPED"
)

// RunRecord is one entry of the runner's in-memory history
type RunRecord struct {
	Sequence    int
	StartedAt   time.Time
	CompletedAt time.Time
	Status      RunStatus
	Error       string
}

// Duration returns how long the run took
func (r RunRecord) Duration() time.Duration {
	return r.CompletedAt.Sub(r.StartedAt)
}

// JobFunc is the unit of work executed on every tick
type JobFunc func(ctx context.Context) error

// ---------------------------------------------------------------------------
// IntervalRunnerConfig
// ---------------------------------------------------------------------------

// IntervalRunnerConfig holds configuration for IntervalRunner
type IntervalRunnerConfig struct {
	// Interval between the start of consecutive runs
	Interval time.Duration
	// RunTimeout bounds a single run. Zero means no timeout.
	RunTimeout time.Duration
	// MaxHistory is the number of runs kept in memory
	MaxHistory int
	// RunImmediately starts the first run without waiting for a tick
	RunImmediately bool
	// IsSkipped reports errors that mean the run did not happen, e.g. a held lock
	IsSkipped func(error) bool
}

// DefaultIntervalRunnerConfig returns default configuration
func DefaultIntervalRunnerConfig() IntervalRunnerConfig {
	return IntervalRunnerConfig{
		Interval:       15 * time.Minute,
		RunTimeout:     2 * time.Hour,
		MaxHistory:     100,
		RunImmediately: true,
	}
}

// Validate validates the configuration
func (c *IntervalRunnerConfig) Validate() error {
	if c.Interval <= 0 {
		return ErrInvalidConfig
	}
	if c.RunTimeout < 0 {
		return ErrInvalidConfig
	}
	if c.MaxHistory < 0 {
		return ErrInvalidConfig
	}
	return nil
}

// ---------------------------------------------------------------------------
// IntervalRunner
// ---------------------------------------------------------------------------

// IntervalRunner executes a job every Interval until stopped.
// Runs never overlap; ticks that arrive while a run is in progress are dropped.
type IntervalRunner struct {
	config IntervalRunnerConfig
	job    JobFunc
	logger *zap.Logger

	cancel    context.CancelFunc
	done      chan struct{}
	mu        sync.Mutex
	isRunning bool

	historyMu sync.RWMutex
	history   []RunRecord
	sequence  int
}

// NewIntervalRunner creates a new interval runner
func NewIntervalRunner(config IntervalRunnerConfig, job JobFunc, logger *zap.Logger) (*IntervalRunner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if job == nil {
		return nil, errors.New("scheduler: job is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &IntervalRunner{
		config:  config,
		job:     job,
		logger:  logger,
		history: make([]RunRecord, 0, config.MaxHistory),
	}, nil
}

// Start starts the runner loop in the background
func (r *IntervalRunner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.isRunning {
		return nil
	}
	r.isRunning = true

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	go r.loop(ctx, r.done)

	r.logger.Info("Interval runner started",
		zap.Duration("interval", r.config.Interval),
		zap.Duration("run_timeout", r.config.RunTimeout),
	)
	return nil
}

// Stop cancels the loop and waits for an in-flight run to return
func (r *IntervalRunner) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.isRunning {
		r.mu.Unlock()
		return nil
	}
	r.isRunning = false
	done := r.done
	r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
	}

	select {
	case <-done:
		r.logger.Info("Interval runner stopped gracefully")
		return nil
	case <-ctx.Done():
		r.logger.Warn("Interval runner stop timed out")
		return ctx.Err()
	}
}

// Done is closed when the loop exits
func (r *IntervalRunner) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

func (r *IntervalRunner) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	if r.config.RunImmediately {
		r.runOnce(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.runOnce(ctx)
		}
	}
}

// runOnce executes the job and records the outcome
func (r *IntervalRunner) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	runCtx := ctx
	if r.config.RunTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.config.RunTimeout)
		defer cancel()
	}

	record := RunRecord{StartedAt: time.Now()}
	err := r.job(runCtx)
	record.CompletedAt = time.Now()

	switch {
	case err == nil:
		record.Status = RunStatusSuccess
	case r.config.IsSkipped != nil && r.config.IsSkipped(err):
		record.Status = RunStatusSkipped
		record.Error = err.Error()
	default:
		record.Status = RunStatusFailed
		record.Error = err.Error()
	}

	record = r.addToHistory(record)

	fields := []zap.Field{
		zap.Int("sequence", record.Sequence),
		zap.String("status", string(record.Status)),
		zap.Duration("duration", record.Duration()),
	}
	switch record.Status {
	case RunStatusFailed:
		r.logger.Error("Scheduled run failed", append(fields, zap.Error(err))...)
	case RunStatusSkipped:
		r.logger.Info("Scheduled run skipped", append(fields, zap.String("reason", record.Error))...)
	default:
		r.logger.Info("Scheduled run completed", fields...)
	}
}

// addToHistory adds a completed run to the front of history
func (r *IntervalRunner) addToHistory(record RunRecord) RunRecord {
	r.historyMu.Lock()
	defer r.historyMu.Unlock()

	r.sequence++
	record.Sequence = r.sequence

	if r.config.MaxHistory == 0 {
		return record
	}

	r.history = append([]RunRecord{record}, r.history...)
	if len(r.history) > r.config.MaxHistory {
		r.history = r.history[:r.config.MaxHistory]
	}
	return record
}

// History returns recent runs, newest first
func (r *IntervalRunner) History(limit int) []RunRecord {
	r.historyMu.RLock()
	defer r.historyMu.RUnlock()

	if limit <= 0 || limit > len(r.history) {
		limit = len(r.history)
	}

	result := make([]RunRecord, limit)
	copy(result, r.history[:limit])
	return result
}

// RunCount returns the number of runs executed so far
func (r *IntervalRunner) RunCount() int {
	r.historyMu.RLock()
	defer r.historyMu.RUnlock()
	return r.sequence
}
