package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ---------------------------------------------------------------------------
// Test Helpers
// ---------------------------------------------------------------------------

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

var errLocked = errors.New("locked")

func testConfig() IntervalRunnerConfig {
	return IntervalRunnerConfig{
		Interval:       20 * time.Millisecond,
		RunTimeout:     time.Second,
		MaxHistory:     10,
		RunImmediately: true,
		IsSkipped:      func(err error) bool { return errors.Is(err, errLocked) },
	}
}

// ---------------------------------------------------------------------------
// Config Tests
// ---------------------------------------------------------------------------

func TestIntervalRunnerConfig_Validate(t *testing.T) {
	cfg := DefaultIntervalRunnerConfig()
	assert.NoError(t, cfg.Validate())

	tests := []struct {
		name   string
		modify func(*IntervalRunnerConfig)
	}{
		{"zero interval", func(c *IntervalRunnerConfig) { c.Interval = 0 }},
		{"negative timeout", func(c *IntervalRunnerConfig) { c.RunTimeout = -time.Second }},
		{"negative history", func(c *IntervalRunnerConfig) { c.MaxHistory = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultIntervalRunnerConfig()
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestNewIntervalRunner(t *testing.T) {
	_, err := NewIntervalRunner(testConfig(), nil, newTestLogger())
	require.Error(t, err)

	cfg := testConfig()
	cfg.Interval = 0
	_, err = NewIntervalRunner(cfg, func(context.Context) error { return nil }, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

// ---------------------------------------------------------------------------
// Runner Tests
// ---------------------------------------------------------------------------

func TestIntervalRunner_RunsRepeatedly(t *testing.T) {
	var calls atomic.Int32
	runner, err := NewIntervalRunner(testConfig(), func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}, newTestLogger())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, runner.Start(ctx))
	require.NoError(t, runner.Start(ctx))

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, runner.Stop(ctx))
	require.NoError(t, runner.Stop(ctx))

	stopped := calls.Load()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load(), "no runs after Stop")

	history := runner.History(0)
	require.NotEmpty(t, history)
	assert.Equal(t, RunStatusSuccess, history[0].Status)
	assert.Equal(t, runner.RunCount(), history[0].Sequence, "newest first")
}

func TestIntervalRunner_RecordsOutcomes(t *testing.T) {
	var calls atomic.Int32
	runner, err := NewIntervalRunner(testConfig(), func(ctx context.Context) error {
		switch calls.Add(1) {
		case 1:
			return errors.New("fetch failed")
		case 2:
			return errLocked
		default:
			return nil
		}
	}, newTestLogger())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, runner.Start(ctx))
	assert.Eventually(t, func() bool { return runner.RunCount() >= 3 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, runner.Stop(ctx))

	history := runner.History(0)
	oldest := history[len(history)-3:]
	assert.Equal(t, RunStatusSuccess, oldest[0].Status)
	assert.Equal(t, RunStatusSkipped, oldest[1].Status)
	assert.Equal(t, RunStatusFailed, oldest[2].Status)
	assert.Equal(t, "fetch failed", oldest[2].Error)
}

func TestIntervalRunner_RunTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.RunTimeout = 10 * time.Millisecond
	cfg.Interval = time.Hour

	runner, err := NewIntervalRunner(cfg, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}, newTestLogger())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, runner.Start(ctx))
	assert.Eventually(t, func() bool { return runner.RunCount() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, runner.Stop(ctx))

	history := runner.History(1)
	require.Len(t, history, 1)
	assert.Equal(t, RunStatusFailed, history[0].Status)
	assert.Contains(t, history[0].Error, "deadline exceeded")
}

func TestIntervalRunner_StopWaitsForRun(t *testing.T) {
	cfg := testConfig()
	cfg.Interval = time.Hour

	started := make(chan struct{})
	var finished atomic.Bool
	runner, err := NewIntervalRunner(cfg, func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		time.Sleep(10 * time.Millisecond)
		finished.Store(true)
		return ctx.Err()
	}, newTestLogger())
	require.NoError(t, err)

	require.NoError(t, runner.Start(context.Background()))
	<-started

	require.NoError(t, runner.Stop(context.Background()))
	assert.True(t, finished.Load())

	select {
	case <-runner.Done():
	default:
		t.Fatal("loop should have exited")
	}
}

func TestIntervalRunner_StopTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.Interval = time.Hour

	started := make(chan struct{})
	release := make(chan struct{})
	runner, err := NewIntervalRunner(cfg, func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	}, newTestLogger())
	require.NoError(t, err)

	require.NoError(t, runner.Start(context.Background()))
	<-started

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, runner.Stop(stopCtx), context.DeadlineExceeded)
	close(release)
	<-runner.Done()
}

func TestIntervalRunner_HistoryLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxHistory = 2
	runner, err := NewIntervalRunner(cfg, func(context.Context) error { return nil }, nil)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		runner.runOnce(context.Background())
	}

	assert.Equal(t, 5, runner.RunCount())
	history := runner.History(10)
	require.Len(t, history, 2)
	assert.Equal(t, 5, history[0].Sequence)
	assert.Equal(t, 4, history[1].Sequence)
	assert.Len(t, runner.History(1), 1)
}
