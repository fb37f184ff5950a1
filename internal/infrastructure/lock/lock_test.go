package lock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/liamd101/logiwa-shipments/internal/domain/shipment"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/config"
)

// fakeRedis keeps keys in a map and runs the release script by hand
type fakeRedis struct {
	mu      sync.Mutex
	values  map[string]string
	ttls    map[string]time.Duration
	setErr  error
	evalErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) SetNX(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return redis.NewBoolResult(false, f.setErr)
	}
	if _, ok := f.values[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.values[key] = value.(string)
	f.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Eval(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.evalErr != nil {
		return redis.NewCmdResult(nil, f.evalErr)
	}
	if f.values[keys[0]] == args[0].(string) {
		delete(f.values, keys[0])
		return redis.NewCmdResult(int64(1), nil)
	}
	return redis.NewCmdResult(int64(0), nil)
}

func TestRedisRunLock_AcquireRelease(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	l := NewRedisRunLock(client, "", time.Minute, zap.NewNop())

	release, err := l.Acquire(ctx)
	require.NoError(t, err)
	assert.Contains(t, client.values, DefaultKey)
	assert.Equal(t, time.Minute, client.ttls[DefaultKey])

	_, err = l.Acquire(ctx)
	assert.ErrorIs(t, err, shipment.ErrRunLockHeld)

	require.NoError(t, release(ctx))
	assert.NotContains(t, client.values, DefaultKey)

	release, err = l.Acquire(ctx)
	require.NoError(t, err)
	require.NoError(t, release(ctx))
}

func TestRedisRunLock_ReleaseKeepsForeignLock(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	l := NewRedisRunLock(client, "lock", time.Minute, nil)

	release, err := l.Acquire(ctx)
	require.NoError(t, err)

	// lease expired and another run took the key
	client.values["lock"] = "someone-else"

	require.NoError(t, release(ctx))
	assert.Equal(t, "someone-else", client.values["lock"])
}

func TestRedisRunLock_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("acquire error", func(t *testing.T) {
		client := newFakeRedis()
		client.setErr = errors.New("connection refused")
		_, err := NewRedisRunLock(client, "lock", time.Minute, nil).Acquire(ctx)
		require.Error(t, err)
		assert.NotErrorIs(t, err, shipment.ErrRunLockHeld)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("release error", func(t *testing.T) {
		client := newFakeRedis()
		release, err := NewRedisRunLock(client, "lock", time.Minute, nil).Acquire(ctx)
		require.NoError(t, err)
		client.evalErr = errors.New("timeout")
		err = release(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to release run lock")
	})
}

func TestNopRunLock(t *testing.T) {
	ctx := context.Background()
	var l NopRunLock
	for i := 0; i < 2; i++ {
		release, err := l.Acquire(ctx)
		require.NoError(t, err)
		require.NoError(t, release(ctx))
	}
}

func TestNew(t *testing.T) {
	t.Run("disabled returns nop lock", func(t *testing.T) {
		l, closeFn, err := New(context.Background(), config.RedisConfig{}, time.Minute, zap.NewNop())
		require.NoError(t, err)
		assert.IsType(t, NopRunLock{}, l)
		assert.NoError(t, closeFn())
	})

	t.Run("enabled without address", func(t *testing.T) {
		_, _, err := New(context.Background(), config.RedisConfig{Enabled: true}, time.Minute, zap.NewNop())
		require.Error(t, err)
	})
}
