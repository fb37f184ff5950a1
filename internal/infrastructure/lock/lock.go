// Package lock guards against two ingestion runs overlapping.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/liamd101/logiwa-shipments/internal/domain/shipment"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/config"
)

// DefaultKey is the Redis key holding the run lock
const DefaultKey = "shipments:run-lock"

// releaseScript deletes the key only while it still carries our token,
// so a run whose lease expired cannot release a newer run's lock.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// redisClient is the part of *redis.Client the lock needs
type redisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RedisRunLock is a lease held in Redis with SET NX and a TTL
type RedisRunLock struct {
	client redisClient
	key    string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisRunLock creates a lock on key that expires after ttl
func NewRedisRunLock(client redisClient, key string, ttl time.Duration, logger *zap.Logger) *RedisRunLock {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisRunLock{client: client, key: key, ttl: ttl, logger: logger}
}

// Acquire takes the lock or returns shipment.ErrRunLockHeld
func (l *RedisRunLock) Acquire(ctx context.Context) (shipment.ReleaseFunc, error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire run lock: %w", err)
	}
	if !ok {
		return nil, shipment.ErrRunLockHeld
	}

	l.logger.Debug("Run lock acquired", zap.String("key", l.key), zap.Duration("ttl", l.ttl))

	return func(ctx context.Context) error {
		deleted, err := l.client.Eval(ctx, releaseScript, []string{l.key}, token).Int64()
		if err != nil {
			return fmt.Errorf("failed to release run lock: %w", err)
		}
		if deleted == 0 {
			l.logger.Warn("Run lock expired before release", zap.String("key", l.key))
		}
		return nil
	}, nil
}

// NopRunLock always succeeds. Used when Redis is disabled.
type NopRunLock struct{}

// Acquire implements shipment.RunLock
func (NopRunLock) Acquire(context.Context) (shipment.ReleaseFunc, error) {
	return func(context.Context) error { return nil }, nil
}

// New returns a Redis lock when enabled, otherwise a NopRunLock.
// The returned close function releases the Redis connection.
func New(ctx context.Context, redisCfg config.RedisConfig, ttl time.Duration, logger *zap.Logger) (shipment.RunLock, func() error, error) {
	if !redisCfg.Enabled {
		return NopRunLock{}, func() error { return nil }, nil
	}
	if redisCfg.Addr == "" {
		return nil, nil, errors.New("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisRunLock(client, DefaultKey, ttl, logger), client.Close, nil
}

var (
	_ shipment.RunLock = (*RedisRunLock)(nil)
	_ shipment.RunLock = NopRunLock{}
)
