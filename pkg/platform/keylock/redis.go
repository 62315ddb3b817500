package keylock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	dErrors "pezkuwi/pkg/domain-errors"
)

const (
	redisKeyPrefix    = "pezkuwi:lock:"
	defaultLockTTL    = 10 * time.Second
	defaultRetryDelay = 25 * time.Millisecond
)

// releaseScript deletes the lock only if this holder still owns it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a Locker shared by every replica that talks to the same Redis.
// Locks expire after ttl so a crashed holder cannot wedge a wallet.
type Redis struct {
	client     redis.UniversalClient
	ttl        time.Duration
	retryDelay time.Duration
	timeout    time.Duration
}

// NewRedis builds a Redis locker. Zero durations select defaults.
func NewRedis(client redis.UniversalClient, ttl time.Duration) *Redis {
	if ttl == 0 {
		ttl = defaultLockTTL
	}
	return &Redis{
		client:     client,
		ttl:        ttl,
		retryDelay: defaultRetryDelay,
		timeout:    defaultTimeout,
	}
}

func (l *Redis) Lock(ctx context.Context, key string) (func(), error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	redisKey := redisKeyPrefix + key
	token := uuid.NewString()
	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "timed out waiting for lock")
			}
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "acquire lock")
		}
		if ok {
			return l.releaser(redisKey, token), nil
		}

		timer := time.NewTimer(l.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "timed out waiting for lock")
		case <-timer.C:
		}
	}
}

func (l *Redis) releaser(redisKey, token string) func() {
	return func() {
		// Release on a fresh context: the caller's may already be done.
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		// A failed release is reclaimed by the TTL.
		_ = releaseScript.Run(ctx, l.client, []string{redisKey}, token).Err()
	}
}
