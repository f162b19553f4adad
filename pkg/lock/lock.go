// Package lock provides a Redis-backed mutual exclusion lock.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrNotConfigured = errors.New("lock: redis client not configured")

const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
else
  return 0
end`

// Locker serialises callers on a key across processes.
type Locker struct {
	client       *redis.Client
	ttl          time.Duration
	retryBackoff time.Duration
	maxWait      time.Duration
	log          *zap.Logger
}

func NewLocker(client *redis.Client, ttl time.Duration, log *zap.Logger) *Locker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Locker{
		client:       client,
		ttl:          ttl,
		retryBackoff: 25 * time.Millisecond,
		maxWait:      ttl,
		log:          log.With(zap.String("component", "lock")),
	}
}

// WithLock runs fn while holding key. The lock is released when fn returns,
// and expires after the TTL if the process dies first. Acquisition gives up
// after one TTL or when ctx is done.
//
// The lock is not renewed. fn gets a context that is cancelled when the TTL
// runs out, so work still running once another caller could take the key
// is abandoned rather than finished unguarded.
func (l *Locker) WithLock(ctx context.Context, key string, fn func(context.Context) error) error {
	if l == nil || l.client == nil {
		return ErrNotConfigured
	}

	token := uuid.NewString()
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	for {
		ok, err := l.client.SetNX(waitCtx, key, token, l.ttl).Result()
		if err != nil {
			return fmt.Errorf("acquire %s: %w", key, err)
		}
		if ok {
			break
		}
		timer := time.NewTimer(l.retryBackoff)
		select {
		case <-waitCtx.Done():
			timer.Stop()
			return fmt.Errorf("acquire %s: %w", key, waitCtx.Err())
		case <-timer.C:
		}
	}
	leaseCtx, cancelLease := context.WithTimeout(ctx, l.ttl)
	defer cancelLease()
	defer l.release(key, token)

	return fn(leaseCtx)
}

func (l *Locker) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	// on failure the key is left to expire; it may already belong to someone else
	if err := l.client.Eval(ctx, releaseScript, []string{key}, token).Err(); err != nil {
		l.log.Warn("Lock release failed", zap.Error(err), zap.String("key", key))
	}
}
