// Package keylock serializes work per key, such as per wallet address.
package keylock

import (
	"context"
	"time"

	"github.com/zeebo/xxh3"

	dErrors "pezkuwi/pkg/domain-errors"
)

// Locker acquires an exclusive lock on key. The returned release func must be
// called exactly once.
type Locker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}

const (
	numShards      = 128
	defaultTimeout = 5 * time.Second
)

// Sharded is an in-process Locker. Keys hash onto a fixed set of shards, so
// unrelated keys may occasionally contend.
type Sharded struct {
	shards  [numShards]chan struct{}
	timeout time.Duration
}

// NewSharded builds a Sharded locker. A zero timeout selects 5s for callers
// whose context carries no deadline.
func NewSharded(timeout time.Duration) *Sharded {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	s := &Sharded{timeout: timeout}
	for i := range s.shards {
		s.shards[i] = make(chan struct{}, 1)
	}
	return s
}

func (s *Sharded) Lock(ctx context.Context, key string) (func(), error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	shard := s.shards[xxh3.HashString(key)%numShards]
	select {
	case shard <- struct{}{}:
		return func() { <-shard }, nil
	case <-ctx.Done():
		return nil, dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "timed out waiting for lock")
	}
}
