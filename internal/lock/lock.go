// Package lock provides short lived mutual exclusion keyed by string.
package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	goredislib "github.com/redis/go-redis/v9"
)

// Locker hands out a release func for key once it is held.
type Locker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}

type RedisLocker struct {
	rs  *redsync.Redsync
	ttl time.Duration
}

func NewRedisLocker(client *goredislib.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		rs:  redsync.New(goredis.NewPool(client)),
		ttl: ttl,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	m := l.rs.NewMutex("lock:"+key,
		redsync.WithExpiry(l.ttl),
		redsync.WithTries(20),
		redsync.WithRetryDelay(100*time.Millisecond),
	)
	if err := m.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	return func() {
		// the lock expires on its own if the unlock is lost
		_, _ = m.UnlockContext(context.WithoutCancel(ctx))
	}, nil
}

// LocalLocker serialises callers inside one process. Used when Redis is not
// configured.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: map[string]*entry{}}
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	if err := ctx.Err(); err != nil {
		l.release(key, e)
		return nil, err
	}
	return func() { l.release(key, e) }, nil
}

func (l *LocalLocker) release(key string, e *entry) {
	e.mu.Unlock()
	l.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
	l.mu.Unlock()
}
