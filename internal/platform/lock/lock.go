// Package lock provides a Redis lock serializing sync runs across worker replicas.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var (
	// ErrLocked is returned when lock is held by someone else.
	ErrLocked = errors.New("lock is held by another process")
	// ErrNotHeld is returned when released lock already expired or was taken over.
	ErrNotHeld = errors.New("lock is not held")
)

// releaseScript deletes the key only if it still holds our token.
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

//go:generate mockery --name Client --filename client.go

// Client is the part of Redis API used by Locker.
type Client interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// Locker acquires single named lock.
type Locker struct {
	client Client
	key    string
	ttl    time.Duration
}

// NewLocker returns Locker of key. Acquired lock expires after ttl unless released earlier.
func NewLocker(client Client, key string, ttl time.Duration) *Locker {
	return &Locker{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

// Lock is acquired lock.
type Lock struct {
	locker *Locker
	token  string
}

// Acquire takes the lock or returns ErrLocked.
func (l *Locker) Acquire(ctx context.Context) (*Lock, error) {
	token, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("can't create lock token: %w", err)
	}

	ok, err := l.client.SetNX(ctx, l.key, token.String(), l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("can't acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}

	return &Lock{locker: l, token: token.String()}, nil
}

// Do runs fn holding the lock. It returns ErrLocked without running fn when lock is held by someone else.
func (l *Locker) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	lk, err := l.Acquire(ctx)
	if err != nil {
		return err
	}

	err = fn(ctx)

	// released even when ctx is canceled
	if releaseErr := lk.Release(context.WithoutCancel(ctx)); releaseErr != nil && err == nil {
		return releaseErr
	}

	return err
}

// Release releases the lock if it is still held.
func (lk *Lock) Release(ctx context.Context) error {
	deleted, err := lk.locker.client.Eval(ctx, releaseScript, []string{lk.locker.key}, lk.token).Int64()
	if err != nil {
		return fmt.Errorf("can't release lock: %w", err)
	}
	if deleted == 0 {
		return ErrNotHeld
	}

	return nil
}
