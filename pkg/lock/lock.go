// Package lock provides a best-effort distributed mutex keyed by
// string, used to keep two instances from admitting into the same hall
// (or booking the same screening) at once. The database row lock taken
// inside the admission transaction stays the source of truth; this lock
// only turns contention into a fast "busy" answer.
package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrHeld = errors.New("lock is held by another request")

// Locker acquires a named lock for at most ttl. The returned release
// func is safe to call more than once.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

// releaseScript deletes the key only when it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client *redis.Client
	prefix string
	log    *zap.Logger
}

func NewRedisLocker(client *redis.Client, prefix string, log *zap.Logger) *RedisLocker {
	return &RedisLocker{
		client: client,
		prefix: prefix,
		log:    log.With(zap.String("component", "lock")),
	}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("generate lock token: %w", err)
	}

	fullKey := l.prefix + ":" + key
	ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		l.log.Error("Failed to acquire lock", zap.Error(err), zap.String("key", fullKey))
		return nil, fmt.Errorf("acquire lock %s: %w", fullKey, err)
	}
	if !ok {
		l.log.Warn("Lock already held", zap.String("key", fullKey))
		return nil, ErrHeld
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		// Release on a fresh context so a cancelled request still frees the key.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{fullKey}, token).Err(); err != nil {
			l.log.Warn("Failed to release lock", zap.Error(err), zap.String("key", fullKey))
		}
	}, nil
}

// NopLocker always succeeds. Used when Redis is not configured.
type NopLocker struct{}

func (NopLocker) Acquire(context.Context, string, time.Duration) (func(), error) {
	return func() {}, nil
}

// NewRedisClient dials addr and pings it with a short timeout.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HallKey and ScheduleKey name the admission and booking locks.
func HallKey(hallID fmt.Stringer) string {
	return "hall:" + hallID.String()
}

func ScheduleKey(scheduleID fmt.Stringer, date string) string {
	return "schedule:" + scheduleID.String() + ":" + date
}
