package lock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	defaultLockTTL   = 30 * time.Second
	defaultRetryWait = 50 * time.Millisecond
)

// releaseScript deletes the key only if it still carries our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker holds keys with SET NX PX so several API instances share one lock space
type RedisLocker struct {
	client    *redis.Client
	ttl       time.Duration
	retryWait time.Duration
}

// RedisOption customizes a RedisLocker
type RedisOption func(*RedisLocker)

// WithTTL sets how long a lock survives if its holder dies
func WithTTL(ttl time.Duration) RedisOption {
	return func(l *RedisLocker) { l.ttl = ttl }
}

// WithRetryWait sets the polling interval while waiting for a held key
func WithRetryWait(d time.Duration) RedisOption {
	return func(l *RedisLocker) { l.retryWait = d }
}

func NewRedisLocker(client *redis.Client, opts ...RedisOption) *RedisLocker {
	l := &RedisLocker{client: client, ttl: defaultLockTTL, retryWait: defaultRetryWait}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire %s: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retryWait):
		}
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("key", key).Msg("Failed to release period lock")
		}
	}, nil
}

// NewRedisClient parses url (with or without the redis:// scheme) and pings the server
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	if !strings.Contains(url, "://") {
		url = "redis://" + url
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}
