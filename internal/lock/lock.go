package lock

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Mode selects a PeriodLocker implementation
type Mode string

const (
	ModeNone  Mode = "none"
	ModeLocal Mode = "local"
	ModeRedis Mode = "redis"
)

// PeriodLocker serializes recalculations of the same balance key.
// Lock blocks until the key is held or ctx is done; the returned func releases it.
type PeriodLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// PeriodKey builds the lock key for one owner's month
func PeriodKey(ownerID uuid.UUID, year, month int) string {
	return fmt.Sprintf("balance:%s:%04d:%02d", ownerID, year, month)
}

// New builds the locker for mode. rdb is only used by ModeRedis.
func New(mode Mode, rdb *redis.Client) (PeriodLocker, error) {
	switch mode {
	case "", ModeNone:
		return NoopLocker{}, nil
	case ModeLocal:
		return NewLocalLocker(), nil
	case ModeRedis:
		if rdb == nil {
			return nil, fmt.Errorf("redis lock selected but no redis client configured")
		}
		return NewRedisLocker(rdb), nil
	}
	return nil, fmt.Errorf("unknown lock mode %q", mode)
}

// NoopLocker never blocks. Concurrent same-key writers are last-write-wins.
type NoopLocker struct{}

func (NoopLocker) Lock(ctx context.Context, key string) (func(), error) {
	return func() {}, ctx.Err()
}
