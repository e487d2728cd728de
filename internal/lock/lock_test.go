package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodKey(t *testing.T) {
	owner := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	assert.Equal(t, "balance:11111111-2222-3333-4444-555555555555:2024:02", PeriodKey(owner, 2024, 2))
}

func TestNew(t *testing.T) {
	l, err := New("", nil)
	require.NoError(t, err)
	assert.IsType(t, NoopLocker{}, l)

	l, err = New(ModeLocal, nil)
	require.NoError(t, err)
	assert.IsType(t, &LocalLocker{}, l)

	_, err = New(ModeRedis, nil)
	assert.Error(t, err)

	_, err = New("zookeeper", nil)
	assert.Error(t, err)
}

// assertSerialized runs many goroutines through the same key and fails if two overlap
func assertSerialized(t *testing.T, l PeriodLocker) {
	t.Helper()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), "balance:k:2024:01")
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
}

func TestLocalLocker_SerializesSameKey(t *testing.T) {
	l := NewLocalLocker()
	assertSerialized(t, l)
	assert.Equal(t, 0, l.Len())
}

func TestLocalLocker_DifferentKeysDoNotBlock(t *testing.T) {
	l := NewLocalLocker()

	unlockA, err := l.Lock(context.Background(), "a")
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	unlockB, err := l.Lock(ctx, "b")
	require.NoError(t, err)
	unlockB()
}

func TestLocalLocker_ContextCancelled(t *testing.T) {
	l := NewLocalLocker()

	unlock, err := l.Lock(context.Background(), "a")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "a")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock()
	assert.Equal(t, 0, l.Len())
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRedisLocker_SerializesSameKey(t *testing.T) {
	client := newTestRedis(t)
	assertSerialized(t, NewRedisLocker(client, WithRetryWait(time.Millisecond)))

	n, err := client.Exists(context.Background(), "balance:k:2024:01").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestRedisLocker_UnlockDoesNotReleaseForeignToken(t *testing.T) {
	client := newTestRedis(t)
	l := NewRedisLocker(client)
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "k")
	require.NoError(t, err)

	// simulate expiry and takeover by another holder
	require.NoError(t, client.Set(ctx, "k", "someone-else", 0).Err())
	unlock()

	val, err := client.Get(ctx, "k").Result()
	require.NoError(t, err)
	assert.Equal(t, "someone-else", val)
}

func TestRedisLocker_ContextCancelled(t *testing.T) {
	client := newTestRedis(t)
	l := NewRedisLocker(client, WithRetryWait(5*time.Millisecond))

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), mr.Addr())
	require.NoError(t, err)
	defer client.Close()

	_, err = NewRedisClient(context.Background(), "redis://127.0.0.1:1")
	assert.Error(t, err)
}
