package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/lock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRollupWorker() (*RollupWorker, *balanceFixture) {
	f := setupBalanceService(lock.NewLocalLocker())

	config := RollupWorkerConfig{
		Interval:    100 * time.Millisecond,
		Concurrency: 2,
	}
	worker := NewRollupWorker(f.service, f.owners, zerolog.Nop(), config)
	worker.now = func() time.Time { return time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC) }
	return worker, f
}

func TestRollupWorker_NewRollupWorker(t *testing.T) {
	worker, _ := setupRollupWorker()

	assert.NotNil(t, worker)
	assert.Equal(t, 100*time.Millisecond, worker.interval)
	assert.Equal(t, 2, worker.concurrency)
	assert.False(t, worker.IsRunning())
}

func TestRollupWorker_DefaultConfig(t *testing.T) {
	config := DefaultRollupWorkerConfig()
	assert.Equal(t, 1*time.Hour, config.Interval)
	assert.Equal(t, 4, config.Concurrency)

	worker := NewRollupWorker(nil, nil, zerolog.Nop(), RollupWorkerConfig{})
	assert.Equal(t, config.Interval, worker.interval)
	assert.Equal(t, config.Concurrency, worker.concurrency)
}

func TestRollupWorker_RunOnce(t *testing.T) {
	worker, f := setupRollupWorker()
	second := f.owners.NewOwner()
	f.addEntry(domain.EntryKindIncome, "100", "2024-03-02")
	f.addEntry(domain.EntryKindExpense, "30", "2024-03-20")

	result := worker.RunOnce(context.Background())

	assert.Equal(t, RollupResult{Owners: 2, Recalculated: 2, Errors: 0}, result)

	first, err := f.balances.GetByPeriod(f.owner.ID, 2024, 3)
	require.NoError(t, err)
	assert.Equal(t, "70.00", first.ClosingBalance.StringFixed(2))

	other, err := f.balances.GetByPeriod(second.ID, 2024, 3)
	require.NoError(t, err)
	assert.True(t, other.ClosingBalance.IsZero())
}

func TestRollupWorker_RunOnceCountsFailures(t *testing.T) {
	worker, f := setupRollupWorker()
	f.balances.UpsertFn = func(balance *domain.PeriodBalance) (*domain.PeriodBalance, error) {
		return nil, errors.New("write failed")
	}

	result := worker.RunOnce(context.Background())
	assert.Equal(t, 1, result.Owners)
	assert.Equal(t, 0, result.Recalculated)
	assert.Equal(t, 1, result.Errors)
}

func TestRollupWorker_ListOwnersFails(t *testing.T) {
	worker, f := setupRollupWorker()
	f.owners.ListFn = func() ([]*domain.Owner, error) { return nil, errors.New("db down") }

	result := worker.RunOnce(context.Background())
	assert.Equal(t, RollupResult{Errors: 1}, result)
}

func TestRollupWorker_StartStop(t *testing.T) {
	worker, _ := setupRollupWorker()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker.Start(ctx)
	worker.Start(ctx)
	time.Sleep(50 * time.Millisecond)
	assert.True(t, worker.IsRunning())

	worker.Stop()
	assert.False(t, worker.IsRunning())

	// stopping twice is a no-op
	worker.Stop()
}

func TestRollupWorker_ContextCancellation(t *testing.T) {
	worker, _ := setupRollupWorker()

	ctx, cancel := context.WithCancel(context.Background())
	worker.Start(ctx)
	time.Sleep(50 * time.Millisecond)

	cancel()
	time.Sleep(50 * time.Millisecond)
	assert.False(t, worker.IsRunning())
}

func TestRollupWorker_RestartAfterStop(t *testing.T) {
	worker, _ := setupRollupWorker()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		worker.Start(ctx)
		assert.True(t, worker.IsRunning())
		worker.Stop()
		assert.False(t, worker.IsRunning())
	}
}

func TestRollupWorker_ConcurrentStop(t *testing.T) {
	worker, _ := setupRollupWorker()
	worker.Start(context.Background())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Stop()
		}()
	}
	wg.Wait()
	assert.False(t, worker.IsRunning())

	worker.Start(context.Background())
	assert.True(t, worker.IsRunning())
	worker.Stop()
}

func TestRollupWorker_StopBeforeStart(t *testing.T) {
	worker, _ := setupRollupWorker()
	worker.Stop()
	assert.False(t, worker.IsRunning())
}
