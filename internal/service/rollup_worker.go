package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// RollupWorker periodically recalculates the current month for every owner
type RollupWorker struct {
	balanceService *BalanceService
	ownerRepo      domain.OwnerRepository
	logger         zerolog.Logger
	interval       time.Duration
	concurrency    int
	now            func() time.Time
	stopCh         chan struct{}
	doneCh         chan struct{}
	mu             sync.Mutex
	running        bool
}

// RollupWorkerConfig holds configuration for the rollup worker
type RollupWorkerConfig struct {
	Interval    time.Duration // How often to run
	Concurrency int           // Owners recalculated in parallel
}

// DefaultRollupWorkerConfig returns sensible defaults
func DefaultRollupWorkerConfig() RollupWorkerConfig {
	return RollupWorkerConfig{
		Interval:    1 * time.Hour,
		Concurrency: 4,
	}
}

// RollupResult summarizes one pass
type RollupResult struct {
	Owners       int
	Recalculated int
	Errors       int
}

// NewRollupWorker creates a new rollup worker
func NewRollupWorker(
	balanceService *BalanceService,
	ownerRepo domain.OwnerRepository,
	logger zerolog.Logger,
	config RollupWorkerConfig,
) *RollupWorker {
	defaults := DefaultRollupWorkerConfig()
	if config.Interval <= 0 {
		config.Interval = defaults.Interval
	}
	if config.Concurrency <= 0 {
		config.Concurrency = defaults.Concurrency
	}

	return &RollupWorker{
		balanceService: balanceService,
		ownerRepo:      ownerRepo,
		logger:         logger.With().Str("component", "rollup_worker").Logger(),
		interval:       config.Interval,
		concurrency:    config.Concurrency,
		now:            time.Now,
	}
}

// Start begins the background rollup. A stopped worker may be started again.
func (w *RollupWorker) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	stop, done := w.stopCh, w.doneCh
	w.mu.Unlock()

	w.logger.Info().
		Dur("interval", w.interval).
		Int("concurrency", w.concurrency).
		Msg("Starting rollup worker")

	go w.run(ctx, stop, done)
}

// Stop gracefully stops the worker and waits for the current pass to finish.
// Concurrent callers all wait for the same shutdown.
func (w *RollupWorker) Stop() {
	w.mu.Lock()
	done := w.doneCh
	if w.stopCh != nil {
		w.logger.Info().Msg("Stopping rollup worker")
		close(w.stopCh)
		w.stopCh = nil
	}
	w.mu.Unlock()

	if done == nil {
		return
	}
	<-done
	w.logger.Info().Msg("Rollup worker stopped")
}

func (w *RollupWorker) run(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-stop:
			cancel()
		case <-runCtx.Done():
		}
	}()

	// Run immediately on startup
	w.RunOnce(runCtx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-runCtx.Done():
			return
		case <-ticker.C:
			w.RunOnce(runCtx)
		}
	}
}

// RunOnce recalculates the current month for every owner
func (w *RollupWorker) RunOnce(ctx context.Context) RollupResult {
	startTime := w.now()
	year, month := startTime.Year(), int(startTime.Month())

	owners, err := w.ownerRepo.ListAll()
	if err != nil {
		w.logger.Error().Err(err).Msg("Failed to list owners for rollup")
		return RollupResult{Errors: 1}
	}

	var recalculated, failed int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)
	for _, owner := range owners {
		if gctx.Err() != nil {
			break
		}
		ownerID := owner.ID
		g.Go(func() error {
			if _, err := w.balanceService.Recalculate(gctx, ownerID, year, month); err != nil {
				atomic.AddInt64(&failed, 1)
				w.logger.Error().
					Err(err).
					Str("owner_id", ownerID.String()).
					Msg("Failed to recalculate current period")
				return nil
			}
			atomic.AddInt64(&recalculated, 1)
			return nil
		})
	}
	_ = g.Wait()

	result := RollupResult{
		Owners:       len(owners),
		Recalculated: int(recalculated),
		Errors:       int(failed),
	}
	w.logger.Info().
		Int("owners", result.Owners).
		Int("recalculated", result.Recalculated).
		Int("errors", result.Errors).
		Dur("elapsed", time.Since(startTime)).
		Msg("Completed rollup")
	return result
}

// IsRunning returns whether the worker is currently running
func (w *RollupWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
