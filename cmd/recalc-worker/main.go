package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/dafibh/tally/tally-backend/internal/amqp"
	"github.com/dafibh/tally/tally-backend/internal/config"
	"github.com/dafibh/tally/tally-backend/internal/lock"
	"github.com/dafibh/tally/tally-backend/internal/repository/postgres"
	"github.com/dafibh/tally/tally-backend/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	logger := log.With().Str("component", "recalc_worker").Logger()

	cfg, err := config.LoadWorker()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if !cfg.AMQP.Enabled() {
		logger.Fatal().Msg("AMQP_URL is required for the recalculation worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Several workers may consume the same queue, so a shared lock is worth having here
	var rdb *redis.Client
	if cfg.RecalcLock == lock.ModeRedis {
		rdb, err = lock.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to redis")
		}
		defer rdb.Close()
	}
	locker, err := lock.New(cfg.RecalcLock, rdb)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create recalculation lock")
	}

	balanceService := service.NewBalanceService(
		postgres.NewOwnerRepository(pool),
		postgres.NewLedgerRepository(pool),
		postgres.NewPeriodBalanceRepository(pool),
		locker,
	)

	client, err := amqp.NewClient(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to RabbitMQ")
	}
	defer client.Close()

	logger.Info().
		Str("queue", cfg.AMQP.Queue).
		Bool("cascade", cfg.AMQP.CascadeOnLedgerChange).
		Str("lock", string(cfg.RecalcLock)).
		Msg("Recalculation worker started")

	err = client.ConsumeLedgerChanges(ctx, func(ctx context.Context, msg *amqp.LedgerChangedMessage) error {
		return balanceService.ApplyLedgerChange(ctx, msg.OwnerID, msg.Year, msg.Month, cfg.AMQP.CascadeOnLedgerChange)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("Consumer stopped")
		os.Exit(1)
	}

	logger.Info().Msg("Recalculation worker exited")
}
