package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/dafibh/tally/tally-backend/internal/config"
	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/lock"
	"github.com/dafibh/tally/tally-backend/internal/repository/postgres"
	"github.com/dafibh/tally/tally-backend/internal/service"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// env holds the services a command needs, built from the worker configuration
type env struct {
	cfg        *config.Config
	pool       *pgxpool.Pool
	rdb        *redis.Client
	ownerRepo  domain.OwnerRepository
	owners     *service.OwnerService
	balances   *service.BalanceService
	projection *service.ProjectionService
	recurring  *service.RecurringService
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.LoadWorker()
	if err != nil {
		return nil, err
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, pool: pool}
	if cfg.RecalcLock == lock.ModeRedis {
		e.rdb, err = lock.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			e.Close()
			return nil, err
		}
	}
	locker, err := lock.New(cfg.RecalcLock, e.rdb)
	if err != nil {
		e.Close()
		return nil, err
	}

	e.ownerRepo = postgres.NewOwnerRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	recurringRepo := postgres.NewRecurringRepository(pool)

	e.owners = service.NewOwnerService(e.ownerRepo)
	e.balances = service.NewBalanceService(e.ownerRepo, ledgerRepo, postgres.NewPeriodBalanceRepository(pool), locker)
	e.projection = service.NewProjectionService(ledgerRepo, recurringRepo, e.balances, cfg.ProjectionMode)
	e.recurring = service.NewRecurringService(recurringRepo)
	return e, nil
}

func (e *env) Close() {
	if e.rdb != nil {
		e.rdb.Close()
	}
	e.pool.Close()
}

// periodFlags are shared by every command that targets one owner's month
type periodFlags struct {
	owner string
	year  int
	month int
}

func (p *periodFlags) register(f *flag.FlagSet) {
	f.StringVar(&p.owner, "owner", "", "owner UUID or Auth0 subject (required)")
	f.IntVar(&p.year, "year", 0, "year (required)")
	f.IntVar(&p.month, "month", 0, "month 1-12 (required)")
}

func (p *periodFlags) validate() error {
	if p.owner == "" {
		return fmt.Errorf("-owner is required")
	}
	_, err := domain.NewPeriod(p.year, p.month)
	return err
}

// resolveOwner accepts either an owner UUID or an Auth0 subject
func (e *env) resolveOwner(ref string) (uuid.UUID, error) {
	if id, err := uuid.Parse(ref); err == nil {
		if _, err := e.owners.GetOwner(id); err != nil {
			return uuid.Nil, err
		}
		return id, nil
	}
	return e.owners.GetOwnerIDByAuth0ID(ref)
}
