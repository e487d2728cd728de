// @title Tally API
// @version 1.0
// @description Personal finance ledger with monthly balance rollups and projections.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/amqp"
	"github.com/dafibh/tally/tally-backend/internal/config"
	"github.com/dafibh/tally/tally-backend/internal/handler"
	"github.com/dafibh/tally/tally-backend/internal/lock"
	"github.com/dafibh/tally/tally-backend/internal/middleware"
	"github.com/dafibh/tally/tally-backend/internal/repository/postgres"
	"github.com/dafibh/tally/tally-backend/internal/repository/storage"
	"github.com/dafibh/tally/tally-backend/internal/service"
	"github.com/dafibh/tally/tally-backend/internal/websocket"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.MigrateOnStart {
		if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Initialize repositories
	ownerRepo := postgres.NewOwnerRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	recurringRepo := postgres.NewRecurringRepository(pool)
	balanceRepo := postgres.NewPeriodBalanceRepository(pool)
	netWorthRepo := postgres.NewNetWorthRepository(pool)
	assetRepo := postgres.NewAssetRepository(pool)
	goalRepo := postgres.NewGoalRepository(pool)

	var rdb *redis.Client
	if cfg.RecalcLock == lock.ModeRedis {
		rdb, err = lock.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to redis")
		}
		defer rdb.Close()
		log.Info().Msg("Connected to redis")
	}
	locker, err := lock.New(cfg.RecalcLock, rdb)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create recalculation lock")
	}

	// Initialize services
	ownerService := service.NewOwnerService(ownerRepo)
	ledgerService := service.NewLedgerService(ledgerRepo, recurringRepo)
	recurringService := service.NewRecurringService(recurringRepo)
	balanceService := service.NewBalanceService(ownerRepo, ledgerRepo, balanceRepo, locker)
	projectionService := service.NewProjectionService(ledgerRepo, recurringRepo, balanceService, cfg.ProjectionMode)
	netWorthService := service.NewNetWorthService(netWorthRepo, assetRepo)
	assetService := service.NewAssetService(assetRepo)
	goalService := service.NewGoalService(goalRepo)

	var exportStore storage.ExportRepository
	if cfg.S3.Enabled() {
		s3Repo, err := storage.NewS3ExportRepository(ctx, cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize S3 export storage")
		}
		exportStore = s3Repo
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Balance export enabled")
	} else {
		log.Warn().Msg("S3_BUCKET not set, balance export disabled")
	}
	exportService := service.NewExportService(balanceRepo, exportStore, cfg.S3.PresignExpiry)

	// Ledger changes are announced to the recalculation consumer when a broker is configured
	if cfg.AMQP.Enabled() {
		amqpClient, err := amqp.NewClient(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to RabbitMQ")
		}
		defer amqpClient.Close()
		ledgerService.SetChangeNotifier(amqpClient)
		log.Info().Str("queue", cfg.AMQP.Queue).Msg("Ledger change notifications enabled")
	}

	// Realtime events
	hub := websocket.NewHub()
	ledgerService.SetEventPublisher(hub)
	recurringService.SetEventPublisher(hub)
	balanceService.SetEventPublisher(hub)
	netWorthService.SetEventPublisher(hub)
	assetService.SetEventPublisher(hub)
	goalService.SetEventPublisher(hub)
	exportService.SetEventPublisher(hub)

	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience, ownerService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth middleware")
	}
	wsValidator, err := websocket.NewAuth0JWTValidator(cfg.Auth0Domain, cfg.Auth0Audience, ownerService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create websocket token validator")
	}

	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, middleware.DefaultBurstSize)
	defer rateLimiter.Stop()

	var rollupWorker *service.RollupWorker
	if cfg.RollupInterval > 0 {
		rollupWorker = service.NewRollupWorker(balanceService, ownerRepo, log.Logger, service.RollupWorkerConfig{
			Interval: cfg.RollupInterval,
		})
		rollupWorker.Start(ctx)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	e.Use(zerologMiddleware())
	e.Use(echomiddleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		if err := pool.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "unreachable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	if !cfg.IsProduction() {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}
	e.GET("/openapi.json", handler.OpenAPI3SpecHandler(cfg.Port, cfg.PublicURL))

	handler.RegisterRoutes(e, authMiddleware, rateLimiter, handler.Handlers{
		Auth:      handler.NewAuthHandler(ownerService),
		Entry:     handler.NewEntryHandler(ledgerService),
		Recurring: handler.NewRecurringHandler(recurringService),
		Balance:   handler.NewBalanceHandler(balanceService, projectionService, exportService),
		NetWorth:  handler.NewNetWorthHandler(netWorthService),
		Asset:     handler.NewAssetHandler(assetService),
		Goal:      handler.NewGoalHandler(goalService),
		WebSocket: handler.NewWebSocketHandler(hub, wsValidator, cfg.CORSOrigins),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("projection_mode", string(cfg.ProjectionMode)).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	if rollupWorker != nil {
		rollupWorker.Stop()
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			event := log.Info()
			if res.Status >= http.StatusInternalServerError {
				event = log.Error()
			}
			event.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Str("owner_id", middleware.GetOwnerID(c).String()).
				Msg("request")

			return nil
		}
	}
}
