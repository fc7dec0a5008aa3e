package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/mamba-kebabs/ordering/internal/auth"
	"github.com/mamba-kebabs/ordering/internal/config"
	"github.com/mamba-kebabs/ordering/internal/database"
	"github.com/mamba-kebabs/ordering/internal/idempotency"
	"github.com/mamba-kebabs/ordering/internal/jobs"
	"github.com/mamba-kebabs/ordering/internal/logging"
	mw "github.com/mamba-kebabs/ordering/internal/middleware"
	"github.com/mamba-kebabs/ordering/internal/payment"
	"github.com/mamba-kebabs/ordering/internal/realtime"
	"github.com/mamba-kebabs/ordering/internal/router"
	"github.com/mamba-kebabs/ordering/internal/service"
	"github.com/mamba-kebabs/ordering/internal/ws"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepTimeout    = 30 * time.Second
	limiterIdle     = 10 * time.Minute
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if cfg.UsesDevAdminPassword() {
		logger.Warn("using the development admin password; set ADMIN_PASSWORD_HASH in production")
	}
	if cfg.StripeWebhookSecret == "" {
		logger.Warn("STRIPE_WEBHOOK_SECRET is empty; webhooks will be rejected")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MigrateOnStart {
		if err := database.Migrate(cfg.DatabaseURL); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	queries := database.New(pool)

	secret, err := adminSecret(cfg)
	if err != nil {
		return err
	}

	seen, closeSeen, err := eventStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSeen()

	gateway := payment.NewStripe(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	checkoutSvc := service.NewCheckoutService(queries, gateway, cfg.Currency, cfg.CheckoutSessionTTL, logger)
	paymentSvc := service.NewPaymentService(queries, seen, logger)

	hub := ws.NewHub()
	listener := realtime.NewListener(pool, queries, hub, logger)

	checkoutLimiter := mw.NewRateLimiter(30, 10, logger)
	loginLimiter := mw.NewRateLimiter(10, 5, logger)

	scheduler := jobs.NewScheduler(logger)
	if cfg.UnpaidOrderTTL > 0 {
		sweeper := jobs.NewSweeper(queries, cfg.UnpaidOrderTTL, logger)
		if err := scheduler.Add("sweep-unpaid-orders", cfg.SweepInterval, sweeper.Job(sweepTimeout)); err != nil {
			return err
		}
	}
	if err := scheduler.Add("limiter-cleanup", "@every 5m", func(context.Context) {
		checkoutLimiter.Cleanup(limiterIdle)
		loginLimiter.Cleanup(limiterIdle)
	}); err != nil {
		return err
	}

	r := router.New(cfg, router.Deps{
		Queries:         queries,
		Checkout:        checkoutSvc,
		Webhooks:        gateway,
		Events:          paymentSvc,
		AdminSecret:     secret,
		Hub:             hub,
		CheckoutLimiter: checkoutLimiter,
		LoginLimiter:    loginLimiter,
		Logger:          logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return hub.Run(gctx) })
	g.Go(func() error { return listener.Run(gctx) })
	g.Go(func() error { return scheduler.Run(gctx) })
	g.Go(func() error {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("server stopped")
	return nil
}

func adminSecret(cfg *config.Config) (*auth.SharedSecret, error) {
	if cfg.AdminPasswordHash != "" {
		s, err := auth.NewSharedSecretFromHash(cfg.AdminPasswordHash)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_PASSWORD_HASH: %w", err)
		}
		return s, nil
	}
	return auth.NewSharedSecret(cfg.AdminPassword)
}

// eventStore picks Redis when configured so de-duplication survives restarts and replicas.
func eventStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (idempotency.Store, func(), error) {
	if cfg.RedisURL == "" {
		logger.Info("webhook de-duplication in memory")
		return idempotency.NewMemory(idempotency.DefaultTTL), func() {}, nil
	}
	store, client, err := idempotency.NewRedis(ctx, cfg.RedisURL, idempotency.DefaultTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("redis: %w", err)
	}
	logger.Info("webhook de-duplication in redis")
	return store, func() { _ = client.Close() }, nil
}
