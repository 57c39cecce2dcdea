package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"branch-cash-ledger/config"
	httpHandler "branch-cash-ledger/internal/adapter/http/handler"
	pgStorage "branch-cash-ledger/internal/adapter/storage/postgres"
	redisStorage "branch-cash-ledger/internal/adapter/storage/redis"
	"branch-cash-ledger/internal/core/ports"
	"branch-cash-ledger/internal/jobs"
	"branch-cash-ledger/internal/observability"
	"branch-cash-ledger/internal/service"
	"branch-cash-ledger/pkg/logger"

	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Branch Cash Ledger")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	walletRepo := pgStorage.NewWalletRepo(pool)
	walletTxRepo := pgStorage.NewWalletTxRepo(pool)
	reversalRepo := pgStorage.NewReversalRepo(pool)
	allocRepo := pgStorage.NewAllocationRepo(pool)
	drawerRepo := pgStorage.NewDrawerRepo(pool)
	drawerTxRepo := pgStorage.NewDrawerTxRepo(pool)
	recRepo := pgStorage.NewReconciliationRepo(pool)
	alertRepo := pgStorage.NewAlertRepo(pool)
	auditRepo := pgStorage.NewAuditRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	idempotencyCache := redisStorage.NewIdempotencyCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize core services
	encSvc, err := service.NewAESEncryptionService(cfg.AES.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}
	sigSvc := service.NewHMACSignatureService()
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	// Observability
	metrics := observability.NewMetrics()

	// Cross-cutting ledger services
	auditTrail := service.NewAuditTrailService(auditRepo, sigSvc, cfg.Audit.HMACSecret, log)
	notifier := service.NewWebhookNotifier(cfg.Notify, sigSvc, &http.Client{Timeout: cfg.Notify.Timeout}, log)
	alertMonitor := service.NewAlertMonitorService(alertRepo, notifier, metrics, log)

	// Core ledger services
	walletLedger := service.NewWalletLedgerService(
		walletRepo,
		walletTxRepo,
		reversalRepo,
		idempotencyCache,
		encSvc,
		transactor,
		auditTrail,
		alertMonitor,
		metrics,
		cfg.Ledger,
		log,
	)
	allocationMgr := service.NewAllocationManagerService(
		allocRepo,
		walletRepo,
		walletTxRepo,
		encSvc,
		transactor,
		auditTrail,
		alertMonitor,
		metrics,
		cfg.Ledger,
		log,
	)
	reconEngine := service.NewReconciliationEngineService(
		recRepo,
		walletTxRepo,
		drawerRepo,
		drawerTxRepo,
		hashSvc,
		transactor,
		auditTrail,
		alertMonitor,
		metrics,
		cfg.Reconciliation,
		log,
	)
	drawerLedger := service.NewDrawerLedgerService(
		drawerRepo,
		drawerTxRepo,
		allocRepo,
		recRepo,
		reconEngine,
		transactor,
		auditTrail,
		metrics,
		log,
	)

	// Background sweeps: reversal completion and allocation expiry
	sweeper, err := jobs.NewSweeper(cfg.Jobs, walletLedger, allocationMgr, metrics, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize sweeper")
	}

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		WalletLedger:   walletLedger,
		AllocationMgr:  allocationMgr,
		DrawerLedger:   drawerLedger,
		ReconEngine:    reconEngine,
		AlertMonitor:   alertMonitor,
		AuditTrail:     auditTrail,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Metrics:        metrics,
		Logger:         log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	g, runCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return sweeper.Run(runCtx)
	})

	// Graceful shutdown on signal or component failure
	g.Go(func() error {
		<-runCtx.Done()
		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Error().Err(err).Msg("Shutdown with error")
	}
	log.Info().Msg("Server exited")
}
