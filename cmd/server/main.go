package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"warranty/internal/app"
	"warranty/internal/config"
	"warranty/internal/financing"
	"warranty/internal/handler"
	internalRedis "warranty/internal/redis"
	"warranty/internal/repository/postgres"
	"warranty/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	if !cfg.Financing.Configured() {
		// The checkout endpoint will refuse attempts until credentials
		// arrive, but the rest of the API keeps serving.
		log.Println("WARNING: financing provider credentials not configured")
	}

	// Wire dependencies.
	server, sweeper := wireServer(db, redisClient, nrApp, cfg)

	// Start the pending-transaction expiry sweeper.
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go sweeper.Run(sweepCtx)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	stopSweeper()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server and the
// expiry sweeper.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) (*http.Server, *service.ExpirySweeper) {
	// Initialize Redis stores.
	cacheStore := internalRedis.NewCacheStore(redisClient)
	lockStore := internalRedis.NewLockStore(redisClient)

	// Initialize repositories.
	planRepo := postgres.NewPlanRepository(db)
	txRepo := postgres.NewTransactionRepository(db)

	// Initialize services.
	planService := service.NewPlanService(planRepo, cacheStore)
	gateway := financing.NewClient(cfg.Financing)
	checkoutService := service.NewCheckoutService(txRepo, planService, gateway, cfg.Financing, cfg.Checkout)
	notifier := service.NewLogNotifier()
	callbackService := service.NewCallbackService(txRepo, lockStore, notifier)
	sweeper := service.NewExpirySweeper(txRepo, cfg.Checkout.PendingMaxAge, cfg.Checkout.SweepInterval)

	// Initialize handlers.
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	callbackHandler := handler.NewCallbackHandler(callbackService)
	planHandler := handler.NewPlanHandler(planService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		CheckoutHandler: checkoutHandler,
		CallbackHandler: callbackHandler,
		PlanHandler:     planHandler,
		RedisClient:     redisClient,
		NewRelicApp:     nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, sweeper
}
