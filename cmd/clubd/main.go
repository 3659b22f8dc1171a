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

	"cedarclub/config"
	"cedarclub/cron"
	"cedarclub/database"
	clubRepo "cedarclub/database/repository/club"
	"cedarclub/handlers"
	"cedarclub/routes"
	"cedarclub/services/admin"
	"cedarclub/services/auth"
	"cedarclub/services/billing"
	"cedarclub/services/booking"
	"cedarclub/services/idempotency"
	"cedarclub/services/locker"
	"cedarclub/services/tasks"
	"cedarclub/telemetry"
	"cedarclub/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	var configFile string

	root := &cobra.Command{
		Use:   "clubd",
		Short: "Sandbox API server for the Cedar Club client",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: config.yaml in ., ./config or $HOME/.cedarclub)")

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo club into the MongoDB store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			utils.InitializeLogger(cfg.Env, cfg.LogLevel)
			logger := utils.GetLogger()

			client, err := database.Connect(cmd.Context(), cfg.DatabaseURL, logger)
			if err != nil {
				return err
			}
			defer client.Disconnect(context.Background())
			store := clubRepo.NewMongoStore(client, cfg.DatabaseName, logger)
			if err := clubRepo.Seed(cmd.Context(), store); err != nil {
				return err
			}
			logger.Info("Demo club seeded", zap.String("database", cfg.DatabaseName))
			return nil
		},
	}
	root.AddCommand(seed)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	utils.InitializeLogger(cfg.Env, cfg.LogLevel)
	logger := utils.GetLogger()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTelemetry := telemetry.Setup(ctx, "clubd", cfg.OTLPEndpoint, cfg.OTLPInsecure, logger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTelemetry(ctx)
	}()

	// --- Storage ---
	var (
		store       clubRepo.Store
		mongoClient *mongo.Client
	)
	switch cfg.StoreBackend {
	case "mongo":
		client, err := database.Connect(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())
		mongoClient = client
		store = clubRepo.NewMongoStore(client, cfg.DatabaseName, logger)
	case "memory", "":
		mem, err := clubRepo.NewSeededMemoryStore(ctx)
		if err != nil {
			return fmt.Errorf("failed to seed memory store: %w", err)
		}
		store = mem
	default:
		return fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	// --- Redis: idempotency keys and the renewal queue ---
	var (
		idem         idempotency.Store = idempotency.NewMemoryStore()
		scheduler    locker.RenewalScheduler
		redisClients []*redis.Client
	)
	if cfg.RedisAddr != "" {
		cache, err := utils.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisCacheDB)
		if err != nil {
			return err
		}
		defer cache.Close()
		redisClients = append(redisClients, cache)
		idem = idempotency.NewRedisStore(cache)

		queue := asynq.NewClient(cron.RedisOpt(cfg))
		defer queue.Close()
		scheduler = &tasks.AsynqScheduler{Client: queue}
	} else {
		logger.Warn("REDIS_ADDR not set; idempotency keys kept in memory and lockers will not auto-renew")
	}

	// --- Services ---
	var processor billing.PaymentProcessor = billing.NewSimulatedProcessor(logger)
	if cfg.StripeKey != "" {
		processor = billing.NewStripeProcessor(cfg.StripeKey, "", logger)
	}

	tokens := utils.NewTokenIssuer(cfg.JWTSecret, 24*time.Hour)
	lockerService := &locker.DefaultLockerService{Repo: store, Scheduler: scheduler, Logger: logger}
	services := handlers.Services{
		Auth:    &auth.DefaultAuthService{Repo: store, Tokens: tokens, Logger: logger},
		Booking: &booking.DefaultBookingService{Repo: store, Idempotency: idem, Logger: logger},
		Lockers: lockerService,
		Billing: &billing.DefaultBillingService{Repo: store, Processor: processor, Idempotency: idem, Logger: logger},
		Staff:   &admin.DefaultStaffService{Repo: store, Logger: logger},
	}

	if scheduler != nil {
		worker := cron.InitRenewalWorker(cfg, lockerService, logger)
		defer worker.Shutdown()
	}

	monitor := utils.NewHealthMonitor(redisClients, mongoClient)
	monitorCtx, stopMonitor := context.WithCancel(ctx)
	defer stopMonitor()
	monitor.Start(monitorCtx, 30*time.Second)

	handlerBundle := handlers.NewHandlerBundle(services, tokens, monitor)
	router := routes.NewRouter(handlerBundle, logger, cfg.MaxRequestsPerMin)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           otelhttp.NewHandler(router, "clubd"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	}
	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("Server stopped gracefully")
	return nil
}
