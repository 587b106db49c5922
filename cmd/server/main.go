package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"planewatch-service/internal/infrastructure/config"
	"planewatch-service/internal/infrastructure/oauth"
	"planewatch-service/internal/infrastructure/persistence"
	"planewatch-service/internal/infrastructure/router"
	"planewatch-service/internal/interface/telegram"
	"planewatch-service/internal/interface/webhook"
	"planewatch-service/pkg/logger"
	"planewatch-service/pkg/metrics"
	"planewatch-service/pkg/tasks"
	"planewatch-service/pkg/utils"

	domainRepo "planewatch-service/internal/domain/repository"
	storeRepo "planewatch-service/internal/interface/repository"
	flightUsecase "planewatch-service/internal/usecase"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Planewatch Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics("planewatch")

	// Live message registry: durable when MongoDB is configured, in-memory otherwise
	var liveMessageRepo domainRepo.LiveMessageRepository
	var mongoClient *mongo.Client
	var memoryRegistry *storeRepo.MemoryLiveMessageRepository
	if cfg.MongoURI != "" {
		log.Info("Connecting to MongoDB")
		client, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		mongoClient = client
		liveMessageRepo = storeRepo.NewMongoLiveMessageRepository(db, cfg.LiveSessionTTL)
	} else {
		memoryRegistry = storeRepo.NewMemoryLiveMessageRepository(cfg.LiveSessionTTL)
		liveMessageRepo = memoryRegistry
	}

	// Airline reference data is optional
	var airlineRepository domainRepo.AirlineRepository
	if cfg.PostgresURI != "" {
		gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		airlineRepository = storeRepo.NewGormAirlineRepository(gormDB)
	}

	// Flight provider client
	providerAuth := oauth.NewProviderAuth(cfg.FlightAPIToken, cfg.ProviderTimeout, log)
	flightRepo := storeRepo.NewFlightRadarRepository(cfg.FlightAPIURL, providerAuth.HTTPClient(ctx), log)

	// Report formatter with the configured schedule timezone
	formatter, err := utils.NewReportFormatter(cfg.ScheduleTimezone)
	if err != nil {
		log.Fatal("Failed to create report formatter", "error", err)
	}

	// Telegram transport
	telegramClient := telegram.NewClient(cfg.TelegramAPIURL, cfg.TelegramToken, log)

	// Pipeline wiring
	lookup := flightUsecase.NewFlightLookup(flightRepo, airlineRepository, log, m, cfg.SearchRadiusKm)
	dispatcher := flightUsecase.NewReportDispatcher(telegramClient, liveMessageRepo, formatter, log, m)
	coordinator := flightUsecase.NewRequestCoordinator(lookup, dispatcher, telegramClient, log, m)

	updateRouter := router.NewUpdateRouter(log)
	updateRouter.Register(coordinator)

	group := tasks.NewGroup(log, m)
	webhookHandler := webhook.NewHandler(updateRouter, group, log, m)

	// Set up HTTP server
	mux := http.NewServeMux()
	webhookHandler.Register(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Register the webhook with Telegram once the server is up
	if cfg.WebhookURL != "" {
		if err := telegramClient.SetWebhook(ctx, cfg.WebhookURL); err != nil {
			log.Fatal("Failed to set Telegram webhook", "error", err)
		}
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	// Let in-flight pipeline runs finish before exiting
	if err := group.Wait(shutdownCtx); err != nil {
		log.Error("Background tasks did not finish in time", "error", err)
	}

	// Release the registry backend
	if memoryRegistry != nil {
		memoryRegistry.Close()
	}
	if mongoClient != nil {
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Error("MongoDB disconnect error", "error", err)
		}
	}

	cancel()

	log.Info("Planewatch Service stopped")
}
