package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"liveaboard-service/internal/domain/repository"
	"liveaboard-service/internal/infrastructure/config"
	"liveaboard-service/internal/infrastructure/persistence"
	"liveaboard-service/internal/interface/httpapi"
	apiRepo "liveaboard-service/internal/interface/repository"
	"liveaboard-service/internal/usecase"
	"liveaboard-service/pkg/logger"
	"liveaboard-service/pkg/metrics"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	defer log.Sync()
	log.Info("Starting Liveaboard Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Redis is optional; without it browse-mode sampling just runs per request
	var availabilityCache repository.AvailabilityCache
	redisClient, err := persistence.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Warn("Failed to connect to Redis, browse snapshots will not be cached", "error", err)
	} else {
		availabilityCache = apiRepo.NewRedisAvailabilityCache(redisClient, cfg.BrowseCacheTTL)
	}

	// Set up metrics
	m := metrics.NewMetrics("liveaboard")

	// Set up repositories
	catalogRepo := apiRepo.NewFleetCatalogRepository(cfg.FleetAPIBaseURL, cfg.FleetAPIToken, cfg.FleetAPITimeout, log)
	availabilityRepo := apiRepo.NewFleetAvailabilityRepository(cfg.FleetAPIBaseURL, cfg.FleetAPIToken, cfg.FleetAPITimeout, log)
	destinationRepo := apiRepo.NewGormDestinationRepository(gormDB)
	itineraryRepo := apiRepo.NewMongoItineraryRepository(db)

	// Set up usecases
	fetcher := usecase.NewAvailabilityFetcher(availabilityRepo, availabilityCache, log, m, cfg.SampleStrideDays, cfg.BrowseHorizonDays)
	reconciler := usecase.NewReconciler(log, m)
	searchService := usecase.NewSearchService(catalogRepo, destinationRepo, fetcher, reconciler, log, m, cfg.CatalogMaxAge)
	itineraryService := usecase.NewItineraryService(itineraryRepo, log, m, cfg.DefaultGuests)

	// Set up HTTP server
	apiHandler := httpapi.NewHandler(searchService, itineraryService, log, cfg.DefaultDuration, cfg.DefaultGuests)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpapi.NewRouter(apiHandler, cfg.AllowedOrigins),
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

	cancel() // Cancel the context to stop in-flight work

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Liveaboard Service stopped")
}
