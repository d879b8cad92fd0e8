package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fragancia/backend/config"
	httpDelivery "github.com/fragancia/backend/internal/delivery/http"
	"github.com/fragancia/backend/internal/domain"
	"github.com/fragancia/backend/internal/infrastructure/cache"
	"github.com/fragancia/backend/internal/infrastructure/postgres"
	"github.com/fragancia/backend/internal/infrastructure/scraper"
	"github.com/fragancia/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Fragancia Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Supplier: %s (%s)", cfg.Supplier.Slug, cfg.Supplier.BaseURL)

	// Initialize infrastructure dependencies
	db, err := postgres.Open(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	catalogStore := postgres.NewCatalogStore(db)
	stagingStore := postgres.NewStagingStore(db)
	memoryCache := cache.NewMemoryCache()

	scraperClient := scraper.NewClient(cfg.Supplier.BaseURL)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		scraperClient.SetDebug(true)
		log.Printf("Scraper debug mode enabled")
	}

	// Initialize usecase layer
	syncService := usecase.NewSyncService(
		catalogStore,
		stagingStore,
		scraperClient,
		memoryCache,
		usecase.SyncConfig{
			SupplierSlug:       cfg.Supplier.Slug,
			MasculinoURL:       cfg.Supplier.MasculinoPath,
			FemeninoURL:        cfg.Supplier.FemeninoPath,
			RescuePages:        rescuePages(cfg.Supplier.RescuePages),
			MaxWorkers:         cfg.Matching.MaxWorkers,
			MatchThreshold:     cfg.Matching.Threshold,
			CacheTTL:           cfg.Cache.TTL,
			EnableDebugLogging: cfg.Matching.Debug,
		},
	)

	log.Printf("Matching: threshold=%.2f, workers=%d, debug=%v",
		cfg.Matching.Threshold,
		cfg.Matching.MaxWorkers,
		cfg.Matching.Debug)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(syncService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// rescuePages maps configured rescue pages into the sync service's shape.
func rescuePages(pages []config.RescuePageConfig) []usecase.RescuePage {
	var result []usecase.RescuePage
	for _, p := range pages {
		result = append(result, usecase.RescuePage{
			ExternalCode: p.Code,
			URL:          p.Path,
			Gender:       domainGender(p.Gender),
		})
	}
	return result
}

func domainGender(raw string) domain.Gender {
	switch raw {
	case "masculino":
		return domain.GenderMasculino
	case "femenino":
		return domain.GenderFemenino
	default:
		return domain.GenderUnknown
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
