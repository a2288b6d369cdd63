package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/guide48/peak-planner/internal/api/http"
	"github.com/guide48/peak-planner/internal/config"
	"github.com/guide48/peak-planner/internal/peaks"
	"github.com/guide48/peak-planner/internal/plan"
	"github.com/guide48/peak-planner/internal/scheduler"
	"github.com/guide48/peak-planner/internal/store"
	"github.com/guide48/peak-planner/internal/trip"
	"github.com/guide48/peak-planner/internal/trip/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Peak reference data, loaded once and injected everywhere.
	catalog, err := peaks.LoadCatalog(cfg.PeaksCSV)
	if err != nil {
		log.Fatalf("failed to load peak catalog: %v", err)
	}
	durations := peaks.DefaultDurations()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory snapshot store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// Core service wiring.
	service := trip.NewService(trip.Deps{
		Catalog:     catalog,
		Resolver:    peaks.NewResolver(catalog, durations),
		Durations:   durations,
		Exposed:     peaks.DefaultExposed(),
		Planner:     plan.New(cfg.Timezone),
		Daylight:    providers.NewSunriseSunsetProvider(httpClient),
		Forecasts:   providers.NewOpenMeteoProvider(httpClient),
		Store:       memStore,
		WindowHours: cfg.WindowHours,
	})

	// Scheduler that keeps favorite-peak plans warm.
	sched := scheduler.New(cfg.FavoritePeaks, cfg.RefreshInterval, service, cfg.Timezone, trip.SystemClock())
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "peak-planner",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "peak-planner",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
