package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/i474232898/weather-odds/internal/api/http"
	"github.com/i474232898/weather-odds/internal/config"
	"github.com/i474232898/weather-odds/internal/geo"
	"github.com/i474232898/weather-odds/internal/observability"
	"github.com/i474232898/weather-odds/internal/scheduler"
	"github.com/i474232898/weather-odds/internal/store"
	"github.com/i474232898/weather-odds/internal/weather"
	"github.com/i474232898/weather-odds/internal/weather/providers"
)

func main() {
	// Load configuration (also reads .env when present).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	metrics := observability.NewMetrics()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	opts := providers.Options{
		StartYear:  cfg.StartYear,
		EndYear:    cfg.EndYear,
		MaxRetries: cfg.MaxRetries,
	}
	var source weather.Source
	switch cfg.Source {
	case config.SourceOpenMeteo:
		opts.BaseURL = cfg.OpenMeteoBaseURL
		source = providers.NewOpenMeteoProvider(httpClient, opts)
	default:
		opts.BaseURL = cfg.PowerBaseURL
		source = providers.NewPowerProvider(httpClient, opts)
	}
	log.Printf("INFO: using %s for %d-%d history", source.Name(), cfg.StartYear, cfg.EndYear)

	// Process-lifetime series cache, owned by the fetcher.
	cache := store.NewMemoryCache(cfg.CacheMaxEntries)
	fetcher := weather.NewFetcher(source, cache, metrics)
	service := weather.NewService(fetcher, metrics)

	var geocoder geo.Geocoder
	if g := geo.NewGoogleGeocoder(cfg.GeocoderAPIKey); g != nil {
		geocoder = g
		log.Println("INFO: place lookup enabled")
	}

	// Scheduler that pre-fetches configured coordinates.
	sched := scheduler.New(cfg.PrewarmLocations, cfg.PrewarmInterval, cfg.HTTPTimeout, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-odds",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          cfg.HTTPTimeout + 10*time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-odds",
			"cached":  service.CacheSize(),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API routes.
	httpapi.RegisterRoutes(app, httpapi.Deps{
		Service:  service,
		Geocoder: geocoder,
		Clock:    clockwork.NewRealClock(),
	})

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
