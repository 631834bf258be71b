package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/avilik92/weather-dashboard/internal/advice"
	httpapi "github.com/avilik92/weather-dashboard/internal/api/http"
	"github.com/avilik92/weather-dashboard/internal/config"
	"github.com/avilik92/weather-dashboard/internal/dashboard"
	"github.com/avilik92/weather-dashboard/internal/geo"
	"github.com/avilik92/weather-dashboard/internal/netstatus"
	"github.com/avilik92/weather-dashboard/internal/prefetch"
	"github.com/avilik92/weather-dashboard/internal/store"
	"github.com/avilik92/weather-dashboard/internal/weather"
	"github.com/avilik92/weather-dashboard/internal/weather/openweather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Settings/cache store: SQLite when a path is configured, memory otherwise.
	var kv store.KV
	if cfg.SQLitePath != "" {
		sqliteStore, err := store.NewSQLite(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("failed to open settings store: %v", err)
		}
		defer sqliteStore.Close()
		kv = sqliteStore
	} else {
		kv = store.NewMemoryStore()
	}

	// Upstream provider client with resilience (backoff + circuit breaker).
	source := openweather.NewClient(httpClient, openweather.Config{
		APIKey:     cfg.OpenWeatherAPIKey,
		CurrentURL: cfg.CurrentURL,
		HourlyURL:  cfg.HourlyURL,
		DailyURL:   cfg.DailyURL,
	})

	// Optional collaborators: reverse-geocoded labels and image warming.
	labels := geo.New(cfg.GeocoderAPIKey)
	warmer := prefetch.New(httpClient)

	// Core aggregation service.
	service := weather.NewService(source, labels, warmer, weather.ServiceConfig{
		FlagBaseURL:  cfg.FlagBaseURL,
		FlagStyle:    cfg.FlagStyle,
		FlagPixels:   cfg.FlagPixels,
		DefaultCount: cfg.PeriodCount,
	})

	// Connectivity monitor driving online/offline decisions.
	monitor := netstatus.New(httpClient, cfg.ProbeURL, cfg.ProbeInterval)
	if err := monitor.Start(); err != nil {
		log.Fatalf("failed to start connectivity monitor: %v", err)
	}
	defer monitor.Stop()

	// Connectivity changes are advisory only; no automatic re-fetch.
	monitor.Subscribe(func(online bool) {
		if online {
			log.Println("notification: Connection: Online")
		} else {
			log.Println("notification: Connection: Offline")
		}
	})

	ctrl := dashboard.NewController(kv, service, monitor)
	advisor := advice.New(httpClient, cfg.GeminiAPIKey, "")

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-dashboard",
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
			"service": "weather-dashboard",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, ctrl, advisor, cfg.DefaultLocation)

	// Start server with graceful shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
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
