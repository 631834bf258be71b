package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/avilik92/weather-dashboard/internal/weather"
)

type AppConfig struct {
	OpenWeatherAPIKey string
	GeocoderAPIKey    string
	GeminiAPIKey      string

	// Endpoint overrides, mainly for tests; empty means production URLs.
	CurrentURL string
	HourlyURL  string
	DailyURL   string

	// Default location used when a request carries no coordinates or city.
	DefaultLocation weather.Location

	// PeriodCount is the number of hourly and daily periods per snapshot.
	PeriodCount int

	FlagBaseURL string
	FlagStyle   weather.FlagStyle
	FlagPixels  int

	// Connectivity probe.
	ProbeURL      string
	ProbeInterval time.Duration

	// SQLitePath is the settings/cache database; empty selects the in-memory
	// store.
	SQLitePath string

	HTTPTimeout time.Duration
	Port        string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	cfg.CurrentURL = os.Getenv("OPENWEATHER_CURRENT_URL")
	cfg.HourlyURL = os.Getenv("OPENWEATHER_HOURLY_URL")
	cfg.DailyURL = os.Getenv("OPENWEATHER_DAILY_URL")

	cfg.DefaultLocation = weather.Location{
		Lat: getenvFloat("DEFAULT_LAT", 44.34),
		Lon: getenvFloat("DEFAULT_LON", 10.99),
	}

	cfg.PeriodCount = getenvInt("PERIOD_COUNT", 6)
	if cfg.PeriodCount <= 0 {
		return nil, fmt.Errorf("invalid PERIOD_COUNT: must be positive")
	}

	cfg.FlagBaseURL = getenvDefault("FLAG_BASE_URL", "https://flagsapi.com")
	cfg.FlagPixels = getenvInt("FLAG_PIXELS", 64)

	switch style := getenvDefault("FLAG_STYLE", "flat"); style {
	case "flat":
		cfg.FlagStyle = weather.FlagFlat
	case "shiny":
		cfg.FlagStyle = weather.FlagShiny
	default:
		return nil, fmt.Errorf("invalid FLAG_STYLE: %q", style)
	}

	cfg.ProbeURL = getenvDefault("PROBE_URL", "https://api.openweathermap.org")

	probeIntervalStr := getenvDefault("PROBE_INTERVAL", "30s")
	probeInterval, err := time.ParseDuration(probeIntervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PROBE_INTERVAL: %w", err)
	}
	cfg.ProbeInterval = probeInterval

	cfg.SQLitePath = getenvDefault("SQLITE_PATH", "weather-dashboard.db")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
