package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/meteo-dashboard/internal/notify"
	"github.com/i474232898/meteo-dashboard/internal/weather"
	"github.com/i474232898/meteo-dashboard/internal/weather/providers"
)

type AppConfig struct {
	Port        string
	ServiceName string
	LogLevel    string

	OpenMeteoURL         string
	GeocodingURL         string
	GoogleGeocoderAPIKey string

	// ForecastTimeout bounds every outbound forecast request.
	ForecastTimeout time.Duration

	// ForecastCacheTTL controls how long live-read payloads are reused (0 = disabled).
	ForecastCacheTTL time.Duration

	// Locations preloaded into the cache by the scheduler.
	PreloadLocations []weather.Location
	PreloadInterval  time.Duration

	SMTP            notify.SMTPConfig
	NotifyWorkers   int
	NotifyQueueSize int

	PDFEnabled bool

	ShutdownTimeout time.Duration
}

// NotificationsEnabled reports whether a real SMTP transport is configured.
func (c *AppConfig) NotificationsEnabled() bool {
	return c.SMTP.Host != ""
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.ServiceName = getenvDefault("SERVICE_NAME", "meteo-dashboard")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")

	cfg.OpenMeteoURL = getenvDefault("OPEN_METEO_URL", providers.DefaultOpenMeteoURL)
	cfg.GeocodingURL = getenvDefault("GEOCODING_URL", providers.DefaultGeocodingURL)
	cfg.GoogleGeocoderAPIKey = os.Getenv("GOOGLE_GEOCODER_API_KEY")

	var err error
	if cfg.ForecastTimeout, err = getenvDuration("FORECAST_TIMEOUT", "5s"); err != nil {
		return nil, err
	}
	if cfg.ForecastTimeout <= 0 {
		return nil, fmt.Errorf("invalid FORECAST_TIMEOUT: must be positive")
	}
	if cfg.ForecastCacheTTL, err = getenvDuration("FORECAST_CACHE_TTL", "10m"); err != nil {
		return nil, err
	}
	if cfg.PreloadInterval, err = getenvDuration("PRELOAD_INTERVAL", "15m"); err != nil {
		return nil, err
	}

	locs, err := parseLocations(os.Getenv("PRELOAD_LOCATIONS"))
	if err != nil {
		return nil, err
	}
	cfg.PreloadLocations = locs

	smtpTimeout, err := getenvDuration("SMTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.SMTP = notify.SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     getenvInt("SMTP_PORT", 587),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     getenvDefault("SMTP_FROM", os.Getenv("SMTP_USERNAME")),
		Timeout:  smtpTimeout,
	}
	cfg.NotifyWorkers = getenvInt("NOTIFY_WORKERS", 2)
	cfg.NotifyQueueSize = getenvInt("NOTIFY_QUEUE_SIZE", 32)

	cfg.PDFEnabled = getenvBool("PDF_ENABLED", true)

	if cfg.ShutdownTimeout, err = getenvDuration("SHUTDOWN_TIMEOUT", "10s"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseLocations reads "lat,lon;lat,lon". An empty string yields no locations.
func parseLocations(s string) ([]weather.Location, error) {
	var locs []weather.Location
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.Split(pair, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid PRELOAD_LOCATIONS entry %q: want lat,lon", pair)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil || lat < -90 || lat > 90 {
			return nil, fmt.Errorf("invalid latitude in PRELOAD_LOCATIONS entry %q", pair)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil || lon < -180 || lon > 180 {
			return nil, fmt.Errorf("invalid longitude in PRELOAD_LOCATIONS entry %q", pair)
		}
		locs = append(locs, weather.Location{Lat: lat, Lon: lon})
	}
	return locs, nil
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

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
