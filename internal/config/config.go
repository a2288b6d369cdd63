package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// PeaksCSV is the path to the peak reference dataset.
	PeaksCSV string

	// Timezone is the civil zone plans are rendered in.
	Timezone *time.Location

	// WindowHours is the default forecast window for risk scoring.
	WindowHours int

	// FavoritePeaks are refreshed by the scheduler every RefreshInterval.
	FavoritePeaks   []string
	RefreshInterval time.Duration

	// In-memory store retention.
	StoreMaxHistory int           // max number of snapshots per peak group (0 = unlimited)
	StoreMaxAge     time.Duration // max age of snapshots (0 = unlimited)

	// HTTPTimeout bounds outbound provider calls.
	HTTPTimeout time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.PeaksCSV = getenvDefault("PEAKS_CSV", "data/nh48.csv")

	tzName := getenvDefault("TIMEZONE", "America/New_York")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tzName, err)
	}
	cfg.Timezone = loc

	cfg.WindowHours = getenvInt("WINDOW_HOURS", 12)
	if cfg.WindowHours <= 0 {
		return nil, fmt.Errorf("WINDOW_HOURS must be positive")
	}

	// Scheduler interval: default hourly.
	interval, err := getenvDuration("REFRESH_INTERVAL", "1h")
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	if raw := os.Getenv("FAVORITE_PEAKS"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.FavoritePeaks = append(cfg.FavoritePeaks, name)
			}
		}
	}

	// Store retention.
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 30)

	maxAge, err := getenvDuration("STORE_MAX_AGE", "24h")
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
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

func getenvDuration(key, def string) (time.Duration, error) {
	return time.ParseDuration(getenvDefault(key, def))
}
