package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-odds/internal/weather"
)

const (
	SourcePower     = "power"
	SourceOpenMeteo = "openmeteo"
)

type AppConfig struct {
	// Source selects the upstream historical provider.
	Source           string
	PowerBaseURL     string
	OpenMeteoBaseURL string

	// Historical window, inclusive.
	StartYear int
	EndYear   int

	HTTPTimeout time.Duration
	MaxRetries  int // upstream retries per fetch (0 = single attempt)

	CacheMaxEntries int // 0 = unlimited

	GeocoderAPIKey string

	// Coordinates fetched ahead of the first request.
	PrewarmLocations []weather.Coordinate
	PrewarmInterval  time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Source = strings.ToLower(getenvDefault("WEATHER_SOURCE", SourcePower))
	if cfg.Source != SourcePower && cfg.Source != SourceOpenMeteo {
		return nil, fmt.Errorf("invalid WEATHER_SOURCE %q: want %q or %q", cfg.Source, SourcePower, SourceOpenMeteo)
	}
	cfg.PowerBaseURL = os.Getenv("POWER_BASE_URL")
	cfg.OpenMeteoBaseURL = os.Getenv("OPENMETEO_BASE_URL")

	var err error
	if cfg.StartYear, err = getenvStrictInt("HISTORY_START_YEAR", 1981); err != nil {
		return nil, err
	}
	if cfg.EndYear, err = getenvStrictInt("HISTORY_END_YEAR", 2020); err != nil {
		return nil, err
	}
	if cfg.EndYear < cfg.StartYear {
		return nil, fmt.Errorf("HISTORY_END_YEAR (%d) is before HISTORY_START_YEAR (%d)", cfg.EndYear, cfg.StartYear)
	}

	// The POWER daily endpoint can take tens of seconds for a 40-year window.
	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "60s"))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %q", os.Getenv("HTTP_TIMEOUT"))
	}
	cfg.HTTPTimeout = timeout

	if cfg.MaxRetries, err = getenvStrictInt("FETCH_MAX_RETRIES", 0); err != nil {
		return nil, err
	}
	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("invalid FETCH_MAX_RETRIES: %d", cfg.MaxRetries)
	}
	if cfg.CacheMaxEntries, err = getenvStrictInt("CACHE_MAX_ENTRIES", 0); err != nil {
		return nil, err
	}
	if cfg.CacheMaxEntries < 0 {
		return nil, fmt.Errorf("invalid CACHE_MAX_ENTRIES: %d", cfg.CacheMaxEntries)
	}

	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	locs, err := parseLocations(os.Getenv("PREWARM_LOCATIONS"))
	if err != nil {
		return nil, err
	}
	cfg.PrewarmLocations = locs

	interval, err := time.ParseDuration(getenvDefault("PREWARM_INTERVAL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid PREWARM_INTERVAL: %w", err)
	}
	if interval < time.Second {
		return nil, fmt.Errorf("invalid PREWARM_INTERVAL %s: must be at least 1s", interval)
	}
	cfg.PrewarmInterval = interval

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

// parseLocations parses "lat,lon;lat,lon".
func parseLocations(s string) ([]weather.Coordinate, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var locs []weather.Coordinate
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.Split(pair, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid PREWARM_LOCATIONS entry %q: want lat,lon", pair)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil || lat < -90 || lat > 90 {
			return nil, fmt.Errorf("invalid latitude in PREWARM_LOCATIONS entry %q", pair)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil || lon < -180 || lon > 180 {
			return nil, fmt.Errorf("invalid longitude in PREWARM_LOCATIONS entry %q", pair)
		}
		locs = append(locs, weather.Coordinate{Lat: lat, Lon: lon})
	}
	return locs, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvStrictInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
