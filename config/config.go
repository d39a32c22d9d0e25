package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every tunable the process reads at startup.
type Config struct {
	DatabaseURL string
	ServerPort  int

	// Scheduling.
	ScrapeInterval      time.Duration
	TournamentPause     time.Duration
	StatsReportInterval time.Duration
	StatsEveryCycles    int

	// Browser / fetch behaviour.
	SettleDelay       time.Duration
	NavigationTimeout time.Duration
	Headless          bool

	// Legs-to-win fallback when the page carries no legs attribute.
	// 0 means unknown: a match is then never inferred finished from its
	// score alone.
	DefaultLegsToWin int
}

// Load reads configuration from the environment, optionally seeded from a
// .env file. Only DATABASE_URL is mandatory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	port, err := envInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	cfg := &Config{
		DatabaseURL: dbURL,
		ServerPort:  port,
	}

	if cfg.ScrapeInterval, err = envDuration("SCRAPE_INTERVAL", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.TournamentPause, err = envDuration("TOURNAMENT_PAUSE", time.Second); err != nil {
		return nil, err
	}
	if cfg.StatsReportInterval, err = envDuration("STATS_REPORT_INTERVAL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.StatsEveryCycles, err = envInt("STATS_EVERY_CYCLES", 10); err != nil {
		return nil, err
	}
	if cfg.SettleDelay, err = envDuration("SETTLE_DELAY", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.NavigationTimeout, err = envDuration("NAVIGATION_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.DefaultLegsToWin, err = envInt("DEFAULT_LEGS_TO_WIN", 0); err != nil {
		return nil, err
	}
	if cfg.Headless, err = envBool("HEADLESS", true); err != nil {
		return nil, err
	}

	return cfg, nil
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return d, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return b, nil
}
