package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	errInvalidPort    = errors.New("config: invalid PORT number")
	errTimeoutRange   = errors.New("config: FETCH_TIMEOUT_SECONDS must be 1-120")
	errRateLimitRange = errors.New("config: RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port           string
	LogLevel       string
	FetchTimeout   time.Duration
	RateLimitRPS   float64
	RateLimitBurst float64
	UpgradeURL     string
}

// Load reads configuration from the environment with sensible
// defaults. A .env file in the working directory is honored when
// present; real environment variables win over it.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:           getEnv("PORT", "8787"),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		FetchTimeout:   time.Duration(getEnvAsInt("FETCH_TIMEOUT_SECONDS", 10)) * time.Second,
		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 2),
		RateLimitBurst: getEnvAsFloat("RATE_LIMIT_BURST", 5),
		UpgradeURL:     getEnv("UPGRADE_URL", ""),
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", errInvalidPort, c.Port)
	}

	if c.FetchTimeout < time.Second || c.FetchTimeout > 120*time.Second {
		return fmt.Errorf("%w: got %s", errTimeoutRange, c.FetchTimeout)
	}

	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("%w: got rps=%v burst=%v", errRateLimitRange, c.RateLimitRPS, c.RateLimitBurst)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsFloat(key string, fallback float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}
