// Package config reads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the settings shared by the calculator front ends.
type Config struct {
	Addr            string        // CALC_ADDR
	MaxSessions     int           // CALC_MAX_SESSIONS
	WordsCacheSize  int           // CALC_WORDS_CACHE_SIZE
	ShutdownTimeout time.Duration // CALC_SHUTDOWN_TIMEOUT
	Telemetry       bool          // CALC_TELEMETRY
	LogFile         string        // CALC_LOG_FILE, terminal UI only
}

// Default returns the configuration used when no variables are set.
func Default() Config {
	return Config{
		Addr:            ":8080",
		MaxSessions:     1024,
		WordsCacheSize:  256,
		ShutdownTimeout: 5 * time.Second,
		Telemetry:       true,
	}
}

// Load overlays the environment on Default. Invalid values are reported with
// the variable name.
func Load() (Config, error) {
	cfg := Default()

	if v := os.Getenv("CALC_ADDR"); v != "" {
		cfg.Addr = v
	}
	cfg.LogFile = os.Getenv("CALC_LOG_FILE")

	var err error
	if cfg.MaxSessions, err = positiveInt("CALC_MAX_SESSIONS", cfg.MaxSessions); err != nil {
		return Config{}, err
	}
	if cfg.WordsCacheSize, err = positiveInt("CALC_WORDS_CACHE_SIZE", cfg.WordsCacheSize); err != nil {
		return Config{}, err
	}

	if v := os.Getenv("CALC_SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("CALC_SHUTDOWN_TIMEOUT: invalid duration %q", v)
		}
		cfg.ShutdownTimeout = d
	}

	if v := os.Getenv("CALC_TELEMETRY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("CALC_TELEMETRY: invalid boolean %q", v)
		}
		cfg.Telemetry = b
	}

	return cfg, nil
}

func positiveInt(name string, def int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: expected a positive integer, got %q", name, v)
	}
	return n, nil
}
