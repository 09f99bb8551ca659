// Package config reads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables read by Load.
const (
	EnvLogLevel        = "SHAPE_MCP_LOG_LEVEL"
	EnvLogFormat       = "SHAPE_MCP_LOG_FORMAT"
	EnvMaxDimension    = "SHAPE_MCP_MAX_DIMENSION"
	EnvFixedThresholds = "SHAPE_MCP_FIXED_THRESHOLDS"
)

// Config holds the runtime settings of the server and the detect command.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogFormat is "console" or "json".
	LogFormat string

	// MaxDimension downscales larger images to fit a MaxDimension square
	// before detection. Zero disables downscaling.
	MaxDimension int

	// FixedThresholds is the fallback threshold ladder, tried in order.
	FixedThresholds []uint8
}

// Load builds a Config from the environment, applying defaults for unset
// variables and rejecting malformed values.
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:  strings.ToLower(getEnv(EnvLogLevel, "info")),
		LogFormat: strings.ToLower(getEnv(EnvLogFormat, "console")),
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid %s %q: want debug, info, warn or error", EnvLogLevel, cfg.LogLevel)
	}

	switch cfg.LogFormat {
	case "console", "json":
	default:
		return nil, fmt.Errorf("invalid %s %q: want console or json", EnvLogFormat, cfg.LogFormat)
	}

	maxDim, err := strconv.Atoi(getEnv(EnvMaxDimension, "0"))
	if err != nil || maxDim < 0 {
		return nil, fmt.Errorf("invalid %s %q: want a non-negative integer", EnvMaxDimension, os.Getenv(EnvMaxDimension))
	}
	cfg.MaxDimension = maxDim

	thresholds, err := parseThresholds(getEnv(EnvFixedThresholds, "100,127,150,180"))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", EnvFixedThresholds, err)
	}
	cfg.FixedThresholds = thresholds

	return cfg, nil
}

// parseThresholds parses a comma-separated list of intensities in 0-255.
func parseThresholds(s string) ([]uint8, error) {
	parts := strings.Split(s, ",")
	out := make([]uint8, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("threshold %q: want an integer in 0-255", p)
		}
		out = append(out, uint8(v))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no thresholds in %q", s)
	}
	return out, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
