// Package config loads hookstorm CLI configuration from the
// environment, with an optional .env file.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Defaults applied when the environment does not say otherwise.
const (
	DefaultManifestDir = "hooks"
	DefaultLogLevel    = "warn"
	DefaultLuaTimeout  = 5 * time.Second
	DefaultExecTimeout = 10 * time.Second
)

// Config holds CLI settings sourced from the environment.
type Config struct {
	// ManifestDir is the directory scanned for hook manifests.
	ManifestDir string

	// LogLevel is the minimum level name (trace, debug, info, warn).
	LogLevel string

	// LuaTimeout bounds each Lua script handler invocation.
	LuaTimeout time.Duration

	// ExecTimeout bounds each command handler invocation.
	ExecTimeout time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment
// variables win over .env entries.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ManifestDir: getEnv("HOOKSTORM_MANIFEST_DIR", DefaultManifestDir),
		LogLevel:    getEnv("HOOKSTORM_LOG_LEVEL", DefaultLogLevel),
		LuaTimeout:  DefaultLuaTimeout,
		ExecTimeout: DefaultExecTimeout,
	}

	if raw := os.Getenv("HOOKSTORM_LUA_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.LuaTimeout = d
		}
	}
	if raw := os.Getenv("HOOKSTORM_EXEC_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.ExecTimeout = d
		}
	}

	return cfg
}

// Verbosity maps the configured level name onto the verbosity scale
// used by logging.Setup. Unknown names fall back to the default.
func (c *Config) Verbosity() int {
	switch c.LogLevel {
	case "trace":
		return 3
	case "debug":
		return 2
	case "info":
		return 1
	default:
		return 0
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
