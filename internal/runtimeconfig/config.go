package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

var ErrModerationBaseURLRequired = errors.New("courses config: moderation base url is required")
var ErrModerationTimeoutInvalid = errors.New("courses config: moderation timeout must be zero or positive")
var ErrStorageDriverUnknown = errors.New("courses config: storage driver is invalid")
var ErrLoggingProviderRequired = errors.New("courses config: logging provider is required when logging is enabled")
var ErrLoggingProviderUnknown = errors.New("courses config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("courses config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("courses config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the courses module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled    bool
	Moderation ModerationConfig
	Storage    StorageConfig
	Cache      CacheConfig
	Logging    LoggingConfig
	Features   Features
	Commands   CommandsConfig
	Seed       SeedConfig
}

// ModerationConfig points the workflow at the catalog moderation backend.
// Routes overrides the default URL layout; when nil the base URL is combined
// with the standard course endpoints.
type ModerationConfig struct {
	BaseURL string
	Timeout time.Duration
	Routes  *urlkit.Config
}

// StorageConfig selects the database driver the module binds to.
type StorageConfig struct {
	Driver string
	DSN    string
}

// CacheConfig captures read-cache behaviour for catalog lookups.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Enabled   bool
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles module functionality.
type Features struct {
	OptimisticFallback  bool
	TeacherApprovalGate bool
	Commands            bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Timeout time.Duration
}

// SeedConfig controls taxonomy seeding during migration.
type SeedConfig struct {
	Taxonomy  bool
	Countries []string
}

// DefaultConfig returns opinionated defaults for a single-tenant deployment.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Moderation: ModerationConfig{
			Timeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Driver: "sqlite",
		},
		Cache: CacheConfig{
			DefaultTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Features: Features{
			OptimisticFallback: true,
		},
		Seed: SeedConfig{
			Taxonomy:  true,
			Countries: []string{"SA"},
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Moderation.BaseURL) == "" && cfg.Moderation.Routes == nil {
		return ErrModerationBaseURLRequired
	}
	if cfg.Moderation.Timeout < 0 {
		return ErrModerationTimeoutInvalid
	}
	if driver := normalize(cfg.Storage.Driver); driver != "" && !isSupportedDriver(driver) {
		return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, driver)
	}
	if cfg.Logging.Enabled {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedDriver(driver string) bool {
	switch driver {
	case "sqlite", "postgres":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
