package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrConcurrencyInvalid rejects negative worker counts.
var ErrConcurrencyInvalid = errors.New("docmap config: concurrency must be zero or positive")

// ErrArchiveRequiresDatabase ensures the archive feature has a database binding.
var ErrArchiveRequiresDatabase = errors.New("docmap config: archive feature requires a database driver and DSN")

var ErrArchiveDriverUnknown = errors.New("docmap config: archive driver is invalid")
var ErrLoggingProviderRequired = errors.New("docmap config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("docmap config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("docmap config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("docmap config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the docmap module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled       bool
	DefaultSource string
	Fetch         FetchConfig
	Archive       ArchiveConfig
	Features      Features
	Logging       LoggingConfig
}

// FetchConfig captures HTTP retrieval behaviour for content items.
type FetchConfig struct {
	UserAgent   string
	Timeout     time.Duration
	Concurrency int
}

// ArchiveConfig lists identifiers for the run archive database.
type ArchiveConfig struct {
	Driver string
	DSN    string
}

// Features toggles module functionality.
type Features struct {
	ValidateDocmaps bool
	Archive         bool
	Logger          bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for a host embedding the module.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Fetch: FetchConfig{
			UserAgent:   "go-docmap/1.0",
			Timeout:     30 * time.Second,
			Concurrency: 4,
		},
		Archive: ArchiveConfig{
			Driver: "sqlite3",
		},
		Features: Features{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Fetch.Concurrency < 0 {
		return ErrConcurrencyInvalid
	}
	if cfg.Features.Archive {
		driver := strings.TrimSpace(cfg.Archive.Driver)
		if driver == "" || strings.TrimSpace(cfg.Archive.DSN) == "" {
			return ErrArchiveRequiresDatabase
		}
		if !isSupportedDriver(driver) {
			return fmt.Errorf("%w: %s", ErrArchiveDriverUnknown, driver)
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
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

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedDriver(driver string) bool {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite3", "postgres":
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
