package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-docmap/internal/runtimeconfig"
)

func TestConfigValidate_Defaults(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RejectsNegativeConcurrency(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Fetch.Concurrency = -1

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrConcurrencyInvalid) {
		t.Fatalf("expected ErrConcurrencyInvalid, got %v", err)
	}
}

func TestConfigValidate_ArchiveRequiresDSN(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Archive = true
	cfg.Archive.DSN = " "

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrArchiveRequiresDatabase) {
		t.Fatalf("expected ErrArchiveRequiresDatabase, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownArchiveDriver(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Archive = true
	cfg.Archive.Driver = "mysql"
	cfg.Archive.DSN = "file:archive.db"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrArchiveDriverUnknown) {
		t.Fatalf("expected ErrArchiveDriverUnknown, got %v", err)
	}
}

func TestConfigValidate_RequiresLoggingProviderWhenFeatureEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingLevel(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "console"
	cfg.Logging.Level = "verbose"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}
}
