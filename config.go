package docmap

import "github.com/goliatone/go-docmap/internal/runtimeconfig"

var (
	ErrConcurrencyInvalid      = runtimeconfig.ErrConcurrencyInvalid
	ErrArchiveRequiresDatabase = runtimeconfig.ErrArchiveRequiresDatabase
	ErrArchiveDriverUnknown    = runtimeconfig.ErrArchiveDriverUnknown
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	FetchConfig   = runtimeconfig.FetchConfig
	ArchiveConfig = runtimeconfig.ArchiveConfig
	Features      = runtimeconfig.Features
	LoggingConfig = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
