// Package di wires module dependencies from runtime configuration: the
// logger provider, the HTTP fetcher, the HTML converter, and the optional
// run archive.
package di

import (
	"strings"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-docmap/convert"
	"github.com/goliatone/go-docmap/fetch"
	"github.com/goliatone/go-docmap/internal/logging"
	"github.com/goliatone/go-docmap/internal/logging/gologger"
	"github.com/goliatone/go-docmap/internal/runtimeconfig"
	"github.com/goliatone/go-docmap/pkg/interfaces"
	"github.com/goliatone/go-docmap/store"
)

// Container wires module dependencies.
type Container struct {
	Config runtimeconfig.Config

	loggers   interfaces.LoggerProvider
	fetcher   interfaces.Fetcher
	converter *convert.Service

	bunDB   *bun.DB
	archive *store.Store
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the default logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggers = provider
	}
}

// WithFetcher overrides the default HTTP fetcher.
func WithFetcher(f interfaces.Fetcher) Option {
	return func(c *Container) {
		c.fetcher = f
	}
}

// WithBunDB injects an existing database handle for the run archive.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithStore overrides the default archive store binding.
func WithStore(s *store.Store) Option {
	return func(c *Container) {
		c.archive = s
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}

	for _, opt := range opts {
		opt(c)
	}

	if c.loggers == nil {
		provider, err := buildLoggerProvider(cfg)
		if err != nil {
			return nil, err
		}
		c.loggers = provider
	}

	if c.fetcher == nil {
		c.fetcher = fetch.New(fetch.Config{
			UserAgent: cfg.Fetch.UserAgent,
			Timeout:   cfg.Fetch.Timeout,
		}, logging.FetchLogger(c.loggers))
	}

	if c.converter == nil {
		c.converter = convert.NewService(logging.ConvertLogger(c.loggers))
	}

	if c.archive == nil && cfg.Features.Archive {
		if c.bunDB == nil {
			db, err := store.Open(cfg.Archive.Driver, cfg.Archive.DSN)
			if err != nil {
				return nil, err
			}
			c.bunDB = db
		}
		c.archive = store.New(c.bunDB, logging.StoreLogger(c.loggers))
	}

	return c, nil
}

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggers
}

// Fetcher exposes the configured content fetcher.
func (c *Container) Fetcher() interfaces.Fetcher {
	return c.fetcher
}

// Converter exposes the configured HTML converter.
func (c *Container) Converter() *convert.Service {
	return c.converter
}

// Store exposes the run archive, nil when the archive feature is disabled.
func (c *Container) Store() *store.Store {
	return c.archive
}

func buildLoggerProvider(cfg runtimeconfig.Config) (interfaces.LoggerProvider, error) {
	if !cfg.Features.Logger {
		return noopProvider{}, nil
	}
	format := cfg.Logging.Format
	if strings.EqualFold(strings.TrimSpace(cfg.Logging.Provider), "console") && format == "" {
		format = "console"
	}
	return gologger.NewProvider(gologger.Config{
		Level:     cfg.Logging.Level,
		Format:    format,
		AddSource: cfg.Logging.AddSource,
		Focus:     cfg.Logging.Focus,
	})
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger {
	return logging.NoOp()
}
