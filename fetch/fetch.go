// Package fetch retrieves web-content bytes for docmap content items. It is
// the module's only networked collaborator: bytes come back on HTTP 200 and
// an absent result on every other status, so callers never branch on HTTP
// details.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goliatone/go-docmap/internal/logging"
	"github.com/goliatone/go-docmap/pkg/interfaces"
)

const defaultTimeout = 30 * time.Second

// Config controls the HTTP fetcher.
type Config struct {
	UserAgent string
	Timeout   time.Duration
	Client    *http.Client
}

// HTTP implements interfaces.Fetcher over net/http.
type HTTP struct {
	client    *http.Client
	userAgent string
	logger    interfaces.Logger
}

var _ interfaces.Fetcher = (*HTTP)(nil)

// New constructs an HTTP fetcher. A nil client gets a default with the
// configured timeout applied.
func New(cfg Config, logger interfaces.Logger) *HTTP {
	if logger == nil {
		logger = logging.NoOp()
	}
	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &HTTP{
		client:    client,
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
}

// Fetch performs a GET for the url. It returns the response body on 200 and
// (nil, nil) on any other status; errors are reserved for transport failures.
func (f *HTTP) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: build request for %s: %w", url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	f.logger.Info("fetch.get", "url", url)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.logger.Info("fetch.skipped", "url", url, "status", resp.StatusCode)
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch: read %s: %w", url, err)
	}
	return body, nil
}
