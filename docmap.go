// Package docmap ingests docmap provenance documents, extracts their review
// content, and converts fetched HTML fragments into an XML body suitable for
// downstream publishing pipelines.
package docmap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-docmap/convert"
	"github.com/goliatone/go-docmap/internal/di"
	"github.com/goliatone/go-docmap/internal/identity"
	"github.com/goliatone/go-docmap/internal/logging"
	"github.com/goliatone/go-docmap/internal/validation"
	"github.com/goliatone/go-docmap/steps"
	"github.com/goliatone/go-docmap/store"
	"golang.org/x/sync/errgroup"
)

// Option configures the module's collaborators.
type Option = di.Option

// WithFetcher overrides the HTTP fetcher used to retrieve web content.
var WithFetcher = di.WithFetcher

// WithLoggerProvider overrides the logger provider.
var WithLoggerProvider = di.WithLoggerProvider

// WithBunDB injects a database handle for the run archive.
var WithBunDB = di.WithBunDB

// WithStore overrides the archive store binding.
var WithStore = di.WithStore

// ErrContentUnavailable indicates the web content for an item was not served.
var ErrContentUnavailable = errors.New("docmap: content unavailable")

// Diagnostic records a per-item conversion failure that did not abort the run.
type Diagnostic struct {
	Index int
	URL   string
	Err   error
}

// Result carries the outcome of processing one docmap.
type Result struct {
	Docmap      *steps.Docmap
	Items       []steps.ContentItem
	Diagnostics []Diagnostic
	RunID       string
}

// Converted reports how many items carry converted XML.
func (r *Result) Converted() int {
	if r == nil {
		return 0
	}
	n := 0
	for i := range r.Items {
		if len(r.Items[i].XML) > 0 {
			n++
		}
	}
	return n
}

// ValidationError aggregates the structural issues found in a docmap.
type ValidationError struct {
	Issues []validation.Issue
	cause  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("docmap failed validation with %d issue(s)", len(e.Issues))
}

func (e *ValidationError) Unwrap() error {
	return e.cause
}

// Module is the top level docmap runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a docmap module using the provided configuration and
// optional dependency overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying dependency container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Store returns the run archive, nil when the archive feature is disabled.
func (m *Module) Store() *store.Store {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Store()
}

// Process parses a docmap, retrieves the web content for every extracted
// item, and converts each fetched HTML fragment to XML. Items are fetched
// concurrently; markup and encoding defects are recorded per item while any
// other failure aborts the batch.
func (m *Module) Process(ctx context.Context, docmapJSON []byte) (*Result, error) {
	cfg := m.container.Config
	logger := logging.ModuleLogger(m.container.LoggerProvider(), "")
	startedAt := time.Now().UTC()

	if cfg.Features.ValidateDocmaps {
		if err := validation.ValidateDocmap(docmapJSON); err != nil {
			return nil, &ValidationError{Issues: validation.Issues(err), cause: err}
		}
	}

	doc, err := steps.Parse(docmapJSON)
	if err != nil {
		return nil, err
	}

	items, err := doc.Content()
	if err != nil {
		return nil, err
	}

	result := &Result{Docmap: doc, Items: items}

	diagnostics := make([]*Diagnostic, len(items))

	group, groupCtx := errgroup.WithContext(ctx)
	if limit := cfg.Fetch.Concurrency; limit > 0 {
		group.SetLimit(limit)
	}

	for i := range items {
		group.Go(func() error {
			item := &result.Items[i]
			if item.WebContent == "" {
				return nil
			}

			body, err := m.container.Fetcher().Fetch(groupCtx, item.WebContent)
			if err != nil {
				return err
			}
			if body == nil {
				diagnostics[i] = &Diagnostic{Index: i, URL: item.WebContent, Err: ErrContentUnavailable}
				return nil
			}
			item.HTML = body

			xml, err := m.container.Converter().Convert(groupCtx, body)
			if err != nil {
				if convert.Recoverable(err) {
					diagnostics[i] = &Diagnostic{Index: i, URL: item.WebContent, Err: err}
					return nil
				}
				return err
			}
			item.XML = xml
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	for _, d := range diagnostics {
		if d != nil {
			result.Diagnostics = append(result.Diagnostics, *d)
		}
	}

	logger.Info("docmap processed",
		"items", len(result.Items),
		"converted", result.Converted(),
		"failed", len(result.Diagnostics),
	)

	if cfg.Features.Archive && m.container.Store() != nil {
		if err := m.archiveRun(ctx, doc, result, startedAt); err != nil {
			logger.Error("run archive failed", "error", err)
			return result, err
		}
	}

	return result, nil
}

// PreprintHistory parses a docmap and returns its preprint event timeline.
func (m *Module) PreprintHistory(docmapJSON []byte) ([]steps.PreprintEvent, error) {
	doc, err := steps.Parse(docmapJSON)
	if err != nil {
		return nil, err
	}
	return doc.PreprintHistory()
}

// PreprintReviewDate parses a docmap and returns the date its preprint
// entered review.
func (m *Module) PreprintReviewDate(docmapJSON []byte) (string, error) {
	doc, err := steps.Parse(docmapJSON)
	if err != nil {
		return "", err
	}
	return doc.PreprintReviewDate()
}

// LatestPreprint parses a docmap and returns the most specific preprint
// described by its terminal step.
func (m *Module) LatestPreprint(docmapJSON []byte) (steps.Item, error) {
	doc, err := steps.Parse(docmapJSON)
	if err != nil {
		return steps.Item{}, err
	}
	return doc.LatestPreprint()
}

func (m *Module) archiveRun(ctx context.Context, doc *steps.Docmap, result *Result, startedAt time.Time) error {
	runUUID := identity.RunUUID(doc.ID, startedAt.Format(time.RFC3339Nano))
	runID := runUUID.String()

	failures := make(map[int]string, len(result.Diagnostics))
	for _, d := range result.Diagnostics {
		if d.Err != nil {
			failures[d.Index] = d.Err.Error()
		}
	}

	run := store.Run{
		ID:          runID,
		DocmapID:    doc.ID,
		Source:      cfgSource(m.container.Config.DefaultSource),
		StartedAt:   startedAt,
		FinishedAt:  time.Now().UTC(),
		ItemCount:   len(result.Items),
		FailedCount: len(result.Diagnostics),
	}
	for i := range result.Items {
		item := result.Items[i]
		run.Items = append(run.Items, store.Item{
			ID:       identity.ItemUUID(runUUID, i).String(),
			RunID:    runID,
			Position: i,
			URL:      item.WebContent,
			XML:      item.XML,
			Failure:  failures[i],
		})
	}

	if err := m.container.Store().SaveRun(ctx, run); err != nil {
		return err
	}
	result.RunID = runID
	return nil
}

func cfgSource(source string) string {
	if source == "" {
		return "inline"
	}
	return source
}
