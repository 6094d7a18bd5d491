package docmapcmd

import (
	"context"
	"errors"

	docmap "github.com/goliatone/go-docmap"
	"github.com/goliatone/go-docmap/internal/commands"
	"github.com/goliatone/go-docmap/internal/logging"
	"github.com/goliatone/go-docmap/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const processOperation = "docmap.process"

// ErrModuleRequired is returned when a handler is built without a module.
var ErrModuleRequired = errors.New("docmap command: module is required")

var _ command.Commander[ProcessDocmapCommand] = (*ProcessDocmapHandler)(nil)

// Processor is the slice of the module façade the handler needs.
type Processor interface {
	Process(ctx context.Context, docmapJSON []byte) (*docmap.Result, error)
}

// ProcessDocmapHandler orchestrates docmap ingestion via the shared command
// handler foundation.
type ProcessDocmapHandler struct {
	inner *commands.Handler[ProcessDocmapCommand]
}

// NewProcessDocmapHandler creates a handler bound to the supplied module.
func NewProcessDocmapHandler(module Processor, logger interfaces.Logger, opts ...commands.HandlerOption[ProcessDocmapCommand]) *ProcessDocmapHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ProcessDocmapCommand) error {
		if module == nil {
			return ErrModuleRequired
		}

		result, err := module.Process(ctx, msg.Docmap)
		if err != nil {
			return err
		}

		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"source":    msg.Source,
				"items":     len(result.Items),
				"converted": result.Converted(),
				"failed":    len(result.Diagnostics),
			}).Info("docmap.command.process.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ProcessDocmapCommand]{
		commands.WithLogger[ProcessDocmapCommand](baseLogger),
		commands.WithOperation[ProcessDocmapCommand](processOperation),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ProcessDocmapHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ProcessDocmapCommand].
func (h *ProcessDocmapHandler) Execute(ctx context.Context, msg ProcessDocmapCommand) error {
	return h.inner.Execute(ctx, msg)
}
