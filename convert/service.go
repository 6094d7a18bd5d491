package convert

import (
	"context"

	"github.com/goliatone/go-docmap/internal/logging"
	"github.com/goliatone/go-docmap/pkg/interfaces"
)

// Service applies the conversion pipeline on behalf of the module façade.
type Service struct {
	logger interfaces.Logger
}

// NewService constructs a conversion service. A nil logger falls back to the
// no-op implementation.
func NewService(logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{logger: logger}
}

// Convert rewrites one HTML fragment into the constrained XML form. The
// fragment's tree is owned exclusively by this call; conversions of separate
// fragments never share state.
func (s *Service) Convert(ctx context.Context, data []byte) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	xml, err := Convert(data)
	if err != nil {
		s.logger.Error("convert.failed", "error", err)
		return nil, err
	}
	return xml, nil
}
